package leave

import (
	"context"
	"strings"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	leaveerrors "go-payroll/internal/leave/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, employeeID string, req CreateRequestRequest) (RequestResponse, error)
	Cancel(ctx context.Context, employeeID, requestID string) (RequestResponse, error)
	ListFor(ctx context.Context, employeeID string) ([]RequestResponse, error)
	ListAll(ctx context.Context, weekIndex *int) ([]AdminRequestResponse, error)
	Approve(ctx context.Context, req DecideRequestRequest) (AdminRequestResponse, error)
	Reject(ctx context.Context, req DecideRequestRequest) (AdminRequestResponse, error)
	PendingCount(ctx context.Context) (PendingCountResponse, error)
}

type service struct {
	repo      Repository
	employees employee.Repository
	punches   attendance.Repository
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(repo Repository, employees employee.Repository, punches attendance.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{repo: repo, employees: employees, punches: punches, logger: l, now: time.Now}
}

func (s *service) Create(ctx context.Context, employeeID string, req CreateRequestRequest) (RequestResponse, error) {
	s.logger.Debug("create leave request requested",
		zap.String("employee_id", employeeID),
		zap.String("from", req.DateFrom),
		zap.String("to", req.DateTo),
	)

	from, err := time.ParseInLocation(dateLayout, req.DateFrom, time.Local)
	if err != nil {
		return RequestResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	to, err := time.ParseInLocation(dateLayout, req.DateTo, time.Local)
	if err != nil {
		return RequestResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	if from.After(to) {
		return RequestResponse{}, leaveerrors.ErrInvalidDateRange
	}

	emp, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		s.logger.Error("create leave request registry lookup failed", zap.Error(err))
		return RequestResponse{}, err
	}
	if emp == nil {
		return RequestResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	r := Request{
		ID:        uuid.NewString(),
		Subject:   req.Subject,
		Type:      req.Type,
		DateFrom:  req.DateFrom,
		DateTo:    req.DateTo,
		Message:   strings.TrimSpace(req.Message),
		Status:    StatusPending,
		CreatedAt: s.now(),
	}
	if r.Subject == "" {
		r.Subject = "Leave Request"
	}
	if r.Type == "" {
		r.Type = "Leave"
	}

	list, err := s.repo.ListFor(ctx, employeeID)
	if err != nil {
		return RequestResponse{}, err
	}
	list = append([]Request{r}, list...)
	if err := s.repo.ReplaceFor(ctx, employeeID, list); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return RequestResponse{}, err
	}

	s.logger.Info("create leave request success",
		zap.String("request_id", r.ID),
		zap.String("employee_id", employeeID),
		zap.String("type", r.Type),
	)
	return mapToResponse(r), nil
}

func (s *service) Cancel(ctx context.Context, employeeID, requestID string) (RequestResponse, error) {
	list, err := s.repo.ListFor(ctx, employeeID)
	if err != nil {
		return RequestResponse{}, err
	}
	idx := indexOf(list, requestID)
	if idx < 0 {
		return RequestResponse{}, leaveerrors.ErrRequestNotFound
	}
	if list[idx].Decided() {
		s.logger.Warn("cancel leave request refused",
			zap.String("request_id", requestID),
			zap.String("status", list[idx].Status),
		)
		return RequestResponse{}, leaveerrors.ErrRequestNotPending
	}

	list[idx].Status = StatusCancelled
	if err := s.repo.ReplaceFor(ctx, employeeID, list); err != nil {
		s.logger.Error("cancel leave request persist failed", zap.Error(err))
		return RequestResponse{}, err
	}

	s.logger.Info("cancel leave request success",
		zap.String("request_id", requestID),
		zap.String("employee_id", employeeID),
	)
	return mapToResponse(list[idx]), nil
}

func (s *service) ListFor(ctx context.Context, employeeID string) ([]RequestResponse, error) {
	list, err := s.repo.ListFor(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	resp := make([]RequestResponse, len(list))
	for i, r := range list {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

// ListAll mengumpulkan request seluruh karyawan terdaftar. Bila
// weekIndex diberikan dan ada minggu absensi, hasil disaring ke request
// yang beririsan dengan minggu tersebut.
func (s *service) ListAll(ctx context.Context, weekIndex *int) ([]AdminRequestResponse, error) {
	emps, err := s.employees.All(ctx)
	if err != nil {
		return nil, err
	}

	var weekStart, weekEnd time.Time
	filterByWeek := false
	if weekIndex != nil {
		punches, err := s.punches.All(ctx)
		if err != nil {
			return nil, err
		}
		weeks := attendance.BuildWeeks(punches)
		if len(weeks) > 0 {
			wk := weeks[attendance.ClampWeekIndex(weeks, *weekIndex)]
			weekStart = wk.Start
			weekEnd = wk.Start.AddDate(0, 0, 6)
			filterByWeek = true
		}
	}

	out := make([]AdminRequestResponse, 0)
	for _, e := range emps {
		list, err := s.repo.ListFor(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		for _, r := range list {
			if filterByWeek && !r.OverlapsRange(weekStart, weekEnd) {
				continue
			}
			out = append(out, AdminRequestResponse{
				RequestResponse: mapToResponse(r),
				OwnerID:         e.ID,
				OwnerName:       e.Name,
			})
		}
	}
	return out, nil
}

func (s *service) Approve(ctx context.Context, req DecideRequestRequest) (AdminRequestResponse, error) {
	return s.decide(ctx, req, StatusApproved)
}

func (s *service) Reject(ctx context.Context, req DecideRequestRequest) (AdminRequestResponse, error) {
	return s.decide(ctx, req, StatusRejected)
}

func (s *service) decide(ctx context.Context, req DecideRequestRequest, targetStatus string) (AdminRequestResponse, error) {
	s.logger.Debug("decide leave request requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("request_id", req.RequestID),
		zap.String("target_status", targetStatus),
	)

	list, err := s.repo.ListFor(ctx, req.EmployeeID)
	if err != nil {
		return AdminRequestResponse{}, err
	}
	idx := indexOf(list, req.RequestID)
	if idx < 0 {
		return AdminRequestResponse{}, leaveerrors.ErrRequestNotFound
	}
	if list[idx].Decided() {
		s.logger.Warn("decide leave request refused",
			zap.String("request_id", req.RequestID),
			zap.String("status", list[idx].Status),
			zap.String("target_status", targetStatus),
		)
		return AdminRequestResponse{}, leaveerrors.ErrRequestNotPending
	}

	list[idx].Status = targetStatus
	if req.AdminComment != nil {
		if comment := strings.TrimSpace(*req.AdminComment); comment != "" {
			list[idx].AdminComment = &comment
		}
	}
	processedAt := s.now()
	list[idx].ProcessedAt = &processedAt

	if err := s.repo.ReplaceFor(ctx, req.EmployeeID, list); err != nil {
		s.logger.Error("decide leave request persist failed", zap.Error(err))
		return AdminRequestResponse{}, err
	}

	ownerName := ""
	if emp, err := s.employees.Get(ctx, req.EmployeeID); err == nil && emp != nil {
		ownerName = emp.Name
	}

	s.logger.Info("decide leave request success",
		zap.String("request_id", req.RequestID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("status", targetStatus),
	)
	return AdminRequestResponse{
		RequestResponse: mapToResponse(list[idx]),
		OwnerID:         req.EmployeeID,
		OwnerName:       ownerName,
	}, nil
}

func (s *service) PendingCount(ctx context.Context) (PendingCountResponse, error) {
	emps, err := s.employees.All(ctx)
	if err != nil {
		return PendingCountResponse{}, err
	}
	count := 0
	for _, e := range emps {
		list, err := s.repo.ListFor(ctx, e.ID)
		if err != nil {
			return PendingCountResponse{}, err
		}
		for _, r := range list {
			if r.Status == StatusPending {
				count++
			}
		}
	}
	return PendingCountResponse{Pending: count}, nil
}

func indexOf(list []Request, requestID string) int {
	for i, r := range list {
		if r.ID == requestID {
			return i
		}
	}
	return -1
}

func mapToResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:           r.ID,
		Subject:      r.Subject,
		Type:         r.Type,
		DateFrom:     r.DateFrom,
		DateTo:       r.DateTo,
		Message:      r.Message,
		Status:       r.Status,
		AdminComment: r.AdminComment,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	if r.ProcessedAt != nil {
		v := r.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &v
	}
	return resp
}
