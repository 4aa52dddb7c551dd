package payroll

import (
	"context"
	"math"
	"sort"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	payrollerrors "go-payroll/internal/payroll/errors"

	"go.uber.org/zap"
)

type Service interface {
	Preview(ctx context.Context, employeeID string, weekIndex int, lateHours, lateMinutes *int) (PreviewResponse, error)
	Run(ctx context.Context, req RunPayrollRequest) (PayslipResponse, error)
	ListFor(ctx context.Context, employeeID string) ([]PayslipResponse, error)
	Approve(ctx context.Context, req DecidePayslipRequest) (PayslipResponse, error)
	Reject(ctx context.Context, req DecidePayslipRequest) (PayslipResponse, error)
	PendingCount(ctx context.Context) (PendingCountResponse, error)
}

type service struct {
	repo      Repository
	punches   attendance.Repository
	employees employee.Repository
	empSvc    employee.Service
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	repo Repository,
	punches attendance.Repository,
	employees employee.Repository,
	empSvc employee.Service,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		repo:      repo,
		punches:   punches,
		employees: employees,
		empSvc:    empSvc,
		logger:    l,
		now:       time.Now,
	}
}

// computation holds everything a run or preview derives for one
// employee-week.
type computation struct {
	weekIndex   int
	weekStart   string
	weekLabel   string
	weekKey     string
	hours       attendance.HoursSummary
	lateHours   int
	lateMinutes int
	lateDed     float64
	gross       float64
	statutory   float64
	net         float64
}

func (s *service) compute(ctx context.Context, emp *employee.Employee, weekIndex int, lateHours, lateMinutes *int) (computation, error) {
	list, err := s.punches.All(ctx)
	if err != nil {
		return computation{}, err
	}
	weeks := attendance.BuildWeeks(list)

	c := computation{weekIndex: weekIndex}
	if len(weeks) > 0 {
		idx := attendance.ClampWeekIndex(weeks, weekIndex)
		week := weeks[idx]
		c.weekIndex = idx
		c.weekStart = week.StartISO()
		c.weekLabel = week.Label()
		c.hours = attendance.HoursForEmployee(week, emp.ID)

		late := attendance.LateForEmployee(week, emp.ID)
		c.lateHours = late.LateHours
		c.lateMinutes = late.LateMinutes
	}

	// identitas minggu: weekStart -> weekLabel -> kunci sintetis
	c.weekKey = c.weekStart
	if c.weekKey == "" {
		c.weekKey = c.weekLabel
	}
	if c.weekKey == "" {
		c.weekKey = SyntheticWeekKey(c.weekIndex)
	}

	// override manual admin menang atas hitungan otomatis
	if lateHours != nil || lateMinutes != nil {
		c.lateHours = 0
		c.lateMinutes = 0
		if lateHours != nil {
			c.lateHours = *lateHours
		}
		if lateMinutes != nil {
			c.lateMinutes = *lateMinutes
		}
	}

	c.lateDed = CalculateLateDeduction(WeeklySalaryFor(emp), c.lateHours, c.lateMinutes)
	c.gross = Gross(c.hours.Hours)
	c.statutory = emp.StatutoryTotal()
	c.net = Net(c.gross, c.statutory, c.lateDed)
	return c, nil
}

func (s *service) Preview(ctx context.Context, employeeID string, weekIndex int, lateHours, lateMinutes *int) (PreviewResponse, error) {
	emp, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return PreviewResponse{}, err
	}
	if emp == nil {
		return PreviewResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	c, err := s.compute(ctx, emp, weekIndex, lateHours, lateMinutes)
	if err != nil {
		return PreviewResponse{}, err
	}

	existing, err := s.repo.ListFor(ctx, employeeID)
	if err != nil {
		return PreviewResponse{}, err
	}
	hasApproved := false
	for _, p := range existing {
		if p.Status == StatusApproved && p.SameWeek(c.weekKey, c.weekStart, c.weekLabel) {
			hasApproved = true
			break
		}
	}

	return PreviewResponse{
		EmployeeID:      employeeID,
		WeekIndex:       c.weekIndex,
		WeekStart:       c.weekStart,
		WeekLabel:       c.weekLabel,
		Days:            c.hours.Days,
		PayableHours:    c.hours.Hours,
		RawHours:        c.hours.RawHours,
		Gross:           c.gross,
		Statutory:       c.statutory,
		LateHours:       c.lateHours,
		LateMinutes:     c.lateMinutes,
		LateDeduction:   c.lateDed,
		Net:             c.net,
		WeekHasApproved: hasApproved,
	}, nil
}

// Run writes the payslip for one employee-week. A week that already has
// an approved payslip is refused; a non-approved payslip for the same
// week is overwritten in place; otherwise the new slip is prepended.
func (s *service) Run(ctx context.Context, req RunPayrollRequest) (PayslipResponse, error) {
	s.logger.Debug("run payroll requested",
		zap.String("employee_id", req.EmployeeID),
		zap.Int("week_index", req.WeekIndex),
	)

	emp, err := s.employees.Get(ctx, req.EmployeeID)
	if err != nil {
		return PayslipResponse{}, err
	}
	if emp == nil {
		return PayslipResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	c, err := s.compute(ctx, emp, req.WeekIndex, req.LateHours, req.LateMinutes)
	if err != nil {
		return PayslipResponse{}, err
	}

	existing, err := s.repo.ListFor(ctx, req.EmployeeID)
	if err != nil {
		return PayslipResponse{}, err
	}

	for _, p := range existing {
		if p.Status == StatusApproved && p.SameWeek(c.weekKey, c.weekStart, c.weekLabel) {
			s.logger.Warn("run payroll refused, week already approved",
				zap.String("employee_id", req.EmployeeID),
				zap.String("week_key", c.weekKey),
			)
			return PayslipResponse{}, payrollerrors.ErrWeekAlreadyApproved
		}
	}

	slip := Payslip{
		WeekStart:     c.weekStart,
		WeekLabel:     c.weekLabel,
		WeekKey:       c.weekKey,
		Gross:         c.gross,
		Statutory:     c.statutory,
		LateHours:     c.lateHours,
		LateMinutes:   c.lateMinutes,
		LateDeduction: c.lateDed,
		Net:           c.net,
		Status:        StatusPending,
		CreatedAt:     s.now().UTC(),
	}

	foundIdx := -1
	for i, p := range existing {
		if p.SameWeek(c.weekKey, c.weekStart, c.weekLabel) {
			foundIdx = i
			break
		}
	}
	if foundIdx >= 0 {
		existing[foundIdx] = slip
	} else {
		existing = append([]Payslip{slip}, existing...)
	}

	if err := s.repo.ReplaceFor(ctx, req.EmployeeID, existing); err != nil {
		s.logger.Error("run payroll persist failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return PayslipResponse{}, err
	}

	if err := s.empSvc.RecordNet(ctx, req.EmployeeID, math.Round(c.net)); err != nil {
		s.logger.Warn("run payroll last-net update failed",
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
	}

	s.logger.Info("run payroll success",
		zap.String("employee_id", req.EmployeeID),
		zap.String("week_key", c.weekKey),
		zap.Float64("gross", c.gross),
		zap.Float64("net", c.net),
	)
	return mapSlipToResponse(req.EmployeeID, slip), nil
}

func (s *service) ListFor(ctx context.Context, employeeID string) ([]PayslipResponse, error) {
	list, err := s.repo.ListFor(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	resp := make([]PayslipResponse, len(list))
	for i, p := range list {
		resp[i] = mapSlipToResponse(employeeID, p)
	}
	return resp, nil
}

// Approve consolidates every payslip sharing the target's week: the
// newest by creation time survives as Approved, the rest are dropped.
func (s *service) Approve(ctx context.Context, req DecidePayslipRequest) (PayslipResponse, error) {
	created, err := time.Parse(time.RFC3339, req.CreatedAt)
	if err != nil {
		return PayslipResponse{}, payrollerrors.ErrInvalidCreatedAt
	}

	list, err := s.repo.ListFor(ctx, req.EmployeeID)
	if err != nil {
		return PayslipResponse{}, err
	}

	targetIdx := -1
	for i, p := range list {
		if p.CreatedAt.Equal(created) {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return PayslipResponse{}, payrollerrors.ErrPayslipNotFound
	}
	target := list[targetIdx]
	if target.Status != StatusPending {
		return PayslipResponse{}, payrollerrors.ErrPayslipNotPending
	}

	weekID := target.WeekID()
	if weekID == "" {
		list[targetIdx].Status = StatusApproved
		if err := s.repo.ReplaceFor(ctx, req.EmployeeID, list); err != nil {
			return PayslipResponse{}, err
		}
		return mapSlipToResponse(req.EmployeeID, list[targetIdx]), nil
	}

	var group, remaining []Payslip
	for _, p := range list {
		if p.SameWeek(weekID, weekID, weekID) {
			group = append(group, p)
		} else {
			remaining = append(remaining, p)
		}
	}
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].CreatedAt.After(group[j].CreatedAt)
	})

	keeper := group[0]
	keeper.Status = StatusApproved
	next := append([]Payslip{keeper}, remaining...)

	if err := s.repo.ReplaceFor(ctx, req.EmployeeID, next); err != nil {
		return PayslipResponse{}, err
	}
	s.logger.Info("approve payslip success",
		zap.String("employee_id", req.EmployeeID),
		zap.String("week_key", keeper.WeekKey),
		zap.Int("consolidated", len(group)-1),
	)
	return mapSlipToResponse(req.EmployeeID, keeper), nil
}

// Reject marks only the targeted record; duplicates are left alone.
func (s *service) Reject(ctx context.Context, req DecidePayslipRequest) (PayslipResponse, error) {
	created, err := time.Parse(time.RFC3339, req.CreatedAt)
	if err != nil {
		return PayslipResponse{}, payrollerrors.ErrInvalidCreatedAt
	}

	list, err := s.repo.ListFor(ctx, req.EmployeeID)
	if err != nil {
		return PayslipResponse{}, err
	}

	for i, p := range list {
		if !p.CreatedAt.Equal(created) {
			continue
		}
		if p.Status != StatusPending {
			return PayslipResponse{}, payrollerrors.ErrPayslipNotPending
		}
		list[i].Status = StatusRejected
		if err := s.repo.ReplaceFor(ctx, req.EmployeeID, list); err != nil {
			return PayslipResponse{}, err
		}
		s.logger.Info("reject payslip success",
			zap.String("employee_id", req.EmployeeID),
			zap.String("week_key", list[i].WeekKey),
		)
		return mapSlipToResponse(req.EmployeeID, list[i]), nil
	}
	return PayslipResponse{}, payrollerrors.ErrPayslipNotFound
}

func (s *service) PendingCount(ctx context.Context) (PendingCountResponse, error) {
	registry, err := s.employees.All(ctx)
	if err != nil {
		return PendingCountResponse{}, err
	}

	count := 0
	for _, e := range registry {
		list, err := s.repo.ListFor(ctx, e.ID)
		if err != nil {
			return PendingCountResponse{}, err
		}
		for _, p := range list {
			if p.Status == StatusPending {
				count++
			}
		}
	}
	return PendingCountResponse{Pending: count}, nil
}

func mapSlipToResponse(employeeID string, p Payslip) PayslipResponse {
	return PayslipResponse{
		EmployeeID:    employeeID,
		WeekStart:     p.WeekStart,
		WeekLabel:     p.WeekLabel,
		WeekKey:       p.WeekKey,
		Gross:         p.Gross,
		Statutory:     p.Statutory,
		LateHours:     p.LateHours,
		LateMinutes:   p.LateMinutes,
		LateDeduction: p.LateDeduction,
		Net:           p.Net,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}
