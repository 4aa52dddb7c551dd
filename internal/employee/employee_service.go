package employee

import (
	"context"
	"math"
	"time"

	employeeerrors "go-payroll/internal/employee/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Archive(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (EmployeeResponse, error)
	GetArchived(ctx context.Context) ([]EmployeeResponse, error)
	Summary(ctx context.Context, id string) (EmployeeSummaryResponse, error)
	// RecordNet menyimpan hasil net payroll terakhir ke record karyawan.
	// Dipanggil oleh modul payroll setelah run berhasil.
	RecordNet(ctx context.Context, id string, net float64) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("create employee requested", zap.String("name", req.Name))

	if req.AnnualSalary < 0 {
		return EmployeeResponse{}, employeeerrors.ErrInvalidAnnualSalary
	}

	list, err := s.repo.All(ctx)
	if err != nil {
		s.logger.Error("create employee load failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}
	for _, e := range list {
		if e.ID == id {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeExists
		}
	}

	now := time.Now().UTC()
	e := Employee{
		ID:           id,
		Name:         req.Name,
		Role:         req.Role,
		AnnualSalary: req.AnnualSalary,
		Deductions:   mapDeductions(req.Deductions),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.ReplaceAll(ctx, append(list, e)); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.logger.Info("create employee success",
		zap.String("employee_id", e.ID),
		zap.String("name", e.Name),
	)
	return mapToResponse(e), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	list, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(list), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if e == nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if req.AnnualSalary < 0 {
		return EmployeeResponse{}, employeeerrors.ErrInvalidAnnualSalary
	}

	list, err := s.repo.All(ctx)
	if err != nil {
		return EmployeeResponse{}, err
	}

	for i := range list {
		if list[i].ID != id {
			continue
		}
		list[i].Name = req.Name
		list[i].Role = req.Role
		list[i].AnnualSalary = req.AnnualSalary
		list[i].Deductions = mapDeductions(req.Deductions)
		list[i].UpdatedAt = time.Now().UTC()

		if err := s.repo.ReplaceAll(ctx, list); err != nil {
			s.logger.Error("update employee persist failed",
				zap.String("employee_id", id),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
		s.logger.Info("update employee success", zap.String("employee_id", id))
		return mapToResponse(list[i]), nil
	}
	return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
}

// Archive memindahkan karyawan dari registry aktif ke arsip. Data punch
// dan payslip lama tetap di tempatnya.
func (s *service) Archive(ctx context.Context, id string) error {
	list, err := s.repo.All(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range list {
		if list[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return employeeerrors.ErrEmployeeNotFound
	}

	archived, err := s.repo.AllArchived(ctx)
	if err != nil {
		return err
	}

	moved := list[idx]
	moved.UpdatedAt = time.Now().UTC()
	if err := s.repo.ReplaceArchived(ctx, append(archived, moved)); err != nil {
		return err
	}
	if err := s.repo.ReplaceAll(ctx, append(list[:idx], list[idx+1:]...)); err != nil {
		return err
	}
	s.logger.Info("archive employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) Restore(ctx context.Context, id string) (EmployeeResponse, error) {
	archived, err := s.repo.AllArchived(ctx)
	if err != nil {
		return EmployeeResponse{}, err
	}

	idx := -1
	for i := range archived {
		if archived[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotArchived
	}

	list, err := s.repo.All(ctx)
	if err != nil {
		return EmployeeResponse{}, err
	}

	restored := archived[idx]
	restored.UpdatedAt = time.Now().UTC()
	if err := s.repo.ReplaceAll(ctx, append(list, restored)); err != nil {
		return EmployeeResponse{}, err
	}
	if err := s.repo.ReplaceArchived(ctx, append(archived[:idx], archived[idx+1:]...)); err != nil {
		return EmployeeResponse{}, err
	}
	s.logger.Info("restore employee success", zap.String("employee_id", id))
	return mapToResponse(restored), nil
}

func (s *service) GetArchived(ctx context.Context) ([]EmployeeResponse, error) {
	archived, err := s.repo.AllArchived(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(archived), nil
}

func (s *service) Summary(ctx context.Context, id string) (EmployeeSummaryResponse, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return EmployeeSummaryResponse{}, err
	}
	if e == nil {
		return EmployeeSummaryResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	weekly := e.WeeklySalary()
	statutory := e.StatutoryTotal()
	estimated := math.Round((weekly-statutory)*100) / 100
	if estimated < 0 {
		estimated = 0
	}

	return EmployeeSummaryResponse{
		ID:                 e.ID,
		Name:               e.Name,
		Role:               e.Role,
		AnnualSalary:       e.AnnualSalary,
		WeeklySalary:       weekly,
		Deductions:         e.EffectiveDeductions(),
		StatutoryTotal:     statutory,
		EstimatedWeeklyNet: estimated,
		LastNet:            e.LastNet,
	}, nil
}

func (s *service) RecordNet(ctx context.Context, id string, net float64) error {
	list, err := s.repo.All(ctx)
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID != id {
			continue
		}
		list[i].LastNet = net
		list[i].UpdatedAt = time.Now().UTC()
		return s.repo.ReplaceAll(ctx, list)
	}
	return employeeerrors.ErrEmployeeNotFound
}

func mapDeductions(p *DeductionsPayload) *Deductions {
	if p == nil {
		return nil
	}
	return &Deductions{
		SSS:        p.SSS,
		Philhealth: p.Philhealth,
		Pagibig:    p.Pagibig,
	}
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           e.ID,
		Name:         e.Name,
		Role:         e.Role,
		AnnualSalary: e.AnnualSalary,
		Deductions:   e.Deductions,
		LastNet:      e.LastNet,
	}
	if !e.CreatedAt.IsZero() {
		resp.CreatedAt = e.CreatedAt.Format(time.RFC3339)
	}
	if !e.UpdatedAt.IsZero() {
		resp.UpdatedAt = e.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(list []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(list))
	for i, e := range list {
		resp[i] = mapToResponse(e)
	}
	return resp
}
