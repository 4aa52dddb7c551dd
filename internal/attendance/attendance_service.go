package attendance

import (
	"context"
	"fmt"
	"time"

	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/employee"

	"go.uber.org/zap"
)

// Mirror menerima punch yang baru ditulis untuk audit jarak jauh.
// Best-effort: implementasi tidak boleh blocking dan tidak pernah
// menggagalkan tulisan lokal.
type Mirror interface {
	Record(p Punch)
}

type Service interface {
	TimeIn(ctx context.Context, req PunchRequest) (PunchResponse, error)
	TimeOut(ctx context.Context, req PunchRequest) (PunchResponse, error)
	GetAll(ctx context.Context) ([]PunchResponse, error)
	GetForEmployee(ctx context.Context, employeeID string) ([]PunchResponse, error)
	Remove(ctx context.Context, attendanceID string) error
	Weeks(ctx context.Context) ([]WeekResponse, error)
	WeekHours(ctx context.Context, weekIndex int, employeeID string) (HoursSummary, error)
	WeekLates(ctx context.Context, weekIndex int) (LateTotals, error)
	Stats(ctx context.Context) (StatsResponse, error)
}

type service struct {
	repo      Repository
	employees employee.Repository
	mirror    Mirror
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(repo Repository, employees employee.Repository, mirror Mirror, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		repo:      repo,
		employees: employees,
		mirror:    mirror,
		logger:    l,
		now:       time.Now,
	}
}

func (s *service) TimeIn(ctx context.Context, req PunchRequest) (PunchResponse, error) {
	return s.punch(ctx, req, true)
}

func (s *service) TimeOut(ctx context.Context, req PunchRequest) (PunchResponse, error) {
	return s.punch(ctx, req, false)
}

// punch upserts the (employee, date) record: the first action of the
// day creates it, the matching counterpart mutates it in place.
func (s *service) punch(ctx context.Context, req PunchRequest, isIn bool) (PunchResponse, error) {
	at := s.now()
	if req.At != "" {
		parsed, err := time.Parse(time.RFC3339, req.At)
		if err != nil {
			return PunchResponse{}, attendanceerrors.ErrInvalidInstant
		}
		at = parsed.In(time.Local)
	}

	date := req.Date
	if date == "" {
		date = at.Format(dateLayout)
	} else if _, err := time.ParseInLocation(dateLayout, date, time.Local); err != nil {
		return PunchResponse{}, attendanceerrors.ErrInvalidDate
	}

	emp, err := s.employees.Get(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("punch employee lookup failed", zap.Error(err))
		return PunchResponse{}, err
	}
	if emp == nil {
		return PunchResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	list, err := s.repo.All(ctx)
	if err != nil {
		return PunchResponse{}, err
	}

	idx := -1
	for i := range list {
		if list[i].EmployeeID == req.EmployeeID && list[i].Date == date {
			idx = i
			break
		}
	}
	if idx < 0 {
		list = append(list, Punch{
			AttendanceID: fmt.Sprintf("%s_%s_%d", req.EmployeeID, date, at.UnixMilli()),
			EmployeeID:   req.EmployeeID,
			Date:         date,
		})
		idx = len(list) - 1
	}

	rec := &list[idx]
	rec.Name = emp.Name
	rec.Role = emp.Role
	if isIn {
		rec.TimeIn = FormatClock(at)
		t := at
		rec.TimeInAt = &t
	} else {
		rec.TimeOut = FormatClock(at)
		t := at
		rec.TimeOutAt = &t
	}
	rec.Recompute()
	rec.UpdatedAt = s.now().UTC()

	if err := s.repo.ReplaceAll(ctx, list); err != nil {
		s.logger.Error("punch persist failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("date", date),
			zap.Error(err),
		)
		return PunchResponse{}, err
	}

	action := "time_out"
	if isIn {
		action = "time_in"
	}
	s.logger.Info("punch recorded",
		zap.String("action", action),
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", date),
		zap.Int("late_minutes", rec.LateMinutes),
	)

	if s.mirror != nil {
		s.mirror.Record(*rec)
	}
	return mapPunchToResponse(*rec), nil
}

func (s *service) GetAll(ctx context.Context) ([]PunchResponse, error) {
	list, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	return mapPunchesToResponse(list), nil
}

func (s *service) GetForEmployee(ctx context.Context, employeeID string) ([]PunchResponse, error) {
	list, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	own := make([]Punch, 0, len(list))
	for _, p := range list {
		if p.EmployeeID == employeeID {
			own = append(own, p)
		}
	}
	return mapPunchesToResponse(own), nil
}

func (s *service) Remove(ctx context.Context, attendanceID string) error {
	list, err := s.repo.All(ctx)
	if err != nil {
		return err
	}

	kept := list[:0]
	for _, p := range list {
		if p.AttendanceID != attendanceID {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(list) {
		return attendanceerrors.ErrPunchNotFound
	}

	if err := s.repo.ReplaceAll(ctx, kept); err != nil {
		return err
	}
	s.logger.Info("punch removed", zap.String("attendance_id", attendanceID))
	return nil
}

func (s *service) Weeks(ctx context.Context) ([]WeekResponse, error) {
	list, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	weeks := BuildWeeks(list)
	resp := make([]WeekResponse, len(weeks))
	for i, w := range weeks {
		resp[i] = WeekResponse{
			Index:     i,
			WeekStart: w.StartISO(),
			Label:     w.Label(),
			Punches:   mapPunchesToResponse(w.Punches),
		}
	}
	return resp, nil
}

func (s *service) WeekHours(ctx context.Context, weekIndex int, employeeID string) (HoursSummary, error) {
	list, err := s.repo.All(ctx)
	if err != nil {
		return HoursSummary{}, err
	}
	weeks := BuildWeeks(list)
	if len(weeks) == 0 {
		return HoursSummary{}, nil
	}
	return HoursForEmployee(weeks[ClampWeekIndex(weeks, weekIndex)], employeeID), nil
}

func (s *service) WeekLates(ctx context.Context, weekIndex int) (LateTotals, error) {
	list, err := s.repo.All(ctx)
	if err != nil {
		return LateTotals{}, err
	}
	weeks := BuildWeeks(list)
	if len(weeks) == 0 {
		return LateTotals{}, nil
	}
	return TotalLatesForWeek(weeks[ClampWeekIndex(weeks, weekIndex)]), nil
}

func (s *service) Stats(ctx context.Context) (StatsResponse, error) {
	list, err := s.repo.All(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	registry, err := s.employees.All(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	ids := make([]string, len(registry))
	for i, e := range registry {
		ids[i] = e.ID
	}

	weeks := BuildWeeks(list)
	return StatsResponse{
		Lates:   AllTimeLates(list),
		Absents: AllTimeAbsents(weeks, ids),
	}, nil
}

func mapPunchToResponse(p Punch) PunchResponse {
	return PunchResponse{
		AttendanceID:   p.AttendanceID,
		EmployeeID:     p.EmployeeID,
		Name:           p.Name,
		Role:           p.Role,
		Date:           p.Date,
		TimeIn:         p.TimeIn,
		TimeOut:        p.TimeOut,
		LateMinutes:    p.LateMinutes,
		WorkedMinutes:  p.WorkedMinutes,
		PayableMinutes: p.PayableMinutes,
	}
}

func mapPunchesToResponse(list []Punch) []PunchResponse {
	resp := make([]PunchResponse, len(list))
	for i, p := range list {
		resp[i] = mapPunchToResponse(p)
	}
	return resp
}
