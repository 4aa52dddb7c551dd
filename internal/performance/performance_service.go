package performance

import (
	"context"
	"math"
	"sort"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"

	"go.uber.org/zap"
)

type Service interface {
	WeekMetrics(ctx context.Context, weekIndex int) (WeekMetricsResponse, error)
	EmployeeWeek(ctx context.Context, weekIndex int, employeeID string) (Row, error)
}

type service struct {
	punches   attendance.Repository
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(punches attendance.Repository, employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("performance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("performance.service")
	}
	return &service{punches: punches, employees: employees, logger: l}
}

// WeekMetrics builds the scored ranking for one week across the whole
// registry. Ranked by score descending; equal scores fall back to name
// in reverse alphabetical order.
func (s *service) WeekMetrics(ctx context.Context, weekIndex int) (WeekMetricsResponse, error) {
	registry, err := s.employees.All(ctx)
	if err != nil {
		return WeekMetricsResponse{}, err
	}
	list, err := s.punches.All(ctx)
	if err != nil {
		return WeekMetricsResponse{}, err
	}

	weeks := attendance.BuildWeeks(list)
	resp := WeekMetricsResponse{WeekIndex: weekIndex, Rows: []Row{}}
	if len(weeks) == 0 {
		for _, e := range registry {
			resp.Rows = append(resp.Rows, Row{
				EmployeeID: e.ID,
				Name:       e.Name,
				AbsentDays: attendance.ExpectedDaysPerWeek,
				Status:     StatusNoData,
			})
		}
		return resp, nil
	}

	idx := attendance.ClampWeekIndex(weeks, weekIndex)
	week := weeks[idx]
	resp.WeekIndex = idx
	resp.WeekStart = week.StartISO()
	resp.WeekLabel = week.Label()

	total := 0
	for _, e := range registry {
		row := rowFor(week, e)
		total += row.Score
		resp.Rows = append(resp.Rows, row)
	}

	sort.SliceStable(resp.Rows, func(i, j int) bool {
		if resp.Rows[i].Score != resp.Rows[j].Score {
			return resp.Rows[i].Score > resp.Rows[j].Score
		}
		return resp.Rows[i].Name > resp.Rows[j].Name
	})

	if len(resp.Rows) > 0 {
		resp.AverageScore = math.Round(float64(total)/float64(len(resp.Rows))*100) / 100
	}
	return resp, nil
}

func (s *service) EmployeeWeek(ctx context.Context, weekIndex int, employeeID string) (Row, error) {
	emp, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return Row{}, err
	}
	if emp == nil {
		return Row{}, employeeerrors.ErrEmployeeNotFound
	}

	list, err := s.punches.All(ctx)
	if err != nil {
		return Row{}, err
	}
	weeks := attendance.BuildWeeks(list)
	if len(weeks) == 0 {
		return Row{
			EmployeeID: emp.ID,
			Name:       emp.Name,
			AbsentDays: attendance.ExpectedDaysPerWeek,
			Status:     StatusNoData,
		}, nil
	}
	return rowFor(weeks[attendance.ClampWeekIndex(weeks, weekIndex)], *emp), nil
}

func rowFor(week attendance.Week, e employee.Employee) Row {
	hasPunch := false
	for _, p := range week.Punches {
		if p.EmployeeID == e.ID {
			hasPunch = true
			break
		}
	}

	present, late := attendance.PresenceForEmployee(week, e.ID)
	absent := attendance.ExpectedDaysPerWeek - present
	if absent < 0 {
		absent = 0
	}

	status := StatusNoData
	if hasPunch {
		status = Classify(present, late, absent, attendance.ExpectedDaysPerWeek)
	}

	return Row{
		EmployeeID:  e.ID,
		Name:        e.Name,
		PresentDays: present,
		LateDays:    late,
		AbsentDays:  absent,
		Status:      status,
		Score:       Score(present, late, attendance.ExpectedDaysPerWeek),
	}
}
