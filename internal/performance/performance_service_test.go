package performance

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePunchRepo struct {
	AllFn func(ctx context.Context) ([]attendance.Punch, error)
}

func (f *fakePunchRepo) All(ctx context.Context) ([]attendance.Punch, error) {
	return f.AllFn(ctx)
}

func (f *fakePunchRepo) ReplaceAll(context.Context, []attendance.Punch) error { return nil }

func (f *fakePunchRepo) Invalidate(string) {}

type fakeEmployeeRepo struct {
	AllFn func(ctx context.Context) ([]employee.Employee, error)
	GetFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepo) All(ctx context.Context) ([]employee.Employee, error) {
	return f.AllFn(ctx)
}

func (f *fakeEmployeeRepo) Get(ctx context.Context, id string) (*employee.Employee, error) {
	return f.GetFn(ctx, id)
}

func (f *fakeEmployeeRepo) ReplaceAll(context.Context, []employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) AllArchived(context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) ReplaceArchived(context.Context, []employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) Invalidate(string) {}

func punchOn(employeeID, date string, hour, min int) attendance.Punch {
	d, _ := time.ParseInLocation("2006-01-02", date, time.Local)
	in := time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, time.Local)
	return attendance.Punch{
		AttendanceID: employeeID + "_" + date,
		EmployeeID:   employeeID,
		Date:         date,
		TimeInAt:     &in,
	}
}

func fixedRegistry(emps ...employee.Employee) *fakeEmployeeRepo {
	return &fakeEmployeeRepo{
		AllFn: func(context.Context) ([]employee.Employee, error) { return emps, nil },
		GetFn: func(_ context.Context, id string) (*employee.Employee, error) {
			for i := range emps {
				if emps[i].ID == id {
					e := emps[i]
					return &e, nil
				}
			}
			return nil, nil
		},
	}
}

func TestWeekMetricsNoHistory(t *testing.T) {
	punches := &fakePunchRepo{
		AllFn: func(context.Context) ([]attendance.Punch, error) { return nil, nil },
	}
	svc := NewService(punches, fixedRegistry(
		employee.Employee{ID: "e1", Name: "Agus"},
		employee.Employee{ID: "e2", Name: "Budi"},
	))

	resp, err := svc.WeekMetrics(context.Background(), 0)

	require.NoError(t, err)
	require.Len(t, resp.Rows, 2)
	for _, row := range resp.Rows {
		assert.Equal(t, StatusNoData, row.Status)
		assert.Equal(t, attendance.ExpectedDaysPerWeek, row.AbsentDays)
		assert.Equal(t, 0, row.Score)
	}
	assert.Equal(t, 0.0, resp.AverageScore)
}

func TestWeekMetricsRanking(t *testing.T) {
	// Citra hadir penuh tepat waktu; Budi 3 hari dengan 1 telat;
	// Dewi dan Agus tanpa punch sama sekali.
	list := []attendance.Punch{
		punchOn("c1", "2025-01-06", 8, 0),
		punchOn("c1", "2025-01-07", 8, 0),
		punchOn("c1", "2025-01-08", 8, 0),
		punchOn("c1", "2025-01-09", 8, 0),
		punchOn("c1", "2025-01-10", 8, 0),
		punchOn("c1", "2025-01-11", 8, 0),
		punchOn("b1", "2025-01-06", 8, 0),
		punchOn("b1", "2025-01-07", 9, 0),
		punchOn("b1", "2025-01-08", 8, 0),
	}
	punches := &fakePunchRepo{
		AllFn: func(context.Context) ([]attendance.Punch, error) { return list, nil },
	}
	svc := NewService(punches, fixedRegistry(
		employee.Employee{ID: "a1", Name: "Agus"},
		employee.Employee{ID: "b1", Name: "Budi"},
		employee.Employee{ID: "c1", Name: "Citra"},
		employee.Employee{ID: "d1", Name: "Dewi"},
	))

	resp, err := svc.WeekMetrics(context.Background(), 0)

	require.NoError(t, err)
	require.Len(t, resp.Rows, 4)
	assert.Equal(t, "2025-01-06", resp.WeekStart)

	assert.Equal(t, "Citra", resp.Rows[0].Name)
	assert.Equal(t, 100, resp.Rows[0].Score)
	assert.Equal(t, StatusPerfect, resp.Rows[0].Status)

	assert.Equal(t, "Budi", resp.Rows[1].Name)
	assert.Equal(t, 42, resp.Rows[1].Score)
	assert.Equal(t, 3, resp.Rows[1].PresentDays)
	assert.Equal(t, 1, resp.Rows[1].LateDays)
	assert.Equal(t, StatusPoorAttendance, resp.Rows[1].Status)

	// Skor sama: nama turun abjad, Dewi sebelum Agus
	assert.Equal(t, "Dewi", resp.Rows[2].Name)
	assert.Equal(t, "Agus", resp.Rows[3].Name)
	assert.Equal(t, StatusNoData, resp.Rows[2].Status)

	assert.Equal(t, 35.5, resp.AverageScore)
}

func TestWeekMetricsClampsIndex(t *testing.T) {
	list := []attendance.Punch{punchOn("e1", "2025-01-06", 8, 0)}
	punches := &fakePunchRepo{
		AllFn: func(context.Context) ([]attendance.Punch, error) { return list, nil },
	}
	svc := NewService(punches, fixedRegistry(employee.Employee{ID: "e1", Name: "Agus"}))

	resp, err := svc.WeekMetrics(context.Background(), 99)

	require.NoError(t, err)
	assert.Equal(t, 0, resp.WeekIndex)
	assert.Equal(t, "2025-01-06", resp.WeekStart)
}

func TestEmployeeWeek(t *testing.T) {
	list := []attendance.Punch{
		punchOn("e1", "2025-01-06", 8, 30),
		punchOn("e1", "2025-01-07", 8, 0),
	}
	punches := &fakePunchRepo{
		AllFn: func(context.Context) ([]attendance.Punch, error) { return list, nil },
	}
	svc := NewService(punches, fixedRegistry(employee.Employee{ID: "e1", Name: "Agus"}))

	row, err := svc.EmployeeWeek(context.Background(), 0, "e1")

	require.NoError(t, err)
	assert.Equal(t, 2, row.PresentDays)
	assert.Equal(t, 1, row.LateDays)
	assert.Equal(t, 4, row.AbsentDays)
	assert.Equal(t, StatusPoorAttendance, row.Status)

	_, err = svc.EmployeeWeek(context.Background(), 0, "ghost")
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}
