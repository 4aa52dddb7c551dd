package payroll

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPayslipRepo struct {
	slips map[string][]Payslip
}

func newMemPayslipRepo() *memPayslipRepo {
	return &memPayslipRepo{slips: make(map[string][]Payslip)}
}

func (m *memPayslipRepo) ListFor(_ context.Context, employeeID string) ([]Payslip, error) {
	out := make([]Payslip, len(m.slips[employeeID]))
	copy(out, m.slips[employeeID])
	return out, nil
}

func (m *memPayslipRepo) ReplaceFor(_ context.Context, employeeID string, list []Payslip) error {
	m.slips[employeeID] = list
	return nil
}

func (m *memPayslipRepo) Invalidate(string) {}

type memEmployeeRepo struct {
	list []employee.Employee
}

func (m *memEmployeeRepo) All(context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, len(m.list))
	copy(out, m.list)
	return out, nil
}

func (m *memEmployeeRepo) Get(_ context.Context, id string) (*employee.Employee, error) {
	for i := range m.list {
		if m.list[i].ID == id {
			e := m.list[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (m *memEmployeeRepo) ReplaceAll(_ context.Context, list []employee.Employee) error {
	m.list = list
	return nil
}

func (m *memEmployeeRepo) AllArchived(context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (m *memEmployeeRepo) ReplaceArchived(context.Context, []employee.Employee) error { return nil }

func (m *memEmployeeRepo) Invalidate(string) {}

type fakePunchRepo struct {
	list []attendance.Punch
}

func (f *fakePunchRepo) All(context.Context) ([]attendance.Punch, error) {
	return f.list, nil
}

func (f *fakePunchRepo) ReplaceAll(context.Context, []attendance.Punch) error { return nil }

func (f *fakePunchRepo) Invalidate(string) {}

func mkPunch(employeeID, date string, inH, inM, outH, outM int) attendance.Punch {
	d, _ := time.ParseInLocation("2006-01-02", date, time.Local)
	in := time.Date(d.Year(), d.Month(), d.Day(), inH, inM, 0, 0, time.Local)
	out := time.Date(d.Year(), d.Month(), d.Day(), outH, outM, 0, 0, time.Local)
	return attendance.Punch{
		AttendanceID: employeeID + "_" + date,
		EmployeeID:   employeeID,
		Date:         date,
		TimeInAt:     &in,
		TimeOutAt:    &out,
	}
}

// newFixture: satu karyawan bergaji 52000/tahun (1000/minggu, statutory
// 750) dengan dua punch di minggu 6 Jan 2025: Senin tepat waktu penuh,
// Selasa telat satu jam.
func newFixture() (Service, *memPayslipRepo, *memEmployeeRepo) {
	repo := newMemPayslipRepo()
	emps := &memEmployeeRepo{list: []employee.Employee{
		{ID: "e1", Name: "Budi", AnnualSalary: 52000},
	}}
	punches := &fakePunchRepo{list: []attendance.Punch{
		mkPunch("e1", "2025-01-06", 8, 0, 17, 0),
		mkPunch("e1", "2025-01-07", 9, 0, 17, 0),
	}}
	svc := NewService(repo, punches, emps, employee.NewService(emps))
	return svc, repo, emps
}

func TestPreviewComputesWeek(t *testing.T) {
	svc, _, _ := newFixture()

	resp, err := svc.Preview(context.Background(), "e1", 0, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "2025-01-06", resp.WeekStart)
	assert.Equal(t, 2, resp.Days)
	assert.Equal(t, 15.0, resp.PayableHours)
	assert.Equal(t, 956.25, resp.Gross)
	assert.Equal(t, 750.0, resp.Statutory)
	assert.Equal(t, 1, resp.LateHours)
	assert.Equal(t, 0, resp.LateMinutes)
	assert.Equal(t, 20.83, resp.LateDeduction)
	assert.Equal(t, 185.42, resp.Net)
	assert.False(t, resp.WeekHasApproved)
}

func TestPreviewUnknownEmployee(t *testing.T) {
	svc, _, _ := newFixture()

	_, err := svc.Preview(context.Background(), "ghost", 0, nil, nil)

	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestRunPrependsPendingAndRecordsNet(t *testing.T) {
	svc, repo, emps := newFixture()

	resp, err := svc.Run(context.Background(), RunPayrollRequest{EmployeeID: "e1"})

	require.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, "2025-01-06", resp.WeekKey)
	assert.Equal(t, 185.42, resp.Net)
	require.Len(t, repo.slips["e1"], 1)

	// LastNet dibulatkan ke satuan terdekat
	assert.Equal(t, 185.0, emps.list[0].LastNet)
}

func TestRunOverwritesNonApprovedSameWeek(t *testing.T) {
	svc, repo, _ := newFixture()
	repo.slips["e1"] = []Payslip{
		{WeekKey: "2025-01-06", Status: StatusRejected, Net: 1, CreatedAt: time.Now().Add(-time.Hour)},
		{WeekKey: "2024-12-30", Status: StatusApproved, Net: 2, CreatedAt: time.Now().Add(-200 * time.Hour)},
	}

	resp, err := svc.Run(context.Background(), RunPayrollRequest{EmployeeID: "e1"})

	require.NoError(t, err)
	require.Len(t, repo.slips["e1"], 2)
	assert.Equal(t, StatusPending, repo.slips["e1"][0].Status)
	assert.Equal(t, resp.Net, repo.slips["e1"][0].Net)
	// Slip minggu lain tidak tersentuh
	assert.Equal(t, "2024-12-30", repo.slips["e1"][1].WeekKey)
}

func TestRunRefusedWhenWeekApproved(t *testing.T) {
	svc, repo, _ := newFixture()
	repo.slips["e1"] = []Payslip{
		{WeekKey: "2025-01-06", Status: StatusApproved, CreatedAt: time.Now()},
	}

	_, err := svc.Run(context.Background(), RunPayrollRequest{EmployeeID: "e1"})

	assert.ErrorIs(t, err, payrollerrors.ErrWeekAlreadyApproved)
	require.Len(t, repo.slips["e1"], 1)
	assert.Equal(t, StatusApproved, repo.slips["e1"][0].Status)
}

func TestRunManualLateOverride(t *testing.T) {
	svc, _, _ := newFixture()
	zero := 0
	thirty := 30

	resp, err := svc.Run(context.Background(), RunPayrollRequest{
		EmployeeID:  "e1",
		LateHours:   &zero,
		LateMinutes: &thirty,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.LateHours)
	assert.Equal(t, 30, resp.LateMinutes)
	assert.Equal(t, CalculateLateDeduction(1000, 0, 30), resp.LateDeduction)
}

func TestRunWithoutAttendanceUsesSyntheticWeekKey(t *testing.T) {
	repo := newMemPayslipRepo()
	emps := &memEmployeeRepo{list: []employee.Employee{{ID: "e1", AnnualSalary: 52000}}}
	svc := NewService(repo, &fakePunchRepo{}, emps, employee.NewService(emps))

	resp, err := svc.Run(context.Background(), RunPayrollRequest{EmployeeID: "e1", WeekIndex: 2})

	require.NoError(t, err)
	assert.Equal(t, SyntheticWeekKey(2), resp.WeekKey)
	assert.Equal(t, 0.0, resp.Gross)
	assert.Equal(t, 0.0, resp.Net)
}

func TestApproveConsolidatesDuplicates(t *testing.T) {
	svc, repo, _ := newFixture()
	older := time.Date(2025, 1, 12, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 1, 12, 11, 0, 0, 0, time.UTC)
	other := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	repo.slips["e1"] = []Payslip{
		{WeekKey: "2025-01-06", Status: StatusPending, Net: 100, CreatedAt: older},
		{WeekKey: "2025-01-06", Status: StatusPending, Net: 200, CreatedAt: newer},
		{WeekKey: "2024-12-30", Status: StatusApproved, Net: 300, CreatedAt: other},
	}

	resp, err := svc.Approve(context.Background(), DecidePayslipRequest{
		EmployeeID: "e1",
		CreatedAt:  older.Format(time.RFC3339),
	})

	require.NoError(t, err)
	// Yang bertahan adalah slip terbaru di minggu itu
	assert.Equal(t, StatusApproved, resp.Status)
	assert.Equal(t, 200.0, resp.Net)

	saved := repo.slips["e1"]
	require.Len(t, saved, 2)
	assert.Equal(t, newer, saved[0].CreatedAt)
	assert.Equal(t, StatusApproved, saved[0].Status)
	assert.Equal(t, "2024-12-30", saved[1].WeekKey)
}

func TestApproveRefusesDecidedOrMissing(t *testing.T) {
	svc, repo, _ := newFixture()
	created := time.Date(2025, 1, 12, 10, 0, 0, 0, time.UTC)
	repo.slips["e1"] = []Payslip{
		{WeekKey: "2025-01-06", Status: StatusApproved, CreatedAt: created},
	}

	_, err := svc.Approve(context.Background(), DecidePayslipRequest{
		EmployeeID: "e1",
		CreatedAt:  created.Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, payrollerrors.ErrPayslipNotPending)

	_, err = svc.Approve(context.Background(), DecidePayslipRequest{
		EmployeeID: "e1",
		CreatedAt:  created.Add(time.Hour).Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, payrollerrors.ErrPayslipNotFound)

	_, err = svc.Approve(context.Background(), DecidePayslipRequest{
		EmployeeID: "e1",
		CreatedAt:  "kemarin sore",
	})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidCreatedAt)
}

func TestRejectMarksOnlyTarget(t *testing.T) {
	svc, repo, _ := newFixture()
	first := time.Date(2025, 1, 12, 10, 0, 0, 0, time.UTC)
	second := time.Date(2025, 1, 12, 11, 0, 0, 0, time.UTC)
	repo.slips["e1"] = []Payslip{
		{WeekKey: "2025-01-06", Status: StatusPending, CreatedAt: first},
		{WeekKey: "2025-01-06", Status: StatusPending, CreatedAt: second},
	}

	resp, err := svc.Reject(context.Background(), DecidePayslipRequest{
		EmployeeID: "e1",
		CreatedAt:  first.Format(time.RFC3339),
	})

	require.NoError(t, err)
	assert.Equal(t, StatusRejected, resp.Status)

	saved := repo.slips["e1"]
	require.Len(t, saved, 2)
	assert.Equal(t, StatusRejected, saved[0].Status)
	assert.Equal(t, StatusPending, saved[1].Status)
}

func TestPendingCount(t *testing.T) {
	repo := newMemPayslipRepo()
	emps := &memEmployeeRepo{list: []employee.Employee{{ID: "e1"}, {ID: "e2"}}}
	svc := NewService(repo, &fakePunchRepo{}, emps, employee.NewService(emps))
	repo.slips["e1"] = []Payslip{
		{WeekKey: "a", Status: StatusPending},
		{WeekKey: "b", Status: StatusApproved},
	}
	repo.slips["e2"] = []Payslip{
		{WeekKey: "a", Status: StatusPending},
	}

	resp, err := svc.PendingCount(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Pending)
}
