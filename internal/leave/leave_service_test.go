package leave

import (
	"context"
	"testing"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	employeeerrors "go-payroll/internal/employee/errors"
	leaveerrors "go-payroll/internal/leave/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRequestRepo struct {
	requests map[string][]Request
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{requests: make(map[string][]Request)}
}

func (m *memRequestRepo) ListFor(_ context.Context, employeeID string) ([]Request, error) {
	out := make([]Request, len(m.requests[employeeID]))
	copy(out, m.requests[employeeID])
	return out, nil
}

func (m *memRequestRepo) ReplaceFor(_ context.Context, employeeID string, list []Request) error {
	m.requests[employeeID] = list
	return nil
}

func (m *memRequestRepo) Invalidate(string) {}

type fakeEmployeeRepo struct {
	list []employee.Employee
}

func (f *fakeEmployeeRepo) All(context.Context) ([]employee.Employee, error) {
	return f.list, nil
}

func (f *fakeEmployeeRepo) Get(_ context.Context, id string) (*employee.Employee, error) {
	for i := range f.list {
		if f.list[i].ID == id {
			e := f.list[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeEmployeeRepo) ReplaceAll(context.Context, []employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) AllArchived(context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) ReplaceArchived(context.Context, []employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) Invalidate(string) {}

type fakePunchRepo struct {
	list []attendance.Punch
}

func (f *fakePunchRepo) All(context.Context) ([]attendance.Punch, error) {
	return f.list, nil
}

func (f *fakePunchRepo) ReplaceAll(context.Context, []attendance.Punch) error { return nil }

func (f *fakePunchRepo) Invalidate(string) {}

func newLeaveFixture() (Service, *memRequestRepo) {
	repo := newMemRequestRepo()
	emps := &fakeEmployeeRepo{list: []employee.Employee{
		{ID: "e1", Name: "Budi"},
		{ID: "e2", Name: "Citra"},
	}}
	svc := NewService(repo, emps, &fakePunchRepo{})
	return svc, repo
}

func TestCreateRequestDefaults(t *testing.T) {
	svc, repo := newLeaveFixture()

	resp, err := svc.Create(context.Background(), "e1", CreateRequestRequest{
		DateFrom: "2025-01-08",
		DateTo:   "2025-01-09",
		Message:  "  acara keluarga  ",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Leave Request", resp.Subject)
	assert.Equal(t, "Leave", resp.Type)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, "acara keluarga", resp.Message)
	require.Len(t, repo.requests["e1"], 1)
}

func TestCreateRequestPrependsNewest(t *testing.T) {
	svc, repo := newLeaveFixture()
	repo.requests["e1"] = []Request{{ID: "lama", Status: StatusApproved}}

	resp, err := svc.Create(context.Background(), "e1", CreateRequestRequest{
		DateFrom: "2025-01-08",
		DateTo:   "2025-01-08",
	})

	require.NoError(t, err)
	require.Len(t, repo.requests["e1"], 2)
	assert.Equal(t, resp.ID, repo.requests["e1"][0].ID)
	assert.Equal(t, "lama", repo.requests["e1"][1].ID)
}

func TestCreateRequestValidation(t *testing.T) {
	svc, _ := newLeaveFixture()

	_, err := svc.Create(context.Background(), "e1", CreateRequestRequest{
		DateFrom: "08-01-2025",
		DateTo:   "2025-01-09",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)

	_, err = svc.Create(context.Background(), "e1", CreateRequestRequest{
		DateFrom: "2025-01-10",
		DateTo:   "2025-01-09",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)

	_, err = svc.Create(context.Background(), "ghost", CreateRequestRequest{
		DateFrom: "2025-01-08",
		DateTo:   "2025-01-09",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestCancelRequest(t *testing.T) {
	svc, repo := newLeaveFixture()
	repo.requests["e1"] = []Request{{ID: "r1", Status: StatusPending}}

	resp, err := svc.Cancel(context.Background(), "e1", "r1")

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, resp.Status)

	// Sudah diputuskan: tidak bisa dibatalkan lagi
	_, err = svc.Cancel(context.Background(), "e1", "r1")
	assert.ErrorIs(t, err, leaveerrors.ErrRequestNotPending)

	_, err = svc.Cancel(context.Background(), "e1", "tidak-ada")
	assert.ErrorIs(t, err, leaveerrors.ErrRequestNotFound)
}

func TestDecideRequest(t *testing.T) {
	svc, repo := newLeaveFixture()
	repo.requests["e1"] = []Request{{ID: "r1", Status: StatusPending}}
	comment := "  silakan  "

	resp, err := svc.Approve(context.Background(), DecideRequestRequest{
		EmployeeID:   "e1",
		RequestID:    "r1",
		AdminComment: &comment,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.Equal(t, "Budi", resp.OwnerName)
	require.NotNil(t, resp.AdminComment)
	assert.Equal(t, "silakan", *resp.AdminComment)
	assert.NotNil(t, resp.ProcessedAt)

	_, err = svc.Reject(context.Background(), DecideRequestRequest{
		EmployeeID: "e1",
		RequestID:  "r1",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrRequestNotPending)
}

func TestListAllAggregatesOwners(t *testing.T) {
	svc, repo := newLeaveFixture()
	repo.requests["e1"] = []Request{{ID: "r1", Status: StatusPending}}
	repo.requests["e2"] = []Request{{ID: "r2", Status: StatusApproved}}

	resp, err := svc.ListAll(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "Budi", resp[0].OwnerName)
	assert.Equal(t, "Citra", resp[1].OwnerName)
}

func TestListAllWeekFilter(t *testing.T) {
	repo := newMemRequestRepo()
	emps := &fakeEmployeeRepo{list: []employee.Employee{{ID: "e1", Name: "Budi"}}}
	in := time.Date(2025, 1, 6, 8, 0, 0, 0, time.Local)
	punches := &fakePunchRepo{list: []attendance.Punch{{
		AttendanceID: "e1_2025-01-06",
		EmployeeID:   "e1",
		Date:         "2025-01-06",
		TimeInAt:     &in,
	}}}
	svc := NewService(repo, emps, punches)

	repo.requests["e1"] = []Request{
		{ID: "dalam", DateFrom: "2025-01-08", DateTo: "2025-01-09", Status: StatusPending},
		{ID: "menjorok", DateFrom: "2025-01-11", DateTo: "2025-01-15", Status: StatusPending},
		{ID: "luar", DateFrom: "2025-02-01", DateTo: "2025-02-02", Status: StatusPending},
		{ID: "rusak", DateFrom: "bukan tanggal", DateTo: "2025-01-08", Status: StatusPending},
	}

	week := 0
	resp, err := svc.ListAll(context.Background(), &week)

	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "dalam", resp[0].ID)
	assert.Equal(t, "menjorok", resp[1].ID)
}

func TestLeavePendingCount(t *testing.T) {
	svc, repo := newLeaveFixture()
	repo.requests["e1"] = []Request{
		{ID: "r1", Status: StatusPending},
		{ID: "r2", Status: StatusRejected},
	}
	repo.requests["e2"] = []Request{{ID: "r3", Status: StatusPending}}

	resp, err := svc.PendingCount(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Pending)
}
