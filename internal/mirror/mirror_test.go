package mirror

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/payroll"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePunch() attendance.Punch {
	in := time.Date(2025, 1, 6, 8, 37, 0, 0, time.Local)
	out := time.Date(2025, 1, 6, 17, 0, 0, 0, time.Local)
	p := attendance.Punch{
		AttendanceID: "e1_2025-01-06_1",
		EmployeeID:   "e1",
		Name:         "Budi",
		Date:         "2025-01-06",
		TimeIn:       attendance.FormatClock(in),
		TimeOut:      attendance.FormatClock(out),
		TimeInAt:     &in,
		TimeOutAt:    &out,
	}
	p.Recompute()
	return p
}

func TestBuildSnapshotFallback(t *testing.T) {
	p := samplePunch()
	now := time.Date(2025, 1, 6, 17, 1, 0, 0, time.UTC)

	ev := BuildSnapshot(p, nil, now)

	assert.Equal(t, payroll.FallbackWeeklySalary, ev.WeeklySalary)
	assert.Equal(t, 750.0, ev.StatutoryTotal)
	assert.Equal(t, 37, ev.LateMinutes)
	assert.Equal(t, payroll.CalculateLateDeduction(payroll.FallbackWeeklySalary, 0, 37), ev.LateDeduction)
	assert.Equal(t, "api_local", ev.Source)
	assert.Equal(t, now, ev.OccurredAt)
	assert.NotEmpty(t, ev.TimeInISO)
	assert.NotEmpty(t, ev.TimeOutISO)
}

func TestBuildSnapshotWithEmployee(t *testing.T) {
	p := samplePunch()
	emp := &employee.Employee{
		ID:           "e1",
		AnnualSalary: 52000,
		Deductions:   &employee.Deductions{SSS: 400},
	}

	ev := BuildSnapshot(p, emp, time.Now())

	assert.Equal(t, 1000.0, ev.WeeklySalary)
	assert.Equal(t, 400.0, ev.SSS)
	assert.Equal(t, 250.0, ev.Philhealth)
	assert.Equal(t, 850.0, ev.StatutoryTotal)
	lateDed := payroll.CalculateLateDeduction(1000, 0, 37)
	assert.Equal(t, lateDed, ev.LateDeduction)
	assert.Equal(t, payroll.Round2(1000-850-lateDed), ev.NetWeek)
}

type fakeWriter struct {
	messages chan kafkago.Message
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		f.messages <- m
	}
	return nil
}

func TestPublisherPublishes(t *testing.T) {
	writer := &fakeWriter{messages: make(chan kafkago.Message, 1)}
	pub := NewPublisher(writer, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go pub.Run(ctx)

	pub.Enqueue(BuildSnapshot(samplePunch(), nil, time.Now()))

	select {
	case msg := <-writer.messages:
		assert.Equal(t, events.AttendanceMirrorTopic, msg.Topic)
		assert.Equal(t, []byte("e1"), msg.Key)
		var ev events.AttendanceSnapshotEvent
		require.NoError(t, json.Unmarshal(msg.Value, &ev))
		assert.Equal(t, "e1_2025-01-06_1", ev.AttendanceID)
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot never published")
	}
}

func TestEnqueueDropsWhenFull(t *testing.T) {
	// Tanpa goroutine Run: antrian kapasitas 1 penuh setelah satu event
	pub := NewPublisher(&fakeWriter{}, 1)

	pub.Enqueue(events.AttendanceSnapshotEvent{AttendanceID: "a"})
	pub.Enqueue(events.AttendanceSnapshotEvent{AttendanceID: "b"})

	assert.Len(t, pub.queue, 1)
	ev := <-pub.queue
	assert.Equal(t, "a", ev.AttendanceID)
}

type fakeEmployeeRepo struct {
	emp *employee.Employee
}

func (f *fakeEmployeeRepo) All(context.Context) ([]employee.Employee, error) { return nil, nil }

func (f *fakeEmployeeRepo) Get(context.Context, string) (*employee.Employee, error) {
	return f.emp, nil
}

func (f *fakeEmployeeRepo) ReplaceAll(context.Context, []employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) AllArchived(context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) ReplaceArchived(context.Context, []employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) Invalidate(string) {}

func TestRecorderEnqueuesSnapshot(t *testing.T) {
	pub := NewPublisher(&fakeWriter{}, 4)
	rec := NewRecorder(&fakeEmployeeRepo{emp: &employee.Employee{ID: "e1", AnnualSalary: 52000}}, pub)

	rec.Record(samplePunch())

	require.Len(t, pub.queue, 1)
	ev := <-pub.queue
	assert.Equal(t, 1000.0, ev.WeeklySalary)
	assert.Equal(t, "e1", ev.EmployeeID)
}
