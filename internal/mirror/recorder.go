package mirror

import (
	"context"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"

	"go.uber.org/zap"
)

const lookupTimeout = 2 * time.Second

// Recorder menjembatani tulisan absensi ke Publisher. Lookup registry
// dilakukan di sini supaya modul absensi tidak perlu tahu angka gaji.
type Recorder struct {
	employees employee.Repository
	publisher *Publisher
	logger    *zap.Logger
	now       func() time.Time
}

var _ attendance.Mirror = (*Recorder)(nil)

func NewRecorder(employees employee.Repository, publisher *Publisher, logger ...*zap.Logger) *Recorder {
	l := zap.L().Named("mirror.recorder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("mirror.recorder")
	}
	return &Recorder{employees: employees, publisher: publisher, logger: l, now: time.Now}
}

func (r *Recorder) Record(p attendance.Punch) {
	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	emp, err := r.employees.Get(ctx, p.EmployeeID)
	if err != nil {
		// snapshot tetap dikirim dengan angka fallback
		r.logger.Warn("mirror registry lookup failed",
			zap.String("employee_id", p.EmployeeID),
			zap.Error(err),
		)
		emp = nil
	}

	r.publisher.Enqueue(BuildSnapshot(p, emp, r.now()))
}
