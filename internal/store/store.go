package store

import (
	"context"
	"errors"
)

// Known collection keys. Per-employee collections are parameterized by id.
const (
	KeyEmployees   = "payroll_employees"
	KeyArchive     = "payroll_archive"
	KeyAttendance  = "payroll_attendance"
	KeyCredentials = "payroll_credentials"

	payslipKeyPrefix = "employee_payslips_"
	requestKeyPrefix = "employee_requests_"
)

func PayslipKey(employeeID string) string {
	return payslipKeyPrefix + employeeID
}

func RequestKey(employeeID string) string {
	return requestKeyPrefix + employeeID
}

var (
	// ErrNotFound is returned when a key has no blob. Corrupt blobs are
	// also reported as ErrNotFound (after logging) so callers always
	// degrade to an empty collection.
	ErrNotFound = errors.New("store: key not found")

	// ErrWatchUnsupported is returned by backends without a
	// change-notification channel; the watcher falls back to polling.
	ErrWatchUnsupported = errors.New("store: watch not supported")
)

// Store persists whole collections as JSON blobs under a key.
// Collections are always read and written wholesale; there are no
// partial updates.
type Store interface {
	Read(ctx context.Context, key string, out any) error
	Write(ctx context.Context, key string, value any) error
	// Watch emits keys written by other contexts sharing the same
	// backing store. Backends without pub/sub return ErrWatchUnsupported.
	Watch(ctx context.Context) (<-chan string, error)
}
