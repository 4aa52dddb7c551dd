package payroll

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go-payroll/internal/store"

	"go.uber.org/zap"
)

// Repository menyimpan daftar payslip per karyawan, satu blob per
// karyawan, dibaca malas dan di-cache per kunci.
type Repository interface {
	ListFor(ctx context.Context, employeeID string) ([]Payslip, error)
	ReplaceFor(ctx context.Context, employeeID string, list []Payslip) error
	Invalidate(key string)
}

type repository struct {
	store  store.Store
	logger *zap.Logger

	mu    sync.RWMutex
	cache map[string][]Payslip
}

func NewRepository(s store.Store, logger ...*zap.Logger) Repository {
	l := zap.L().Named("payroll.repo")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.repo")
	}
	return &repository{store: s, logger: l, cache: make(map[string][]Payslip)}
}

func (r *repository) ListFor(ctx context.Context, employeeID string) ([]Payslip, error) {
	r.mu.RLock()
	if cached, ok := r.cache[employeeID]; ok {
		out := make([]Payslip, len(cached))
		copy(out, cached)
		r.mu.RUnlock()
		return out, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.cache[employeeID]; ok {
		out := make([]Payslip, len(cached))
		copy(out, cached)
		return out, nil
	}

	var list []Payslip
	if err := r.store.Read(ctx, store.PayslipKey(employeeID), &list); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		list = []Payslip{}
	}
	r.cache[employeeID] = list

	out := make([]Payslip, len(list))
	copy(out, list)
	return out, nil
}

func (r *repository) ReplaceFor(ctx context.Context, employeeID string, list []Payslip) error {
	if list == nil {
		list = []Payslip{}
	}
	if err := r.store.Write(ctx, store.PayslipKey(employeeID), list); err != nil {
		return err
	}
	r.mu.Lock()
	r.cache[employeeID] = list
	r.mu.Unlock()
	return nil
}

func (r *repository) Invalidate(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if key == "" {
		r.cache = make(map[string][]Payslip)
		return
	}
	if id, ok := strings.CutPrefix(key, "employee_payslips_"); ok {
		delete(r.cache, id)
	}
}
