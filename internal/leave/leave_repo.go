package leave

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go-payroll/internal/store"

	"go.uber.org/zap"
)

// Repository menyimpan daftar request per karyawan, satu blob per
// karyawan, dibaca malas dan di-cache per kunci.
type Repository interface {
	ListFor(ctx context.Context, employeeID string) ([]Request, error)
	ReplaceFor(ctx context.Context, employeeID string, list []Request) error
	Invalidate(key string)
}

type repository struct {
	store  store.Store
	logger *zap.Logger

	mu    sync.RWMutex
	cache map[string][]Request
}

func NewRepository(s store.Store, logger ...*zap.Logger) Repository {
	l := zap.L().Named("leave.repo")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.repo")
	}
	return &repository{store: s, logger: l, cache: make(map[string][]Request)}
}

func (r *repository) ListFor(ctx context.Context, employeeID string) ([]Request, error) {
	r.mu.RLock()
	if cached, ok := r.cache[employeeID]; ok {
		out := make([]Request, len(cached))
		copy(out, cached)
		r.mu.RUnlock()
		return out, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.cache[employeeID]; ok {
		out := make([]Request, len(cached))
		copy(out, cached)
		return out, nil
	}

	var list []Request
	if err := r.store.Read(ctx, store.RequestKey(employeeID), &list); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		list = []Request{}
	}
	r.cache[employeeID] = list

	out := make([]Request, len(list))
	copy(out, list)
	return out, nil
}

func (r *repository) ReplaceFor(ctx context.Context, employeeID string, list []Request) error {
	if list == nil {
		list = []Request{}
	}
	if err := r.store.Write(ctx, store.RequestKey(employeeID), list); err != nil {
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
		r.cache = make(map[string][]Request)
		return
	}
	if id, ok := strings.CutPrefix(key, "employee_requests_"); ok {
		delete(r.cache, id)
	}
}
