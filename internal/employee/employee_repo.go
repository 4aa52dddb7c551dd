package employee

import (
	"context"
	"errors"
	"sync"

	"go-payroll/internal/store"

	"go.uber.org/zap"
)

// Repository membaca dan menulis registry karyawan sebagai satu blob
// utuh. Hasil baca di-cache di memori; tulisan lokal langsung lewat
// (write-through) dan perubahan dari konteks lain masuk via Invalidate.
type Repository interface {
	All(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, id string) (*Employee, error)
	ReplaceAll(ctx context.Context, list []Employee) error
	AllArchived(ctx context.Context) ([]Employee, error)
	ReplaceArchived(ctx context.Context, list []Employee) error
	Invalidate(key string)
}

type repository struct {
	store  store.Store
	logger *zap.Logger

	mu             sync.RWMutex
	active         []Employee
	archived       []Employee
	loaded         bool
	archivedLoaded bool
}

func NewRepository(s store.Store, logger ...*zap.Logger) Repository {
	l := zap.L().Named("employee.repo")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.repo")
	}
	return &repository{store: s, logger: l}
}

func (r *repository) All(ctx context.Context) ([]Employee, error) {
	r.mu.RLock()
	if r.loaded {
		out := make([]Employee, len(r.active))
		copy(out, r.active)
		r.mu.RUnlock()
		return out, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		var list []Employee
		if err := r.store.Read(ctx, store.KeyEmployees, &list); err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return nil, err
			}
			list = nil
		}
		r.active = list
		r.loaded = true
	}
	out := make([]Employee, len(r.active))
	copy(out, r.active)
	return out, nil
}

func (r *repository) Get(ctx context.Context, id string) (*Employee, error) {
	list, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			e := list[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (r *repository) ReplaceAll(ctx context.Context, list []Employee) error {
	if list == nil {
		list = []Employee{}
	}
	if err := r.store.Write(ctx, store.KeyEmployees, list); err != nil {
		return err
	}
	r.mu.Lock()
	r.active = list
	r.loaded = true
	r.mu.Unlock()
	return nil
}

func (r *repository) AllArchived(ctx context.Context) ([]Employee, error) {
	r.mu.RLock()
	if r.archivedLoaded {
		out := make([]Employee, len(r.archived))
		copy(out, r.archived)
		r.mu.RUnlock()
		return out, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.archivedLoaded {
		var list []Employee
		if err := r.store.Read(ctx, store.KeyArchive, &list); err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return nil, err
			}
			list = nil
		}
		r.archived = list
		r.archivedLoaded = true
	}
	out := make([]Employee, len(r.archived))
	copy(out, r.archived)
	return out, nil
}

func (r *repository) ReplaceArchived(ctx context.Context, list []Employee) error {
	if list == nil {
		list = []Employee{}
	}
	if err := r.store.Write(ctx, store.KeyArchive, list); err != nil {
		return err
	}
	r.mu.Lock()
	r.archived = list
	r.archivedLoaded = true
	r.mu.Unlock()
	return nil
}

// Invalidate drops the cache for the changed key; an empty key drops
// everything. Wired to the store watcher.
func (r *repository) Invalidate(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch key {
	case store.KeyEmployees:
		r.loaded = false
		r.active = nil
	case store.KeyArchive:
		r.archivedLoaded = false
		r.archived = nil
	case "":
		r.loaded = false
		r.active = nil
		r.archivedLoaded = false
		r.archived = nil
	}
}
