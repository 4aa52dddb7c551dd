package attendance

import (
	"context"
	"errors"
	"sync"

	"go-payroll/internal/store"

	"go.uber.org/zap"
)

// Repository memuat seluruh koleksi punch sebagai satu blob dan
// menyimpannya kembali utuh pada setiap perubahan. Cache memori adalah
// sumber baca otoritatif dalam proses ini.
type Repository interface {
	All(ctx context.Context) ([]Punch, error)
	ReplaceAll(ctx context.Context, punches []Punch) error
	Invalidate(key string)
}

type repository struct {
	store  store.Store
	logger *zap.Logger

	mu      sync.RWMutex
	punches []Punch
	loaded  bool
}

func NewRepository(s store.Store, logger ...*zap.Logger) Repository {
	l := zap.L().Named("attendance.repo")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.repo")
	}
	return &repository{store: s, logger: l}
}

func (r *repository) All(ctx context.Context) ([]Punch, error) {
	r.mu.RLock()
	if r.loaded {
		out := make([]Punch, len(r.punches))
		copy(out, r.punches)
		r.mu.RUnlock()
		return out, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		var list []Punch
		if err := r.store.Read(ctx, store.KeyAttendance, &list); err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return nil, err
			}
			list = nil
		}
		r.punches = list
		r.loaded = true
	}
	out := make([]Punch, len(r.punches))
	copy(out, r.punches)
	return out, nil
}

func (r *repository) ReplaceAll(ctx context.Context, punches []Punch) error {
	if punches == nil {
		punches = []Punch{}
	}
	if err := r.store.Write(ctx, store.KeyAttendance, punches); err != nil {
		return err
	}
	r.mu.Lock()
	r.punches = punches
	r.loaded = true
	r.mu.Unlock()
	return nil
}

func (r *repository) Invalidate(key string) {
	if key != "" && key != store.KeyAttendance {
		return
	}
	r.mu.Lock()
	r.punches = nil
	r.loaded = false
	r.mu.Unlock()
}
