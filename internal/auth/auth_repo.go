package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go-payroll/internal/store"

	"go.uber.org/zap"
)

// Repository membaca peta kredensial dari blob payroll_credentials.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*Credential, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (*Credential, error)
	Invalidate(key string)
}

type repository struct {
	store  store.Store
	logger *zap.Logger

	mu     sync.RWMutex
	cache  map[string]Credential
	loaded bool
}

func NewRepository(s store.Store, logger ...*zap.Logger) Repository {
	l := zap.L().Named("auth.repo")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.repo")
	}
	return &repository{store: s, logger: l}
}

func (r *repository) load(ctx context.Context) (map[string]Credential, error) {
	r.mu.RLock()
	if r.loaded {
		creds := r.cache
		r.mu.RUnlock()
		return creds, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return r.cache, nil
	}

	creds := make(map[string]Credential)
	if err := r.store.Read(ctx, store.KeyCredentials, &creds); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		creds = make(map[string]Credential)
	}
	r.cache = creds
	r.loaded = true
	return creds, nil
}

// FindByUsername mencocokkan username atau email, tanpa memperhatikan
// besar kecil huruf.
func (r *repository) FindByUsername(ctx context.Context, username string) (*Credential, error) {
	creds, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(username))
	for id, c := range creds {
		if strings.ToLower(c.Username) == needle || (c.Email != "" && strings.ToLower(c.Email) == needle) {
			if c.EmployeeID == "" {
				c.EmployeeID = id
			}
			return &c, nil
		}
	}
	return nil, nil
}

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID string) (*Credential, error) {
	creds, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := creds[employeeID]
	if !ok {
		return nil, nil
	}
	if c.EmployeeID == "" {
		c.EmployeeID = employeeID
	}
	return &c, nil
}

func (r *repository) Invalidate(key string) {
	if key != "" && key != store.KeyCredentials {
		return
	}
	r.mu.Lock()
	r.cache = nil
	r.loaded = false
	r.mu.Unlock()
}
