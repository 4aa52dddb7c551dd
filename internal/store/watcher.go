package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Watcher bridges storage-change notifications to reload callbacks.
// Writes from other contexts arrive via Store.Watch; a fixed-interval
// polling tick covers anything the notification channel missed. An
// empty key means "unknown keys may have changed, reload everything".
type Watcher struct {
	store    Store
	interval time.Duration
	logger   *zap.Logger

	mu        sync.RWMutex
	callbacks []func(key string)
}

func NewWatcher(s Store, interval time.Duration, logger ...*zap.Logger) *Watcher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	l := zap.L().Named("store.watcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("store.watcher")
	}
	return &Watcher{store: s, interval: interval, logger: l}
}

// OnChange registers a callback invoked on every detected change.
func (w *Watcher) OnChange(fn func(key string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

func (w *Watcher) notify(key string) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, fn := range w.callbacks {
		fn(key)
	}
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	changes, err := w.store.Watch(ctx)
	if err != nil {
		if errors.Is(err, ErrWatchUnsupported) {
			w.logger.Info("backend has no change channel, polling only",
				zap.Duration("interval", w.interval))
		} else {
			w.logger.Warn("watch failed, polling only", zap.Error(err))
		}
		changes = nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case key, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			w.logger.Debug("external change", zap.String("key", key))
			w.notify(key)
		case <-ticker.C:
			w.notify("")
		}
	}
}
