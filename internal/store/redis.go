package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// changeChannel is the pub/sub channel other contexts listen on for
// storage-change notifications.
const changeChannel = "payroll:storage:changed"

type redisStore struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRedisStore(rdb *redis.Client, logger ...*zap.Logger) Store {
	l := zap.L().Named("store.redis")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("store.redis")
	}
	return &redisStore{rdb: rdb, logger: l}
}

func (s *redisStore) Read(ctx context.Context, key string, out any) error {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// blob korup diperlakukan sebagai koleksi kosong
		s.logger.Warn("corrupt blob, treating as empty",
			zap.String("key", key),
			zap.Error(err),
		)
		return ErrNotFound
	}
	return nil
}

func (s *redisStore) Write(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, key, raw, 0).Err(); err != nil {
		return err
	}
	// best-effort notify other open contexts; local write already won
	if err := s.rdb.Publish(ctx, changeChannel, key).Err(); err != nil {
		s.logger.Debug("change notify failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}

func (s *redisStore) Watch(ctx context.Context) (<-chan string, error) {
	sub := s.rdb.Subscribe(ctx, changeChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan string, 16)
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				select {
				case out <- msg.Payload:
				default:
					// subscriber lamban; poller akan menyusul
				}
			}
		}
	}()
	return out, nil
}
