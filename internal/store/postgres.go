package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Blob is the single key/value table used by the Postgres backend.
// One row per collection, the whole serialized collection in Value.
type Blob struct {
	Key       string `gorm:"column:key;primaryKey;type:varchar(120)"`
	Value     []byte `gorm:"column:value;type:jsonb;not null"`
	UpdatedAt time.Time
}

func (Blob) TableName() string {
	return "kv_blobs"
}

type postgresStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewPostgresStore(db *gorm.DB, logger ...*zap.Logger) Store {
	l := zap.L().Named("store.postgres")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("store.postgres")
	}
	return &postgresStore{db: db, logger: l}
}

// Migrate creates the kv_blobs table when missing.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Blob{})
}

func (s *postgresStore) Read(ctx context.Context, key string, out any) error {
	var row Blob
	err := s.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := json.Unmarshal(row.Value, out); err != nil {
		s.logger.Warn("corrupt blob, treating as empty",
			zap.String("key", key),
			zap.Error(err),
		)
		return ErrNotFound
	}
	return nil
}

func (s *postgresStore) Write(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Exec(`
		INSERT INTO kv_blobs (key, value, updated_at)
		VALUES (?, ?, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
	`, key, raw).Error
}

func (s *postgresStore) Watch(ctx context.Context) (<-chan string, error) {
	return nil, ErrWatchUnsupported
}
