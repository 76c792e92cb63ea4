package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/replate/replate-backend/internal/repo"
)

// SQLite is the durable Store implementation, one row per key in a flat
// entries table. It is safe for concurrent use; GORM serializes access to
// the underlying connection pool.
type SQLite struct {
	db  *gorm.DB
	hub *hub
}

// NewSQLite wraps an opened GORM handle (see repo.OpenSQLite) as a Store.
// The schema must already be migrated (repo.AutoMigrate).
func NewSQLite(db *gorm.DB) *SQLite {
	return &SQLite{db: db, hub: newHub()}
}

// Get implements Store. Absent keys and undecodable payloads both report
// found=false with a nil error so callers keep their defaults; only a failing
// backing store yields an error.
func (s *SQLite) Get(ctx context.Context, key string, into any) (bool, error) {
	raw, err := repo.GetEntry(ctx, s.db, key)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, into); err != nil {
		// Corrupt entry: fall back to the caller's default instead of
		// propagating a decode error into every consumer.
		log.Warn().Str("key", key).Err(err).Msg("store: discarding malformed entry")
		return false, nil
	}
	return true, nil
}

// Set implements Store. The value is rewritten whole and subscribers are
// notified synchronously after the row lands.
func (s *SQLite) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := repo.PutEntry(ctx, s.db, key, raw); err != nil {
		return err
	}
	storeWrites.WithLabelValues(key).Inc()
	s.hub.publish(key)
	return nil
}

// Delete implements Store.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	if err := repo.DeleteEntry(ctx, s.db, key); err != nil {
		return err
	}
	s.hub.publish(key)
	return nil
}

// Subscribe implements Store.
func (s *SQLite) Subscribe(key string) (<-chan string, func()) {
	return s.hub.subscribe(key)
}

// Keys returns every stored key, ordered lexicographically. Diagnostics only.
func (s *SQLite) Keys(ctx context.Context) ([]string, error) {
	return repo.ListKeys(ctx, s.db)
}
