// Package repo implements the persistence layer behind the key-value store,
// backed by GORM. This file provides repository functions for Entry rows.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only persistence.
//
// Error semantics:
//   - When a key is absent, GetEntry returns ErrNotFound.
//   - On DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/replate/replate-backend/internal/domain"
)

// ErrNotFound is returned when a requested key does not exist. It aliases
// gorm.ErrRecordNotFound for convenience and consistency across callers.
var ErrNotFound = gorm.ErrRecordNotFound

// GetEntry fetches the raw JSON value stored under key, or ErrNotFound.
func GetEntry(ctx context.Context, db *gorm.DB, key string) ([]byte, error) {
	var e domain.Entry
	err := db.WithContext(ctx).
		Where("key = ?", key).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return e.Value, nil
}

// PutEntry upserts the raw JSON value under key. The whole value is rewritten
// unconditionally: concurrent writers race and the last write wins. That is
// the documented semantics of the store, not an oversight.
func PutEntry(ctx context.Context, db *gorm.DB, key string, value []byte) error {
	e := domain.Entry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&e).Error
}

// DeleteEntry removes the value under key. Deleting an absent key is a no-op.
func DeleteEntry(ctx context.Context, db *gorm.DB, key string) error {
	return db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&domain.Entry{}).Error
}

// ListKeys returns every stored key, ordered lexicographically. Diagnostics
// only; not on any hot path.
func ListKeys(ctx context.Context, db *gorm.DB) ([]string, error) {
	var keys []string
	err := db.WithContext(ctx).
		Model(&domain.Entry{}).
		Order("key asc").
		Pluck("key", &keys).Error
	return keys, err
}
