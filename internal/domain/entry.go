// Package domain defines the core data types of the coordination service.
// This file holds the persistence model backing the key-value store.
package domain

import "time"

// Entry is one row of the persisted key-value store: a string key mapped to a
// JSON-encoded value. The store rewrites the whole value on every set; there
// is deliberately no finer-grained schema, matching the flat key/JSON layout
// the rest of the system is specified against.
type Entry struct {
	Key       string    `gorm:"type:varchar(128);primaryKey"`
	Value     []byte    `gorm:"type:blob;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the database table name for Entry.
func (Entry) TableName() string { return "entries" }
