package store

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is an in-memory Store with the same semantics as the durable one:
// whole-value JSON writes, last writer wins, synchronous change notification.
// It exists so services can be tested without a database and doubles as the
// store for ephemeral runs.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
	hub     *hub
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string][]byte),
		hub:     newHub(),
	}
}

// Get implements Store.
func (m *Memory) Get(ctx context.Context, key string, into any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, into); err != nil {
		// A malformed entry reads as absent, matching the SQLite store.
		return false, nil
	}
	return true, nil
}

// Set implements Store.
func (m *Memory) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[key] = raw
	m.mu.Unlock()

	storeWrites.WithLabelValues(key).Inc()
	m.hub.publish(key)
	return nil
}

// Delete implements Store.
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()

	m.hub.publish(key)
	return nil
}

// Subscribe implements Store.
func (m *Memory) Subscribe(key string) (<-chan string, func()) {
	return m.hub.subscribe(key)
}

// SeedRaw installs a raw payload under key without notifying subscribers.
// Tests use it to simulate pre-existing (possibly malformed) persisted state.
func (m *Memory) SeedRaw(key string, raw []byte) {
	m.mu.Lock()
	m.entries[key] = append([]byte(nil), raw...)
	m.mu.Unlock()
}
