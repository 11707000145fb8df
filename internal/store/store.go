// Package store persists the estimator Configuration as a single JSON blob
// under one well-known key.
package store

import (
	"context"
	"errors"
	"sync"
)

// DefaultKey is the well-known key holding the persisted Configuration.
const DefaultKey = "tv-streaming-cost-estimator-config"

// ErrNotFound is returned by KV.Get when the key holds no value.
var ErrNotFound = errors.New("key not found")

// KV is a minimal key/value store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// MemoryStore is a process-local KV.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get returns a copy of the value at key.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value at key.
func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}
