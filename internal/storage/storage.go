// Package storage persists session snapshots under string keys.
package storage

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
)

var ErrNotFound = errors.New("snapshot not found")

// SnapshotStore saves opaque snapshot documents. Load returns ErrNotFound
// for a key that was never saved or has been cleared.
type SnapshotStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Clear(ctx context.Context, key string) error
}

// MemoryStore keeps snapshots in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (m *MemoryStore) Save(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	m.docs[key] = slices.Clone(data)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(data), nil
}

func (m *MemoryStore) Clear(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.docs, key)
	m.mu.Unlock()
	return nil
}

// Keys lists the stored keys in sorted order.
func (m *MemoryStore) Keys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.docs)), nil
}

func (m *MemoryStore) Check(ctx context.Context) error { return nil }
