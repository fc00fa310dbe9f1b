package store

import (
	"context"
	"slices"
	"sync"
)

type memoryKeyValueStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryKeyValueStore returns a process-local store. Nothing survives a
// restart; it backs the ":memory:" DSN and tests.
func NewMemoryKeyValueStore() KeyValueStore {
	return &memoryKeyValueStore{items: make(map[string][]byte)}
}

func (m *memoryKeyValueStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.items[key]
	if !ok {
		return nil, nil
	}
	return slices.Clone(v), nil
}

func (m *memoryKeyValueStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = slices.Clone(value)
	return nil
}

func (m *memoryKeyValueStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

func (m *memoryKeyValueStore) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func (m *memoryKeyValueStore) Close() error {
	return nil
}
