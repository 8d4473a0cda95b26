package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps documents in process memory. Used when persistence is
// switched off and in tests.
type MemoryStore struct {
	docStore
	mem *memBlobs
}

type memBlobs struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	mem := &memBlobs{docs: make(map[string][]byte)}
	return &MemoryStore{docStore: docStore{b: mem}, mem: mem}
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

// Raw returns the stored bytes for a key, nil when absent.
func (s *MemoryStore) Raw(key string) []byte {
	data, _ := s.mem.get(context.Background(), key)
	return data
}

// PutRaw stores bytes under a key as-is.
func (s *MemoryStore) PutRaw(key string, data []byte) {
	_ = s.mem.set(context.Background(), key, data)
}

func (m *memBlobs) get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.docs[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (m *memBlobs) set(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = append([]byte(nil), data...)
	return nil
}

func (m *memBlobs) del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}
