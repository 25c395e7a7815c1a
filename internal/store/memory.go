package store

import (
	"context"
	"slices"
	"sync"
)

type memoryStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
	size   int64
	closed bool
}

// NewMemory returns a backend that keeps everything in process memory.
func NewMemory() Backend {
	return &memoryStorage{values: make(map[string][]byte)}
}

func (m *memoryStorage) PutBatch(_ context.Context, entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStorageClosed
	}
	for _, e := range entries {
		m.size += int64(len(e.Value) - len(m.values[e.Soul]))
		m.values[e.Soul] = slices.Clone(e.Value)
	}
	return nil
}

func (m *memoryStorage) Get(_ context.Context, soul string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStorageClosed
	}
	v, ok := m.values[soul]
	if !ok {
		return nil, ErrNodeNotFound
	}
	return slices.Clone(v), nil
}

func (m *memoryStorage) Size(context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.size, nil
}

func (m *memoryStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.values = nil
	return nil
}
