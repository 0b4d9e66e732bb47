package store

import (
	"context"
	"sync"
)

// Mem is an in-memory Store, used by tests and ephemeral runs where no
// data directory is configured.
type Mem struct {
	mu   sync.RWMutex
	data map[int32][]byte
}

// NewMem creates an empty in-memory Store.
func NewMem() *Mem {
	return &Mem{data: make(map[int32][]byte)}
}

func (m *Mem) Upsert(_ context.Context, key int32, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)

	m.mu.Lock()
	m.data[key] = cp
	m.mu.Unlock()
	return nil
}

func (m *Mem) Read(_ context.Context, key int32) ([]byte, bool, error) {
	m.mu.RLock()
	data, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true, nil
}

func (m *Mem) ReadAllKeys(_ context.Context) ([]int32, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]int32, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys, nil
}

func (m *Mem) Close() error { return nil }
