package recordstore

import (
	"context"
	"sync"
)

// MemoryBackend keeps documents in process memory. Used by tests and the
// "memory" storage mode.
type MemoryBackend struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

func (m *MemoryBackend) Read(_ context.Context, collection string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[collection]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), doc...), nil
}

func (m *MemoryBackend) Write(_ context.Context, collection string, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs[collection] = append([]byte(nil), doc...)
	return nil
}
