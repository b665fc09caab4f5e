package store

import "sync"

// Medium is the durable string-valued key-value store the Store persists to.
// It is owned exclusively by one Store; no external writer is assumed.
type Medium interface {
	// Get returns the value for key; ok is false when the key was never set.
	Get(key string) (value string, ok bool, err error)
	// Set overwrites the value for key.
	Set(key, value string) error
	Close() error
}

// MemoryMedium keeps values in a map. Nothing survives the process.
type MemoryMedium struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{values: make(map[string]string)}
}

func (m *MemoryMedium) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryMedium) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

func (m *MemoryMedium) Close() error { return nil }
