package store

import (
	"context"
	"sync"
)

// Memory is a process-local Slot. Values vanish with the process.
//
// Thread-safety: Memory is safe for concurrent use via internal mutex.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte

	// FailWith, when set, is returned by every operation. Tests use it to
	// simulate a failing durable slot.
	FailWith error
}

// NewMemory returns an empty Memory slot.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, false, m.FailWith
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Put stores a copy of value under key.
func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	delete(m.data, key)
	return nil
}
