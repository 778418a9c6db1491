// ABOUTME: In-memory Store used by tests and the "memory" backend.
// ABOUTME: Supports injected failures to exercise error paths.
package kv

import (
	"context"
	"sync"
)

// Memory is a mutex-guarded map store.
type Memory struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes int

	// FailWrites, when set, is returned from every Set.
	FailWrites error
	// FailReads, when set, is returned from every Get.
	FailReads error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

var _ Store = (*Memory)(nil)

// Get returns a copy of the value stored under key.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailReads != nil {
		return nil, m.FailReads
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.data[key] = append([]byte(nil), value...)
	m.writes++
	return nil
}

// Writes returns the number of successful Set calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
