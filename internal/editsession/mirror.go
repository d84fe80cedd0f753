package editsession

import (
	"context"
	"errors"
	"sync"
)

// ErrNoMirror indicates no persisted draft exists for the key.
var ErrNoMirror = errors.New("no draft mirror")

// Mirror is the durable, session-scoped copy of an in-progress draft.
// A failed Put degrades the session to memory-only; it is never fatal.
type Mirror interface {
	// Get returns the persisted draft bytes, or ErrNoMirror.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores the draft bytes, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error

	// Delete removes the persisted draft. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error
}

// MemoryMirror is an in-process Mirror used in tests and in deployments
// without Redis. It survives session teardown but not process restarts.
type MemoryMirror struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryMirror creates an empty in-memory mirror.
func NewMemoryMirror() *MemoryMirror {
	return &MemoryMirror{entries: make(map[string][]byte)}
}

// Get returns the stored bytes or ErrNoMirror.
func (m *MemoryMirror) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.entries[key]
	if !ok {
		return nil, ErrNoMirror
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Put stores a copy of data under key.
func (m *MemoryMirror) Put(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.entries[key] = stored
	return nil
}

// Delete removes the entry for key.
func (m *MemoryMirror) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}
