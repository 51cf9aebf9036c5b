package inventory

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// MemoryStore is an in-process Store for tests and dry runs. It holds the
// encoded record so corrupted payloads can be injected with SetRaw.
type MemoryStore struct {
	mu      sync.Mutex
	raw     []byte
	saves   int
	SaveErr error // returned by Save when set
	LoadErr error // returned by Load when set
	log     *zap.Logger
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a store seeded with snap (nil for empty).
func NewMemoryStore(snap Snapshot) *MemoryStore {
	m := &MemoryStore{log: zap.NewNop()}
	if snap != nil {
		m.raw, _ = encodeRecord(snap, time.Now())
	}
	return m
}

// Load implements Store.
func (m *MemoryStore) Load(_ context.Context) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, persistErr("read inventory", m.LoadErr)
	}
	if m.raw == nil {
		return Snapshot{}, nil
	}
	return recoverRecord(m.raw, m.log, func() error {
		m.raw = nil
		return nil
	}), nil
}

// Save implements Store.
func (m *MemoryStore) Save(_ context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return persistErr("write inventory", m.SaveErr)
	}
	data, err := encodeRecord(snap, time.Now())
	if err != nil {
		return persistErr("save inventory", err)
	}
	m.raw = data
	m.saves++
	return nil
}

// Clear implements Store.
func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return persistErr("clear inventory", m.SaveErr)
	}
	m.raw = nil
	return nil
}

// SetRaw replaces the stored record bytes verbatim.
func (m *MemoryStore) SetRaw(raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = raw
}

// Raw returns the stored record bytes (nil when cleared).
func (m *MemoryStore) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.raw
}

// Saves counts successful Save calls.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
