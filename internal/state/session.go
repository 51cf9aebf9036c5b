package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/paintbox/internal/inventory"
)

// ErrNotOpen is returned by mutations before Open has loaded the store.
var ErrNotOpen = errors.New("session not open")

// Session owns the live inventory. It is loaded once from a Store and every
// mutation is written back before it becomes visible.
type Session struct {
	mu          sync.RWMutex
	store       inventory.Store
	log         *zap.Logger
	current     inventory.Snapshot
	open        bool
	lastUpdated time.Time
	lastErr     error
}

// NewSession returns a session backed by store.
func NewSession(store inventory.Store, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{store: store, log: log}
}

// Open loads the current snapshot from the store.
func (s *Session) Open(ctx context.Context) error {
	snap, err := s.store.Load(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		return fmt.Errorf("load inventory: %w", err)
	}
	s.current = snap.Clone()
	s.open = true
	s.lastErr = nil
	s.lastUpdated = time.Now()
	s.log.Info("inventory loaded", zap.Int("codes", len(snap)))
	return nil
}

// Quantity returns the on-hand quantity for code.
func (s *Session) Quantity(code string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Get(code)
}

// Snapshot returns a copy of the live inventory.
func (s *Session) Snapshot() inventory.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// LastUpdated returns when the live inventory last changed.
func (s *Session) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// LastError returns the most recent store failure, nil after a success.
func (s *Session) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Set stores qty (clamped to [0, inventory.MaxQuantity]) for code and returns
// the value actually written.
func (s *Session) Set(ctx context.Context, code string, qty int) (int, error) {
	return s.update(ctx, code, func(int) int { return qty })
}

// Adjust adds delta to the quantity for code, clamped.
func (s *Session) Adjust(ctx context.Context, code string, delta int) (int, error) {
	return s.update(ctx, code, func(cur int) int { return cur + delta })
}

func (s *Session) update(ctx context.Context, code string, fn func(int) int) (int, error) {
	var qty int
	err := s.mutate(ctx, func(cur inventory.Snapshot) (inventory.Snapshot, error) {
		qty = inventory.Clamp(fn(cur.Get(code)))
		next := cur.Clone()
		next[code] = qty
		return next, nil
	})
	if err != nil {
		return s.Quantity(code), err
	}
	s.log.Info("quantity updated", zap.String("code", code), zap.Int("quantity", qty))
	return qty, nil
}

// Transform replaces the live inventory with fn(current) in one store write
// and returns the new snapshot. fn receives a copy it may modify.
func (s *Session) Transform(ctx context.Context, fn func(inventory.Snapshot) inventory.Snapshot) (inventory.Snapshot, error) {
	var next inventory.Snapshot
	err := s.mutate(ctx, func(cur inventory.Snapshot) (inventory.Snapshot, error) {
		next = fn(cur.Clone()).Clone()
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return next.Clone(), nil
}

// Clear removes the persisted record and empties the live inventory.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrNotOpen
	}
	if err := s.store.Clear(ctx); err != nil {
		s.lastErr = err
		return err
	}
	s.current = inventory.Snapshot{}
	s.lastErr = nil
	s.lastUpdated = time.Now()
	s.log.Info("inventory cleared")
	return nil
}

// mutate computes the next snapshot from the current one, persists it and
// only then makes it live. A failed write leaves the live inventory as it was.
func (s *Session) mutate(ctx context.Context, fn func(inventory.Snapshot) (inventory.Snapshot, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrNotOpen
	}
	next, err := fn(s.current)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, next); err != nil {
		s.lastErr = err
		s.log.Error("inventory write failed", zap.Error(err))
		return err
	}
	s.current = next
	s.lastErr = nil
	s.lastUpdated = time.Now()
	return nil
}
