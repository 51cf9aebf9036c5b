package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/five82/paintbox/internal/inventory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openSession(t *testing.T, seed inventory.Snapshot) (*Session, *inventory.MemoryStore) {
	t.Helper()
	store := inventory.NewMemoryStore(seed)
	s := NewSession(store, nil)
	require.NoError(t, s.Open(context.Background()))
	return s, store
}

func TestSession_OpenLoadsStore(t *testing.T) {
	s, _ := openSession(t, inventory.Snapshot{"RV-1": 4})
	assert.Equal(t, 4, s.Quantity("RV-1"))
	assert.Zero(t, s.Quantity("missing"))
	assert.False(t, s.LastUpdated().IsZero())
}

func TestSession_MutationsBeforeOpenFail(t *testing.T) {
	s := NewSession(inventory.NewMemoryStore(nil), nil)
	_, err := s.Set(context.Background(), "A", 1)
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, s.Clear(context.Background()), ErrNotOpen)
}

func TestSession_OpenFailureIsPersistence(t *testing.T) {
	store := inventory.NewMemoryStore(nil)
	store.LoadErr = errors.New("no medium")
	s := NewSession(store, nil)

	err := s.Open(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, inventory.ErrPersistence)
	assert.Error(t, s.LastError())
}

func TestSession_SetWritesThroughAndClamps(t *testing.T) {
	ctx := context.Background()
	s, store := openSession(t, nil)

	got, err := s.Set(ctx, "RV-1", 5000)
	require.NoError(t, err)
	assert.Equal(t, inventory.MaxQuantity, got)

	got, err = s.Adjust(ctx, "RV-2", -3)
	require.NoError(t, err)
	assert.Zero(t, got)

	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, inventory.Snapshot{"RV-1": inventory.MaxQuantity, "RV-2": 0}, persisted)
	assert.Equal(t, 2, store.Saves())
}

func TestSession_FailedWriteKeepsLiveInventory(t *testing.T) {
	ctx := context.Background()
	s, store := openSession(t, inventory.Snapshot{"RV-1": 2})
	store.SaveErr = errors.New("quota exceeded")

	got, err := s.Set(ctx, "RV-1", 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, inventory.ErrPersistence)
	assert.Equal(t, 2, got)
	assert.Equal(t, 2, s.Quantity("RV-1"))

	_, err = s.Transform(ctx, func(inventory.Snapshot) inventory.Snapshot { return inventory.Snapshot{"X": 1} })
	require.Error(t, err)
	assert.Equal(t, inventory.Snapshot{"RV-1": 2}, s.Snapshot())
	assert.Error(t, s.LastError())

	store.SaveErr = nil
	_, err = s.Set(ctx, "RV-1", 3)
	require.NoError(t, err)
	assert.NoError(t, s.LastError())
}

func TestSession_BulkReplaceAndClear(t *testing.T) {
	ctx := context.Background()
	s, store := openSession(t, inventory.Snapshot{"A": 1})

	incoming := inventory.Snapshot{"B": 2}
	next, err := s.Transform(ctx, func(inventory.Snapshot) inventory.Snapshot { return incoming })
	require.NoError(t, err)
	incoming["B"] = 99
	next["B"] = 98
	assert.Equal(t, inventory.Snapshot{"B": 2}, s.Snapshot(), "Transform must not alias its input or result")

	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.Snapshot())
	assert.Nil(t, store.Raw())
}

func TestSession_TransformSeesCurrent(t *testing.T) {
	ctx := context.Background()
	s, store := openSession(t, inventory.Snapshot{"A": 1})

	next, err := s.Transform(ctx, func(cur inventory.Snapshot) inventory.Snapshot {
		cur["A"] += 2
		cur["B"] = 1
		return cur
	})
	require.NoError(t, err)
	assert.Equal(t, inventory.Snapshot{"A": 3, "B": 1}, next)
	assert.Equal(t, inventory.Snapshot{"A": 3, "B": 1}, s.Snapshot())
	assert.Equal(t, 1, store.Saves())

	store.SaveErr = errors.New("disk full")
	_, err = s.Transform(ctx, func(inventory.Snapshot) inventory.Snapshot { return nil })
	require.ErrorIs(t, err, inventory.ErrPersistence)
	assert.Equal(t, inventory.Snapshot{"A": 3, "B": 1}, s.Snapshot())
}

func TestSession_SnapshotIsIndependent(t *testing.T) {
	s, _ := openSession(t, inventory.Snapshot{"A": 1})
	snap := s.Snapshot()
	snap["A"] = 50
	assert.Equal(t, 1, s.Quantity("A"))
}

func TestSession_ConcurrentSetsSerialize(t *testing.T) {
	ctx := context.Background()
	s, store := openSession(t, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Adjust(ctx, "A", 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, s.Quantity("A"))
	assert.Equal(t, 20, store.Saves())
}
