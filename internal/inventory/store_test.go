package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// storeFactory builds a fresh store rooted at dir.
type storeFactory func(t *testing.T, dir string) Store

func stores() map[string]storeFactory {
	return map[string]storeFactory{
		"file": func(t *testing.T, dir string) Store {
			return NewFileStore(dir, zap.NewNop())
		},
		"sqlite": func(t *testing.T, dir string) Store {
			s, err := OpenSQLiteStore(context.Background(), dir, zap.NewNop())
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
		"memory": func(t *testing.T, dir string) Store {
			return NewMemoryStore(nil)
		},
	}
}

func TestStores_RoundTripAndClear(t *testing.T) {
	ctx := context.Background()
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			s := factory(t, t.TempDir())

			snap, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, snap)

			want := Snapshot{"RV-252": 3, "RV-7": 0, "UNKNOWN": 2}
			require.NoError(t, s.Save(ctx, want))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("Load mismatch (-want +got):\n%s", diff)
			}

			require.NoError(t, s.Clear(ctx))
			got, err = s.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)

			// Clearing twice is fine.
			require.NoError(t, s.Clear(ctx))
		})
	}
}

func TestFileStore_RecordShape(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, nil)
	require.NoError(t, s.Save(context.Background(), Snapshot{"RV-1": 2}))

	raw, err := os.ReadFile(filepath.Join(dir, "inventory.json"))
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(raw, &rec))
	assert.Equal(t, RecordVersion, rec["version"])
	assert.NotEmpty(t, rec["lastUpdated"])
	assert.Equal(t, map[string]any{"RV-1": float64(2)}, rec["items"])
}

func TestFileStore_CorruptRecordIsDeleted(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, nil)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o600))

	snap, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap)

	_, statErr := os.Stat(s.Path())
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "corrupt record should be removed")
}

func TestFileStore_VersionMismatchResetsWithoutDeleting(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, nil)
	require.NoError(t, os.WriteFile(s.Path(),
		[]byte(`{"items":{"RV-1":4},"version":"0.9.0","lastUpdated":"x"}`), 0o600))

	snap, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap)

	_, statErr := os.Stat(s.Path())
	assert.NoError(t, statErr)
}

func TestFileStore_UnreadableMediumIsPersistenceFailure(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir, nil)
	// A directory where the record file should be cannot be read as a file.
	require.NoError(t, os.MkdirAll(s.Path(), 0o755))

	_, err := s.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPersistence))
}

func TestSQLiteStore_CorruptRowIsDeleted(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLiteStore(ctx, t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.db.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES (?, ?)`, StorageKey, `garbage`)
	require.NoError(t, err)

	snap, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap)

	var n int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv`).Scan(&n))
	assert.Zero(t, n)
}

func TestMemoryStore_NegativeQuantityIsCorrupt(t *testing.T) {
	m := NewMemoryStore(nil)
	m.SetRaw([]byte(`{"items":{"A":-1},"version":"1.0.0","lastUpdated":"x"}`))

	snap, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap)
	assert.Nil(t, m.Raw())
}

func TestMemoryStore_FailureInjection(t *testing.T) {
	m := NewMemoryStore(Snapshot{"A": 1})
	m.SaveErr = errors.New("disk full")

	err := m.Save(context.Background(), Snapshot{"A": 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPersistence))
	assert.Contains(t, err.Error(), "disk full")

	m.SaveErr = nil
	snap, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Snapshot{"A": 1}, snap)
}

func TestSnapshot_CloneAndClamp(t *testing.T) {
	var nilSnap Snapshot
	assert.NotNil(t, nilSnap.Clone())
	assert.Zero(t, nilSnap.Get("x"))

	s := Snapshot{"A": 1}
	c := s.Clone()
	c["A"] = 5
	assert.Equal(t, 1, s["A"])

	assert.Equal(t, 0, Clamp(-4))
	assert.Equal(t, 12, Clamp(12))
	assert.Equal(t, MaxQuantity, Clamp(5000))
}

func TestStatsFor(t *testing.T) {
	codes := []string{"A", "B", "C", "D"}
	snap := Snapshot{"A": 0, "B": 1, "C": 5, "ZZ": 9}

	got := StatsFor(codes, snap)
	want := Stats{TotalColors: 4, InStock: 2, LowStock: 1, OutOfStock: 2, TotalQuantity: 6}
	assert.Equal(t, want, got)
}
