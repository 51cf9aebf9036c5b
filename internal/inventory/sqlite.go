package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const kvSchema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteStore keeps the inventory record as one row of a key-value table,
// the same shape a browser's local storage has.
type SQLiteStore struct {
	db   *sql.DB
	path string
	log  *zap.Logger
	now  func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLiteStore opens (creating if needed) dir/inventory.db.
func OpenSQLiteStore(ctx context.Context, dir string, log *zap.Logger) (*SQLiteStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, persistErr("create data dir", err)
	}
	path := filepath.Join(dir, "inventory.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, persistErr("open sqlite", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, kvSchema); err != nil {
		_ = db.Close()
		return nil, persistErr("create kv table", err)
	}
	return &SQLiteStore{db: db, path: path, log: log, now: time.Now}, nil
}

// Load reads the record row. A missing row is an empty inventory.
func (s *SQLiteStore) Load(ctx context.Context) (Snapshot, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, StorageKey).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, nil
		}
		return nil, persistErr("read inventory", err)
	}
	return recoverRecord([]byte(raw), s.log, func() error {
		return s.Clear(ctx)
	}), nil
}

// Save upserts the record row.
func (s *SQLiteStore) Save(ctx context.Context, snap Snapshot) error {
	data, err := encodeRecord(snap, s.now())
	if err != nil {
		return persistErr("save inventory", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		StorageKey, string(data))
	if err != nil {
		return persistErr("write inventory", err)
	}
	s.log.Debug("inventory saved", zap.String("path", s.path), zap.Int("codes", len(snap)))
	return nil
}

// Clear deletes the record row.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, StorageKey); err != nil {
		return persistErr("clear inventory", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) String() string {
	return fmt.Sprintf("sqlite:%s", s.path)
}
