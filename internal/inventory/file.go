package inventory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// FileStore keeps the inventory record in a single JSON file.
type FileStore struct {
	path string
	log  *zap.Logger
	now  func() time.Time
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store writing to dir/inventory.json.
func NewFileStore(dir string, log *zap.Logger) *FileStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{
		path: filepath.Join(dir, "inventory.json"),
		log:  log,
		now:  time.Now,
	}
}

// Path returns the record file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the record. A missing file is an empty inventory.
func (s *FileStore) Load(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, nil
		}
		return nil, persistErr("read inventory", err)
	}
	return recoverRecord(raw, s.log, func() error {
		return os.Remove(s.path)
	}), nil
}

// Save replaces the record with snap in one rename.
func (s *FileStore) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeRecord(snap, s.now())
	if err != nil {
		return persistErr("save inventory", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return persistErr("create data dir", err)
	}
	tmp, err := os.CreateTemp(dir, ".inventory-*.json")
	if err != nil {
		return persistErr("create temp file", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return persistErr("write inventory", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return persistErr("sync inventory", err)
	}
	if err := tmp.Close(); err != nil {
		return persistErr("close inventory", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return persistErr("replace inventory", err)
	}
	s.log.Debug("inventory saved", zap.String("path", s.path), zap.Int("codes", len(snap)))
	return nil
}

// Clear removes the record.
func (s *FileStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return persistErr("clear inventory", err)
	}
	return nil
}

func (s *FileStore) String() string {
	return fmt.Sprintf("file:%s", s.path)
}
