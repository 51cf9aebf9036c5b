package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	// StorageKey is the fixed key the inventory record lives under.
	StorageKey = "mtn-inventory"
	// RecordVersion is the only record version Load accepts.
	RecordVersion = "1.0.0"
)

var (
	// ErrPersistence reports that the durable medium rejected a read or write.
	ErrPersistence = errors.New("inventory storage failure")
	// ErrCorruptedState reports a record that parsed but carried the wrong
	// version. Stores recover from it silently; it never leaves Load.
	ErrCorruptedState = errors.New("inventory record version mismatch")

	errUnreadableRecord = errors.New("unreadable inventory record")
)

// Store is the durable home of the current snapshot.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
	Clear(ctx context.Context) error
}

// record is the persisted envelope.
type record struct {
	Items       map[string]int `json:"items"`
	Version     string         `json:"version"`
	LastUpdated string         `json:"lastUpdated"`
}

func encodeRecord(snap Snapshot, now time.Time) ([]byte, error) {
	items := map[string]int(snap.Clone())
	data, err := json.Marshal(record{
		Items:       items,
		Version:     RecordVersion,
		LastUpdated: now.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("encode inventory record: %w", err)
	}
	return data, nil
}

func decodeRecord(raw []byte) (Snapshot, error) {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", errUnreadableRecord, err)
	}
	if rec.Version != RecordVersion {
		return nil, fmt.Errorf("%w: got %q want %q", ErrCorruptedState, rec.Version, RecordVersion)
	}
	snap := make(Snapshot, len(rec.Items))
	for code, qty := range rec.Items {
		if qty < 0 {
			return nil, fmt.Errorf("%w: negative quantity for %q", errUnreadableRecord, code)
		}
		snap[code] = qty
	}
	return snap, nil
}

// recoverRecord applies the load policy shared by every store: a version
// mismatch yields an empty snapshot, an unreadable record is dropped and
// yields an empty snapshot. Neither is reported to the caller.
func recoverRecord(raw []byte, log *zap.Logger, drop func() error) Snapshot {
	snap, err := decodeRecord(raw)
	switch {
	case err == nil:
		return snap
	case errors.Is(err, ErrCorruptedState):
		log.Warn("storage version mismatch, resetting inventory", zap.Error(err))
	default:
		log.Warn("invalid inventory data found, resetting", zap.Error(err))
		if derr := drop(); derr != nil {
			log.Warn("failed to remove corrupted inventory record", zap.Error(derr))
		}
	}
	return Snapshot{}
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
