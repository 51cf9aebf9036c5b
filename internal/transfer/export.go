package transfer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/five82/paintbox/internal/inventory"
)

// PayloadVersion is stamped on every export.
const PayloadVersion = "1.0.0"

// Metadata summarizes an exported inventory. It is always derived from the
// inventory it travels with.
type Metadata struct {
	TotalColors     int `json:"totalColors"`
	ColorsWithStock int `json:"colorsWithStock"`
	TotalQuantity   int `json:"totalQuantity"`
}

// Payload is the export/import envelope.
type Payload struct {
	Version    string             `json:"version"`
	ExportedAt string             `json:"exportedAt"`
	Inventory  inventory.Snapshot `json:"inventory"`
	Metadata   Metadata           `json:"metadata"`
	ExportID   string             `json:"exportId,omitempty"`
}

// ComputeMetadata derives Metadata from snap.
func ComputeMetadata(snap inventory.Snapshot) Metadata {
	md := Metadata{TotalColors: len(snap)}
	for _, qty := range snap {
		if qty > 0 {
			md.ColorsWithStock++
		}
		md.TotalQuantity += qty
	}
	return md
}

// Export builds a fresh payload for snap stamped at now.
func Export(snap inventory.Snapshot, now time.Time) Payload {
	inv := snap.Clone()
	return Payload{
		Version:    PayloadVersion,
		ExportedAt: now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Inventory:  inv,
		Metadata:   ComputeMetadata(inv),
		ExportID:   uuid.NewString(),
	}
}

// Marshal renders the payload as indented UTF-8 JSON.
func (p Payload) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return append(data, '\n'), nil
}

// Filename returns the export file name for now.
func Filename(now time.Time) string {
	return now.Format("mtn-inventory-2006-01-02-15-04-05.json")
}

// WriteFile writes p into dir under Filename(now) and returns the full path.
func WriteFile(dir string, p Payload, now time.Time) (string, error) {
	data, err := p.Marshal()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, Filename(now))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
