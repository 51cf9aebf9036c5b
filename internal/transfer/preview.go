package transfer

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/paintbox/internal/inventory"
)

// NewColor is a code that goes from nothing on hand to a positive quantity.
type NewColor struct {
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

// UpdatedColor is a stocked code whose quantity the import would change.
type UpdatedColor struct {
	Code            string `json:"code"`
	CurrentQuantity int    `json:"currentQuantity"`
	NewQuantity     int    `json:"newQuantity"`
	FinalQuantity   int    `json:"finalQuantity"`
}

// UnchangedColor is a code the import leaves as it is.
type UnchangedColor struct {
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

// PreviewMetadata describes where a preview came from.
type PreviewMetadata struct {
	ImportedAt  time.Time `json:"importedAt"`
	TotalColors int       `json:"totalColors"`
	Source      string    `json:"source,omitempty"`
	ExportedAt  string    `json:"exportedAt"`
}

// Preview is the non-persisted description of what an import would do.
type Preview struct {
	Strategy        MergeStrategy    `json:"strategy"`
	NewColors       []NewColor       `json:"newColors"`
	UpdatedColors   []UpdatedColor   `json:"updatedColors"`
	UnchangedColors []UnchangedColor `json:"unchangedColors"`
	TotalChanges    int              `json:"totalChanges"`
	Metadata        PreviewMetadata  `json:"metadata"`
}

// BuildPreview classifies every candidate code against current. Entries keep
// the candidate's document order.
func BuildPreview(current inventory.Snapshot, c *Candidate, strategy MergeStrategy, now time.Time) Preview {
	p := Preview{
		Strategy:        strategy,
		NewColors:       []NewColor{},
		UpdatedColors:   []UpdatedColor{},
		UnchangedColors: []UnchangedColor{},
		Metadata: PreviewMetadata{
			ImportedAt:  now,
			TotalColors: len(c.Codes),
			Source:      c.Source,
			ExportedAt:  c.ExportedAt,
		},
	}
	for _, code := range c.Codes {
		cur := current.Get(code)
		cand := c.Inventory[code]
		final := strategy.Final(cur, cand)
		switch {
		case cur == 0 && cand > 0:
			p.NewColors = append(p.NewColors, NewColor{Code: code, Quantity: cand})
		case cur > 0 && final != cur:
			p.UpdatedColors = append(p.UpdatedColors, UpdatedColor{
				Code:            code,
				CurrentQuantity: cur,
				NewQuantity:     cand,
				FinalQuantity:   final,
			})
		default:
			p.UnchangedColors = append(p.UnchangedColors, UnchangedColor{Code: code, Quantity: cur})
		}
	}
	p.TotalChanges = len(p.NewColors) + len(p.UpdatedColors)
	return p
}

// Apply overlays the candidate onto a copy of current using strategy. Codes
// absent from the candidate are untouched.
func Apply(current inventory.Snapshot, c *Candidate, strategy MergeStrategy) inventory.Snapshot {
	next := current.Clone()
	for _, code := range c.Codes {
		next[code] = strategy.Final(current.Get(code), c.Inventory[code])
	}
	return next
}

// Summary renders the preview as the sentence shown before confirmation.
func (p Preview) Summary() string {
	if p.TotalChanges == 0 {
		return fmt.Sprintf("No changes: %d colors already match (%s).", len(p.UnchangedColors), p.Strategy)
	}
	var parts []string
	if n := len(p.NewColors); n > 0 {
		parts = append(parts, plural(n, "new color", "new colors"))
	}
	if n := len(p.UpdatedColors); n > 0 {
		parts = append(parts, plural(n, "updated", "updated"))
	}
	if n := len(p.UnchangedColors); n > 0 {
		parts = append(parts, plural(n, "unchanged", "unchanged"))
	}
	return fmt.Sprintf("%s: %s (%s).",
		plural(p.TotalChanges, "change", "changes"), strings.Join(parts, ", "), p.Strategy)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
