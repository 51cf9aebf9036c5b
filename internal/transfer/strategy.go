package transfer

import (
	"fmt"
	"strings"
)

// MergeStrategy decides how a candidate quantity combines with the current one.
type MergeStrategy string

const (
	Replace      MergeStrategy = "replace"
	Merge        MergeStrategy = "merge"
	SkipExisting MergeStrategy = "skip_existing"
)

// Strategies lists every strategy in menu order.
var Strategies = []MergeStrategy{Replace, Merge, SkipExisting}

// ParseStrategy accepts the canonical names plus the single-letter shortcuts
// r, m and k.
func ParseStrategy(s string) (MergeStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "replace", "r":
		return Replace, nil
	case "merge", "m":
		return Merge, nil
	case "skip_existing", "skip-existing", "skip", "k":
		return SkipExisting, nil
	}
	return "", fmt.Errorf("unknown merge strategy %q (want replace, merge or skip_existing)", s)
}

// Final returns the quantity a code ends up with after import.
func (m MergeStrategy) Final(current, candidate int) int {
	switch m {
	case Merge:
		return current + candidate
	case SkipExisting:
		if current > 0 {
			return current
		}
		return candidate
	default:
		return candidate
	}
}

// Label is the human name shown in menus.
func (m MergeStrategy) Label() string {
	switch m {
	case Merge:
		return "Merge (add quantities)"
	case SkipExisting:
		return "Skip existing (only fill empty)"
	default:
		return "Replace (overwrite)"
	}
}
