// Package search narrows the catalog by free text and stock level.
//
// Everything here is pure: inputs are never mutated and identical inputs give
// identical outputs.
package search

import (
	"sort"
	"strings"

	"github.com/five82/paintbox/internal/catalog"
	"github.com/five82/paintbox/internal/inventory"
)

// Field identifies which color field a query matched.
type Field int

const (
	FieldCode Field = iota
	FieldName
)

// Match is one search hit.
type Match struct {
	Color catalog.Color
	Field Field
	Index int // byte offset of the match within the lowered field
}

// Matches runs the query and returns hits with match detail. A blank query
// matches every color at index 0 in input order.
func Matches(colors []catalog.Color, query string) []Match {
	if strings.TrimSpace(query) == "" {
		out := make([]Match, len(colors))
		for i, c := range colors {
			out[i] = Match{Color: c, Field: FieldCode}
		}
		return out
	}

	needle := strings.ToLower(query)
	out := make([]Match, 0, len(colors))
	for _, c := range colors {
		if idx := strings.Index(strings.ToLower(c.Code), needle); idx >= 0 {
			out = append(out, Match{Color: c, Field: FieldCode, Index: idx})
			continue
		}
		if idx := strings.Index(strings.ToLower(c.Name), needle); idx >= 0 {
			out = append(out, Match{Color: c, Field: FieldName, Index: idx})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ei := strings.ToLower(out[i].Color.Code) == needle
		ej := strings.ToLower(out[j].Color.Code) == needle
		if ei != ej {
			return ei
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// Search returns the colors matching query in result order.
func Search(colors []catalog.Color, query string) []catalog.Color {
	if strings.TrimSpace(query) == "" {
		out := make([]catalog.Color, len(colors))
		copy(out, colors)
		return out
	}
	matches := Matches(colors, query)
	out := make([]catalog.Color, len(matches))
	for i, m := range matches {
		out[i] = m.Color
	}
	return out
}

// FilterByStock keeps colors whose quantity in snap satisfies filter.
func FilterByStock(colors []catalog.Color, snap inventory.Snapshot, filter Filter) []catalog.Color {
	out := make([]catalog.Color, 0, len(colors))
	for _, c := range colors {
		if filter.Keep(snap.Get(c.Code)) {
			out = append(out, c)
		}
	}
	return out
}

// State is the derived filter state shown next to the grid.
type State struct {
	ActiveFilter  Filter
	FilteredCount int
}

// Apply runs the text search, then the stock filter over its result.
func Apply(colors []catalog.Color, snap inventory.Snapshot, query string, filter Filter) ([]catalog.Color, State) {
	out := FilterByStock(Search(colors, query), snap, filter)
	return out, State{ActiveFilter: filter.normalize(), FilteredCount: len(out)}
}
