package search

import "strings"

// Filter is a stock-level predicate.
type Filter int

const (
	FilterAll Filter = iota
	FilterInStock
	FilterOutOfStock
	FilterLowStock
)

// Filters lists every filter in cycle order.
var Filters = []Filter{FilterAll, FilterInStock, FilterOutOfStock, FilterLowStock}

// Keep reports whether a color with quantity qty passes the filter. Unknown
// filters behave like FilterAll.
func (f Filter) Keep(qty int) bool {
	switch f {
	case FilterInStock:
		return qty > 0
	case FilterOutOfStock:
		return qty == 0
	case FilterLowStock:
		// Exactly one can left; two or more is never low.
		return qty == 1
	default:
		return true
	}
}

// Next returns the following filter in cycle order.
func (f Filter) Next() Filter {
	switch f.normalize() {
	case FilterAll:
		return FilterInStock
	case FilterInStock:
		return FilterOutOfStock
	case FilterOutOfStock:
		return FilterLowStock
	default:
		return FilterAll
	}
}

// String returns the canonical name used in prefs and flags.
func (f Filter) String() string {
	switch f {
	case FilterInStock:
		return "in_stock"
	case FilterOutOfStock:
		return "out_of_stock"
	case FilterLowStock:
		return "low_stock"
	default:
		return "all"
	}
}

// Label returns the display label.
func (f Filter) Label() string {
	switch f {
	case FilterInStock:
		return "In Stock"
	case FilterOutOfStock:
		return "Out of Stock"
	case FilterLowStock:
		return "Low Stock"
	default:
		return "All"
	}
}

func (f Filter) normalize() Filter {
	switch f {
	case FilterInStock, FilterOutOfStock, FilterLowStock:
		return f
	default:
		return FilterAll
	}
}

// ParseFilter accepts canonical names, the legacy web values
// (tutti, esauriti, scarsi) and the single-letter shortcuts a/s/e/l.
// Anything else is FilterAll.
func ParseFilter(s string) Filter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in_stock", "in-stock", "instock", "s":
		return FilterInStock
	case "out_of_stock", "out-of-stock", "out", "esauriti", "e":
		return FilterOutOfStock
	case "low_stock", "low-stock", "low", "scarsi", "l":
		return FilterLowStock
	default:
		return FilterAll
	}
}
