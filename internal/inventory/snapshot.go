package inventory

// MaxQuantity bounds single-color edits made through the UI and CLI.
const MaxQuantity = 999

// Snapshot maps a color code to its on-hand quantity. A missing code means
// zero. Codes unknown to the catalog are kept but never displayed.
type Snapshot map[string]int

// Get returns the quantity for code, zero when absent.
func (s Snapshot) Get(code string) int {
	return s[code]
}

// Clone returns an independent copy. A nil snapshot clones to an empty one.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for code, qty := range s {
		out[code] = qty
	}
	return out
}

// Clamp bounds q to [0, MaxQuantity].
func Clamp(q int) int {
	if q < 0 {
		return 0
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// Stats summarizes stock levels over a set of catalog codes.
type Stats struct {
	TotalColors   int
	InStock       int
	LowStock      int
	OutOfStock    int
	TotalQuantity int
}

// StatsFor computes Stats for codes against s. Codes in s that are not in
// codes do not count.
func StatsFor(codes []string, s Snapshot) Stats {
	st := Stats{TotalColors: len(codes)}
	for _, code := range codes {
		qty := s.Get(code)
		st.TotalQuantity += qty
		switch {
		case qty == 0:
			st.OutOfStock++
		case qty == 1:
			st.InStock++
			st.LowStock++
		default:
			st.InStock++
		}
	}
	return st
}
