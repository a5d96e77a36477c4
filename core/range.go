package core

import "fmt"

// Range is a half-open window [Start, End) over canonical message indices.
type Range struct {
	Start int
	End   int
	Name  string
}

// NewRange builds a range from resolved inclusive boundaries. An inverted
// pair is swapped, not rejected, and the inclusive end becomes exclusive.
func NewRange(start, end int, name string) Range {
	if end < start {
		start, end = end, start
	}
	return Range{Start: start, End: end + 1, Name: name}
}

// Clamp restricts ranges to [0, n] and discards any that collapse to an
// empty window. Dropped ranges are returned separately so callers can
// surface them.
func Clamp(ranges []Range, n int) (kept, dropped []Range) {
	for _, r := range ranges {
		r.Start = clampIndex(r.Start, n)
		r.End = clampIndex(r.End, n)
		if r.End <= r.Start {
			dropped = append(dropped, r)
			continue
		}
		kept = append(kept, r)
	}
	return kept, dropped
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// DisambiguateNames suffixes repeated slice names in range order: the first
// occurrence keeps the bare name, later ones become "name-2", "name-3", …
func DisambiguateNames(ranges []Range) []Range {
	counts := make(map[string]int, len(ranges))
	out := make([]Range, len(ranges))
	for i, r := range ranges {
		counts[r.Name]++
		if c := counts[r.Name]; c > 1 {
			r.Name = fmt.Sprintf("%s-%d", r.Name, c)
		}
		out[i] = r
	}
	return out
}
