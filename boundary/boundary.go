// Package boundary resolves user-specified cut points — integer indices or
// id:<msgid> references — into clamped, non-overlapping message ranges.
package boundary

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sonnes/parashu/core"
)

// ResolveToken maps one boundary token to a canonical message index. Tokens
// are either an integer or "id:<original-id>" looked up against OriginalID.
func ResolveToken(msgs []core.Message, token string) (int, error) {
	if needle, ok := strings.CutPrefix(token, "id:"); ok {
		for _, m := range msgs {
			if m.OriginalID != "" && m.OriginalID == needle {
				return m.Index, nil
			}
		}
		return 0, &core.NotFoundError{What: fmt.Sprintf("message id not found: %s", needle)}
	}

	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return 0, &core.TokenError{Token: token}
	}
	return n, nil
}

// ParseRange resolves one "start:end[:name]" spec into a half-open range.
// Start and end may each be an integer index or an "id:<msgid>" pair, so
// "id:abc:id:def:project" parses as expected. The boundary pair is
// inclusive; an inverted pair is swapped, not rejected. Colons in the name
// are preserved.
func ParseRange(spec string, msgs []core.Message) (core.Range, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 {
		return core.Range{}, &core.TokenError{Token: spec}
	}

	i := 0
	startTok, i, err := cutToken(parts, i, spec)
	if err != nil {
		return core.Range{}, err
	}
	if i >= len(parts) {
		return core.Range{}, &core.TokenError{Token: spec}
	}
	endTok, i, err := cutToken(parts, i, spec)
	if err != nil {
		return core.Range{}, err
	}

	var name string
	if i < len(parts) {
		name = strings.Join(parts[i:], ":")
	}

	start, err := ResolveToken(msgs, startTok)
	if err != nil {
		return core.Range{}, err
	}
	end, err := ResolveToken(msgs, endTok)
	if err != nil {
		return core.Range{}, err
	}

	return core.NewRange(start, end, name), nil
}

// cutToken consumes one boundary token from the colon-split parts, handling
// the two-part "id:<msgid>" form.
func cutToken(parts []string, i int, spec string) (string, int, error) {
	if parts[i] == "id" {
		if i+1 >= len(parts) {
			return "", i, &core.TokenError{Token: spec}
		}
		return "id:" + parts[i+1], i + 2, nil
	}
	return parts[i], i + 1, nil
}

// FromSplitAt builds consecutive ranges from a list of cut-point tokens.
// Cuts are resolved, deduplicated, sorted, and restricted to valid indices;
// each cut ends its segment inclusive of itself, and a trailing segment runs
// to the end when the final cut does not reach it. Optional names apply
// positionally; missing names fall back to defaultName.
func FromSplitAt(tokens []string, msgs []core.Message, names []string, defaultName string) ([]core.Range, error) {
	n := len(msgs)

	if len(tokens) == 0 {
		return []core.Range{{Start: 0, End: n, Name: nameAt(names, 0, defaultName)}}, nil
	}

	seen := make(map[int]bool, len(tokens))
	var cuts []int
	for _, tok := range tokens {
		idx, err := ResolveToken(msgs, tok)
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= n || seen[idx] {
			continue
		}
		seen[idx] = true
		cuts = append(cuts, idx)
	}
	sort.Ints(cuts)

	var ranges []core.Range
	prev := 0
	for i, cut := range cuts {
		ranges = append(ranges, core.Range{Start: prev, End: cut + 1, Name: nameAt(names, i, defaultName)})
		prev = cut + 1
	}
	if prev < n {
		ranges = append(ranges, core.Range{Start: prev, End: n, Name: nameAt(names, len(ranges), defaultName)})
	}
	return ranges, nil
}

func nameAt(names []string, i int, fallback string) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return fallback
}
