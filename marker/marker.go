// Package marker derives split ranges from inline [[SPLIT]] annotations in
// message content, so a conversation can carry its own cut points.
package marker

import (
	"regexp"
	"strings"

	"github.com/sonnes/parashu/core"
)

// splitRE matches [[SPLIT]], [[SPLIT HERE]] and [[SPLIT: name]] markers,
// case-insensitive. The optional capture is the name of the next slice.
var splitRE = regexp.MustCompile(`(?i)\[\[\s*SPLIT(?:\s*:\s*([^\]]+))?\s*\]\]`)

// Mark is one marker found at a canonical message index. Name applies to
// the segment that follows the marker.
type Mark struct {
	Index int
	Name  string
}

// Find scans message content for split markers. At most one marker is
// honored per message (the first match).
func Find(msgs []core.Message) []Mark {
	var marks []Mark
	for _, m := range msgs {
		groups := splitRE.FindStringSubmatch(m.Content)
		if groups == nil {
			continue
		}
		marks = append(marks, Mark{Index: m.Index, Name: strings.TrimSpace(groups[1])})
	}
	return marks
}

// Ranges converts marks over an n-message sequence into ranges. Marker
// messages belong to no range. The segment before a marker takes the
// previous marker's name (or defaultName when none is pending); the final
// segment runs to the end under the last marker's name. Without markers the
// whole sequence is one range named defaultName.
func Ranges(n int, marks []Mark, defaultName string) []core.Range {
	if len(marks) == 0 {
		return []core.Range{{Start: 0, End: n, Name: defaultName}}
	}

	var ranges []core.Range
	prev := 0
	pending := ""
	for _, mk := range marks {
		if mk.Index > prev {
			ranges = append(ranges, core.Range{Start: prev, End: mk.Index, Name: nameOr(pending, defaultName)})
		}
		prev = mk.Index + 1
		pending = mk.Name
	}
	if prev < n {
		ranges = append(ranges, core.Range{Start: prev, End: n, Name: nameOr(pending, defaultName)})
	}
	return ranges
}

func nameOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
