package filter

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

// SnippetMatcher matches text against a user-supplied pattern. Compilation
// is attempted once: a valid pattern becomes a case-insensitive regex, an
// invalid one downgrades to case-insensitive literal substring search.
type SnippetMatcher struct {
	re      *regexp.Regexp
	literal string
}

// NewSnippetMatcher compiles the pattern, falling back to literal mode when
// it is not a valid regular expression.
func NewSnippetMatcher(pattern string) *SnippetMatcher {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		log.Warn("snippet pattern is not a valid regex, matching as literal text",
			"pattern", pattern)
		return &SnippetMatcher{literal: strings.ToLower(pattern)}
	}
	return &SnippetMatcher{re: re}
}

// MatchString reports whether s matches the pattern.
func (m *SnippetMatcher) MatchString(s string) bool {
	if m.re != nil {
		return m.re.MatchString(s)
	}
	return strings.Contains(strings.ToLower(s), m.literal)
}
