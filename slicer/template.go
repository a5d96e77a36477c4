package slicer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sonnes/parashu/core"
)

var tokenRE = regexp.MustCompile(`\{([a-zA-Z_]+)\}`)

// RenderFilename substitutes {token} placeholders in the template. An
// unrecognized token is a FormatError, not a silent passthrough.
func RenderFilename(template string, tokens map[string]string) (string, error) {
	var unknown string
	out := tokenRE.ReplaceAllStringFunc(template, func(m string) string {
		key := m[1 : len(m)-1]
		v, ok := tokens[key]
		if !ok {
			if unknown == "" {
				unknown = key
			}
			return m
		}
		return v
	})
	if unknown != "" {
		return "", &core.FormatError{Reason: "unknown filename template token {" + unknown + "}"}
	}
	return out, nil
}

var (
	whitespaceRE = regexp.MustCompile(`\s+`)
	unsafeRE     = regexp.MustCompile(`[^A-Za-z0-9\-_]+`)
)

// Slugify makes text filesystem-safe: whitespace collapses to hyphens,
// everything outside [A-Za-z0-9-_] is stripped, and the result is capped at
// maxLen. An empty result becomes "slice".
func Slugify(text string, maxLen int) string {
	s := whitespaceRE.ReplaceAllString(strings.TrimSpace(text), "-")
	s = unsafeRE.ReplaceAllString(s, "")
	s = strings.Trim(s, "-_")
	if maxLen > 0 && len(s) > maxLen {
		s = strings.Trim(s[:maxLen], "-_")
	}
	if s == "" {
		return "slice"
	}
	return s
}

func itoa(n int) string { return strconv.Itoa(n) }
