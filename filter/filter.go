// Package filter evaluates extraction predicates against raw conversation
// records. Predicates are conjunctive: a record must satisfy every one that
// is set.
package filter

import (
	"strings"
	"time"

	"github.com/sonnes/parashu/export"
	"github.com/tidwall/gjson"
)

// Filter holds the optional predicates for the extraction flow. Zero-value
// fields are inactive.
type Filter struct {
	// Title matches case-insensitive substring containment.
	Title string

	// ID matches exact equality against the record's first id-like key.
	ID string

	// Snippet matches message content anywhere in the conversation.
	Snippet *SnippetMatcher

	// After and Before bound the conversation start time. A record without
	// a resolvable start time fails any date predicate.
	After  *time.Time
	Before *time.Time
}

// Matches reports whether the record satisfies every active predicate.
func (f *Filter) Matches(rec export.Record) bool {
	if f.Title != "" {
		if !strings.Contains(strings.ToLower(rec.Title()), strings.ToLower(f.Title)) {
			return false
		}
	}

	if f.ID != "" && f.ID != rec.ID() {
		return false
	}

	if f.After != nil || f.Before != nil {
		start, ok := rec.StartTime()
		if !ok {
			return false
		}
		if f.After != nil && start.Before(*f.After) {
			return false
		}
		if f.Before != nil && start.After(*f.Before) {
			return false
		}
	}

	if f.Snippet != nil {
		if !f.snippetMatches(rec) {
			return false
		}
	}

	return true
}

func (f *Filter) snippetMatches(rec export.Record) bool {
	for _, msg := range rec.Messages() {
		for _, chunk := range contentChunks(msg) {
			if f.Snippet.MatchString(chunk) {
				return true
			}
		}
	}
	return false
}

// contentChunks collects the searchable strings of one raw message, in
// priority order: structured content parts, string values of a structured
// content object (including string items of list values), list-of-strings
// content, bare-string content, then a dedicated text field. The message's
// full serialized form is the last resort.
func contentChunks(msg gjson.Result) []string {
	var chunks []string
	content := msg.Get("content")

	switch {
	case content.IsObject():
		if parts := content.Get("parts"); parts.IsArray() {
			parts.ForEach(func(_, p gjson.Result) bool {
				chunks = append(chunks, p.String())
				return true
			})
		}
		content.ForEach(func(_, v gjson.Result) bool {
			switch {
			case v.Type == gjson.String:
				chunks = append(chunks, v.String())
			case v.IsArray():
				v.ForEach(func(_, item gjson.Result) bool {
					if item.Type == gjson.String {
						chunks = append(chunks, item.String())
					}
					return true
				})
			}
			return true
		})
	case content.IsArray():
		content.ForEach(func(_, item gjson.Result) bool {
			if item.Type == gjson.String {
				chunks = append(chunks, item.String())
			}
			return true
		})
	case content.Type == gjson.String:
		chunks = append(chunks, content.String())
	}

	if text := msg.Get("text"); text.Type == gjson.String {
		chunks = append(chunks, text.String())
	}

	if len(chunks) == 0 {
		chunks = append(chunks, msg.Raw)
	}
	return chunks
}
