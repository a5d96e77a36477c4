// Package core defines the canonical conversation model — the normalized,
// index-addressable message sequence that all boundary resolution and slice
// assembly operate on.
package core

import "time"

// Conversation is one chat thread normalized from an export record.
// Immutable once built.
type Conversation struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"` // YYYY-MM-DD
	Time  string `json:"time"` // HH-MM-SS

	// StartTime is the resolved conversation start. Nil when no timestamp
	// field parsed and Date/Time were guessed from the wall clock.
	StartTime *time.Time `json:"-"`

	Messages []Message `json:"messages"`
}

// UnknownID is the conversation identity sentinel used when the export
// carries no id-like key.
const UnknownID = "unknown_id"

// UntitledTitle is the placeholder for exports without a title field.
const UntitledTitle = "Untitled Conversation"

// Message is a single entry in a conversation, normalized from either a flat
// message list or a mapping-tree node.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`

	// Timestamp is epoch seconds from the source entry, when present.
	Timestamp *float64 `json:"timestamp,omitempty"`

	// OriginalID preserves the export's own identifier (message id or node
	// id) so id-based boundary tokens can be resolved back to Index.
	OriginalID string `json:"original_id,omitempty"`

	// Index is the canonical 0-based position assigned during normalization.
	Index int `json:"index"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
