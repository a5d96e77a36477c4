package core

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Slice is a self-contained sub-document cut from one conversation. Its
// serialized bytes are the unit of integrity checking.
type Slice struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	SliceName  string   `json:"slice_name"`
	Sequence   int      `json:"sequence"` // 1-based
	Tags       []string `json:"tags"`
	HumanTitle string   `json:"human_title,omitempty"`

	// RangeIndices holds the inclusive [start, end] canonical indices the
	// slice covers.
	RangeIndices [2]int    `json:"range_indices"`
	Messages     []Message `json:"messages"`
}

// NewSlice cuts one range out of a conversation. The range is assumed
// already clamped to the message window.
func NewSlice(c *Conversation, r Range, sequence int, tags []string) Slice {
	msgs := make([]Message, r.End-r.Start)
	copy(msgs, c.Messages[r.Start:r.End])
	if tags == nil {
		tags = []string{}
	}
	return Slice{
		ID:           c.ID,
		Title:        c.Title,
		Date:         c.Date,
		Time:         c.Time,
		SliceName:    r.Name,
		Sequence:     sequence,
		Tags:         tags,
		RangeIndices: [2]int{r.Start, r.End - 1},
		Messages:     msgs,
	}
}

// Serialize renders the slice as deterministic two-space-indented JSON.
// Struct field order fixes the key order, so identical content always
// yields identical bytes.
func (s Slice) Serialize() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Checksum returns the hex sha256 digest of the serialized bytes.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// titleMaxLen caps derived human titles.
const titleMaxLen = 80

// DeriveTitle extracts a human title from the slice: the first non-empty
// line of the first user message, falling back to the first non-empty
// assistant message, else "Slice".
func DeriveTitle(msgs []Message) string {
	for _, role := range []string{RoleUser, RoleAssistant} {
		for _, m := range msgs {
			if m.Role != role {
				continue
			}
			text := strings.TrimSpace(m.Content)
			if text == "" {
				continue
			}
			line, _, _ := strings.Cut(text, "\n")
			if len(line) > titleMaxLen {
				line = line[:titleMaxLen]
			}
			return line
		}
	}
	return "Slice"
}

// ManifestEntry records one produced slice in the manifest.
type ManifestEntry struct {
	File               string `json:"file"`
	SliceName          string `json:"slice_name"`
	Sequence           int    `json:"sequence"`
	ApproxMessageRange [2]int `json:"approx_message_range"`
	HumanTitle         string `json:"human_title,omitempty"`
	Checksum           string `json:"checksum,omitempty"`
}
