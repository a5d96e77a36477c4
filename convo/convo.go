// Package convo normalizes one raw export record into a canonical
// core.Conversation, reconciling the two incompatible message
// representations found in exports: a flat ordered list, and a mapping tree
// linearized by timestamp.
package convo

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sonnes/parashu/core"
	"github.com/sonnes/parashu/export"
	"github.com/tidwall/gjson"
)

// createdKeys are probed in order for the conversation start time.
var createdKeys = []string{"create_time", "created_at", "created", "start_time"}

// timeLayouts are tried in order against string timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Normalize converts one raw record into a canonical Conversation with an
// ordered, contiguously indexed message sequence. Records carrying neither a
// flat message list nor a mapping tree fail with a SchemaError.
func Normalize(rec export.Record) (*core.Conversation, error) {
	c := &core.Conversation{
		ID:    resolveID(rec),
		Title: resolveTitle(rec),
	}

	start, ok := resolveStartTime(rec)
	if !ok {
		// Wall clock stands in so date/time filename tokens stay usable,
		// but StartTime stays nil to keep the guess observable.
		log.Warn("conversation start time not parseable, using current time for date/time",
			"conversation", c.ID)
		start = time.Now()
	} else {
		t := start
		c.StartTime = &t
	}
	c.Date = start.Format("2006-01-02")
	c.Time = start.Format("15-04-05")

	switch {
	case rec.Get("messages").IsArray():
		c.Messages = flatMessages(rec.Get("messages"))
	case rec.Get("mapping").IsObject():
		c.Messages = treeMessages(rec.Get("mapping"))
	default:
		return nil, &core.SchemaError{
			Reason: "expected 'messages' (list) or 'mapping' (object) in the conversation record",
		}
	}

	return c, nil
}

func resolveID(rec export.Record) string {
	for _, key := range []string{"id", "conversation_id"} {
		if v := rec.Get(key); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return core.UnknownID
}

func resolveTitle(rec export.Record) string {
	if t := rec.Get("title").String(); t != "" {
		return t
	}
	return core.UntitledTitle
}

func resolveStartTime(rec export.Record) (time.Time, bool) {
	for _, key := range createdKeys {
		v := rec.Get(key)
		if !v.Exists() {
			continue
		}
		if v.Type == gjson.Number {
			return epochTime(v.Float()), true
		}
		if v.Type == gjson.String {
			for _, layout := range timeLayouts {
				if t, err := time.Parse(layout, v.String()); err == nil {
					return t, true
				}
			}
		}
	}
	return time.Time{}, false
}

// flatMessages keeps a flat list in source order, decorating each entry with
// a contiguous index and the export's own message id.
func flatMessages(list gjson.Result) []core.Message {
	var messages []core.Message
	list.ForEach(func(_, entry gjson.Result) bool {
		m := core.Message{
			Role:       entry.Get("role").String(),
			Content:    contentText(entry),
			Timestamp:  timestampOf(entry),
			OriginalID: originalID(entry),
			Index:      len(messages),
		}
		messages = append(messages, m)
		return true
	})
	return messages
}

// treeMessages extracts each mapping node's embedded message, then
// linearizes by ascending timestamp. Missing timestamps sort as zero and
// ties keep the source encounter order of the mapping.
func treeMessages(mapping gjson.Result) []core.Message {
	var messages []core.Message
	mapping.ForEach(func(nodeID, node gjson.Result) bool {
		msg := node.Get("message")
		if !msg.IsObject() {
			return true
		}

		role := msg.Get("author.role").String()
		if role == "" {
			role = core.RoleUser
		}

		var ts *float64
		if v := msg.Get("create_time"); v.Type == gjson.Number {
			f := v.Float()
			ts = &f
		}

		origID := msg.Get("id").String()
		if origID == "" {
			origID = nodeID.String()
		}

		messages = append(messages, core.Message{
			Role:       role,
			Content:    contentText(msg),
			Timestamp:  ts,
			OriginalID: origID,
		})
		return true
	})

	sort.SliceStable(messages, func(i, j int) bool {
		return tsOrZero(messages[i]) < tsOrZero(messages[j])
	})
	for i := range messages {
		messages[i].Index = i
	}
	return messages
}

// contentText assembles a message's textual content: a bare string is used
// verbatim; a structured object joins its string parts; a list joins its
// string items; a dedicated text field is the last resort.
func contentText(msg gjson.Result) string {
	content := msg.Get("content")
	switch {
	case content.Type == gjson.String:
		return content.String()
	case content.IsObject():
		return joinStrings(content.Get("parts"))
	case content.IsArray():
		return joinStrings(content)
	}
	if text := msg.Get("text"); text.Type == gjson.String {
		return text.String()
	}
	return ""
}

func joinStrings(list gjson.Result) string {
	if !list.IsArray() {
		return ""
	}
	var parts []string
	list.ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.String {
			parts = append(parts, v.String())
		}
		return true
	})
	return strings.Join(parts, "\n")
}

// timestampOf resolves a flat entry's timestamp: numeric epoch first, then
// the string layouts.
func timestampOf(msg gjson.Result) *float64 {
	for _, key := range []string{"create_time", "created_at", "timestamp"} {
		v := msg.Get(key)
		if !v.Exists() {
			continue
		}
		if v.Type == gjson.Number {
			f := v.Float()
			return &f
		}
		if v.Type == gjson.String {
			for _, layout := range timeLayouts {
				if t, err := time.Parse(layout, v.String()); err == nil {
					f := float64(t.Unix())
					return &f
				}
			}
		}
	}
	return nil
}

func originalID(msg gjson.Result) string {
	for _, key := range []string{"id", "message_id", "uuid"} {
		if v := msg.Get(key); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

func tsOrZero(m core.Message) float64 {
	if m.Timestamp == nil {
		return 0
	}
	return *m.Timestamp
}

func epochTime(sec float64) time.Time {
	return time.Unix(int64(sec), int64((sec-float64(int64(sec)))*1e9))
}
