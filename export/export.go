// Package export detects the shape of a chat-export document and exposes its
// raw conversation records. Records stay in source form so extraction can
// round-trip the chosen conversation unchanged.
package export

import (
	"strings"
	"time"

	"github.com/sonnes/parashu/core"
	"github.com/tidwall/gjson"
)

// conversationKeys identify a JSONL line as a conversation object.
var conversationKeys = []string{"conversation_id", "title", "mapping", "messages"}

// idKeys are probed in order to resolve a record's identity.
var idKeys = []string{"conversation_id", "id", "uuid", "cid"}

// Record is one raw conversation object from an export.
type Record struct {
	raw gjson.Result
}

// Load detects the export shape and returns its conversation records in
// source order. Three shapes are recognized: an object with a list of
// conversation objects (under "conversations" or any other key, first match
// wins), a bare list, and JSONL with one conversation object per line.
func Load(data []byte) ([]Record, error) {
	text := strings.TrimSpace(string(data))

	if gjson.Valid(text) {
		if records := fromDocument(gjson.Parse(text)); len(records) > 0 {
			return records, nil
		}
	}

	if records := fromLines(text); len(records) > 0 {
		return records, nil
	}

	return nil, &core.FormatError{
		Reason: "could not detect a supported export format: expected a list of conversations, " +
			"a {\"conversations\": [...]} object, or JSONL with one conversation per line",
	}
}

// Parse wraps a single already-isolated conversation document.
func Parse(data []byte) (Record, error) {
	text := strings.TrimSpace(string(data))
	if !gjson.Valid(text) {
		return Record{}, &core.FormatError{Reason: "input is not valid JSON"}
	}
	doc := gjson.Parse(text)
	if !doc.IsObject() {
		return Record{}, &core.FormatError{Reason: "expected a single conversation object"}
	}
	return Record{raw: doc}, nil
}

// fromDocument extracts records from a whole-document parse.
func fromDocument(doc gjson.Result) []Record {
	if doc.IsObject() {
		if v := doc.Get("conversations"); v.IsArray() {
			return toRecords(v)
		}
	}
	if doc.IsArray() {
		return toRecords(doc)
	}
	if doc.IsObject() {
		// Conversations may hide under an unrecognized key. First list of
		// plausible conversation objects wins, in source order.
		var found gjson.Result
		doc.ForEach(func(_, v gjson.Result) bool {
			if v.IsArray() && plausibleList(v) {
				found = v
				return false
			}
			return true
		})
		if found.Exists() {
			return toRecords(found)
		}
	}
	return nil
}

// fromLines reinterprets the text as one JSON object per non-blank line,
// keeping lines that parse and carry a conversation-identifying key.
func fromLines(text string) []Record {
	var records []Record
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !gjson.Valid(line) {
			continue
		}
		obj := gjson.Parse(line)
		if !obj.IsObject() {
			continue
		}
		for _, key := range conversationKeys {
			if obj.Get(key).Exists() {
				records = append(records, Record{raw: obj})
				break
			}
		}
	}
	return records
}

// plausibleList reports whether the list's first element looks like a
// conversation object.
func plausibleList(list gjson.Result) bool {
	first := list.Get("0")
	if !first.IsObject() {
		return false
	}
	return first.Get("title").Exists() || first.Get("mapping").Exists() || first.Get("messages").Exists()
}

func toRecords(list gjson.Result) []Record {
	var records []Record
	list.ForEach(func(_, v gjson.Result) bool {
		records = append(records, Record{raw: v})
		return true
	})
	return records
}

// Raw returns the record's original JSON text.
func (r Record) Raw() string { return r.raw.Raw }

// Get looks up a path within the record.
func (r Record) Get(path string) gjson.Result { return r.raw.Get(path) }

// ID returns the first present id-like value, or "".
func (r Record) ID() string {
	for _, key := range idKeys {
		if v := r.raw.Get(key); v.Exists() {
			return v.String()
		}
	}
	return ""
}

// Title returns the record's title, or "".
func (r Record) Title() string { return r.raw.Get("title").String() }

// Messages yields the record's raw message objects in source order, from
// either a flat message list or the embedded messages of a mapping tree.
func (r Record) Messages() []gjson.Result {
	if msgs := r.raw.Get("messages"); msgs.IsArray() {
		var out []gjson.Result
		msgs.ForEach(func(_, v gjson.Result) bool {
			out = append(out, v)
			return true
		})
		return out
	}
	if mapping := r.raw.Get("mapping"); mapping.IsObject() {
		var out []gjson.Result
		mapping.ForEach(func(_, node gjson.Result) bool {
			if msg := node.Get("message"); msg.IsObject() {
				out = append(out, msg)
			}
			return true
		})
		return out
	}
	return nil
}

// StartTime resolves a representative start time for the record: an explicit
// conversation-level field first, else the earliest message timestamp.
func (r Record) StartTime() (time.Time, bool) {
	for _, key := range []string{"create_time", "created_at", "start_time"} {
		if v := r.raw.Get(key); v.Exists() {
			if t, ok := timeFromValue(v); ok {
				return t, true
			}
		}
	}

	var earliest time.Time
	var found bool
	for _, msg := range r.Messages() {
		for _, key := range []string{"create_time", "created_at", "timestamp"} {
			v := msg.Get(key)
			if !v.Exists() {
				continue
			}
			t, ok := timeFromValue(v)
			if ok && (!found || t.Before(earliest)) {
				earliest = t
				found = true
			}
			break
		}
	}
	return earliest, found
}

// timeFromValue interprets a JSON value as a timestamp: numeric epoch
// seconds, or an ISO-8601 string.
func timeFromValue(v gjson.Result) (time.Time, bool) {
	if v.Type == gjson.Number {
		sec := v.Float()
		return time.Unix(int64(sec), int64((sec-float64(int64(sec)))*1e9)), true
	}
	if v.Type == gjson.String {
		s := v.String()
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
