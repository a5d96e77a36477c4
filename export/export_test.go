package export

import (
	"testing"
	"time"

	"github.com/sonnes/parashu/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int
		checks func(t *testing.T, records []Record)
	}{
		{
			name:  "conversations key object",
			input: `{"conversations": [{"title": "first"}, {"title": "second"}]}`,
			want:  2,
			checks: func(t *testing.T, records []Record) {
				assert.Equal(t, "first", records[0].Title())
				assert.Equal(t, "second", records[1].Title())
			},
		},
		{
			name:  "bare list",
			input: `[{"title": "only"}]`,
			want:  1,
		},
		{
			name:  "list under an unrecognized key",
			input: `{"threads": [{"mapping": {}}, {"mapping": {}}]}`,
			want:  2,
		},
		{
			name: "first plausible list wins in source order",
			input: `{"junk": [1, 2], "threads": [{"messages": []}], "more": [{"title": "late"}]}`,
			want: 1,
			checks: func(t *testing.T, records []Record) {
				assert.True(t, records[0].Get("messages").Exists())
			},
		},
		{
			name: "jsonl one object per line",
			input: `{"conversation_id": "a", "messages": []}
{"not": "a conversation"}

{"title": "b", "mapping": {}}`,
			want: 2,
			checks: func(t *testing.T, records []Record) {
				assert.Equal(t, "a", records[0].ID())
				assert.Equal(t, "b", records[1].Title())
			},
		},
		{
			name: "jsonl skips unparseable lines",
			input: `{"title": "good"}
not json at all`,
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Load([]byte(tt.input))
			require.NoError(t, err)
			assert.Len(t, records, tt.want)
			if tt.checks != nil {
				tt.checks(t, records)
			}
		})
	}
}

func TestLoadFormatError(t *testing.T) {
	for _, input := range []string{
		"",
		"not json",
		`{"no": "conversations here"}`,
		`42`,
	} {
		_, err := Load([]byte(input))
		var fe *core.FormatError
		assert.ErrorAs(t, err, &fe, "input: %q", input)
	}
}

func TestParse(t *testing.T) {
	rec, err := Parse([]byte(`{"id": "c1", "title": "solo", "messages": []}`))
	require.NoError(t, err)
	assert.Equal(t, "solo", rec.Title())

	_, err = Parse([]byte(`[1, 2]`))
	var fe *core.FormatError
	assert.ErrorAs(t, err, &fe)
}

func TestRecordID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "conversation_id first", input: `{"conversation_id": "a", "id": "b"}`, want: "a"},
		{name: "id second", input: `{"id": "b", "uuid": "c"}`, want: "b"},
		{name: "uuid third", input: `{"uuid": "c"}`, want: "c"},
		{name: "cid last", input: `{"cid": "d"}`, want: "d"},
		{name: "none", input: `{"title": "x"}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.ID())
		})
	}
}

func TestRecordStartTime(t *testing.T) {
	t.Run("epoch field", func(t *testing.T) {
		rec, err := Parse([]byte(`{"create_time": 1755160200, "messages": []}`))
		require.NoError(t, err)
		got, ok := rec.StartTime()
		require.True(t, ok)
		assert.Equal(t, int64(1755160200), got.Unix())
	})

	t.Run("iso field", func(t *testing.T) {
		rec, err := Parse([]byte(`{"created_at": "2025-08-14T09:30:00Z", "messages": []}`))
		require.NoError(t, err)
		got, ok := rec.StartTime()
		require.True(t, ok)
		assert.Equal(t, time.Date(2025, 8, 14, 9, 30, 0, 0, time.UTC), got.UTC())
	})

	t.Run("earliest message timestamp fallback", func(t *testing.T) {
		rec, err := Parse([]byte(`{"messages": [
			{"create_time": 300},
			{"create_time": 100},
			{"create_time": 200}
		]}`))
		require.NoError(t, err)
		got, ok := rec.StartTime()
		require.True(t, ok)
		assert.Equal(t, int64(100), got.Unix())
	})

	t.Run("mapping node timestamps", func(t *testing.T) {
		rec, err := Parse([]byte(`{"mapping": {
			"n1": {"message": {"create_time": 50}},
			"n2": {"message": {"create_time": 25}}
		}}`))
		require.NoError(t, err)
		got, ok := rec.StartTime()
		require.True(t, ok)
		assert.Equal(t, int64(25), got.Unix())
	})

	t.Run("unresolvable", func(t *testing.T) {
		rec, err := Parse([]byte(`{"title": "no times", "messages": [{"content": "hi"}]}`))
		require.NoError(t, err)
		_, ok := rec.StartTime()
		assert.False(t, ok)
	})
}

func TestRecordMessagesSourceOrder(t *testing.T) {
	rec, err := Parse([]byte(`{"mapping": {
		"z-node": {"message": {"content": "first in source"}},
		"a-node": {"message": {"content": "second in source"}},
		"skip": {"message": null}
	}}`))
	require.NoError(t, err)

	msgs := rec.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "first in source", msgs[0].Get("content").String())
	assert.Equal(t, "second in source", msgs[1].Get("content").String())
}
