package convo

import (
	"testing"

	"github.com/sonnes/parashu/core"
	"github.com/sonnes/parashu/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, doc string) export.Record {
	t.Helper()
	rec, err := export.Parse([]byte(doc))
	require.NoError(t, err)
	return rec
}

func TestNormalizeFlatList(t *testing.T) {
	rec := parse(t, `{
		"id": "conv-1",
		"title": "Flat",
		"create_time": 1755160200,
		"messages": [
			{"id": "m0", "role": "user", "content": "hello"},
			{"message_id": "m1", "role": "assistant", "content": "hi"},
			{"role": "user", "content": "bye"}
		]
	}`)

	c, err := Normalize(rec)
	require.NoError(t, err)

	assert.Equal(t, "conv-1", c.ID)
	assert.Equal(t, "Flat", c.Title)
	require.NotNil(t, c.StartTime)

	require.Len(t, c.Messages, 3)
	for i, m := range c.Messages {
		assert.Equal(t, i, m.Index, "indices are contiguous from zero")
	}
	assert.Equal(t, "m0", c.Messages[0].OriginalID)
	assert.Equal(t, "m1", c.Messages[1].OriginalID, "message_id is an id-like key")
	assert.Empty(t, c.Messages[2].OriginalID)
	assert.Equal(t, "hello", c.Messages[0].Content)
}

func TestNormalizeMappingTree(t *testing.T) {
	rec := parse(t, `{
		"conversation_id": "tree-1",
		"title": "Tree",
		"mapping": {
			"n-a": {"message": {"id": "msg-a", "create_time": 30, "author": {"role": "assistant"},
				"content": {"parts": ["late", "reply"]}}},
			"n-b": {"message": {"create_time": 10, "content": "first"}},
			"n-c": {"message": {"create_time": 20, "author": {"role": "user"}, "content": "middle"}},
			"root": {"message": null}
		}
	}`)

	c, err := Normalize(rec)
	require.NoError(t, err)

	assert.Equal(t, "tree-1", c.ID)
	require.Len(t, c.Messages, 3)

	// Linearized by ascending timestamp: 10, 20, 30.
	assert.Equal(t, "first", c.Messages[0].Content)
	assert.Equal(t, "middle", c.Messages[1].Content)
	assert.Equal(t, "late\nreply", c.Messages[2].Content, "structured parts joined")

	assert.Equal(t, []int{0, 1, 2}, []int{c.Messages[0].Index, c.Messages[1].Index, c.Messages[2].Index})
	assert.Equal(t, core.RoleUser, c.Messages[0].Role, "role defaults to user")
	assert.Equal(t, core.RoleAssistant, c.Messages[2].Role)
	assert.Equal(t, "n-b", c.Messages[0].OriginalID, "node id stands in for a missing message id")
	assert.Equal(t, "msg-a", c.Messages[2].OriginalID)
}

func TestNormalizeMappingTiesKeepSourceOrder(t *testing.T) {
	rec := parse(t, `{
		"id": "ties",
		"mapping": {
			"n1": {"message": {"content": "one"}},
			"n2": {"message": {"content": "two", "create_time": 5}},
			"n3": {"message": {"content": "three"}}
		}
	}`)

	c, err := Normalize(rec)
	require.NoError(t, err)

	// Missing timestamps sort as zero, before create_time 5, and keep
	// their encounter order relative to each other.
	require.Len(t, c.Messages, 3)
	assert.Equal(t, "one", c.Messages[0].Content)
	assert.Equal(t, "three", c.Messages[1].Content)
	assert.Equal(t, "two", c.Messages[2].Content)
}

func TestNormalizeSchemaError(t *testing.T) {
	rec := parse(t, `{"id": "broken", "title": "no messages"}`)

	_, err := Normalize(rec)

	var se *core.SchemaError
	assert.ErrorAs(t, err, &se)
}

func TestNormalizeDefaults(t *testing.T) {
	rec := parse(t, `{"messages": []}`)

	c, err := Normalize(rec)
	require.NoError(t, err)

	assert.Equal(t, core.UnknownID, c.ID)
	assert.Equal(t, core.UntitledTitle, c.Title)
	assert.Nil(t, c.StartTime, "unparseable start time stays observable as nil")
	assert.NotEmpty(t, c.Date, "wall clock stands in for filename tokens")
	assert.NotEmpty(t, c.Time)
}

func TestNormalizeStringTimestamp(t *testing.T) {
	rec := parse(t, `{
		"id": "iso",
		"created_at": "2025-08-14T09:30:00Z",
		"messages": []
	}`)

	c, err := Normalize(rec)
	require.NoError(t, err)

	require.NotNil(t, c.StartTime)
	assert.Equal(t, "2025-08-14", c.Date)
	assert.Equal(t, "09-30-00", c.Time)
}

func TestNormalizeFlatContentShapes(t *testing.T) {
	rec := parse(t, `{
		"id": "shapes",
		"messages": [
			{"role": "user", "content": {"parts": ["a", "b"]}},
			{"role": "user", "content": ["x", "y"]},
			{"role": "user", "text": "from text field"},
			{"role": "user"}
		]
	}`)

	c, err := Normalize(rec)
	require.NoError(t, err)

	require.Len(t, c.Messages, 4)
	assert.Equal(t, "a\nb", c.Messages[0].Content)
	assert.Equal(t, "x\ny", c.Messages[1].Content)
	assert.Equal(t, "from text field", c.Messages[2].Content)
	assert.Empty(t, c.Messages[3].Content)
}

func TestNormalizeFlatTimestamps(t *testing.T) {
	rec := parse(t, `{
		"id": "ts",
		"messages": [
			{"role": "user", "content": "a", "create_time": 12.5},
			{"role": "user", "content": "b", "timestamp": "2025-08-14T09:30:00Z"},
			{"role": "user", "content": "c"}
		]
	}`)

	c, err := Normalize(rec)
	require.NoError(t, err)

	require.NotNil(t, c.Messages[0].Timestamp)
	assert.Equal(t, 12.5, *c.Messages[0].Timestamp)
	require.NotNil(t, c.Messages[1].Timestamp)
	assert.Nil(t, c.Messages[2].Timestamp)
}
