package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conversation(n int) *Conversation {
	c := &Conversation{
		ID:    "conv-1",
		Title: "Test Conversation",
		Date:  "2025-08-14",
		Time:  "09-30-00",
	}
	for i := 0; i < n; i++ {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		c.Messages = append(c.Messages, Message{Role: role, Content: "message", Index: i})
	}
	return c
}

func TestNewSlice(t *testing.T) {
	c := conversation(5)

	s := NewSlice(c, Range{Start: 1, End: 3, Name: "chat"}, 1, nil)

	assert.Equal(t, "conv-1", s.ID)
	assert.Equal(t, "chat", s.SliceName)
	assert.Equal(t, 1, s.Sequence)
	assert.Equal(t, [2]int{1, 2}, s.RangeIndices, "inclusive end index")
	require.Len(t, s.Messages, 2)
	assert.Equal(t, 1, s.Messages[0].Index)
	assert.Equal(t, 2, s.Messages[1].Index)
	assert.NotNil(t, s.Tags, "nil tags become an empty list")
}

func TestSerializeDeterministic(t *testing.T) {
	c := conversation(4)
	s := NewSlice(c, Range{Start: 0, End: 4, Name: "whole"}, 1, []string{"project"})

	first, err := s.Serialize()
	require.NoError(t, err)
	second, err := s.Serialize()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, Checksum(first), Checksum(second), "identical content yields identical digest")
}

func TestChecksumChangesWithContent(t *testing.T) {
	c := conversation(4)
	a := NewSlice(c, Range{Start: 0, End: 2, Name: "a"}, 1, nil)
	b := NewSlice(c, Range{Start: 2, End: 4, Name: "b"}, 2, nil)

	da, err := a.Serialize()
	require.NoError(t, err)
	db, err := b.Serialize()
	require.NoError(t, err)

	assert.NotEqual(t, Checksum(da), Checksum(db))
}

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name string
		msgs []Message
		want string
	}{
		{
			name: "first user line wins",
			msgs: []Message{
				{Role: RoleAssistant, Content: "assistant opener"},
				{Role: RoleUser, Content: "plan the beach trip\nwith details"},
			},
			want: "plan the beach trip",
		},
		{
			name: "blank user messages are skipped",
			msgs: []Message{
				{Role: RoleUser, Content: "   \n  "},
				{Role: RoleUser, Content: "real question"},
			},
			want: "real question",
		},
		{
			name: "assistant fallback when no user content",
			msgs: []Message{
				{Role: RoleAssistant, Content: "here is the summary"},
			},
			want: "here is the summary",
		},
		{
			name: "placeholder when nothing usable",
			msgs: []Message{{Role: "tool", Content: "output"}},
			want: "Slice",
		},
		{
			name: "empty slice",
			msgs: nil,
			want: "Slice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTitle(tt.msgs))
		})
	}
}

func TestDeriveTitleCapsLength(t *testing.T) {
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'x'
	}
	title := DeriveTitle([]Message{{Role: RoleUser, Content: string(long)}})
	assert.Len(t, title, 80)
}
