package core

import "fmt"

// FormatError reports input or template text in no recognized shape: an
// export that is neither a JSON document nor JSONL, or a filename template
// with an unknown token.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string { return e.Reason }

// SchemaError reports a conversation record that carries neither a flat
// message list nor a mapping tree.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string { return e.Reason }

// TokenError reports a boundary token that is neither a valid integer index
// nor an id:<msgid> reference.
type TokenError struct {
	Token string
}

func (e *TokenError) Error() string { return fmt.Sprintf("bad boundary token: %s", e.Token) }

// NotFoundError reports an id-reference that matches no message, or an
// extraction that matches no conversation.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string { return e.What }

// SelectionError reports a match index outside the available matches.
type SelectionError struct {
	Index   int
	Matches int
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("index %d is out of range for %d matches", e.Index, e.Matches)
}
