package relay

import "errors"

var (
	// ErrEmptyMessage is returned by Exchange when the user message is empty
	// or whitespace-only.
	ErrEmptyMessage = errors.New("relay: empty message")
	// ErrEmptySessionID is returned by Exchange when no session identifier
	// is provided.
	ErrEmptySessionID = errors.New("relay: empty session id")
)
