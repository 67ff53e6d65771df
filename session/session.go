// Package session stores ordered per-session conversation history for the
// relay. A session is identified by an opaque string key chosen by the
// caller; it comes into existence on the first append and holds turns in
// strict append order.
package session

import (
	"context"
	"errors"

	"github.com/agentwire/relay/core/protocol"
)

// ErrEmptySessionID indicates a store operation was attempted without a
// session identifier.
var ErrEmptySessionID = errors.New("session: empty session id")

// Store maps a session identifier to an ordered sequence of conversation
// turns. Implementations must be safe for concurrent use and must keep
// distinct sessions fully isolated from each other.
type Store interface {
	// Append adds turns to the end of the session's history, creating the
	// session if it has not been seen before. All turns are appended
	// atomically: either every message is recorded or none is.
	Append(ctx context.Context, sessionID string, msgs ...protocol.Message) error

	// History returns the session's turns in the exact order they were
	// appended. Unseen session identifiers yield an empty history, not an
	// error.
	History(ctx context.Context, sessionID string) ([]protocol.Message, error)

	// Len returns the number of turns currently stored for the session.
	Len(ctx context.Context, sessionID string) (int, error)
}
