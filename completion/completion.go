// Package completion calls a hosted chat-completion API: it takes an ordered
// message list and returns the generated reply text. The wire format is the
// OpenAI-style /chat/completions shape used by GitHub Models and compatible
// gateways.
package completion

import (
	"context"

	"github.com/agentwire/relay/core/protocol"
)

// Completer generates a reply for an ordered list of conversation messages.
// The call blocks until the remote API answers or ctx is done.
type Completer interface {
	Complete(ctx context.Context, messages []protocol.Message) (string, error)
}
