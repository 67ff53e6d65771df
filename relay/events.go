package relay

import "github.com/agentwire/relay/observability"

// Event types emitted by the relay.
const (
	EventExchangeStart    observability.EventType = "relay.exchange.start"
	EventExchangeComplete observability.EventType = "relay.exchange.complete"
	EventExchangeError    observability.EventType = "relay.exchange.error"
)
