package agent

import "errors"

var (
	// ErrAgentNotFound indicates the named agent is not registered.
	ErrAgentNotFound = errors.New("agent not found")
	// ErrAgentExists indicates a registration collision on the agent name.
	ErrAgentExists = errors.New("agent already registered")
	// ErrEmptyAgentName indicates a registry operation with an empty name.
	ErrEmptyAgentName = errors.New("empty agent name")
)
