// Package relay implements the completion relay: it assembles the ordered
// message list for a session (fixed system instruction, prior history, new
// user turn), forwards it to a hosted chat-completion API, records the
// exchange in the session store, and returns the reply. API failures are
// classified into user-facing categories and returned as descriptive reply
// text; they never crash the relay and never leave a session's history
// partially updated.
//
//	r, err := relay.New(&cfg)
//	result, err := r.Exchange(ctx, "s1", "Hello")
package relay

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/agentwire/relay/completion"
	"github.com/agentwire/relay/core/protocol"
	"github.com/agentwire/relay/observability"
	"github.com/agentwire/relay/session"
)

// DefaultSystemPrompt is the system instruction prepended to every outbound
// message list when none is configured.
const DefaultSystemPrompt = "You are a helpful assistant."

// Result holds the outcome of one Exchange.
type Result struct {
	Reply    string   // Assistant reply on success, category notice on failure.
	Category Category // CategoryNone on success.
}

// Failed reports whether the exchange ended in a classified failure.
func (r *Result) Failed() bool {
	return r.Category != CategoryNone
}

// Option configures a Relay after config-driven initialization.
// Applied by New after cold start; overrides replace config-created defaults.
type Option func(*Relay)

// WithStore overrides the config-created session store.
func WithStore(s session.Store) Option {
	return func(r *Relay) { r.store = s }
}

// WithCompleter overrides the config-created completion client.
func WithCompleter(c completion.Completer) Option {
	return func(r *Relay) { r.completer = c }
}

// WithObserver overrides the default SlogObserver.
func WithObserver(o observability.Observer) Option {
	return func(r *Relay) { r.observer = o }
}

// Relay composes the session store and completion client into the
// request/response pipeline.
type Relay struct {
	store        session.Store
	completer    completion.Completer
	observer     observability.Observer
	locks        *session.Locker
	systemPrompt string
}

// New creates a Relay from configuration. Subsystems (session store,
// completion client) are initialized from their respective config sections.
// Functional options applied after initialization can override any
// subsystem for testing.
func New(cfg *Config, opts ...Option) (*Relay, error) {
	store, err := session.New(&cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	completer, err := completion.NewClient(&cfg.Completion)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	systemPrompt := cfg.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	r := &Relay{
		store:        store,
		completer:    completer,
		observer:     observability.NewSlogObserver(slog.Default()),
		locks:        session.NewLocker(),
		systemPrompt: systemPrompt,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Store returns the relay's session store.
func (r *Relay) Store() session.Store {
	return r.store
}

// Exchange submits one user message for a session. It builds the outbound
// message list as [system instruction] ++ [prior turns in order] ++ [new
// user turn], calls the completion API, and on success appends the user and
// assistant turns to the session so history grows by exactly two.
//
// On completion failure nothing is appended: the session keeps the length
// it had before the exchange, so a retry replays the same effective
// history, and the returned Result carries a category notice as the reply
// with a nil error. A non-nil error is returned only for invalid input or
// session store failures.
//
// Exchanges for the same session identifier are serialized; distinct
// sessions proceed concurrently.
func (r *Relay) Exchange(ctx context.Context, sessionID, text string) (*Result, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	mu := r.locks.Get(sessionID)
	mu.Lock()
	defer mu.Unlock()

	history, err := r.store.History(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read session history: %w", err)
	}

	messages := make([]protocol.Message, 0, len(history)+2)
	messages = append(messages, protocol.NewMessage(protocol.RoleSystem, r.systemPrompt))
	messages = append(messages, history...)
	messages = append(messages, protocol.NewMessage(protocol.RoleUser, text))

	r.observer.OnEvent(ctx, observability.Event{
		Type:      EventExchangeStart,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "relay.Exchange",
		Data: map[string]any{
			"session_id":     sessionID,
			"history_length": len(history),
			"prompt_length":  len(text),
		},
	})

	reply, err := r.completer.Complete(ctx, messages)
	if err != nil {
		category := Classify(err.Error())

		r.observer.OnEvent(ctx, observability.Event{
			Type:      EventExchangeError,
			Level:     observability.LevelWarning,
			Timestamp: time.Now(),
			Source:    "relay.Exchange",
			Data: map[string]any{
				"session_id": sessionID,
				"category":   string(category),
				"error":      err.Error(),
			},
		})

		return &Result{Reply: Notice(category, err.Error()), Category: category}, nil
	}

	err = r.store.Append(ctx, sessionID,
		protocol.NewMessage(protocol.RoleUser, text),
		protocol.NewMessage(protocol.RoleAssistant, reply),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record exchange: %w", err)
	}

	r.observer.OnEvent(ctx, observability.Event{
		Type:      EventExchangeComplete,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "relay.Exchange",
		Data: map[string]any{
			"session_id":   sessionID,
			"reply_length": len(reply),
		},
	})

	return &Result{Reply: reply}, nil
}
