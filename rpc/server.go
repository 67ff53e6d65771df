package rpc

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/agentwire/relay/agent"
	"github.com/agentwire/relay/observability"
	"github.com/agentwire/relay/relay"
)

// DefaultAgentName is used when a run does not name an agent.
const DefaultAgentName = "assistant"

// Event types emitted by the envelope server.
const (
	EventRunReceived observability.EventType = "rpc.run.received"
	EventRunComplete observability.EventType = "rpc.run.complete"
)

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithDefaultAgent sets the agent name used when a run omits one.
func WithDefaultAgent(name string) ServerOption {
	return func(s *Server) { s.defaultAgent = name }
}

// WithServerObserver overrides the default SlogObserver.
func WithServerObserver(o observability.Observer) ServerOption {
	return func(s *Server) { s.observer = o }
}

// Server dispatches envelope runs to registered agents.
type Server struct {
	registry     *agent.Registry
	defaultAgent string
	observer     observability.Observer
}

// NewServer creates a Server backed by the given agent registry.
func NewServer(registry *agent.Registry, opts ...ServerOption) *Server {
	s := &Server{
		registry:     registry,
		defaultAgent: DefaultAgentName,
		observer:     observability.NewSlogObserver(slog.Default()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the procedure path and the Connect handler for mounting on
// an http.ServeMux:
//
//	mux.Handle(server.Handler())
func (s *Server) Handler() (string, http.Handler) {
	return ProcedureRun, connect.NewUnaryHandler(
		ProcedureRun,
		s.run,
		connect.WithCodec(Codec{}),
	)
}

func (s *Server) run(ctx context.Context, req *connect.Request[RunRequest]) (*connect.Response[RunResponse], error) {
	name := req.Msg.Agent
	if name == "" {
		name = s.defaultAgent
	}

	rly, err := s.registry.Get(name)
	if err != nil {
		if errors.Is(err, agent.ErrAgentNotFound) {
			return nil, connect.NewError(connect.CodeNotFound, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	sessionID := req.Msg.SessionID
	if sessionID == "" {
		sessionID = uuid.Must(uuid.NewV7()).String()
	}

	s.observer.OnEvent(ctx, observability.Event{
		Type:      EventRunReceived,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "rpc.Server",
		Data: map[string]any{
			"agent":      name,
			"session_id": sessionID,
			"messages":   len(req.Msg.Input),
		},
	})

	// One reply per non-empty input message; empty messages are skipped.
	var output []Message
	for _, msg := range req.Msg.Input {
		text := msg.Text()
		if text == "" {
			continue
		}

		result, err := rly.Exchange(ctx, sessionID, text)
		if err != nil {
			if errors.Is(err, relay.ErrEmptyMessage) || errors.Is(err, relay.ErrEmptySessionID) {
				return nil, connect.NewError(connect.CodeInvalidArgument, err)
			}
			return nil, connect.NewError(connect.CodeInternal, err)
		}

		output = append(output, TextMessage("assistant", result.Reply))
	}

	if len(output) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			errors.New("input contains no text content"))
	}

	s.observer.OnEvent(ctx, observability.Event{
		Type:      EventRunComplete,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "rpc.Server",
		Data: map[string]any{
			"agent":      name,
			"session_id": sessionID,
			"replies":    len(output),
		},
	})

	return connect.NewResponse(&RunResponse{
		SessionID: sessionID,
		Output:    output,
	}), nil
}
