package session

import (
	"context"
	"slices"
	"sync"

	"github.com/agentwire/relay/core/protocol"
)

type memoryStore struct {
	sessions map[string]*sessionState
	maxTurns int
	mu       sync.RWMutex
}

type sessionState struct {
	messages []protocol.Message
	mu       sync.Mutex
}

// NewMemoryStore creates a Store backed by a process-lifetime map. Sessions
// live until the process exits. When maxTurns is greater than zero, each
// append drops the oldest turns beyond the cap; zero means unbounded.
func NewMemoryStore(maxTurns int) Store {
	return &memoryStore{
		sessions: make(map[string]*sessionState),
		maxTurns: maxTurns,
	}
}

// state returns the session's state, creating it if absent.
func (s *memoryStore) state(sessionID string) *sessionState {
	s.mu.RLock()
	st, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok = s.sessions[sessionID]; ok {
		return st
	}
	st = &sessionState{}
	s.sessions[sessionID] = st
	return st
}

func (s *memoryStore) Append(ctx context.Context, sessionID string, msgs ...protocol.Message) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}

	st := s.state(sessionID)
	st.mu.Lock()
	defer st.mu.Unlock()

	st.messages = append(st.messages, msgs...)
	if s.maxTurns > 0 && len(st.messages) > s.maxTurns {
		st.messages = slices.Clone(st.messages[len(st.messages)-s.maxTurns:])
	}
	return nil
}

func (s *memoryStore) History(ctx context.Context, sessionID string) ([]protocol.Message, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}

	s.mu.RLock()
	st, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return slices.Clone(st.messages), nil
}

func (s *memoryStore) Len(ctx context.Context, sessionID string) (int, error) {
	if sessionID == "" {
		return 0, ErrEmptySessionID
	}

	s.mu.RLock()
	st, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return 0, nil
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.messages), nil
}
