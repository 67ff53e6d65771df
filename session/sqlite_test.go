package session_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/agentwire/relay/core/protocol"
	"github.com/agentwire/relay/session"
)

func newSQLiteStore(t *testing.T) (*session.SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions.db")
	s, err := session.NewSQLiteStore(path, 0)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestSQLiteStore_AppendOrder(t *testing.T) {
	s, _ := newSQLiteStore(t)
	ctx := context.Background()

	for i := range 5 {
		if err := s.Append(ctx, "s1", protocol.NewMessage(protocol.RoleUser, fmt.Sprintf("msg-%d", i))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	msgs, err := s.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(msgs) != 5 {
		t.Fatalf("got %d messages, want 5", len(msgs))
	}
	for i, msg := range msgs {
		want := fmt.Sprintf("msg-%d", i)
		if msg.Content != want {
			t.Errorf("message %d: got content %q, want %q", i, msg.Content, want)
		}
	}
}

func TestSQLiteStore_UnseenSessionIsEmpty(t *testing.T) {
	s, _ := newSQLiteStore(t)

	msgs, err := s.History(context.Background(), "new-session")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("got %d messages for unseen session, want 0", len(msgs))
	}
}

func TestSQLiteStore_SessionIsolation(t *testing.T) {
	s, _ := newSQLiteStore(t)
	ctx := context.Background()

	if err := s.Append(ctx, "s1", protocol.NewMessage(protocol.RoleUser, "for s1")); err != nil {
		t.Fatalf("Append s1: %v", err)
	}
	if err := s.Append(ctx, "s2", protocol.NewMessage(protocol.RoleUser, "for s2")); err != nil {
		t.Fatalf("Append s2: %v", err)
	}

	msgs, err := s.History(ctx, "s2")
	if err != nil {
		t.Fatalf("History s2: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "for s2" {
		t.Errorf("s2 history leaked: got %v", msgs)
	}
}

func TestSQLiteStore_RolesRoundTrip(t *testing.T) {
	s, _ := newSQLiteStore(t)
	ctx := context.Background()

	err := s.Append(ctx, "s1",
		protocol.NewMessage(protocol.RoleUser, "Hello"),
		protocol.NewMessage(protocol.RoleAssistant, "Hi there"),
	)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	msgs, err := s.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != protocol.RoleUser {
		t.Errorf("got role %q, want %q", msgs[0].Role, protocol.RoleUser)
	}
	if msgs[1].Role != protocol.RoleAssistant {
		t.Errorf("got role %q, want %q", msgs[1].Role, protocol.RoleAssistant)
	}
}

func TestSQLiteStore_MaxTurns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	s, err := session.NewSQLiteStore(path, 4)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	for i := range 6 {
		if err := s.Append(ctx, "s1", protocol.NewMessage(protocol.RoleUser, fmt.Sprintf("msg-%d", i))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	msgs, err := s.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(msgs) != 4 {
		t.Fatalf("got %d messages, want 4", len(msgs))
	}
	if msgs[0].Content != "msg-2" {
		t.Errorf("oldest retained message: got %q, want %q", msgs[0].Content, "msg-2")
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	ctx := context.Background()

	s, err := session.NewSQLiteStore(path, 0)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := s.Append(ctx, "s1", protocol.NewMessage(protocol.RoleUser, "survives")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := session.NewSQLiteStore(path, 0)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	msgs, err := reopened.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "survives" {
		t.Errorf("history not persisted: got %v", msgs)
	}
}
