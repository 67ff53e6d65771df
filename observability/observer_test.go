package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agentwire/relay/observability"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level observability.Level
		want  string
	}{
		{observability.LevelVerbose, "DEBUG"},
		{observability.LevelInfo, "INFO"},
		{observability.LevelWarning, "WARN"},
		{observability.LevelError, "ERROR"},
		{observability.Level(2), "TRACE"},
		{observability.Level(22), "FATAL"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		level observability.Level
		want  slog.Level
	}{
		{observability.LevelVerbose, slog.LevelDebug},
		{observability.LevelInfo, slog.LevelInfo},
		{observability.LevelWarning, slog.LevelWarn},
		{observability.LevelError, slog.LevelError},
	}

	for _, tt := range tests {
		if got := tt.level.SlogLevel(); got != tt.want {
			t.Errorf("Level(%d).SlogLevel() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSlogObserver_EmitsEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := observability.NewSlogObserver(logger)

	obs.OnEvent(context.Background(), observability.Event{
		Type:      "relay.exchange.complete",
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "relay.Exchange",
		Data:      map[string]any{"session_id": "s1"},
	})

	out := buf.String()
	if !strings.Contains(out, "relay.exchange.complete") {
		t.Errorf("log output %q should contain the event type", out)
	}
	if !strings.Contains(out, "source=relay.Exchange") {
		t.Errorf("log output %q should contain the source attribute", out)
	}
	if !strings.Contains(out, "session_id=s1") {
		t.Errorf("log output %q should contain event data", out)
	}
}

// recordingObserver captures events for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []observability.Event
}

func (r *recordingObserver) OnEvent(ctx context.Context, event observability.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func TestMultiObserver_FansOut(t *testing.T) {
	first := &recordingObserver{}
	second := &recordingObserver{}
	multi := observability.NewMultiObserver(first, nil, second)

	multi.OnEvent(context.Background(), observability.Event{Type: "test.event"})

	if len(first.events) != 1 {
		t.Errorf("first observer got %d events, want 1", len(first.events))
	}
	if len(second.events) != 1 {
		t.Errorf("second observer got %d events, want 1", len(second.events))
	}
}

func TestNoOpObserver(t *testing.T) {
	// Must not panic.
	observability.NoOpObserver{}.OnEvent(context.Background(), observability.Event{Type: "ignored"})
}

func TestObserverRegistry(t *testing.T) {
	if _, err := observability.GetObserver("noop"); err != nil {
		t.Errorf("GetObserver(noop): %v", err)
	}
	if _, err := observability.GetObserver("slog"); err != nil {
		t.Errorf("GetObserver(slog): %v", err)
	}
	if _, err := observability.GetObserver("missing"); err == nil {
		t.Error("GetObserver(missing) should fail")
	}

	rec := &recordingObserver{}
	observability.RegisterObserver("recording", rec)
	got, err := observability.GetObserver("recording")
	if err != nil {
		t.Fatalf("GetObserver(recording): %v", err)
	}
	if got != observability.Observer(rec) {
		t.Error("GetObserver returned a different observer than registered")
	}
}
