package relay_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentwire/relay/relay"
	"github.com/agentwire/relay/session"
)

func TestDefaultConfig(t *testing.T) {
	cfg := relay.DefaultConfig()

	if cfg.SystemPrompt != relay.DefaultSystemPrompt {
		t.Errorf("got system prompt %q, want %q", cfg.SystemPrompt, relay.DefaultSystemPrompt)
	}
	if cfg.Session.Backend != session.BackendMemory {
		t.Errorf("got session backend %q, want %q", cfg.Session.Backend, session.BackendMemory)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"system_prompt": "You are a test assistant.",
		"session": {"max_turns": 50},
		"completion": {"model": "openai/gpt-4.1"}
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := relay.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.SystemPrompt != "You are a test assistant." {
		t.Errorf("got system prompt %q, want loaded value", cfg.SystemPrompt)
	}
	if cfg.Session.MaxTurns != 50 {
		t.Errorf("got max turns %d, want 50", cfg.Session.MaxTurns)
	}
	if cfg.Completion.Model != "openai/gpt-4.1" {
		t.Errorf("got model %q, want %q", cfg.Completion.Model, "openai/gpt-4.1")
	}
	// Defaults survive a partial file.
	if cfg.Session.Backend != session.BackendMemory {
		t.Errorf("got session backend %q, want default %q", cfg.Session.Backend, session.BackendMemory)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := relay.LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadConfig_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := relay.LoadConfig(path); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}
