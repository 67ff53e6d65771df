package relay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/agentwire/relay/completion"
	"github.com/agentwire/relay/session"
)

// Config holds initialization parameters for the relay subsystems. Each
// subsystem section delegates to that subsystem's config-driven constructor.
type Config struct {
	Session      session.Config    `json:"session"`
	Completion   completion.Config `json:"completion"`
	SystemPrompt string            `json:"system_prompt,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Session:      session.DefaultConfig(),
		Completion:   completion.DefaultConfig(),
		SystemPrompt: DefaultSystemPrompt,
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Session.Merge(&source.Session)
	c.Completion.Merge(&source.Completion)

	if source.SystemPrompt != "" {
		c.SystemPrompt = source.SystemPrompt
	}
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
