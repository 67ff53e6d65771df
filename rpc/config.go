package rpc

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/agentwire/relay/relay"
)

// DefaultListen is the address the server binds when none is configured.
const DefaultListen = ":8000"

// Config holds server initialization parameters: the listen address, the
// default agent's relay configuration, and optional additional named agents.
type Config struct {
	Listen       string                  `json:"listen,omitempty"`
	DefaultAgent string                  `json:"default_agent,omitempty"`
	Relay        relay.Config            `json:"relay"`
	Agents       map[string]relay.Config `json:"agents,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults: one agent named
// DefaultAgentName using the default relay configuration.
func DefaultConfig() Config {
	return Config{
		Listen:       DefaultListen,
		DefaultAgent: DefaultAgentName,
		Relay:        relay.DefaultConfig(),
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Listen != "" {
		c.Listen = source.Listen
	}
	if source.DefaultAgent != "" {
		c.DefaultAgent = source.DefaultAgent
	}
	c.Relay.Merge(&source.Relay)

	if len(source.Agents) > 0 {
		c.Agents = source.Agents
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
