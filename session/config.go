package session

import "fmt"

// Backend names accepted by Config.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds session store initialization parameters.
type Config struct {
	// Backend selects the store implementation: "memory" (default) or
	// "sqlite".
	Backend string `json:"backend,omitempty"`
	// Path is the SQLite database file. Required when Backend is "sqlite".
	Path string `json:"path,omitempty"`
	// MaxTurns caps the retained history per session; oldest turns are
	// dropped first. Zero means unbounded.
	MaxTurns int `json:"max_turns,omitempty"`
}

// DefaultConfig returns the default session store configuration: an
// unbounded in-memory store.
func DefaultConfig() Config {
	return Config{Backend: BackendMemory}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Backend != "" {
		c.Backend = source.Backend
	}
	if source.Path != "" {
		c.Path = source.Path
	}
	if source.MaxTurns > 0 {
		c.MaxTurns = source.MaxTurns
	}
}

// New creates a Store from configuration.
func New(cfg *Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryStore(cfg.MaxTurns), nil
	case BackendSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("session: sqlite backend requires a path")
		}
		return NewSQLiteStore(cfg.Path, cfg.MaxTurns)
	default:
		return nil, fmt.Errorf("session: unknown backend %q", cfg.Backend)
	}
}
