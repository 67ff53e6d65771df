// Package agent manages named agent configurations for the envelope server.
// Inbound runs address an agent by name; the registry resolves that name to
// a relay instance, creating it lazily from its registered configuration.
package agent

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agentwire/relay/relay"
)

// Info describes a registered agent.
type Info struct {
	Name  string
	Model string
}

// Registry manages named agent configurations with lazy instantiation.
// Configs are stored at registration time; relays are created on first
// Get call. Thread-safe for concurrent access.
type Registry struct {
	mu      sync.RWMutex
	configs map[string]relay.Config
	relays  map[string]*relay.Relay
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		configs: make(map[string]relay.Config),
		relays:  make(map[string]*relay.Relay),
	}
}

// Get retrieves a named agent's relay, instantiating it lazily on first
// access.
func (r *Registry) Get(name string) (*relay.Relay, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, registered := r.configs[name]; !registered {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, name)
	}

	if rly, exists := r.relays[name]; exists {
		return rly, nil
	}

	cfg := r.configs[name]
	rly, err := relay.New(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent %q: %w", name, err)
	}

	r.relays[name] = rly
	return rly, nil
}

// List returns information about all registered agents, sorted by name.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.configs))
	for name, cfg := range r.configs {
		infos = append(infos, Info{
			Name:  name,
			Model: cfg.Completion.Model,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})

	return infos
}

// Register adds a named agent configuration to the registry.
// The relay is not instantiated until Get is called.
func (r *Registry) Register(name string, cfg relay.Config) error {
	if name == "" {
		return ErrEmptyAgentName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.configs[name]; exists {
		return fmt.Errorf("%w: %s", ErrAgentExists, name)
	}

	r.configs[name] = cfg
	return nil
}

// Replace updates the configuration for an existing named agent.
// Any cached relay instance is invalidated; the next Get re-instantiates.
func (r *Registry) Replace(name string, cfg relay.Config) error {
	if name == "" {
		return ErrEmptyAgentName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.configs[name]; !exists {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, name)
	}

	r.configs[name] = cfg
	delete(r.relays, name)
	return nil
}

// Unregister removes a named agent from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.configs[name]; !exists {
		return fmt.Errorf("%w: %s", ErrAgentNotFound, name)
	}

	delete(r.configs, name)
	delete(r.relays, name)
	return nil
}
