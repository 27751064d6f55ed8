// Package registry holds the catalog of known agent configurations and
// enforces the ad-hoc helper spawn budget per owner.
package registry

import (
	"errors"
	"fmt"
	"sync"
)

// Spawn failure taxonomy. Each limit fails with its own sentinel so the
// invoking agent can turn the rejection into a specific message.
var (
	ErrUnknownOwner    = errors.New("unknown agent")
	ErrSpawnNotAllowed = errors.New("agent may not spawn ad-hoc helpers")
	ErrLifetimeLimit   = errors.New("lifetime ad-hoc limit reached")
	ErrActiveLimit     = errors.New("active ad-hoc limit reached")
)

// AgentConfig is an immutable catalog entry describing one agent.
type AgentConfig struct {
	Name             string   `json:"name"`
	Role             string   `json:"role"`
	ReportsTo        string   `json:"reportsTo,omitempty"`
	Owns             []string `json:"owns,omitempty"`
	Triggers         []string `json:"triggers,omitempty"`
	AllowedActions   []string `json:"allowedActions,omitempty"`
	CanSpawnAdHoc    bool     `json:"canSpawnAdHoc"`
	MaxAdHoc         int      `json:"maxAdHoc"`
	MaxActiveAdHoc   int      `json:"maxActiveAdHoc"`
	ApprovalRequired []string `json:"approvalRequired,omitempty"`
}

// AdHocState tracks one owner's spawn counters. TotalSpawned never
// decreases; Active never goes below zero.
type AdHocState struct {
	TotalSpawned int `json:"totalSpawned"`
	Active       int `json:"active"`
}

// Registry is the process-wide agent catalog plus per-owner ad-hoc state.
type Registry struct {
	mu     sync.Mutex
	agents map[string]AgentConfig
	adhoc  map[string]*AdHocState
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		agents: make(map[string]AgentConfig),
		adhoc:  make(map[string]*AdHocState),
	}
}

// Register adds an agent to the catalog and zeroes its ad-hoc counters.
// Re-registering an existing name overwrites the config and resets state;
// callers register each agent once at boot.
func (r *Registry) Register(cfg AgentConfig) error {
	if cfg.Name == "" {
		return fmt.Errorf("agent config requires a name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agents[cfg.Name] = cfg
	r.adhoc[cfg.Name] = &AdHocState{}
	return nil
}

// Get returns the catalog entry for name.
func (r *Registry) Get(name string) (AgentConfig, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.agents[name]
	return cfg, ok
}

// List returns all registered agent configs.
func (r *Registry) List() []AgentConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]AgentConfig, 0, len(r.agents))
	for _, cfg := range r.agents {
		out = append(out, cfg)
	}
	return out
}

// State returns a snapshot of the owner's ad-hoc counters.
func (r *Registry) State(owner string) (AdHocState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.adhoc[owner]
	if !ok {
		return AdHocState{}, false
	}
	return *st, true
}

// SpawnAdHoc authorizes one new ad-hoc helper for owner, incrementing both
// the lifetime and the active counter together under the registry lock.
func (r *Registry) SpawnAdHoc(owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, ok := r.agents[owner]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOwner, owner)
	}
	if !cfg.CanSpawnAdHoc {
		return fmt.Errorf("%w: %s", ErrSpawnNotAllowed, owner)
	}
	st := r.adhoc[owner]
	if st.TotalSpawned >= cfg.MaxAdHoc {
		return fmt.Errorf("%w: %s spawned %d of %d", ErrLifetimeLimit, owner, st.TotalSpawned, cfg.MaxAdHoc)
	}
	if st.Active >= cfg.MaxActiveAdHoc {
		return fmt.Errorf("%w: %s has %d of %d active", ErrActiveLimit, owner, st.Active, cfg.MaxActiveAdHoc)
	}
	st.TotalSpawned++
	st.Active++
	return nil
}

// CompleteAdHoc marks one of the owner's helpers finished. Active is floored
// at zero; unknown owners are a no-op.
func (r *Registry) CompleteAdHoc(owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.adhoc[owner]
	if !ok {
		return
	}
	if st.Active > 0 {
		st.Active--
	}
}
