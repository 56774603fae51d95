package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/solforge/solforge/pkg/config"
	"github.com/solforge/solforge/pkg/types"
)

// ErrEnvironmentNotFound is returned when an operation names an absent
// environment
var ErrEnvironmentNotFound = errors.New("environment not found")

// Default environment names present in every fresh registry
const (
	DefaultLocalDevnetName = "local-devnet"
	DefaultMainnetForkName = "mainnet-fork"
)

// Registry is a named collection of environment configs plus the name
// of the currently active one. It is purely in-memory; persistence is
// the composition root's job (see pkg/storage). The registry's lock is
// its own; it shares nothing with the controller's.
type Registry struct {
	mu     sync.RWMutex
	envs   map[string]types.EnvironmentConfig
	active string
}

// New creates a registry seeded with the two stock environments.
// No environment is active until SwitchActive is called.
func New() *Registry {
	return &Registry{
		envs: map[string]types.EnvironmentConfig{
			DefaultLocalDevnetName: config.DefaultLocalDevnet(),
			DefaultMainnetForkName: config.DefaultMainnetFork(),
		},
	}
}

// NewEmpty creates a registry with no entries. Used when restoring a
// persisted snapshot.
func NewEmpty() *Registry {
	return &Registry{envs: make(map[string]types.EnvironmentConfig)}
}

// GetAll returns a snapshot of every environment, keyed by name
func (r *Registry) GetAll() map[string]types.EnvironmentConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]types.EnvironmentConfig, len(r.envs))
	for name, cfg := range r.envs {
		out[name] = cfg.Clone()
	}
	return out
}

// Get returns the named environment, if present
func (r *Registry) Get(name string) (types.EnvironmentConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.envs[name]
	if !ok {
		return types.EnvironmentConfig{}, false
	}
	return cfg.Clone(), true
}

// Save upserts the named environment. No validation happens here;
// validating before activation is the caller's responsibility.
func (r *Registry) Save(name string, cfg types.EnvironmentConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.envs[name] = cfg.Clone()
}

// Delete removes the named environment. Deleting the active environment
// clears the active selection.
func (r *Registry) Delete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.envs, name)
	if r.active == name {
		r.active = ""
	}
}

// SwitchActive records the named environment as active and returns a
// copy of its config. The previous selection is untouched on failure.
func (r *Registry) SwitchActive(name string) (types.EnvironmentConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, ok := r.envs[name]
	if !ok {
		return types.EnvironmentConfig{}, fmt.Errorf("%w: %q", ErrEnvironmentNotFound, name)
	}

	r.active = name
	return cfg.Clone(), nil
}

// Active returns the active environment's name and config, or ok=false
// when nothing has been activated
func (r *Registry) Active() (string, types.EnvironmentConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.active == "" {
		return "", types.EnvironmentConfig{}, false
	}
	return r.active, r.envs[r.active].Clone(), true
}

// RestoreActive reinstates a persisted active selection. Unknown names
// are ignored.
func (r *Registry) RestoreActive(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.envs[name]; ok {
		r.active = name
	}
}

// Len returns the number of environments
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.envs)
}
