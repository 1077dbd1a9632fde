package session

import "sync"

// Environment is an account/role pair a session can act within after
// credential exchange, limited to a set of permitted regions.
type Environment struct {
	ID        string
	Label     string
	Regions   []string
	AccountID string
	RoleName  string
}

// AllowsRegion reports whether the environment permits the given region.
func (e Environment) AllowsRegion(region string) bool {
	for _, r := range e.Regions {
		if r == region {
			return true
		}
	}
	return false
}

// EnvironmentRegistry maps session ids to the environments discovered for
// them. Discovery replaces the whole set; lookups preserve discovery order.
type EnvironmentRegistry struct {
	mu   sync.RWMutex
	data map[string][]Environment
}

// NewEnvironmentRegistry creates an empty registry.
func NewEnvironmentRegistry() *EnvironmentRegistry {
	return &EnvironmentRegistry{data: make(map[string][]Environment)}
}

// Replace stores the full environment set for a session, discarding any
// previous set.
func (r *EnvironmentRegistry) Replace(sessionID string, envs []Environment) {
	stored := make([]Environment, len(envs))
	copy(stored, envs)
	r.mu.Lock()
	r.data[sessionID] = stored
	r.mu.Unlock()
}

// Get returns the environment with the given id for a session.
func (r *EnvironmentRegistry) Get(sessionID, environmentID string) (Environment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, env := range r.data[sessionID] {
		if env.ID == environmentID {
			return env, true
		}
	}
	return Environment{}, false
}

// List returns the session's environments in discovery order.
func (r *EnvironmentRegistry) List(sessionID string) []Environment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	envs := make([]Environment, len(r.data[sessionID]))
	copy(envs, r.data[sessionID])
	return envs
}
