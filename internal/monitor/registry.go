package monitor

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/domain"
)

// Registry owns the map of active monitoring configs. All mutation goes
// through its methods under a single lock; callers only ever see copies, so
// iteration for status queries cannot race with the scheduler loops.
type Registry struct {
	mu       sync.RWMutex
	monitors map[uuid.UUID]*domain.MonitoringConfig
}

func NewRegistry() *Registry {
	return &Registry{monitors: make(map[uuid.UUID]*domain.MonitoringConfig)}
}

// Add inserts a config keyed by its ID.
func (r *Registry) Add(cfg domain.MonitoringConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := cfg
	r.monitors[cfg.ID] = &c
}

// Get returns a copy of the config, if present.
func (r *Registry) Get(id uuid.UUID) (domain.MonitoringConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.monitors[id]
	if !ok {
		return domain.MonitoringConfig{}, false
	}
	return *cfg, true
}

// SetLastCheck records the completion time of a tick. Only the owning
// scheduler loop calls this.
func (r *Registry) SetLastCheck(id uuid.UUID, t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cfg, ok := r.monitors[id]; ok {
		cfg.LastCheck = t
	}
}

// Stop flips the config inactive and removes it from the registry. It
// reports whether the monitor existed, so a second call is a harmless no-op.
func (r *Registry) Stop(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	cfg, ok := r.monitors[id]
	if !ok {
		return false
	}
	cfg.IsActive = false
	delete(r.monitors, id)
	return true
}

// ListByUser returns copies of all configs owned by a user.
func (r *Registry) ListByUser(userID string) []domain.MonitoringConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.MonitoringConfig
	for _, cfg := range r.monitors {
		if cfg.UserID == userID {
			out = append(out, *cfg)
		}
	}
	return out
}

// Len returns the number of registered monitors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.monitors)
}
