// Package alert provides the append/query store of raised alerts, with an
// in-memory implementation for single-process mode and a Redis-backed one
// for deployments that want alert history to survive restarts.
package alert

import (
	"context"
	"sort"
	"sync"

	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/domain"
)

// maxAlertsPerUser bounds per-user history; the oldest entries are dropped
// once the cap is reached.
const maxAlertsPerUser = 1000

// MemoryStore keeps alerts in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	byUser map[string][]domain.Alert
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byUser: make(map[string][]domain.Alert)}
}

func (s *MemoryStore) RecordAlert(_ context.Context, alert domain.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	alerts := append(s.byUser[alert.UserID], alert)
	if len(alerts) > maxAlertsPerUser {
		alerts = alerts[len(alerts)-maxAlertsPerUser:]
	}
	s.byUser[alert.UserID] = alerts
	return nil
}

func (s *MemoryStore) GetUserAlerts(_ context.Context, userID string) ([]domain.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alerts := make([]domain.Alert, len(s.byUser[userID]))
	copy(alerts, s.byUser[userID])
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Timestamp.After(alerts[j].Timestamp)
	})
	return alerts, nil
}

// Ping always succeeds; it exists so health checks can treat both store
// implementations uniformly.
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}
