package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/domain"
)

type stubProvider struct {
	mu       sync.Mutex
	mentions []domain.Mention
	err      error
	queries  []domain.MentionQuery
}

func (p *stubProvider) FetchMentions(_ context.Context, query domain.MentionQuery) ([]domain.Mention, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queries = append(p.queries, query)
	return p.mentions, p.err
}

func (p *stubProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queries)
}

func (p *stubProvider) lastQuery() domain.MentionQuery {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queries[len(p.queries)-1]
}

func (p *stubProvider) set(mentions []domain.Mention, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mentions = mentions
	p.err = err
}

type recordingAlertStore struct {
	mu     sync.Mutex
	alerts []domain.Alert
	err    error
}

func (s *recordingAlertStore) RecordAlert(_ context.Context, alert domain.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.alerts = append(s.alerts, alert)
	return nil
}

func (s *recordingAlertStore) GetUserAlerts(_ context.Context, userID string) ([]domain.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Alert
	for _, a := range s.alerts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *recordingAlertStore) recorded() []domain.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Alert(nil), s.alerts...)
}

type countingNotifier struct {
	mu     sync.Mutex
	alerts []domain.Alert
}

func (n *countingNotifier) Notify(_ context.Context, _ string, alert domain.Alert) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
}

func (n *countingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.alerts)
}

func negativeMentions(n int) []domain.Mention {
	mentions := make([]domain.Mention, n)
	for i := range mentions {
		mentions[i] = domain.Mention{
			ID:     uuid.NewString(),
			Source: domain.SourceSocial,
			Text:   "terrible awful broken useless",
		}
	}
	return mentions
}

func newTestScheduler(t *testing.T, clock clockwork.Clock, provider domain.MentionProvider) (*Scheduler, *Registry, *recordingAlertStore, *countingNotifier) {
	t.Helper()
	registry := NewRegistry()
	alerts := &recordingAlertStore{}
	notifier := &countingNotifier{}
	scheduler := NewScheduler(registry, provider, alerts, notifier, clock, Defaults{})
	t.Cleanup(scheduler.Shutdown)
	return scheduler, registry, alerts, notifier
}

func TestScheduler_StartAppliesDefaults(t *testing.T) {
	clock := clockwork.NewFakeClock()
	provider := &stubProvider{}
	scheduler, registry, _, _ := newTestScheduler(t, clock, provider)

	cfg := scheduler.Start("user-1", "acme", Options{})

	assert.Equal(t, "user-1", cfg.UserID)
	assert.Equal(t, "acme", cfg.BrandName)
	assert.Equal(t, []domain.Source{domain.SourceSocial, domain.SourceReview}, cfg.Sources)
	assert.Equal(t, -0.3, cfg.AlertThreshold)
	assert.Equal(t, 5*time.Minute, cfg.CheckInterval)
	assert.True(t, cfg.IsActive)
	assert.Equal(t, clock.Now(), cfg.StartedAt)

	stored, ok := registry.Get(cfg.ID)
	require.True(t, ok)
	assert.Equal(t, cfg.ID, stored.ID)
}

func TestScheduler_StartHonorsOptions(t *testing.T) {
	clock := clockwork.NewFakeClock()
	provider := &stubProvider{}
	scheduler, _, _, _ := newTestScheduler(t, clock, provider)

	threshold := -0.5
	cfg := scheduler.Start("user-1", "acme", Options{
		Sources:        []domain.Source{domain.SourceNews},
		Keywords:       []string{"outage"},
		AlertThreshold: &threshold,
		CheckInterval:  time.Minute,
	})

	assert.Equal(t, []domain.Source{domain.SourceNews}, cfg.Sources)
	assert.Equal(t, []string{"outage"}, cfg.Keywords)
	assert.Equal(t, -0.5, cfg.AlertThreshold)
	assert.Equal(t, time.Minute, cfg.CheckInterval)
}

func TestScheduler_FirstTickIsImmediate(t *testing.T) {
	clock := clockwork.NewFakeClock()
	provider := &stubProvider{}
	scheduler, _, _, _ := newTestScheduler(t, clock, provider)

	cfg := scheduler.Start("user-1", "acme", Options{Keywords: []string{"acme corp"}})

	// The loop parks on the clock only after the first tick has completed.
	clock.BlockUntil(1)
	require.Equal(t, 1, provider.calls())

	query := provider.lastQuery()
	assert.Equal(t, "acme", query.Brand)
	assert.Equal(t, []string{"acme corp"}, query.Keywords)
	assert.Equal(t, cfg.Sources, query.Sources)
	assert.Equal(t, cfg.StartedAt, query.Since)
}

func TestScheduler_TicksOnEveryInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	provider := &stubProvider{}
	scheduler, registry, _, _ := newTestScheduler(t, clock, provider)

	cfg := scheduler.Start("user-1", "acme", Options{})
	clock.BlockUntil(1)
	require.Equal(t, 1, provider.calls())

	clock.Advance(cfg.CheckInterval)
	clock.BlockUntil(1)
	require.Equal(t, 2, provider.calls())

	clock.Advance(cfg.CheckInterval)
	clock.BlockUntil(1)
	require.Equal(t, 3, provider.calls())

	stored, _ := registry.Get(cfg.ID)
	assert.Equal(t, clock.Now(), stored.LastCheck)
}

func TestScheduler_RaisesCriticalAlertOnNegativeSentiment(t *testing.T) {
	clock := clockwork.NewFakeClock()
	provider := &stubProvider{mentions: negativeMentions(3)}
	scheduler, _, alerts, notifier := newTestScheduler(t, clock, provider)

	cfg := scheduler.Start("user-1", "acme", Options{})
	clock.BlockUntil(1)

	recorded := alerts.recorded()
	require.Len(t, recorded, 1)
	alert := recorded[0]
	assert.Equal(t, cfg.ID, alert.MonitoringID)
	assert.Equal(t, "user-1", alert.UserID)
	assert.Equal(t, "acme", alert.BrandName)
	assert.Equal(t, domain.SeverityCritical, alert.Severity)
	assert.Less(t, alert.Sentiment.Overall.Score, cfg.AlertThreshold)
	assert.Len(t, alert.Mentions, 3)
	assert.Equal(t, 1, notifier.count())
}

func TestScheduler_WarningSeverityForModeratelyNegative(t *testing.T) {
	clock := clockwork.NewFakeClock()
	// Two negative words per mention: score -0.6, below the default -0.3
	// threshold but above the critical band.
	provider := &stubProvider{mentions: []domain.Mention{
		{ID: "1", Source: domain.SourceReview, Text: "bad and slow"},
		{ID: "2", Source: domain.SourceReview, Text: "bad and slow"},
	}}
	scheduler, _, alerts, _ := newTestScheduler(t, clock, provider)

	scheduler.Start("user-1", "acme", Options{})
	clock.BlockUntil(1)

	recorded := alerts.recorded()
	require.Len(t, recorded, 1)
	assert.Equal(t, domain.SeverityWarning, recorded[0].Severity)
}

func TestScheduler_NoAlertForPositiveSentiment(t *testing.T) {
	clock := clockwork.NewFakeClock()
	provider := &stubProvider{mentions: []domain.Mention{
		{ID: "1", Source: domain.SourceSocial, Text: "great product, love it"},
	}}
	scheduler, _, alerts, notifier := newTestScheduler(t, clock, provider)

	scheduler.Start("user-1", "acme", Options{})
	clock.BlockUntil(1)

	assert.Empty(t, alerts.recorded())
	assert.Equal(t, 0, notifier.count())
}

func TestScheduler_AlertSampleCapped(t *testing.T) {
	clock := clockwork.NewFakeClock()
	provider := &stubProvider{mentions: negativeMentions(25)}
	scheduler, _, alerts, _ := newTestScheduler(t, clock, provider)

	scheduler.Start("user-1", "acme", Options{})
	clock.BlockUntil(1)

	recorded := alerts.recorded()
	require.Len(t, recorded, 1)
	assert.Len(t, recorded[0].Mentions, alertSampleSize)
	assert.Equal(t, 25, recorded[0].Sentiment.Volume)
}

func TestScheduler_StopSilencesMonitor(t *testing.T) {
	clock := clockwork.NewFakeClock()
	provider := &stubProvider{mentions: negativeMentions(3)}
	scheduler, registry, alerts, _ := newTestScheduler(t, clock, provider)

	cfg := scheduler.Start("user-1", "acme", Options{})
	clock.BlockUntil(1)
	require.Len(t, alerts.recorded(), 1)

	require.True(t, scheduler.Stop(cfg.ID))

	_, ok := registry.Get(cfg.ID)
	assert.False(t, ok)

	clock.Advance(10 * cfg.CheckInterval)
	assert.Never(t, func() bool {
		return provider.calls() > 1 || len(alerts.recorded()) > 1
	}, 100*time.Millisecond, 10*time.Millisecond, "a stopped monitor must not tick or alert again")
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	clock := clockwork.NewFakeClock()
	provider := &stubProvider{}
	scheduler, _, _, _ := newTestScheduler(t, clock, provider)

	cfg := scheduler.Start("user-1", "acme", Options{})
	clock.BlockUntil(1)

	assert.True(t, scheduler.Stop(cfg.ID))
	assert.False(t, scheduler.Stop(cfg.ID))
	assert.False(t, scheduler.Stop(uuid.New()), "unknown monitor reports not found")
}

func TestScheduler_ProviderErrorKeepsLoopAlive(t *testing.T) {
	clock := clockwork.NewFakeClock()
	provider := &stubProvider{err: errors.New("upstream down")}
	scheduler, registry, alerts, _ := newTestScheduler(t, clock, provider)

	cfg := scheduler.Start("user-1", "acme", Options{})
	clock.BlockUntil(1)
	require.Equal(t, 1, provider.calls())
	assert.Empty(t, alerts.recorded())

	// A failed tick must not move the checkpoint.
	stored, _ := registry.Get(cfg.ID)
	assert.Equal(t, cfg.StartedAt, stored.LastCheck)

	provider.set(negativeMentions(3), nil)
	clock.Advance(cfg.CheckInterval)
	clock.BlockUntil(1)

	require.Equal(t, 2, provider.calls())
	assert.Len(t, alerts.recorded(), 1, "the loop recovers and alerts on the next successful tick")
}

func TestScheduler_AlertStoreErrorDoesNotNotify(t *testing.T) {
	clock := clockwork.NewFakeClock()
	provider := &stubProvider{mentions: negativeMentions(3)}
	registry := NewRegistry()
	alerts := &recordingAlertStore{err: errors.New("store unavailable")}
	notifier := &countingNotifier{}
	scheduler := NewScheduler(registry, provider, alerts, notifier, clock, Defaults{})
	t.Cleanup(scheduler.Shutdown)

	scheduler.Start("user-1", "acme", Options{})
	clock.BlockUntil(1)

	assert.Equal(t, 0, notifier.count(), "an unrecorded alert is not delivered")
}

func TestScheduler_RaiseAlertSkipsInactiveMonitor(t *testing.T) {
	clock := clockwork.NewFakeClock()
	provider := &stubProvider{}
	scheduler, _, alerts, notifier := newTestScheduler(t, clock, provider)

	// Config never registered, as if the monitor was stopped mid-tick.
	cfg := domain.MonitoringConfig{ID: uuid.New(), UserID: "user-1", BrandName: "acme"}
	agg := domain.AggregatedSentiment{
		Overall: domain.OverallSentiment{Score: -0.9, Label: domain.LabelVeryNegative},
		Volume:  3,
	}
	scheduler.raiseAlert(context.Background(), cfg, agg, negativeMentions(3))

	assert.Empty(t, alerts.recorded())
	assert.Equal(t, 0, notifier.count())
}

func TestScheduler_ShutdownStopsAllLoops(t *testing.T) {
	clock := clockwork.NewFakeClock()
	provider := &stubProvider{}
	scheduler, _, _, _ := newTestScheduler(t, clock, provider)

	scheduler.Start("user-1", "acme", Options{})
	scheduler.Start("user-2", "globex", Options{})
	clock.BlockUntil(2)
	require.Equal(t, 2, provider.calls())

	scheduler.Shutdown()

	clock.Advance(time.Hour)
	assert.Never(t, func() bool {
		return provider.calls() > 2
	}, 100*time.Millisecond, 10*time.Millisecond)
}
