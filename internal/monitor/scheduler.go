package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/domain"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/metrics"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/platform/correlation"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/sentiment"
)

const (
	defaultCheckInterval  = 5 * time.Minute
	defaultAlertThreshold = -0.3
	alertSampleSize       = 10
)

var defaultSources = []domain.Source{domain.SourceSocial, domain.SourceReview}

// Options carries the recognized knobs of a monitoring request. Unset fields
// fall back to defaults at construction time, not at the call sites.
type Options struct {
	Sources        []domain.Source
	Keywords       []string
	AlertThreshold *float64
	CheckInterval  time.Duration
}

// Defaults are the deployment-wide fallbacks applied when a monitoring
// request leaves a knob unset. Zero values select the built-in defaults.
type Defaults struct {
	CheckInterval  time.Duration
	AlertThreshold float64
}

func (d Defaults) withBuiltins() Defaults {
	if d.CheckInterval <= 0 {
		d.CheckInterval = defaultCheckInterval
	}
	if d.AlertThreshold == 0 {
		d.AlertThreshold = defaultAlertThreshold
	}
	return d
}

// Scheduler owns one polling loop per active monitoring job. Each loop runs
// for the lifetime of its job: it fetches new mentions, scores them
// concurrently, aggregates, and raises an alert when the aggregated score
// crosses the configured threshold. Only Stop ends a loop; every per-tick
// error is recoverable.
type Scheduler struct {
	registry *Registry
	provider domain.MentionProvider
	alerts   domain.AlertStore
	notifier domain.Notifier
	clock    clockwork.Clock
	defaults Defaults

	mu      sync.Mutex
	cancels map[uuid.UUID]context.CancelFunc
	wg      sync.WaitGroup
}

func NewScheduler(registry *Registry, provider domain.MentionProvider, alerts domain.AlertStore, notifier domain.Notifier, clock clockwork.Clock, defaults Defaults) *Scheduler {
	return &Scheduler{
		registry: registry,
		provider: provider,
		alerts:   alerts,
		notifier: notifier,
		clock:    clock,
		defaults: defaults.withBuiltins(),
		cancels:  make(map[uuid.UUID]context.CancelFunc),
	}
}

// Start registers a new monitoring job for (user, brand) and schedules its
// first tick immediately. It returns a copy of the constructed config.
func (s *Scheduler) Start(userID, brandName string, opts Options) domain.MonitoringConfig {
	now := s.clock.Now()
	cfg := domain.MonitoringConfig{
		ID:             uuid.New(),
		UserID:         userID,
		BrandName:      brandName,
		Sources:        opts.Sources,
		Keywords:       opts.Keywords,
		AlertThreshold: s.defaults.AlertThreshold,
		CheckInterval:  opts.CheckInterval,
		IsActive:       true,
		StartedAt:      now,
		LastCheck:      now,
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultSources
	}
	if opts.AlertThreshold != nil {
		cfg.AlertThreshold = *opts.AlertThreshold
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = s.defaults.CheckInterval
	}

	s.registry.Add(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancels[cfg.ID] = cancel
	s.mu.Unlock()

	metrics.MonitorsActive.Inc()
	s.wg.Add(1)
	go s.run(ctx, cfg.ID)

	slog.Info("Monitoring started",
		"monitoring_id", cfg.ID,
		"user_id", userID,
		"brand", brandName,
		"interval", cfg.CheckInterval,
		"threshold", cfg.AlertThreshold)
	return cfg
}

// Stop prevents all future ticks for the job. An in-flight tick is allowed
// to finish, but no subsequent tick will be scheduled. Stop is idempotent:
// it reports false for unknown or already-stopped monitors without erroring.
func (s *Scheduler) Stop(id uuid.UUID) bool {
	found := s.registry.Stop(id)

	s.mu.Lock()
	cancel, ok := s.cancels[id]
	if ok {
		delete(s.cancels, id)
	}
	s.mu.Unlock()
	if ok {
		cancel()
	}

	if found {
		metrics.MonitorsActive.Dec()
		slog.Info("Monitoring stopped", "monitoring_id", id)
	}
	return found
}

// Shutdown stops every loop and waits for in-flight ticks to finish.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	for id, cancel := range s.cancels {
		cancel()
		delete(s.cancels, id)
	}
	s.mu.Unlock()
	s.wg.Wait()
	slog.Info("Monitoring scheduler shut down")
}

// run is the per-job loop. The next tick is scheduled checkInterval after
// the start of the current tick, so slow ticks drift rather than pile up.
func (s *Scheduler) run(ctx context.Context, id uuid.UUID) {
	defer s.wg.Done()

	for {
		cfg, ok := s.registry.Get(id)
		if !ok || !cfg.IsActive {
			return
		}

		start := s.clock.Now()
		s.tick(ctx, cfg)

		wait := cfg.CheckInterval - s.clock.Since(start)
		if wait < 0 {
			wait = 0
		}
		select {
		case <-ctx.Done():
			return
		case <-s.clock.After(wait):
		}
	}
}

// tick runs one monitoring pass. Errors are logged, never propagated: a
// monitoring job must never silently die from an unexpected failure.
func (s *Scheduler) tick(ctx context.Context, cfg domain.MonitoringConfig) {
	tickCtx := correlation.WithID(ctx, correlation.NewID())
	start := s.clock.Now()

	defer func() {
		metrics.MonitorTickDuration.Observe(s.clock.Since(start).Seconds())
		if r := recover(); r != nil {
			metrics.MonitorTicksTotal.WithLabelValues("panic").Inc()
			slog.ErrorContext(tickCtx, "Monitoring tick panicked", "monitoring_id", cfg.ID, "panic", r)
		}
	}()

	// Check cancellation immediately before the external call so a stopped
	// job does not waste a provider round-trip.
	if ctx.Err() != nil {
		return
	}

	mentions, err := s.provider.FetchMentions(tickCtx, domain.MentionQuery{
		Brand:    cfg.BrandName,
		Keywords: cfg.Keywords,
		Sources:  cfg.Sources,
		Since:    cfg.LastCheck,
	})
	if err != nil {
		metrics.MonitorTicksTotal.WithLabelValues("provider_error").Inc()
		slog.WarnContext(tickCtx, "Mention fetch failed, will retry next tick",
			"monitoring_id", cfg.ID, "brand", cfg.BrandName, "error", err)
		return
	}

	scored := sentiment.ScoreAll(mentions)
	agg := sentiment.AggregateScored(scored)
	s.registry.SetLastCheck(cfg.ID, s.clock.Now())
	metrics.MonitorTicksTotal.WithLabelValues("ok").Inc()

	slog.DebugContext(tickCtx, "Monitoring tick complete",
		"monitoring_id", cfg.ID,
		"brand", cfg.BrandName,
		"volume", agg.Volume,
		"score", agg.Overall.Score)

	if agg.Overall.Score < cfg.AlertThreshold {
		s.raiseAlert(tickCtx, cfg, agg, mentions)
	}
}

func (s *Scheduler) raiseAlert(ctx context.Context, cfg domain.MonitoringConfig, agg domain.AggregatedSentiment, mentions []domain.Mention) {
	// A monitor stopped mid-tick must never produce a new alert.
	if current, ok := s.registry.Get(cfg.ID); !ok || !current.IsActive {
		return
	}

	severity := domain.SeverityWarning
	if sentiment.AssessRisk(agg).Level == domain.RiskCritical {
		severity = domain.SeverityCritical
	}

	sample := mentions
	if len(sample) > alertSampleSize {
		sample = sample[:alertSampleSize]
	}

	alert := domain.Alert{
		ID:           uuid.New(),
		MonitoringID: cfg.ID,
		UserID:       cfg.UserID,
		BrandName:    cfg.BrandName,
		Severity:     severity,
		Sentiment:    agg,
		Mentions:     sample,
		Timestamp:    s.clock.Now(),
	}

	if err := s.alerts.RecordAlert(ctx, alert); err != nil {
		slog.ErrorContext(ctx, "Failed to record alert", "monitoring_id", cfg.ID, "error", err)
		return
	}
	metrics.AlertsRaisedTotal.WithLabelValues(string(severity)).Inc()
	slog.WarnContext(ctx, "Sentiment alert raised",
		"monitoring_id", cfg.ID,
		"brand", cfg.BrandName,
		"severity", severity,
		"score", agg.Overall.Score,
		"threshold", cfg.AlertThreshold)

	s.notifier.Notify(ctx, cfg.UserID, alert)
}
