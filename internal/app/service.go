// Package app is the application layer: handlers route every public
// operation through the Service, which owns the scheduler and stores.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/domain"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/monitor"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/sentiment"
)

const (
	defaultTimeframe = 24 * time.Hour
	reportSampleSize = 20
)

var defaultReportSources = []domain.Source{domain.SourceSocial, domain.SourceNews, domain.SourceReview}

// monitorNotFoundMessage is the stable error string callers match on.
const monitorNotFoundMessage = "Monitor not found"

// BrandOptions carries the recognized knobs of a one-shot brand analysis.
type BrandOptions struct {
	Sources   []domain.Source
	Keywords  []string
	Timeframe time.Duration
}

// BrandSentimentReport is the result of analyzeBrandSentiment.
type BrandSentimentReport struct {
	Success     bool                       `json:"success"`
	BrandName   string                     `json:"brandName"`
	Sentiment   domain.AggregatedSentiment `json:"sentiment"`
	Risk        domain.RiskAssessment      `json:"risk"`
	Mentions    []domain.Mention           `json:"mentions"`
	DataSources []domain.Source            `json:"dataSources"`
	GeneratedAt time.Time                  `json:"generatedAt"`
}

// StartMonitoringResult is the result of startRealtimeMonitoring.
type StartMonitoringResult struct {
	Success      bool                    `json:"success"`
	MonitoringID uuid.UUID               `json:"monitoringId"`
	Config       domain.MonitoringConfig `json:"config"`
	Status       string                  `json:"status"`
}

// StopMonitoringResult is the result of stopMonitoring.
type StopMonitoringResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// UserAlertsResult is the result of getUserAlerts.
type UserAlertsResult struct {
	Success bool           `json:"success"`
	Alerts  []domain.Alert `json:"alerts"`
	Count   int            `json:"count"`
}

// MonitorListResult lists a user's active monitors.
type MonitorListResult struct {
	Success  bool                      `json:"success"`
	Monitors []domain.MonitoringConfig `json:"monitors"`
	Count    int                       `json:"count"`
}

// FeedbackResult is the result of recordFeedback.
type FeedbackResult struct {
	Success bool `json:"success"`
}

// Service exposes the core operations of the sentiment subsystem. All
// operations return result objects carrying a success flag; none of them
// panic or throw toward the caller.
type Service struct {
	registry  *monitor.Registry
	scheduler *monitor.Scheduler
	provider  domain.MentionProvider
	alerts    domain.AlertStore
	feedback  *sentiment.FeedbackLog
	clock     clockwork.Clock
}

func NewService(registry *monitor.Registry, scheduler *monitor.Scheduler, provider domain.MentionProvider, alerts domain.AlertStore, feedback *sentiment.FeedbackLog, clock clockwork.Clock) *Service {
	return &Service{
		registry:  registry,
		scheduler: scheduler,
		provider:  provider,
		alerts:    alerts,
		feedback:  feedback,
		clock:     clock,
	}
}

// AnalyzeSingleContent scores one text. Empty or degenerate input resolves
// to a neutral result rather than an error.
func (s *Service) AnalyzeSingleContent(text, context string) domain.SentimentResult {
	return sentiment.Analyze(text, context)
}

// AnalyzeBrandSentiment gathers current mentions for a brand, scores them in
// parallel, and returns the aggregated summary with a risk assessment and a
// sample of the underlying mentions.
func (s *Service) AnalyzeBrandSentiment(ctx context.Context, brandName string, opts BrandOptions) BrandSentimentReport {
	sources := opts.Sources
	if len(sources) == 0 {
		sources = defaultReportSources
	}
	timeframe := opts.Timeframe
	if timeframe <= 0 {
		timeframe = defaultTimeframe
	}

	mentions, err := s.provider.FetchMentions(ctx, domain.MentionQuery{
		Brand:    brandName,
		Keywords: opts.Keywords,
		Sources:  sources,
		Since:    s.clock.Now().Add(-timeframe),
	})
	if err != nil {
		// The provider is best-effort; a top-level error still yields an
		// empty (neutral) report rather than a failure.
		slog.Warn("Mention fetch failed for brand report", "brand", brandName, "error", err)
		mentions = nil
	}

	scored := sentiment.ScoreAll(mentions)
	agg := sentiment.AggregateScored(scored)

	sample := mentions
	if len(sample) > reportSampleSize {
		sample = sample[:reportSampleSize]
	}

	return BrandSentimentReport{
		Success:     true,
		BrandName:   brandName,
		Sentiment:   agg,
		Risk:        sentiment.AssessRisk(agg),
		Mentions:    sample,
		DataSources: sources,
		GeneratedAt: s.clock.Now(),
	}
}

// StartRealtimeMonitoring registers a new monitoring job and schedules its
// first tick.
func (s *Service) StartRealtimeMonitoring(userID, brandName string, opts monitor.Options) StartMonitoringResult {
	cfg := s.scheduler.Start(userID, brandName, opts)
	return StartMonitoringResult{
		Success:      true,
		MonitoringID: cfg.ID,
		Config:       cfg,
		Status:       "active",
	}
}

// StopMonitoring ends a monitoring job. It is idempotent: stopping an
// unknown or already-stopped monitor reports a structured error, never
// panics.
func (s *Service) StopMonitoring(monitoringID uuid.UUID) StopMonitoringResult {
	if !s.scheduler.Stop(monitoringID) {
		return StopMonitoringResult{Success: false, Error: monitorNotFoundMessage}
	}
	return StopMonitoringResult{Success: true, Message: "Monitoring stopped"}
}

// GetUserAlerts returns all alerts for a user, newest first.
func (s *Service) GetUserAlerts(ctx context.Context, userID string) UserAlertsResult {
	alerts, err := s.alerts.GetUserAlerts(ctx, userID)
	if err != nil {
		slog.Error("Failed to load user alerts", "user_id", userID, "error", err)
		return UserAlertsResult{Success: false, Alerts: []domain.Alert{}}
	}
	if alerts == nil {
		alerts = []domain.Alert{}
	}
	return UserAlertsResult{Success: true, Alerts: alerts, Count: len(alerts)}
}

// ListUserMonitors returns the user's currently active monitoring jobs.
func (s *Service) ListUserMonitors(userID string) MonitorListResult {
	monitors := s.registry.ListByUser(userID)
	if monitors == nil {
		monitors = []domain.MonitoringConfig{}
	}
	return MonitorListResult{Success: true, Monitors: monitors, Count: len(monitors)}
}

// RecordFeedback appends externally supplied correctness feedback. It never
// alters runtime scoring.
func (s *Service) RecordFeedback(text, label string) FeedbackResult {
	s.feedback.Record(text, label)
	return FeedbackResult{Success: true}
}

// LearningStats returns descriptive statistics over the feedback log.
func (s *Service) LearningStats() domain.LearningStats {
	return s.feedback.Stats()
}

// Stop shuts down all monitoring loops and waits for in-flight ticks.
func (s *Service) Stop() {
	s.scheduler.Shutdown()
}
