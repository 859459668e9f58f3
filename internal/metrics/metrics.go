package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sentiment Analysis Metrics
var (
	// AnalysesTotal tracks texts scored by resulting label
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_analyses_total",
			Help: "Total texts scored by resulting label",
		},
		[]string{"label"},
	)

	// AnalysisPanicsTotal tracks recovered panics inside the scorer
	AnalysisPanicsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentiment_analysis_panics_total",
			Help: "Total recovered scorer panics (neutral fallback substituted)",
		},
	)

	// MentionsScoredTotal tracks mentions scored in batch ticks
	MentionsScoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentiment_mentions_scored_total",
			Help: "Total mentions scored across all batches",
		},
	)

	// FeedbackRecordedTotal tracks feedback log appends
	FeedbackRecordedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentiment_feedback_recorded_total",
			Help: "Total feedback entries recorded",
		},
	)
)

// Monitoring Metrics
var (
	// MonitorsActive tracks currently active monitoring jobs
	MonitorsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "monitoring_jobs_active",
			Help: "Number of currently active brand monitoring jobs",
		},
	)

	// MonitorTicksTotal tracks monitoring ticks by result
	MonitorTicksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monitoring_ticks_total",
			Help: "Total monitoring ticks by result (ok/provider_error/panic)",
		},
		[]string{"result"},
	)

	// MonitorTickDuration tracks tick duration in seconds
	MonitorTickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "monitoring_tick_duration_seconds",
			Help:    "Monitoring tick duration in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	// AlertsRaisedTotal tracks alerts raised by severity
	AlertsRaisedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monitoring_alerts_raised_total",
			Help: "Total alerts raised by severity (warning/critical)",
		},
		[]string{"severity"},
	)
)

// Mention Provider Metrics
var (
	// ProviderFetchesTotal tracks provider fetches by source and status
	ProviderFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_fetches_total",
			Help: "Total mention fetches by source and status (ok/error/skipped)",
		},
		[]string{"source", "status"},
	)

	// ProviderFetchDuration tracks per-source fetch latency
	ProviderFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_fetch_duration_seconds",
			Help:    "Mention fetch duration in seconds by source",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"source"},
	)

	// ProviderBreakerState tracks per-source circuit breaker state
	// (0=closed, 1=half-open, 2=open)
	ProviderBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "provider_circuit_breaker_state",
			Help: "Mention source circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"source"},
	)
)

// Build Information Metrics
var (
	// BuildInfo is a gauge that always returns 1, with build metadata as labels
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "build_info",
			Help: "Build information with version, commit, build_time, and go_version labels (value is always 1)",
		},
		[]string{"version", "commit", "build_time", "go_version"},
	)
)

// HTTP Request Metrics
// Note: http_errors_total{type} is provided by the internal/errors package.
