package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Mentions ---

// Source identifies where a mention was gathered from.
type Source string

const (
	SourceSocial Source = "social"
	SourceNews   Source = "news"
	SourceReview Source = "review"
	SourceCustom Source = "custom"
)

// Mention is a single piece of text attributed to a source/platform about a
// brand. Mentions are transient: they are scored immediately and only survive
// when sampled into an Alert or a brand report.
type Mention struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Source      Source    `json:"source"`
	Platform    string    `json:"platform"`
	PublishedAt time.Time `json:"publishedAt"`
	Author      string    `json:"author"`
}

// MentionQuery describes one provider call: which brand/keywords to look for,
// which sources to ask, and how far back.
type MentionQuery struct {
	Brand    string
	Keywords []string
	Sources  []Source
	Since    time.Time
}

// --- Sentiment ---

// Label is one of five discrete sentiment buckets derived from a score.
type Label string

const (
	LabelVeryNegative Label = "very_negative"
	LabelNegative     Label = "negative"
	LabelNeutral      Label = "neutral"
	LabelPositive     Label = "positive"
	LabelVeryPositive Label = "very_positive"
)

// Entity is a heuristically detected named entity in a text.
type Entity struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// SentimentResult is the scorer's output for one text.
// Score is always in [-1,1] and Confidence in [0,1].
type SentimentResult struct {
	Score      float64  `json:"score"`
	Label      Label    `json:"label"`
	Confidence float64  `json:"confidence"`
	Themes     []string `json:"themes"`
	Positives  []string `json:"positives"`
	Negatives  []string `json:"negatives"`
	Entities   []Entity `json:"entities,omitempty"`
	Emotions   []string `json:"emotions,omitempty"`
	Method     string   `json:"method"`
}

// OverallSentiment is the headline triple of an aggregation.
type OverallSentiment struct {
	Score      float64 `json:"score"`
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
}

// SourceStats summarises the mentions contributed by one source.
type SourceStats struct {
	Count    int     `json:"count"`
	AvgScore float64 `json:"avgScore"`
}

// AggregatedSentiment is the brand-level summary of many scored mentions.
// The Breakdown counts always sum to Volume.
type AggregatedSentiment struct {
	Overall   OverallSentiment       `json:"overall"`
	Breakdown map[Label]int          `json:"breakdown"`
	Volume    int                    `json:"volume"`
	Sources   map[Source]SourceStats `json:"sources"`
}

// --- Risk ---

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskAssessment maps an aggregated summary to a risk level with the factors
// that produced it and recommended actions.
type RiskAssessment struct {
	Level           RiskLevel `json:"level"`
	Factors         []string  `json:"factors"`
	Recommendations []string  `json:"recommendations"`
}

// --- Monitoring ---

// MonitoringConfig is the in-memory record of one active brand monitor.
// It is created on start, mutated only by the owning scheduler loop
// (LastCheck) and by stop (IsActive), and removed from the registry on stop.
type MonitoringConfig struct {
	ID             uuid.UUID     `json:"id"`
	UserID         string        `json:"userId"`
	BrandName      string        `json:"brandName"`
	Sources        []Source      `json:"sources"`
	Keywords       []string      `json:"keywords"`
	AlertThreshold float64       `json:"alertThreshold"`
	CheckInterval  time.Duration `json:"checkInterval"`
	IsActive       bool          `json:"isActive"`
	StartedAt      time.Time     `json:"startedAt"`
	LastCheck      time.Time     `json:"lastCheck"`
}

// Severity of a raised alert, derived from the aggregated score.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert records that a tick's aggregated sentiment crossed the configured
// threshold. Alerts are append-only.
type Alert struct {
	ID           uuid.UUID           `json:"id"`
	MonitoringID uuid.UUID           `json:"monitoringId"`
	UserID       string              `json:"userId"`
	BrandName    string              `json:"brandName"`
	Severity     Severity            `json:"severity"`
	Sentiment    AggregatedSentiment `json:"sentiment"`
	Mentions     []Mention           `json:"mentions"`
	Timestamp    time.Time           `json:"timestamp"`
}

// LearningStats are descriptive statistics over the feedback log. They never
// feed back into scoring.
type LearningStats struct {
	TotalAnalyses      int            `json:"total_analyses"`
	RecentAnalyses     int            `json:"recent_analyses"`
	AverageConfidence  float64        `json:"average_confidence"`
	MethodDistribution map[string]int `json:"method_distribution"`
}

// --- Collaborator interfaces ---

// MentionProvider gathers new mentions for a query. Implementations are
// best-effort: a failure on one source must not fail the whole call, and the
// result may be empty.
type MentionProvider interface {
	FetchMentions(ctx context.Context, query MentionQuery) ([]Mention, error)
}

// Notifier delivers a raised alert to the user. Fire-and-forget: the core
// assumes no delivery guarantee.
type Notifier interface {
	Notify(ctx context.Context, userID string, alert Alert)
}

// AlertStore is the append/query store of raised alerts.
type AlertStore interface {
	RecordAlert(ctx context.Context, alert Alert) error
	GetUserAlerts(ctx context.Context, userID string) ([]Alert, error)
}
