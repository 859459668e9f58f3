package sentiment

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/domain"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/metrics"
)

// recentWindow defines what "recent" means in the learning stats.
const recentWindow = 24 * time.Hour

type feedbackEntry struct {
	Text       string
	Label      string
	Confidence float64
	Method     string
	RecordedAt time.Time
}

// FeedbackLog is an append-only record of externally supplied correctness
// feedback. It produces descriptive statistics only and never alters runtime
// scoring behavior.
type FeedbackLog struct {
	clock clockwork.Clock

	mu      sync.Mutex
	entries []feedbackEntry
}

func NewFeedbackLog(clock clockwork.Clock) *FeedbackLog {
	return &FeedbackLog{clock: clock}
}

// Record appends one feedback entry. The text is re-scored locally so the
// log captures the scorer's confidence and method alongside the supplied
// label.
func (l *FeedbackLog) Record(text, label string) {
	result := Analyze(text, DefaultContext)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, feedbackEntry{
		Text:       text,
		Label:      label,
		Confidence: result.Confidence,
		Method:     result.Method,
		RecordedAt: l.clock.Now(),
	})
	metrics.FeedbackRecordedTotal.Inc()
}

// Stats returns descriptive statistics over all recorded feedback.
func (l *FeedbackLog) Stats() domain.LearningStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := domain.LearningStats{
		TotalAnalyses:      len(l.entries),
		MethodDistribution: make(map[string]int),
	}
	if len(l.entries) == 0 {
		return stats
	}

	cutoff := l.clock.Now().Add(-recentWindow)
	var confidenceSum float64
	for _, e := range l.entries {
		confidenceSum += e.Confidence
		stats.MethodDistribution[e.Method]++
		if e.RecordedAt.After(cutoff) {
			stats.RecentAnalyses++
		}
	}
	stats.AverageConfidence = confidenceSum / float64(len(l.entries))
	return stats
}
