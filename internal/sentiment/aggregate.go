package sentiment

import (
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/domain"
)

// ScoredMention pairs a mention with its sentiment result for one tick.
type ScoredMention struct {
	Mention domain.Mention
	Result  domain.SentimentResult
}

// Aggregate folds many sentiment results into one brand-level summary.
// It is a pure function: the same input always yields the same output.
func Aggregate(results []domain.SentimentResult) domain.AggregatedSentiment {
	agg := domain.AggregatedSentiment{
		Overall:   domain.OverallSentiment{Label: domain.LabelNeutral},
		Breakdown: make(map[domain.Label]int),
		Sources:   make(map[domain.Source]domain.SourceStats),
	}
	if len(results) == 0 {
		return agg
	}

	agg.Breakdown = emptyBreakdown()

	var scoreSum, confidenceSum float64
	for _, r := range results {
		scoreSum += r.Score
		confidenceSum += r.Confidence
		agg.Breakdown[LabelForScore(r.Score)]++
	}

	n := float64(len(results))
	agg.Volume = len(results)
	agg.Overall = domain.OverallSentiment{
		Score:      scoreSum / n,
		Label:      LabelForScore(scoreSum / n),
		Confidence: confidenceSum / n,
	}
	return agg
}

// AggregateScored aggregates scored mentions, additionally grouping count and
// mean score per mention source.
func AggregateScored(scored []ScoredMention) domain.AggregatedSentiment {
	results := make([]domain.SentimentResult, len(scored))
	for i, sm := range scored {
		results[i] = sm.Result
	}
	agg := Aggregate(results)

	sums := make(map[domain.Source]float64)
	for _, sm := range scored {
		src := sm.Mention.Source
		if src == "" {
			continue
		}
		stats := agg.Sources[src]
		stats.Count++
		sums[src] += sm.Result.Score
		agg.Sources[src] = stats
	}
	for src, stats := range agg.Sources {
		stats.AvgScore = sums[src] / float64(stats.Count)
		agg.Sources[src] = stats
	}
	return agg
}

// emptyBreakdown returns all five buckets initialized to zero, so breakdown
// counts always sum to volume and serialize with every bucket present.
func emptyBreakdown() map[domain.Label]int {
	return map[domain.Label]int{
		domain.LabelVeryNegative: 0,
		domain.LabelNegative:     0,
		domain.LabelNeutral:      0,
		domain.LabelPositive:     0,
		domain.LabelVeryPositive: 0,
	}
}
