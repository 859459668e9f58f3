package sentiment

import (
	"sync"

	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/domain"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/metrics"
)

// ScoreAll scores a batch of mentions concurrently, one goroutine per
// mention. Scoring is pure CPU work with no shared mutable state, so each
// goroutine writes only its own slot. The function returns only after every
// mention has been scored: callers never observe a partial batch.
func ScoreAll(mentions []domain.Mention) []ScoredMention {
	scored := make([]ScoredMention, len(mentions))

	var wg sync.WaitGroup
	for i, m := range mentions {
		wg.Add(1)
		go func(i int, m domain.Mention) {
			defer wg.Done()
			scored[i] = ScoredMention{
				Mention: m,
				Result:  Analyze(m.Text, DefaultContext),
			}
		}(i, m)
	}
	wg.Wait()

	metrics.MentionsScoredTotal.Add(float64(len(mentions)))
	return scored
}
