// Package provider gathers brand mentions from external sources. Calls are
// best-effort: every source is bounded by a timeout, guarded by a circuit
// breaker and a rate limiter, and a failing source is skipped rather than
// failing the whole fetch.
package provider

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/domain"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/metrics"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/platform/retry"
)

const (
	defaultSourceTimeout = 5 * time.Second
	fetchMaxAttempts     = 3
	fetchInitialBackoff  = 200 * time.Millisecond

	// sourceRatePerSecond bounds sustained fetches per source; bursts up to
	// sourceRateBurst are allowed.
	sourceRatePerSecond = 5
	sourceRateBurst     = 10
)

// SourceFetcher retrieves mentions from one external source.
type SourceFetcher interface {
	Source() domain.Source
	Fetch(ctx context.Context, query domain.MentionQuery) ([]domain.Mention, error)
}

type guardedSource struct {
	fetcher SourceFetcher
	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
}

// MultiSource fans a query out to every requested source concurrently and
// merges whatever could be gathered.
type MultiSource struct {
	timeout time.Duration

	mu      sync.RWMutex
	sources map[domain.Source]*guardedSource
}

// NewMultiSource creates a provider with the given per-source timeout.
// A non-positive timeout falls back to the default.
func NewMultiSource(timeout time.Duration) *MultiSource {
	if timeout <= 0 {
		timeout = defaultSourceTimeout
	}
	return &MultiSource{
		timeout: timeout,
		sources: make(map[domain.Source]*guardedSource),
	}
}

// Register adds a source fetcher, wrapping it with its own circuit breaker
// and rate limiter. Registering the same source twice replaces the fetcher.
func (p *MultiSource) Register(f SourceFetcher) {
	name := string(f.Source())
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "mention-source-" + name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			slog.Warn("Mention source circuit breaker state changed",
				"source", name, "from", from.String(), "to", to.String())
			metrics.ProviderBreakerState.WithLabelValues(name).Set(breakerStateToFloat(to))
		},
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	p.sources[f.Source()] = &guardedSource{
		fetcher: f,
		breaker: breaker,
		limiter: rate.NewLimiter(rate.Limit(sourceRatePerSecond), sourceRateBurst),
	}
}

// FetchMentions gathers mentions from all requested sources. The returned
// error is always nil for partial failures; a source that fails, is
// rate-limited, or has no registered fetcher is skipped and logged.
func (p *MultiSource) FetchMentions(ctx context.Context, query domain.MentionQuery) ([]domain.Mention, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		gathered []domain.Mention
	)

	for _, src := range query.Sources {
		p.mu.RLock()
		gs, ok := p.sources[src]
		p.mu.RUnlock()
		if !ok {
			metrics.ProviderFetchesTotal.WithLabelValues(string(src), "skipped").Inc()
			slog.DebugContext(ctx, "No fetcher registered for source, skipping", "source", src)
			continue
		}

		wg.Add(1)
		go func(src domain.Source, gs *guardedSource) {
			defer wg.Done()
			mentions, err := p.fetchOne(ctx, gs, query)
			if err != nil {
				metrics.ProviderFetchesTotal.WithLabelValues(string(src), "error").Inc()
				slog.WarnContext(ctx, "Mention source failed, continuing with remaining sources",
					"source", src, "error", err)
				return
			}
			metrics.ProviderFetchesTotal.WithLabelValues(string(src), "ok").Inc()
			mu.Lock()
			gathered = append(gathered, mentions...)
			mu.Unlock()
		}(src, gs)
	}

	wg.Wait()
	return gathered, nil
}

func (p *MultiSource) fetchOne(ctx context.Context, gs *guardedSource, query domain.MentionQuery) ([]domain.Mention, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := gs.limiter.Wait(fetchCtx); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		metrics.ProviderFetchDuration.WithLabelValues(string(gs.fetcher.Source())).Observe(time.Since(start).Seconds())
	}()

	policy := retry.Policy{
		MaxAttempts:    fetchMaxAttempts,
		InitialBackoff: fetchInitialBackoff,
	}
	classify := func(err error) retry.Action {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, gobreaker.ErrOpenState) {
			return retry.Stop
		}
		return retry.Retry
	}

	return retry.Do(fetchCtx, policy, classify, func() ([]domain.Mention, error) {
		res, err := gs.breaker.Execute(func() (any, error) {
			return gs.fetcher.Fetch(fetchCtx, query)
		})
		if err != nil {
			return nil, err
		}
		mentions, _ := res.([]domain.Mention)
		return mentions, nil
	})
}

func breakerStateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
