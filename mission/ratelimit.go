package mission

import (
	"context"

	"github.com/fwojciec/showreel"
	"golang.org/x/time/rate"
)

var _ showreel.Suggester = (*RateLimitedSuggester)(nil)

// RateLimitedSuggester wraps a suggester with a token-bucket limit so repair
// consultations cannot flood the inference backend. Burst is 1: requests
// space out evenly.
type RateLimitedSuggester struct {
	inner   showreel.Suggester
	limiter *rate.Limiter
}

// NewRateLimitedSuggester creates a RateLimitedSuggester allowing rps
// requests per second.
func NewRateLimitedSuggester(inner showreel.Suggester, rps float64) *RateLimitedSuggester {
	return &RateLimitedSuggester{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Suggest blocks until the rate limit allows a request, then delegates.
// Returns an error if the context is canceled before the wait completes.
func (s *RateLimitedSuggester) Suggest(ctx context.Context, model, markup string, missing []string) (map[string]showreel.Suggestion, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.Suggest(ctx, model, markup, missing)
}
