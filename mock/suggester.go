package mock

import (
	"context"

	"github.com/fwojciec/showreel"
)

var _ showreel.Suggester = (*Suggester)(nil)

// Suggester is a mock implementation of showreel.Suggester.
type Suggester struct {
	SuggestFn func(ctx context.Context, model, markup string, missing []string) (map[string]showreel.Suggestion, error)
}

func (s *Suggester) Suggest(ctx context.Context, model, markup string, missing []string) (map[string]showreel.Suggestion, error) {
	return s.SuggestFn(ctx, model, markup, missing)
}
