package mock

import "github.com/fwojciec/showreel"

var _ showreel.SelectorEvaluator = (*SelectorEvaluator)(nil)

// SelectorEvaluator is a mock implementation of showreel.SelectorEvaluator.
type SelectorEvaluator struct {
	EvaluateFn func(markup string, p showreel.Pattern) ([]string, error)
}

func (e *SelectorEvaluator) Evaluate(markup string, p showreel.Pattern) ([]string, error) {
	return e.EvaluateFn(markup, p)
}
