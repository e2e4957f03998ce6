package mock

import "github.com/fwojciec/showreel"

var _ showreel.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of showreel.Strategy.
type Strategy struct {
	NameFn    func() string
	ExtractFn func(markup, url string, store showreel.PatternStore) (*showreel.Record, error)
}

func (s *Strategy) Name() string {
	return s.NameFn()
}

func (s *Strategy) Extract(markup, url string, store showreel.PatternStore) (*showreel.Record, error) {
	return s.ExtractFn(markup, url, store)
}
