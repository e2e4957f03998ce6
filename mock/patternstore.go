// Package mock provides function-field mocks of the domain interfaces.
package mock

import "github.com/fwojciec/showreel"

var _ showreel.PatternStore = (*PatternStore)(nil)

// PatternStore is a mock implementation of showreel.PatternStore.
type PatternStore struct {
	DomainFn  func(domain string) (*showreel.DomainConfig, bool)
	GlobalFn  func(field string) []showreel.Pattern
	DomainsFn func() []string
}

func (s *PatternStore) Domain(domain string) (*showreel.DomainConfig, bool) {
	if s.DomainFn == nil {
		return nil, false
	}
	return s.DomainFn(domain)
}

func (s *PatternStore) Global(field string) []showreel.Pattern {
	if s.GlobalFn == nil {
		return nil
	}
	return s.GlobalFn(field)
}

func (s *PatternStore) Domains() []string {
	if s.DomainsFn == nil {
		return nil
	}
	return s.DomainsFn()
}
