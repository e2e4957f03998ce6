// Package mission orchestrates extraction attempts: it runs the strategy
// cascade, applies inference-assisted repair, and records every attempt in
// the ledger.
package mission

import (
	"github.com/fwojciec/showreel"
)

// Cascade runs strategies in priority order until one produces an
// acceptable record.
type Cascade struct {
	strategies []showreel.Strategy
}

// NewCascade creates a Cascade trying strategies in the given order.
func NewCascade(strategies ...showreel.Strategy) *Cascade {
	return &Cascade{strategies: strategies}
}

// CascadeResult is the outcome of one cascade pass.
type CascadeResult struct {
	// Record is the accepted record, or the most complete partial when no
	// strategy produced an acceptable one. Nil when every strategy came up
	// empty.
	Record *showreel.Record

	// Accepted reports whether Record passed validation.
	Accepted bool

	// Tried lists the strategy names attempted, in order.
	Tried []string

	// LastError is the text of the last strategy error, if any. ENOTFOUND
	// results are not errors; they just mean a strategy had nothing to say.
	LastError string
}

// Run tries each strategy against the page. Domain configurations may
// reorder the cascade via their stored method list; unknown names in the
// list are ignored and strategies it omits run after the ones it names.
// The pass short-circuits on the first acceptable record. When nothing is
// acceptable the most complete partial wins, compared by populated field
// count and then by credit count.
func (c *Cascade) Run(markup, url string, store showreel.PatternStore) CascadeResult {
	result := CascadeResult{Tried: []string{}}

	var best *showreel.Record
	for _, s := range c.ordered(showreel.DomainOf(url), store) {
		result.Tried = append(result.Tried, s.Name())

		rec, err := s.Extract(markup, url, store)
		if err != nil {
			if showreel.ErrorCode(err) != showreel.ENOTFOUND {
				result.LastError = showreel.ErrorMessage(err)
			}
			continue
		}
		rec.Meta.StrategyUsed = s.Name()

		if showreel.Acceptable(rec) {
			result.Record = rec
			result.Accepted = true
			return result
		}
		if better(rec, best) {
			best = rec
		}
	}

	result.Record = best
	return result
}

// ordered returns the strategies in domain-preferred order.
func (c *Cascade) ordered(domain string, store showreel.PatternStore) []showreel.Strategy {
	config, ok := store.Domain(domain)
	if !ok || len(config.Methods) == 0 {
		return c.strategies
	}

	byName := make(map[string]showreel.Strategy, len(c.strategies))
	for _, s := range c.strategies {
		byName[s.Name()] = s
	}

	ordered := make([]showreel.Strategy, 0, len(c.strategies))
	used := make(map[string]bool, len(c.strategies))
	for _, name := range config.Methods {
		if s, ok := byName[name]; ok && !used[name] {
			ordered = append(ordered, s)
			used[name] = true
		}
	}
	for _, s := range c.strategies {
		if !used[s.Name()] {
			ordered = append(ordered, s)
		}
	}
	return ordered
}

// better reports whether a beats b as a partial result.
func better(a, b *showreel.Record) bool {
	if b == nil {
		return true
	}
	if a.FieldCount() != b.FieldCount() {
		return a.FieldCount() > b.FieldCount()
	}
	return a.CreditCount() > b.CreditCount()
}
