package showreel

import "context"

// Suggestion is one candidate fix for a missing field: a CSS selector to
// evaluate against the page, or a literal value, or both (selector wins).
type Suggestion struct {
	Selector    string `json:"selector,omitempty"`
	Value       string `json:"value,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// Suggester is the opaque inference capability consulted by the repair step.
// Given a bounded markup excerpt and the missing field names it returns
// candidate suggestions keyed by field. The model identifier is passed
// through unchanged; implementations choose their own default when it is
// empty. Errors and timeouts are equivalent to the caller: repair is skipped.
type Suggester interface {
	Suggest(ctx context.Context, model, markup string, missing []string) (map[string]Suggestion, error)
}
