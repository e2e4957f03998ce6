package showreel

import "regexp"

// PatternKind identifies how a pattern expression is evaluated.
type PatternKind string

// Supported pattern kinds.
const (
	// PatternRegex is a Go regular expression applied to raw markup.
	// Capture group 1, when present, is the extracted value.
	PatternRegex PatternKind = "regex"

	// PatternMeta is a CSS selector for head metadata (title, meta tags);
	// Attribute names the attribute to read, defaulting to element text.
	PatternMeta PatternKind = "meta"

	// PatternSelector is a CSS selector applied to the document body.
	PatternSelector PatternKind = "selector"

	// PatternJSONPath is a gjson path applied to an embedded JSON payload.
	PatternJSONPath PatternKind = "json_path"
)

// Pattern is a named extraction rule. Patterns are immutable once stored:
// the pattern store adds new versions rather than mutating in place.
type Pattern struct {
	Name       string
	Kind       PatternKind
	Expression string

	// Attribute is the attribute to read for meta/selector kinds.
	// Empty means element text.
	Attribute string

	// Template, when set, wraps a single captured value, e.g.
	// "https://notube.lbbonline.com/v/%s" for a captured video id.
	Template string
}

// Validate returns an error if the pattern cannot be evaluated. Regex
// expressions must compile; every kind requires a non-empty expression.
func (p *Pattern) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "pattern name required")
	}
	if p.Expression == "" {
		return Errorf(EINVALID, "pattern %q: expression required", p.Name)
	}
	switch p.Kind {
	case PatternRegex:
		if _, err := regexp.Compile(p.Expression); err != nil {
			return Errorf(EINVALID, "pattern %q: invalid regex: %v", p.Name, err)
		}
	case PatternMeta, PatternSelector, PatternJSONPath:
	default:
		return Errorf(EINVALID, "pattern %q: unknown kind %q", p.Name, p.Kind)
	}
	return nil
}

// DomainConfig holds the extraction configuration for one domain: named
// patterns plus the ordered strategy names to try for its pages.
type DomainConfig struct {
	Patterns map[string]Pattern
	Methods  []string
}

// Pattern returns the named domain pattern, if present.
func (c *DomainConfig) Pattern(name string) (Pattern, bool) {
	if c == nil {
		return Pattern{}, false
	}
	p, ok := c.Patterns[name]
	return p, ok
}

// PatternStore provides read access to extraction patterns. Implementations
// must be safe for unsynchronized concurrent reads; updates swap in a whole
// new version so in-flight readers never observe a partial state.
type PatternStore interface {
	// Domain returns the configuration for a domain, if one exists.
	Domain(domain string) (*DomainConfig, bool)

	// Global returns the ordered fallback patterns for a field name.
	Global(field string) []Pattern

	// Domains returns the configured domains, sorted.
	Domains() []string
}

// SelectorEvaluator evaluates a pattern against markup, returning every
// matched value in document order. The markup-structure decoder and the
// repair step share one implementation so suggested selectors behave exactly
// like stored ones.
type SelectorEvaluator interface {
	Evaluate(markup string, p Pattern) ([]string, error)
}
