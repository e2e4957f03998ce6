package strategy

import (
	"strings"

	"github.com/fwojciec/showreel"
)

var defaultLegacyRe = `"old_credits":"([^"]*)"`

// LegacyFieldDecoder extracts credits from the plain-text credits field that
// predates the structured blob. The field is newline-delimited: lines
// without a colon open a company-type section, "Company Name: X" opens a
// company, and any other "Role: Person" line credits the current company.
type LegacyFieldDecoder struct {
	eval showreel.SelectorEvaluator
}

// NewLegacyFieldDecoder creates a LegacyFieldDecoder.
func NewLegacyFieldDecoder(eval showreel.SelectorEvaluator) *LegacyFieldDecoder {
	return &LegacyFieldDecoder{eval: eval}
}

var _ showreel.Strategy = (*LegacyFieldDecoder)(nil)

// Name implements showreel.Strategy.
func (d *LegacyFieldDecoder) Name() string { return showreel.StrategyLegacyField }

// Extract implements showreel.Strategy. Returns ENOTFOUND when the markup
// carries no legacy credits field.
func (d *LegacyFieldDecoder) Extract(markup, url string, store showreel.PatternStore) (*showreel.Record, error) {
	domain, _ := store.Domain(showreel.DomainOf(url))

	pattern := showreel.Pattern{Name: "legacy_credits", Kind: showreel.PatternRegex, Expression: defaultLegacyRe}
	if p, ok := domain.Pattern("legacy_credits"); ok {
		pattern = p
	}

	blobs, err := d.eval.Evaluate(markup, pattern)
	if err != nil {
		return nil, err
	}
	if len(blobs) == 0 || blobs[0] == "" {
		return nil, showreel.Errorf(showreel.ENOTFOUND, "no legacy credits data")
	}

	text := strings.ReplaceAll(blobs[0], `\n`, "\n")
	companies := parseLegacyCredits(text)
	if len(companies) == 0 {
		return nil, showreel.Errorf(showreel.ENOTFOUND, "legacy credits held no companies")
	}

	rec := showreel.NewRecord()
	rec.Companies = companies

	dec := &DomainJSONDecoder{eval: d.eval}
	dec.applyPattern(markup, domain, store, "title", func(v string) { rec.Title = v })
	dec.applyPattern(markup, domain, store, "description", func(v string) { rec.Description = v })

	rec.Normalize()
	return rec, nil
}

// parseLegacyCredits walks the newline-delimited credits text, tracking the
// current section and company.
func parseLegacyCredits(text string) []showreel.Company {
	var companies []showreel.Company
	var current *showreel.Company
	section := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			section = line
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if strings.EqualFold(key, "company name") {
			companies = append(companies, showreel.Company{
				Name:    value,
				Type:    section,
				Credits: []showreel.Credit{},
			})
			current = &companies[len(companies)-1]
			continue
		}

		if current == nil || key == "" || value == "" {
			continue
		}
		for _, person := range showreel.SplitPersons(value) {
			current.Credits = append(current.Credits, showreel.Credit{
				Role:   key,
				Person: showreel.Person{Name: person},
			})
		}
	}
	return companies
}
