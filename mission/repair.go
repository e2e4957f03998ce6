package mission

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/fwojciec/showreel"
)

// excerptLimit bounds the markup sent to the inference capability.
const excerptLimit = 15000

// DefaultRepairTimeout bounds one repair consultation.
const DefaultRepairTimeout = 30 * time.Second

var rolePersonRe = regexp.MustCompile(`^([^:]+):\s*(.+)$`)

var videoHostKeywords = []string{"youtube", "youtu.be", "vimeo", "notube", "player", "/video"}

// Repairer consults the inference capability about a rejected record's
// missing fields and applies any usable suggestions. Suggested selectors
// run through the same evaluator as stored patterns.
type Repairer struct {
	Suggester showreel.Suggester
	Evaluator showreel.SelectorEvaluator

	// Timeout bounds one consultation. Zero means DefaultRepairTimeout.
	Timeout time.Duration
}

// NewRepairer creates a Repairer.
func NewRepairer(suggester showreel.Suggester, eval showreel.SelectorEvaluator) *Repairer {
	return &Repairer{Suggester: suggester, Evaluator: eval}
}

// Repair attempts to fill the record's missing fields in place. Returns
// true if any field was enriched. Suggester errors and timeouts skip
// repair entirely; a failed repair never makes the record worse.
func (r *Repairer) Repair(ctx context.Context, markup, model string, rec *showreel.Record) bool {
	missing := showreel.MissingFields(rec)
	if len(missing) == 0 {
		return false
	}

	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultRepairTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	excerpt := markup
	if len(excerpt) > excerptLimit {
		excerpt = excerpt[:excerptLimit]
	}

	suggestions, err := r.Suggester.Suggest(ctx, model, excerpt, missing)
	if err != nil {
		return false
	}

	enriched := false
	for _, field := range missing {
		suggestion, ok := suggestions[field]
		if !ok {
			continue
		}
		if r.applyField(markup, field, suggestion, rec) {
			enriched = true
		}
	}
	if enriched {
		rec.Meta.EnrichedByRepair = true
		rec.Normalize()
	}
	return enriched
}

// applyField fills one missing field from a suggestion. A selector that
// matches nothing is ignored for the field; a literal value applies only
// when no selector was suggested at all.
func (r *Repairer) applyField(markup, field string, suggestion showreel.Suggestion, rec *showreel.Record) bool {
	var values []string
	if suggestion.Selector != "" {
		values = r.evaluate(markup, field, suggestion.Selector)
	} else if suggestion.Value != "" {
		values = []string{suggestion.Value}
	}
	if len(values) == 0 {
		return false
	}

	switch field {
	case showreel.FieldTitle:
		rec.Title = showreel.CleanText(values[0])
		return rec.Title != ""

	case showreel.FieldCompanies:
		applied := false
		for _, v := range values {
			name := showreel.CleanText(v)
			if name == "" {
				continue
			}
			rec.Companies = append(rec.Companies, showreel.Company{
				Name:    name,
				Type:    showreel.GuessCompanyType(name),
				Credits: []showreel.Credit{},
			})
			applied = true
		}
		return applied

	case showreel.FieldCredits:
		applied := false
		for _, v := range values {
			m := rolePersonRe.FindStringSubmatch(showreel.CleanText(v))
			if m == nil {
				continue
			}
			role := showreel.CleanText(m[1])
			for _, person := range showreel.SplitPersons(showreel.CleanText(m[2])) {
				r.appendCredit(rec, showreel.Credit{Role: role, Person: showreel.Person{Name: person}})
				applied = true
			}
		}
		return applied

	case showreel.FieldMedia:
		applied := false
		for _, v := range values {
			url := strings.TrimSpace(v)
			if url == "" {
				continue
			}
			rec.Media = append(rec.Media, showreel.Media{Type: mediaTypeOf(url), URL: url})
			applied = true
		}
		return applied
	}
	return false
}

// evaluate runs the suggested selector, probing src and href attributes for
// media fields since suggestions rarely spell out which one carries the URL.
func (r *Repairer) evaluate(markup, field, selector string) []string {
	if selector == "" {
		return nil
	}

	attributes := []string{""}
	if field == showreel.FieldMedia {
		attributes = []string{"src", "href", ""}
	}
	for _, attr := range attributes {
		p := showreel.Pattern{Name: "suggested-" + field, Kind: showreel.PatternSelector, Expression: selector, Attribute: attr}
		values, err := r.Evaluator.Evaluate(markup, p)
		if err == nil && len(values) > 0 {
			return values
		}
	}
	return nil
}

// appendCredit attaches a credit to the first company, creating a synthetic
// one when the record has none.
func (r *Repairer) appendCredit(rec *showreel.Record, credit showreel.Credit) {
	if len(rec.Companies) == 0 {
		rec.Companies = append(rec.Companies, showreel.Company{Name: "Unattributed", Credits: []showreel.Credit{}})
	}
	rec.Companies[0].Credits = append(rec.Companies[0].Credits, credit)
}

// mediaTypeOf classifies a media URL by its host keywords.
func mediaTypeOf(url string) showreel.MediaType {
	lower := strings.ToLower(url)
	for _, host := range videoHostKeywords {
		if strings.Contains(lower, host) {
			return showreel.MediaVideo
		}
	}
	return showreel.MediaImage
}
