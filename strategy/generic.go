package strategy

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/showreel"
	"github.com/markusmobius/go-trafilatura"
)

// GenericDecoder is the last-resort strategy. It pulls title and
// description from the page's main content metadata, falls back to the
// stored global patterns, and scans visible text for "Role: Person" lines
// gated by the role vocabulary.
type GenericDecoder struct {
	eval showreel.SelectorEvaluator
}

// NewGenericDecoder creates a GenericDecoder using eval for global patterns.
func NewGenericDecoder(eval showreel.SelectorEvaluator) *GenericDecoder {
	return &GenericDecoder{eval: eval}
}

var _ showreel.Strategy = (*GenericDecoder)(nil)

// Name implements showreel.Strategy.
func (d *GenericDecoder) Name() string { return showreel.StrategyGeneric }

// Extract implements showreel.Strategy. Returns ENOTFOUND only when not
// even a title can be found; partial records are normal output here and the
// validator decides whether they suffice.
func (d *GenericDecoder) Extract(markup, url string, store showreel.PatternStore) (*showreel.Record, error) {
	rec := showreel.NewRecord()

	if result, err := trafilatura.Extract(strings.NewReader(markup), trafilatura.Options{EnableFallback: true}); err == nil {
		rec.Title = showreel.CleanText(result.Metadata.Title)
		rec.Description = showreel.CleanText(result.Metadata.Description)
	}

	if rec.Title == "" {
		rec.Title = d.firstGlobalMatch(markup, store, showreel.FieldTitle)
	}
	if rec.Description == "" {
		rec.Description = d.firstGlobalMatch(markup, store, "description")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err == nil {
		rec.Media = extractMedia(doc)
		rec.Companies = scanRoleLines(doc)
	}

	if rec.Title == "" && len(rec.Companies) == 0 && len(rec.Media) == 0 {
		return nil, showreel.Errorf(showreel.ENOTFOUND, "nothing extractable")
	}
	rec.Normalize()
	return rec, nil
}

// firstGlobalMatch evaluates the global patterns for a field and returns
// the first match.
func (d *GenericDecoder) firstGlobalMatch(markup string, store showreel.PatternStore, field string) string {
	for _, p := range store.Global(field) {
		values, err := d.eval.Evaluate(markup, p)
		if err != nil || len(values) == 0 {
			continue
		}
		if v := showreel.CleanText(values[0]); v != "" {
			return v
		}
	}
	return ""
}

// scanRoleLines walks short visible text lines looking for "Role: Person"
// pairs whose role appears in the role vocabulary. Matches group under one
// synthetic company since the page exposes no company structure.
func scanRoleLines(doc *goquery.Document) []showreel.Company {
	var credits []showreel.Credit

	doc.Find("p, li, div, span").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() > 0 {
			return
		}
		text := showreel.CleanText(s.Text())
		if text == "" || len(text) > 120 {
			return
		}
		m := rolePersonRe.FindStringSubmatch(text)
		if m == nil {
			return
		}
		role := showreel.CleanText(m[1])
		if !knownRole(role) {
			return
		}
		for _, person := range showreel.SplitPersons(showreel.CleanText(m[2])) {
			credits = append(credits, showreel.Credit{
				Role:   role,
				Person: showreel.Person{Name: person},
			})
		}
	})

	if len(credits) == 0 {
		return []showreel.Company{}
	}
	return []showreel.Company{{Name: "Unattributed", Credits: credits}}
}

// knownRole reports whether the role text matches the role vocabulary.
func knownRole(role string) bool {
	role = strings.ToLower(role)
	for _, known := range showreel.RoleVocabulary {
		if strings.Contains(role, known) {
			return true
		}
	}
	return false
}
