// Package strategy implements the extraction strategies tried by the
// orchestrator, from most domain-specific to most generic.
package strategy

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/showreel"
	"github.com/tidwall/gjson"
)

// Default patterns used when a domain has no stored overrides.
var (
	defaultCreditsRe = `"lbb_credits":"((?:\\.|[^"\\])*)"`
	unicodeEscapeRe  = regexp.MustCompile(`\\u([0-9a-fA-F]{4})`)
)

// DomainJSONDecoder extracts records from a JSON credits blob embedded in
// the page markup. It is the most specific strategy and only produces data
// for pages carrying the blob.
type DomainJSONDecoder struct {
	eval showreel.SelectorEvaluator

	// RoleMappings resolves field ids to role names. Unresolved ids leave
	// the role empty and record the person under meta.unknownRoles.
	RoleMappings map[string]string

	// CompanyTypes resolves category ids to company types. Unresolved ids
	// fall back to keyword guessing on the company name.
	CompanyTypes map[string]string
}

// NewDomainJSONDecoder creates a DomainJSONDecoder using eval for title and
// media patterns.
func NewDomainJSONDecoder(eval showreel.SelectorEvaluator) *DomainJSONDecoder {
	return &DomainJSONDecoder{eval: eval}
}

var _ showreel.Strategy = (*DomainJSONDecoder)(nil)

// Name implements showreel.Strategy.
func (d *DomainJSONDecoder) Name() string { return showreel.StrategyDomainJSON }

// Extract implements showreel.Strategy. Returns ENOTFOUND when the markup
// carries no credits blob.
func (d *DomainJSONDecoder) Extract(markup, url string, store showreel.PatternStore) (*showreel.Record, error) {
	domain, _ := store.Domain(showreel.DomainOf(url))

	creditsPattern := showreel.Pattern{Name: "credits", Kind: showreel.PatternRegex, Expression: defaultCreditsRe}
	if p, ok := domain.Pattern("credits"); ok {
		creditsPattern = p
	}

	blobs, err := d.eval.Evaluate(markup, creditsPattern)
	if err != nil {
		return nil, err
	}
	if len(blobs) == 0 || blobs[0] == "" {
		return nil, showreel.Errorf(showreel.ENOTFOUND, "no embedded credits data")
	}

	decoded := unescapeCredits(blobs[0])
	sections := gjson.Parse(decoded)
	if !sections.IsArray() {
		return nil, showreel.Errorf(showreel.ENOTFOUND, "credits data is not a section list")
	}

	rec := showreel.NewRecord()
	for _, section := range sections.Array() {
		company, ok := d.decodeSection(section, rec)
		if ok {
			rec.Companies = append(rec.Companies, company)
		}
	}
	if len(rec.Companies) == 0 {
		return nil, showreel.Errorf(showreel.ENOTFOUND, "credits data held no companies")
	}

	d.applyPattern(markup, domain, store, "title", func(v string) { rec.Title = v })
	d.applyPattern(markup, domain, store, "description", func(v string) { rec.Description = v })
	if p, ok := domain.Pattern("video_url"); ok {
		if urls, err := d.eval.Evaluate(markup, p); err == nil {
			for _, u := range urls {
				rec.Media = append(rec.Media, showreel.Media{Type: showreel.MediaVideo, URL: u})
			}
		}
	}

	rec.Normalize()
	return rec, nil
}

// decodeSection turns one credits section into a company with its credits.
func (d *DomainJSONDecoder) decodeSection(section gjson.Result, rec *showreel.Record) (showreel.Company, bool) {
	catValue := section.Get("cat_value").Array()
	if len(catValue) < 2 {
		return showreel.Company{}, false
	}
	name := catValue[1].String()

	catID := section.Get("cat_id").String()
	companyType := d.CompanyTypes[catID]
	if companyType == "" {
		companyType = showreel.GuessCompanyType(name)
	}

	company := showreel.Company{Name: name, Type: companyType, Credits: []showreel.Credit{}}
	for _, field := range section.Get("fields").Array() {
		fieldValue := field.Get("field_value").Array()
		if len(fieldValue) < 2 {
			continue
		}
		personName := fieldValue[1].String()

		role := d.RoleMappings[field.Get("field_id").String()]
		if role == "" {
			rec.Meta.UnknownRoles = append(rec.Meta.UnknownRoles, personName)
		}
		company.Credits = append(company.Credits, showreel.Credit{
			Role:   role,
			Person: showreel.Person{Name: personName},
		})
	}
	return company, true
}

// applyPattern evaluates the named domain pattern, falling back to global
// patterns, and assigns the first match.
func (d *DomainJSONDecoder) applyPattern(markup string, domain *showreel.DomainConfig, store showreel.PatternStore, name string, assign func(string)) {
	patterns := store.Global(name)
	if p, ok := domain.Pattern(name); ok {
		patterns = append([]showreel.Pattern{p}, patterns...)
	}
	for _, p := range patterns {
		values, err := d.eval.Evaluate(markup, p)
		if err != nil || len(values) == 0 {
			continue
		}
		if v := showreel.CleanText(values[0]); v != "" {
			assign(v)
			return
		}
	}
}

// unescapeCredits reverses the double-escaping applied when the credits JSON
// is embedded as a string value inside the page's own JSON.
func unescapeCredits(s string) string {
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	s = strings.ReplaceAll(s, `\/`, `/`)
	return unicodeEscapeRe.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.ParseUint(m[2:], 16, 32)
		if err != nil {
			return m
		}
		return string(rune(n))
	})
}
