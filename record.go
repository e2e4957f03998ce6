package showreel

import (
	"regexp"
	"strings"
)

// MediaType identifies the kind of a media asset.
type MediaType string

// Supported media types.
const (
	MediaVideo MediaType = "video"
	MediaImage MediaType = "image"
)

// Media is a single media link attached to a record.
type Media struct {
	Type MediaType `json:"type"`
	URL  string    `json:"url"`
}

// Person is a credited individual.
type Person struct {
	Name       string `json:"name"`
	ProfileURL string `json:"profileUrl,omitempty"`
}

// Credit ties a person to the role they performed.
type Credit struct {
	Role   string `json:"role"`
	Person Person `json:"person"`
}

// Company is a credited organization and its credits, in page order.
type Company struct {
	Name    string   `json:"name"`
	Type    string   `json:"type,omitempty"`
	Credits []Credit `json:"credits"`
}

// Meta carries extraction provenance for a record.
type Meta struct {
	StrategyUsed     string   `json:"strategyUsed"`
	Confidence       float64  `json:"confidence"`
	UnknownRoles     []string `json:"unknownRoles"`
	EnrichedByRepair bool     `json:"enrichedByRepair"`
}

// Record is the structured result of extracting one page. Container fields
// are always present: an empty record has empty slices, never nil, so
// downstream consumers need no null-guards.
type Record struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Media       []Media   `json:"media"`
	Companies   []Company `json:"companies"`
	Meta        Meta      `json:"meta"`
}

// NewRecord returns an empty, well-typed record.
func NewRecord() *Record {
	return &Record{
		Media:     []Media{},
		Companies: []Company{},
		Meta:      Meta{UnknownRoles: []string{}},
	}
}

// Normalize replaces nil container fields with empty ones, including the
// credits of each company. Strategies call this before returning so the
// container invariant holds regardless of which code path built the record.
func (r *Record) Normalize() {
	if r.Media == nil {
		r.Media = []Media{}
	}
	if r.Companies == nil {
		r.Companies = []Company{}
	}
	if r.Meta.UnknownRoles == nil {
		r.Meta.UnknownRoles = []string{}
	}
	for i := range r.Companies {
		if r.Companies[i].Credits == nil {
			r.Companies[i].Credits = []Credit{}
		}
	}
}

// FieldCount returns the number of populated top-level fields. The cascade
// uses it to pick the most complete partial result when no strategy produced
// an acceptable record.
func (r *Record) FieldCount() int {
	n := 0
	if r.Title != "" {
		n++
	}
	if r.Description != "" {
		n++
	}
	if len(r.Media) > 0 {
		n++
	}
	if len(r.Companies) > 0 {
		n++
	}
	return n
}

// CreditCount returns the total number of credits across all companies.
func (r *Record) CreditCount() int {
	n := 0
	for _, c := range r.Companies {
		n += len(c.Credits)
	}
	return n
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// CleanText collapses runs of whitespace and trims the result.
func CleanText(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// personListRE splits "A, B and C" style person lists.
var personListRE = regexp.MustCompile(`,\s*(?:and\s+)?|\s+and\s+`)

// SplitPersons splits a credit value holding several names into individual
// names, dropping empties.
func SplitPersons(s string) []string {
	var out []string
	for _, name := range personListRE.Split(s, -1) {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// companyTypeKeywords maps canonical company types to name keywords, checked
// in a fixed order so classification is deterministic.
var companyTypeKeywords = []struct {
	companyType string
	keywords    []string
}{
	{"Production", []string{"production", "films", "pictures", "studios"}},
	{"Agency", []string{"agency", "creative", "advertising", "digital"}},
	{"Brand", []string{"brand", "client"}},
	{"Post Production", []string{"post", "vfx", "effects", "post-production"}},
	{"Sound", []string{"sound", "audio", "music", "studio"}},
	{"Editorial", []string{"editorial", "edit", "editing"}},
}

// GuessCompanyType infers a company type from its name. Returns the empty
// string when no keyword matches.
func GuessCompanyType(name string) string {
	lower := strings.ToLower(name)
	for _, entry := range companyTypeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.companyType
			}
		}
	}
	return ""
}
