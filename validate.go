package showreel

// Field names reported by MissingFields, in repair priority order.
const (
	FieldTitle     = "title"
	FieldCompanies = "companies"
	FieldCredits   = "credits"
	FieldMedia     = "media"
)

// Acceptable reports whether a record satisfies the required-field contract:
// a non-empty title plus at least one of companies or media. A record with
// neither companies nor media is rejected regardless of title.
func Acceptable(r *Record) bool {
	if r == nil || r.Title == "" {
		return false
	}
	return len(r.Companies) > 0 || len(r.Media) > 0
}

// MissingFields returns the names of missing or empty fields in a fixed
// order (title, companies, credits, media). The repair step consumes this
// list. Validation is pure: it performs no I/O and never mutates the record.
func MissingFields(r *Record) []string {
	var missing []string
	if r == nil {
		return []string{FieldTitle, FieldCompanies, FieldCredits, FieldMedia}
	}
	if r.Title == "" {
		missing = append(missing, FieldTitle)
	}
	if len(r.Companies) == 0 {
		missing = append(missing, FieldCompanies)
	}
	if r.CreditCount() == 0 {
		missing = append(missing, FieldCredits)
	}
	if len(r.Media) == 0 {
		missing = append(missing, FieldMedia)
	}
	return missing
}
