package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/showreel"
)

// Classifier infers page structure from link composition, pagination markers
// and role keywords present in the visible text.
type Classifier struct{}

// NewClassifier creates a new Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

var _ showreel.Classifier = (*Classifier)(nil)

var pageParamRe = regexp.MustCompile(`[?&]page=(\d+)`)

// Classify analyzes markup and returns the page's structure signature.
// It never fails: markup that cannot be parsed classifies as unknown.
func (c *Classifier) Classify(markup, url string) *showreel.StructureSignature {
	sig := &showreel.StructureSignature{
		RolesDetected: []string{},
		Label:         showreel.LayoutUnknown,
		Confidence:    0.1,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return sig
	}

	c.countLinks(doc, sig)
	c.detectPagination(doc, sig)
	c.detectRoles(doc, sig)
	c.detectSections(doc, sig)
	c.label(sig)

	return sig
}

// countLinks buckets every hyperlink by its href path keywords.
func (c *Classifier) countLinks(doc *goquery.Document, sig *showreel.StructureSignature) {
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.ToLower(href)
		switch {
		case containsAny(href, showreel.ProjectLinkKeywords):
			sig.ProjectLinks++
		case containsAny(href, showreel.CompanyLinkKeywords):
			sig.CompanyLinks++
		case containsAny(href, showreel.PersonLinkKeywords):
			sig.PersonLinks++
		}
	})
}

// detectPagination looks for page query parameters, rel=next links,
// pagination containers and "next page" link text. MaxPage is the highest
// page number seen in hrefs.
func (c *Classifier) detectPagination(doc *goquery.Document, sig *showreel.StructureSignature) {
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if m := pageParamRe.FindStringSubmatch(href); m != nil {
			sig.HasPagination = true
			if n, err := strconv.Atoi(m[1]); err == nil && n > sig.MaxPage {
				sig.MaxPage = n
			}
		}
	})

	if doc.Find("a[rel='next']").Length() > 0 || doc.Find(".pagination").Length() > 0 {
		sig.HasPagination = true
		return
	}
	if strings.Contains(strings.ToLower(doc.Find("a").Text()), "next page") {
		sig.HasPagination = true
	}
}

// detectRoles scans visible text for role keywords.
func (c *Classifier) detectRoles(doc *goquery.Document, sig *showreel.StructureSignature) {
	doc.Find("script, style, noscript").Remove()
	text := strings.ToLower(doc.Text())

	for _, role := range showreel.RoleVocabulary {
		if strings.Contains(text, role) {
			sig.RolesDetected = append(sig.RolesDetected, role)
		}
	}
	sig.HasRoleInfo = len(sig.RolesDetected) > 0
}

// detectSections checks headings and navigation text for grouping keywords.
func (c *Classifier) detectSections(doc *goquery.Document, sig *showreel.StructureSignature) {
	headings := strings.ToLower(doc.Find("h1, h2, h3, nav").Text())
	for _, section := range showreel.SectionVocabulary {
		if strings.Contains(headings, section) {
			sig.HasSections = true
			return
		}
	}
}

// label assigns the layout and its confidence. Confidence rises with
// corroborating signals and each layout has a hard ceiling, so a richer
// signature never scores below a sparser one with the same label.
func (c *Classifier) label(sig *showreel.StructureSignature) {
	switch {
	case sig.ProjectLinks > 10 && sig.HasRoleInfo:
		sig.Label = showreel.LayoutProjectWithCredits
		conf := 0.7
		conf += 0.02 * float64(min(sig.ProjectLinks-10, 10))
		conf += 0.02 * float64(min(len(sig.RolesDetected), 5))
		if sig.HasSections {
			conf += 0.02
		}
		sig.Confidence = min(conf, 0.95)

	case sig.ProjectLinks > 10:
		sig.Label = showreel.LayoutBasicGallery
		conf := 0.5
		conf += 0.01 * float64(min(sig.ProjectLinks-10, 15))
		if sig.HasPagination {
			conf += 0.05
		}
		sig.Confidence = min(conf, 0.7)

	case sig.CompanyLinks+sig.PersonLinks > 0:
		sig.Label = showreel.LayoutDirectory
		conf := 0.4
		conf += 0.01 * float64(min(max(sig.CompanyLinks+sig.PersonLinks-10, 0), 15))
		if sig.HasPagination {
			conf += 0.05
		}
		sig.Confidence = min(conf, 0.6)

	default:
		sig.Label = showreel.LayoutUnknown
		sig.Confidence = 0.1
	}
}

// containsAny reports whether s contains any of the keywords.
func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
