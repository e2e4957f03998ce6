package strategy

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/showreel"
)

var rolePersonRe = regexp.MustCompile(`^([^:]+):\s*(.+)$`)

var (
	titleSelectors       = []string{"h1", ".title", "header h2", ".main-title", "article h1"}
	descriptionSelectors = []string{
		".description",
		".rich-text.space-y-5 p",
		".content p:first-of-type",
		"article p",
	}
)

// DOMDecoder extracts records from rendered credit markup. Catalog sites
// have shipped two credit layouts over the years; the decoder probes the
// newer layout first and falls back to the older one.
type DOMDecoder struct{}

// NewDOMDecoder creates a DOMDecoder.
func NewDOMDecoder() *DOMDecoder {
	return &DOMDecoder{}
}

var _ showreel.Strategy = (*DOMDecoder)(nil)

// Name implements showreel.Strategy.
func (d *DOMDecoder) Name() string { return showreel.StrategyDOM }

// Extract implements showreel.Strategy. Returns ENOTFOUND when neither
// credit layout is present.
func (d *DOMDecoder) Extract(markup, url string, store showreel.PatternStore) (*showreel.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, showreel.Errorf(showreel.EINVALID, "unparseable markup: %v", err)
	}

	rec := showreel.NewRecord()
	d.decodeCurrentLayout(doc, rec)
	if len(rec.Companies) == 0 {
		d.decodeLegacyLayout(doc, rec)
	}
	if len(rec.Companies) == 0 {
		return nil, showreel.Errorf(showreel.ENOTFOUND, "no credit markup found")
	}

	rec.Title = firstText(doc, titleSelectors)
	rec.Description = firstText(doc, descriptionSelectors)
	rec.Media = extractMedia(doc)

	rec.Normalize()
	return rec, nil
}

// decodeCurrentLayout handles the utility-class layout: each credit block
// is a div.flex.space-y-4 with a bold company span and a div.team holding
// "Role: Person" rows.
func (d *DOMDecoder) decodeCurrentLayout(doc *goquery.Document, rec *showreel.Record) {
	doc.Find("div.flex.space-y-4").Each(func(_ int, block *goquery.Selection) {
		name := showreel.CleanText(block.Find("span.font-barlow.font-bold.text-black").First().Text())
		if name == "" {
			return
		}

		company := showreel.Company{
			Name:    name,
			Type:    showreel.GuessCompanyType(name),
			Credits: []showreel.Credit{},
		}
		block.Find("div.team div").Each(func(_ int, row *goquery.Selection) {
			text := showreel.CleanText(row.Text())
			m := rolePersonRe.FindStringSubmatch(text)
			if m == nil {
				if text != "" {
					rec.Meta.UnknownRoles = append(rec.Meta.UnknownRoles, text)
				}
				return
			}
			role := showreel.CleanText(m[1])
			for _, person := range showreel.SplitPersons(showreel.CleanText(m[2])) {
				company.Credits = append(company.Credits, showreel.Credit{
					Role:   role,
					Person: showreel.Person{Name: person},
				})
			}
		})

		if len(company.Credits) > 0 || company.Type != "" {
			rec.Companies = append(rec.Companies, company)
		}
	})
}

// decodeLegacyLayout handles the class-per-field layout: .credit-entry
// blocks with .company-name, .company-type and .roles/.role/.person markup.
func (d *DOMDecoder) decodeLegacyLayout(doc *goquery.Document, rec *showreel.Record) {
	doc.Find(".credit-entry").Each(func(_ int, block *goquery.Selection) {
		link := block.Find(".company-name a").First()
		name := showreel.CleanText(link.Text())
		if name == "" {
			return
		}

		company := showreel.Company{
			Name:    name,
			Type:    showreel.CleanText(block.Find(".company-type").First().Text()),
			Credits: []showreel.Credit{},
		}
		block.Find(".roles .role").Each(func(_ int, roleBlock *goquery.Selection) {
			role := showreel.CleanText(roleBlock.Find(".role-name").First().Text())
			roleBlock.Find(".person").Each(func(_ int, personEl *goquery.Selection) {
				personName := showreel.CleanText(personEl.Find("a").First().Text())
				if personName == "" {
					personName = showreel.CleanText(personEl.Text())
				}
				if personName == "" {
					return
				}
				if role == "" {
					rec.Meta.UnknownRoles = append(rec.Meta.UnknownRoles, personName)
				}
				profileURL, _ := personEl.Find("a").First().Attr("href")
				company.Credits = append(company.Credits, showreel.Credit{
					Role:   role,
					Person: showreel.Person{Name: personName, ProfileURL: profileURL},
				})
			})
		})

		rec.Companies = append(rec.Companies, company)
	})
}

// firstText returns the first non-empty text among the selectors, in order.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if text := showreel.CleanText(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}
