package goquery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/showreel"
	"github.com/tidwall/gjson"
)

// Evaluator evaluates extraction patterns against markup. One implementation
// serves both stored patterns and suggested selectors so they behave the same.
type Evaluator struct{}

// NewEvaluator creates a new Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

var _ showreel.SelectorEvaluator = (*Evaluator)(nil)

// Evaluate applies the pattern to markup and returns matched values in
// document order. Returns EINVALID for patterns that cannot be evaluated;
// no matches is not an error and yields an empty slice.
func (e *Evaluator) Evaluate(markup string, p showreel.Pattern) ([]string, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var values []string
	var err error
	switch p.Kind {
	case showreel.PatternRegex:
		values, err = e.evaluateRegex(markup, p)
	case showreel.PatternMeta, showreel.PatternSelector:
		values, err = e.evaluateSelector(markup, p)
	case showreel.PatternJSONPath:
		values = e.evaluateJSONPath(markup, p)
	}
	if err != nil {
		return nil, err
	}

	if p.Template != "" {
		for i, v := range values {
			values[i] = fmt.Sprintf(p.Template, v)
		}
	}
	return values, nil
}

// evaluateRegex returns capture group 1 of each match, or the whole match
// when the expression has no groups.
func (e *Evaluator) evaluateRegex(markup string, p showreel.Pattern) ([]string, error) {
	re, err := regexp.Compile(p.Expression)
	if err != nil {
		return nil, showreel.Errorf(showreel.EINVALID, "pattern %q: invalid regex: %v", p.Name, err)
	}

	var values []string
	for _, m := range re.FindAllStringSubmatch(markup, -1) {
		if len(m) > 1 {
			values = append(values, m[1])
		} else {
			values = append(values, m[0])
		}
	}
	return values, nil
}

// evaluateSelector returns element text, or the named attribute when set.
// Empty values are skipped.
func (e *Evaluator) evaluateSelector(markup string, p showreel.Pattern) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, showreel.Errorf(showreel.EINVALID, "pattern %q: unparseable markup: %v", p.Name, err)
	}

	var values []string
	doc.Find(p.Expression).Each(func(_ int, s *goquery.Selection) {
		var v string
		if p.Attribute != "" {
			v, _ = s.Attr(p.Attribute)
		} else {
			v = s.Text()
		}
		if v = showreel.CleanText(v); v != "" {
			values = append(values, v)
		}
	})
	return values, nil
}

// evaluateJSONPath applies a gjson path to a JSON payload. Array results
// flatten to one value per element.
func (e *Evaluator) evaluateJSONPath(payload string, p showreel.Pattern) []string {
	result := gjson.Get(payload, p.Expression)
	if !result.Exists() {
		return nil
	}

	var values []string
	if result.IsArray() {
		for _, r := range result.Array() {
			if s := r.String(); s != "" {
				values = append(values, s)
			}
		}
		return values
	}
	if s := result.String(); s != "" {
		values = append(values, s)
	}
	return values
}
