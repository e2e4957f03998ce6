package mock

import "github.com/fwojciec/showreel"

var _ showreel.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of showreel.Classifier.
type Classifier struct {
	ClassifyFn func(markup, url string) *showreel.StructureSignature
}

func (c *Classifier) Classify(markup, url string) *showreel.StructureSignature {
	return c.ClassifyFn(markup, url)
}
