// Package slog provides logging decorators for the domain interfaces.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/showreel"
)

// Ensure LoggingClassifier implements showreel.Classifier.
var _ showreel.Classifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a Classifier with debug logging for structure
// classification.
type LoggingClassifier struct {
	next   showreel.Classifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next showreel.Classifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// Classify classifies the page, logs the outcome, and returns it.
func (c *LoggingClassifier) Classify(markup, url string) *showreel.StructureSignature {
	begin := time.Now()
	sig := c.next.Classify(markup, url)
	c.logger.Info("structure classification",
		"url", url,
		"layout", string(sig.Label),
		"confidence", sig.Confidence,
		"project_links", sig.ProjectLinks,
		"roles", len(sig.RolesDetected),
		"duration", time.Since(begin),
	)
	return sig
}
