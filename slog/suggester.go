package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/showreel"
)

// Ensure LoggingSuggester implements showreel.Suggester.
var _ showreel.Suggester = (*LoggingSuggester)(nil)

// LoggingSuggester wraps a Suggester with logging for repair consultations.
type LoggingSuggester struct {
	next   showreel.Suggester
	logger *slog.Logger
}

// NewLoggingSuggester creates a new LoggingSuggester.
func NewLoggingSuggester(next showreel.Suggester, logger *slog.Logger) *LoggingSuggester {
	return &LoggingSuggester{next: next, logger: logger}
}

// Suggest delegates to the wrapped suggester and logs the outcome.
func (s *LoggingSuggester) Suggest(ctx context.Context, model, markup string, missing []string) (map[string]showreel.Suggestion, error) {
	begin := time.Now()
	suggestions, err := s.next.Suggest(ctx, model, markup, missing)
	if err != nil {
		s.logger.Error("repair consultation failed",
			"model", model,
			"missing", missing,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	s.logger.Info("repair consultation",
		"model", model,
		"missing", missing,
		"suggestions", len(suggestions),
		"duration", time.Since(begin),
	)
	return suggestions, nil
}
