package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/showreel"
	"github.com/fwojciec/showreel/mock"
	showslog "github.com/fwojciec/showreel/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSuggester_Suggest(t *testing.T) {
	t.Parallel()

	t.Run("logs successful consultations", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Suggester{
			SuggestFn: func(ctx context.Context, model, markup string, missing []string) (map[string]showreel.Suggestion, error) {
				return map[string]showreel.Suggestion{
					showreel.FieldTitle: {Selector: "h1"},
				}, nil
			},
		}

		suggester := showslog.NewLoggingSuggester(inner, logger)
		got, err := suggester.Suggest(context.Background(), "some-model", "<html></html>", []string{showreel.FieldTitle})

		require.NoError(t, err)
		assert.Len(t, got, 1)
		output := buf.String()
		assert.Contains(t, output, "repair consultation")
		assert.Contains(t, output, "model=some-model")
		assert.Contains(t, output, "suggestions=1")
	})

	t.Run("logs failures with the error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Suggester{
			SuggestFn: func(ctx context.Context, model, markup string, missing []string) (map[string]showreel.Suggestion, error) {
				return nil, errors.New("quota exceeded")
			},
		}

		suggester := showslog.NewLoggingSuggester(inner, logger)
		_, err := suggester.Suggest(context.Background(), "", "<html></html>", []string{showreel.FieldTitle})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "repair consultation failed")
		assert.Contains(t, output, "quota exceeded")
	})
}
