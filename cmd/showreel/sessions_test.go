package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/showreel"
	main "github.com/fwojciec/showreel/cmd/showreel"
	"github.com/fwojciec/showreel/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists sessions with ID, status, and URL", func(t *testing.T) {
		t.Parallel()

		ledger := &mock.Ledger{
			FindSessionsFn: func(_ context.Context, filter showreel.SessionFilter) ([]*showreel.Session, error) {
				assert.Equal(t, 20, filter.Limit)
				return []*showreel.Session{
					{
						ID:        "sess-123",
						URL:       "https://lbbonline.com/work/138064",
						Domain:    "lbbonline.com",
						StartedAt: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
						Success:   true,
					},
					{
						ID:        "sess-456",
						URL:       "https://example.com/work/1",
						Domain:    "example.com",
						StartedAt: time.Date(2026, 8, 19, 11, 0, 0, 0, time.UTC),
						Success:   false,
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Ledger: ledger,
		}

		cmd := &main.SessionsCmd{Limit: 20}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "sess-123")
		assert.Contains(t, output, "sess-456")
		assert.Contains(t, output, "https://lbbonline.com/work/138064")
		assert.Contains(t, output, "ok")
		assert.Contains(t, output, "failed")
	})

	t.Run("passes domain and success filters through", func(t *testing.T) {
		t.Parallel()

		var got showreel.SessionFilter
		ledger := &mock.Ledger{
			FindSessionsFn: func(_ context.Context, filter showreel.SessionFilter) ([]*showreel.Session, error) {
				got = filter
				return nil, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Ledger: ledger,
		}

		cmd := &main.SessionsCmd{Domain: "lbbonline.com", Failed: true, Limit: 5, Offset: 10}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.Domain)
		assert.Equal(t, "lbbonline.com", *got.Domain)
		require.NotNil(t, got.Success)
		assert.False(t, *got.Success)
		assert.Equal(t, 5, got.Limit)
		assert.Equal(t, 10, got.Offset)
	})

	t.Run("shows helpful message when no sessions exist", func(t *testing.T) {
		t.Parallel()

		ledger := &mock.Ledger{
			FindSessionsFn: func(_ context.Context, _ showreel.SessionFilter) ([]*showreel.Session, error) {
				return []*showreel.Session{}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Ledger: ledger,
		}

		cmd := &main.SessionsCmd{Limit: 20}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No sessions")
	})

	t.Run("shows one session with its iteration history", func(t *testing.T) {
		t.Parallel()

		ledger := &mock.Ledger{
			FindSessionByIDFn: func(_ context.Context, id string) (*showreel.Session, error) {
				assert.Equal(t, "sess-123", id)
				return &showreel.Session{
					ID:        "sess-123",
					URL:       "https://lbbonline.com/work/138064",
					Domain:    "lbbonline.com",
					StartedAt: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
					Success:   true,
					Iterations: []showreel.AttemptIteration{
						{
							Index:           1,
							StrategiesTried: []string{"domain-json-decoder", "legacy-field-decoder"},
							Success:         false,
							Error:           "no embedded credits payload",
						},
						{
							Index:              2,
							StrategiesTried:    []string{"dom-decoder"},
							Success:            true,
							ExtractedCompanies: 3,
							ExtractedCredits:   7,
							ArtifactRef:        "sess-123/002-deadbeef.json",
						},
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Ledger: ledger,
		}

		cmd := &main.SessionsCmd{ID: "sess-123"}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "sess-123")
		assert.Contains(t, output, "lbbonline.com")
		assert.Contains(t, output, "domain-json-decoder,legacy-field-decoder")
		assert.Contains(t, output, "no embedded credits payload")
		assert.Contains(t, output, "companies=3 credits=7")
		assert.Contains(t, output, "sess-123/002-deadbeef.json")
	})

	t.Run("returns error when the session does not exist", func(t *testing.T) {
		t.Parallel()

		ledger := &mock.Ledger{
			FindSessionByIDFn: func(_ context.Context, _ string) (*showreel.Session, error) {
				return nil, showreel.Errorf(showreel.ENOTFOUND, "session not found")
			},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Ledger: ledger,
		}

		cmd := &main.SessionsCmd{ID: "missing"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, showreel.ENOTFOUND, showreel.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: session not found")
	})
}
