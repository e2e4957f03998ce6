package mission_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/showreel"
	"github.com/fwojciec/showreel/goquery"
	"github.com/fwojciec/showreel/mission"
	"github.com/fwojciec/showreel/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerLog struct {
	mock.Ledger

	created    []*showreel.Session
	iterations []*showreel.AttemptIteration
	closed     []bool
	recorded   []*showreel.Record
}

func newLedgerLog() *ledgerLog {
	l := &ledgerLog{}
	l.CreateSessionFn = func(ctx context.Context, session *showreel.Session) error {
		l.created = append(l.created, session)
		return nil
	}
	l.AppendIterationFn = func(ctx context.Context, sessionID string, it *showreel.AttemptIteration) error {
		l.iterations = append(l.iterations, it)
		return nil
	}
	l.CloseSessionFn = func(ctx context.Context, sessionID string, success bool) error {
		l.closed = append(l.closed, success)
		return nil
	}
	l.RecordSuccessFn = func(ctx context.Context, sessionID string, rec *showreel.Record) error {
		l.recorded = append(l.recorded, rec)
		return nil
	}
	return l
}

func fixedClassifier(label showreel.Layout, confidence float64) *mock.Classifier {
	return &mock.Classifier{
		ClassifyFn: func(markup, url string) *showreel.StructureSignature {
			return &showreel.StructureSignature{Label: label, Confidence: confidence}
		},
	}
}

func TestRunner_Extract(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("acceptable record succeeds on the first iteration", func(t *testing.T) {
		t.Parallel()

		ledger := newLedgerLog()
		runner := &mission.Runner{
			Classifier: fixedClassifier(showreel.LayoutProjectWithCredits, 0.85),
			Cascade: mission.NewCascade(namedStrategy(showreel.StrategyDomainJSON, func() (*showreel.Record, error) {
				return acceptableRecord(), nil
			})),
			Patterns: &mock.PatternStore{},
			Ledger:   ledger,
		}

		result := runner.Extract(ctx, "<html></html>", "https://lbbonline.com/work/1", mission.Options{})

		assert.True(t, result.Success)
		assert.Equal(t, 1, result.Iterations)
		assert.Equal(t, "Play by Play", result.Record.Title)
		assert.Equal(t, showreel.StrategyDomainJSON, result.Record.Meta.StrategyUsed)
		assert.InDelta(t, 0.85, result.Record.Meta.Confidence, 0.001)

		require.Len(t, ledger.created, 1)
		assert.Equal(t, "lbbonline.com", ledger.created[0].Domain)
		require.Len(t, ledger.iterations, 1)
		assert.True(t, ledger.iterations[0].Success)
		assert.Equal(t, []bool{true}, ledger.closed)
		require.Len(t, ledger.recorded, 1)
	})

	t.Run("rejected record exhausts the iteration bound", func(t *testing.T) {
		t.Parallel()

		ledger := newLedgerLog()
		runner := &mission.Runner{
			Classifier: fixedClassifier(showreel.LayoutUnknown, 0.1),
			Cascade: mission.NewCascade(namedStrategy(showreel.StrategyGeneric, func() (*showreel.Record, error) {
				rec := showreel.NewRecord()
				rec.Title = "Foo"
				return rec, nil
			})),
			Patterns: &mock.PatternStore{},
			Repairer: mission.NewRepairer(&mock.Suggester{
				SuggestFn: func(ctx context.Context, model, markup string, missing []string) (map[string]showreel.Suggestion, error) {
					return nil, errors.New("inference unavailable")
				},
			}, goquery.NewEvaluator()),
			Ledger: ledger,
		}

		result := runner.Extract(ctx, "<html></html>", "https://example.com", mission.Options{
			MaxIterations: 3,
			RepairEnabled: true,
		})

		assert.False(t, result.Success)
		assert.Equal(t, 3, result.Iterations)
		assert.Equal(t, "Foo", result.Record.Title)
		assert.False(t, result.Record.Meta.EnrichedByRepair)
		assert.Len(t, ledger.iterations, 3)
		assert.Equal(t, []bool{false}, ledger.closed)
		assert.Empty(t, ledger.recorded)
	})

	t.Run("repair can turn a rejected record into a success", func(t *testing.T) {
		t.Parallel()

		ledger := newLedgerLog()
		runner := &mission.Runner{
			Classifier: fixedClassifier(showreel.LayoutUnknown, 0.1),
			Cascade: mission.NewCascade(namedStrategy(showreel.StrategyGeneric, func() (*showreel.Record, error) {
				rec := showreel.NewRecord()
				rec.Title = "Foo"
				return rec, nil
			})),
			Patterns: &mock.PatternStore{},
			Repairer: mission.NewRepairer(suggesting(map[string]showreel.Suggestion{
				showreel.FieldCompanies: {Value: "Stink Films"},
			}), goquery.NewEvaluator()),
			Ledger: ledger,
		}

		result := runner.Extract(ctx, "<html></html>", "https://example.com", mission.Options{RepairEnabled: true})

		assert.True(t, result.Success)
		assert.Equal(t, 1, result.Iterations)
		assert.True(t, result.Record.Meta.EnrichedByRepair)
		require.Len(t, result.Record.Companies, 1)
		assert.Equal(t, "Stink Films", result.Record.Companies[0].Name)
	})

	t.Run("repair is skipped when not enabled", func(t *testing.T) {
		t.Parallel()

		runner := &mission.Runner{
			Classifier: fixedClassifier(showreel.LayoutUnknown, 0.1),
			Cascade: mission.NewCascade(namedStrategy(showreel.StrategyGeneric, func() (*showreel.Record, error) {
				rec := showreel.NewRecord()
				rec.Title = "Foo"
				return rec, nil
			})),
			Patterns: &mock.PatternStore{},
			Repairer: mission.NewRepairer(&mock.Suggester{
				SuggestFn: func(ctx context.Context, model, markup string, missing []string) (map[string]showreel.Suggestion, error) {
					t.Fatal("suggester should not be consulted")
					return nil, nil
				},
			}, goquery.NewEvaluator()),
			MaxIterations: 1,
		}

		result := runner.Extract(ctx, "<html></html>", "https://example.com", mission.Options{})

		assert.False(t, result.Success)
	})

	t.Run("canceled context yields the best effort without iterating", func(t *testing.T) {
		t.Parallel()

		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		runner := &mission.Runner{
			Classifier: fixedClassifier(showreel.LayoutUnknown, 0.1),
			Cascade: mission.NewCascade(namedStrategy(showreel.StrategyGeneric, func() (*showreel.Record, error) {
				t.Fatal("no strategy should run after cancellation")
				return nil, nil
			})),
			Patterns: &mock.PatternStore{},
		}

		result := runner.Extract(canceled, "<html></html>", "https://example.com", mission.Options{})

		assert.False(t, result.Success)
		require.NotNil(t, result.Record)
		assert.Empty(t, result.Record.Title)
	})

	t.Run("ledger failure never aborts extraction", func(t *testing.T) {
		t.Parallel()

		runner := &mission.Runner{
			Classifier: fixedClassifier(showreel.LayoutUnknown, 0.1),
			Cascade: mission.NewCascade(namedStrategy(showreel.StrategyDomainJSON, func() (*showreel.Record, error) {
				return acceptableRecord(), nil
			})),
			Patterns: &mock.PatternStore{},
			Ledger: &mock.Ledger{
				CreateSessionFn: func(ctx context.Context, session *showreel.Session) error {
					return showreel.Errorf(showreel.EUNAVAILABLE, "ledger down")
				},
			},
		}

		result := runner.Extract(ctx, "<html></html>", "https://example.com", mission.Options{})

		assert.True(t, result.Success)
	})

	t.Run("artifacts are saved and referenced from iterations", func(t *testing.T) {
		t.Parallel()

		ledger := newLedgerLog()
		runner := &mission.Runner{
			Classifier: fixedClassifier(showreel.LayoutUnknown, 0.1),
			Cascade: mission.NewCascade(namedStrategy(showreel.StrategyDomainJSON, func() (*showreel.Record, error) {
				return acceptableRecord(), nil
			})),
			Patterns: &mock.PatternStore{},
			Ledger:   ledger,
			Artifacts: &mock.ArtifactStore{
				SaveArtifactFn: func(ctx context.Context, sessionID string, index int, data []byte) (string, error) {
					return "artifacts/abc.json", nil
				},
			},
		}

		runner.Extract(ctx, "<html></html>", "https://example.com", mission.Options{})

		require.Len(t, ledger.iterations, 1)
		assert.Equal(t, "artifacts/abc.json", ledger.iterations[0].ArtifactRef)
	})
}
