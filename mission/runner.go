package mission

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fwojciec/showreel"
	"github.com/google/uuid"
)

// DefaultMaxIterations bounds one extraction mission.
const DefaultMaxIterations = 10

// Options tune one extraction mission.
type Options struct {
	// MaxIterations overrides the runner's iteration bound. Zero keeps it.
	MaxIterations int

	// RepairEnabled turns on the inference-assisted repair step.
	RepairEnabled bool

	// InferenceModel is passed through to the suggester. Empty picks the
	// suggester's default.
	InferenceModel string
}

// Runner drives one extraction mission: classify the page, run the strategy
// cascade, repair rejected records when enabled, and record every attempt in
// the ledger.
type Runner struct {
	Classifier showreel.Classifier
	Cascade    *Cascade
	Patterns   showreel.PatternStore

	// Repairer is optional; nil disables repair regardless of Options.
	Repairer *Repairer

	// Ledger and Artifacts are optional. Ledger write failures never abort
	// an extraction; the record matters more than its paper trail.
	Ledger    showreel.Ledger
	Artifacts showreel.ArtifactStore

	// MaxIterations defaults to DefaultMaxIterations when zero.
	MaxIterations int

	now func() time.Time
}

// Result is the outcome of one extraction mission.
type Result struct {
	Record    *showreel.Record
	Signature *showreel.StructureSignature

	// SessionID identifies the ledger session, when a ledger is configured.
	SessionID string

	// Success reports whether the record passed validation.
	Success bool

	// Iterations is the number of attempts made.
	Iterations int
}

// Extract runs the mission against already-fetched markup. It always
// returns a result with a non-nil record: when every iteration fails the
// record is the most complete partial seen, or an empty record. Context
// cancellation is honored at iteration boundaries and yields the best
// effort so far.
func (r *Runner) Extract(ctx context.Context, markup, url string, opts Options) *Result {
	// Every iteration starts from classification, but the markup is fixed
	// for the whole mission and classification is deterministic, so one
	// signature serves all iterations.
	sig := r.Classifier.Classify(markup, url)

	session := &showreel.Session{
		ID:        uuid.New().String(),
		URL:       url,
		Domain:    showreel.DomainOf(url),
		StartedAt: r.timeNow(),
	}
	ledger := r.Ledger
	if ledger != nil {
		if err := ledger.CreateSession(ctx, session); err != nil {
			ledger = nil
		}
	}

	result := &Result{Signature: sig, SessionID: session.ID}

	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = r.MaxIterations
	}
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	var best *showreel.Record
	for i := 1; i <= maxIterations; i++ {
		if ctx.Err() != nil {
			break
		}
		result.Iterations = i

		pass := r.Cascade.Run(markup, url, r.Patterns)
		rec := pass.Record

		if rec != nil && !pass.Accepted && opts.RepairEnabled && r.Repairer != nil {
			if r.Repairer.Repair(ctx, markup, opts.InferenceModel, rec) {
				pass.Accepted = showreel.Acceptable(rec)
			}
		}

		success := rec != nil && pass.Accepted
		r.recordIteration(ctx, ledger, session.ID, i, pass, rec, success)

		if rec != nil && better(rec, best) {
			best = rec
		}
		if success {
			result.Success = true
			break
		}
	}

	if best == nil {
		best = showreel.NewRecord()
	}
	best.Meta.Confidence = sig.Confidence
	best.Normalize()
	result.Record = best

	if ledger != nil {
		_ = ledger.CloseSession(ctx, session.ID, result.Success)
		if result.Success {
			_ = ledger.RecordSuccess(ctx, session.ID, best)
		}
	}
	return result
}

// recordIteration appends one attempt to the ledger, saving the record
// artifact first when an artifact store is configured.
func (r *Runner) recordIteration(ctx context.Context, ledger showreel.Ledger, sessionID string, index int, pass CascadeResult, rec *showreel.Record, success bool) {
	if ledger == nil {
		return
	}

	it := &showreel.AttemptIteration{
		Index:           index,
		Timestamp:       r.timeNow(),
		StrategiesTried: pass.Tried,
		Success:         success,
		Error:           pass.LastError,
	}
	if rec != nil {
		it.ExtractedCompanies = len(rec.Companies)
		it.ExtractedCredits = rec.CreditCount()

		if r.Artifacts != nil {
			if data, err := json.Marshal(rec); err == nil {
				if ref, err := r.Artifacts.SaveArtifact(ctx, sessionID, index, data); err == nil {
					it.ArtifactRef = ref
				}
			}
		}
	}
	_ = ledger.AppendIteration(ctx, sessionID, it)
}

func (r *Runner) timeNow() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}
