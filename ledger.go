package showreel

import (
	"context"
	"time"
)

// AttemptIteration records one full pass of the orchestrator's state machine.
type AttemptIteration struct {
	Index              int       `json:"index"`
	Timestamp          time.Time `json:"timestamp"`
	StrategiesTried    []string  `json:"methods_tried"`
	Success            bool      `json:"success"`
	Error              string    `json:"error,omitempty"`
	ExtractedCompanies int       `json:"extracted_companies"`
	ExtractedCredits   int       `json:"extracted_credits"`
	ArtifactRef        string    `json:"artifact_ref,omitempty"`
}

// Session is the full history of attempts made while processing one target
// URL. Sessions are created when processing begins, appended to as the
// orchestrator iterates, and closed exactly once with the final success
// flag. The ledger retains sessions indefinitely.
type Session struct {
	ID         string             `json:"id"`
	URL        string             `json:"url"`
	Domain     string             `json:"domain"`
	StartedAt  time.Time          `json:"started_at"`
	Success    bool               `json:"success"`
	Iterations []AttemptIteration `json:"iterations"`
}

// Validate returns an error if the session contains invalid fields.
func (s *Session) Validate() error {
	if s.URL == "" {
		return Errorf(EINVALID, "session URL required")
	}
	if s.Domain == "" {
		return Errorf(EINVALID, "session domain required")
	}
	return nil
}

// SessionFilter represents a filter for FindSessions.
type SessionFilter struct {
	Domain  *string
	Success *bool

	Offset int
	Limit  int
}

// Ledger is the append-only knowledge base of extraction attempts. Each
// session owns its own record; concurrent appends to different sessions must
// not interleave.
type Ledger interface {
	// CreateSession registers a new session, assigning its ID.
	CreateSession(ctx context.Context, session *Session) error

	// AppendIteration appends one iteration to a session.
	// Returns ENOTFOUND if the session does not exist.
	AppendIteration(ctx context.Context, sessionID string, it *AttemptIteration) error

	// CloseSession fixes the session's final success flag.
	// Returns ENOTFOUND if the session does not exist.
	CloseSession(ctx context.Context, sessionID string, success bool) error

	// RecordSuccess indexes a successful session's final record.
	RecordSuccess(ctx context.Context, sessionID string, rec *Record) error

	// FindSessionByID retrieves a session with its iterations.
	// Returns ENOTFOUND if the session does not exist.
	FindSessionByID(ctx context.Context, id string) (*Session, error)

	// FindSessions retrieves sessions matching the filter, newest first.
	FindSessions(ctx context.Context, filter SessionFilter) ([]*Session, error)

	// FindSuccessBySession retrieves the record indexed by RecordSuccess.
	// Returns ENOTFOUND if the session has no recorded success.
	FindSuccessBySession(ctx context.Context, sessionID string) (*Record, error)
}

// ArtifactStore persists per-iteration debugging artifacts and returns an
// opaque reference recorded on the iteration.
type ArtifactStore interface {
	SaveArtifact(ctx context.Context, sessionID string, index int, data []byte) (string, error)
}
