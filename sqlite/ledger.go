package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/showreel"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ showreel.Ledger = (*LedgerService)(nil)

// LedgerService implements showreel.Ledger using SQLite. Iterations are
// append-only: there is no update or delete path for them.
type LedgerService struct {
	db *DB
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(db *DB) *LedgerService {
	return &LedgerService{db: db}
}

// CreateSession registers a new session, assigning its ID when empty.
func (s *LedgerService) CreateSession(ctx context.Context, session *showreel.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, url, domain, started_at, closed, success)
		VALUES (?, ?, ?, ?, 0, 0)
	`, session.ID, session.URL, session.Domain, session.StartedAt.Format(time.RFC3339))

	return err
}

// AppendIteration appends one iteration to a session.
func (s *LedgerService) AppendIteration(ctx context.Context, sessionID string, it *showreel.AttemptIteration) error {
	if err := s.ensureSession(ctx, sessionID); err != nil {
		return err
	}

	if it.Timestamp.IsZero() {
		it.Timestamp = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO iterations (session_id, idx, timestamp, strategies, success, error, companies, credits, artifact_ref)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sessionID, it.Index, it.Timestamp.Format(time.RFC3339), strings.Join(it.StrategiesTried, ","),
		boolToInt(it.Success), it.Error, it.ExtractedCompanies, it.ExtractedCredits, it.ArtifactRef)

	return err
}

// CloseSession fixes the session's final success flag.
func (s *LedgerService) CloseSession(ctx context.Context, sessionID string, success bool) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET closed = 1, success = ? WHERE id = ?
	`, boolToInt(success), sessionID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return showreel.Errorf(showreel.ENOTFOUND, "session not found")
	}
	return nil
}

// RecordSuccess indexes a successful session's final record.
func (s *LedgerService) RecordSuccess(ctx context.Context, sessionID string, rec *showreel.Record) error {
	if err := s.ensureSession(ctx, sessionID); err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO successes (session_id, record, recorded_at)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET record = excluded.record, recorded_at = excluded.recorded_at
	`, sessionID, string(data), time.Now().UTC().Format(time.RFC3339))

	return err
}

// FindSessionByID retrieves a session with its iterations.
func (s *LedgerService) FindSessionByID(ctx context.Context, id string) (*showreel.Session, error) {
	var session showreel.Session
	var startedAt string
	var success int

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, domain, started_at, success
		FROM sessions
		WHERE id = ?
	`, id).Scan(&session.ID, &session.URL, &session.Domain, &startedAt, &success)

	if err == sql.ErrNoRows {
		return nil, showreel.Errorf(showreel.ENOTFOUND, "session not found")
	}
	if err != nil {
		return nil, err
	}

	session.Success = success != 0
	session.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", err)
	}

	session.Iterations, err = s.findIterations(ctx, id)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindSessions retrieves sessions matching the filter, newest first.
// Iterations are not loaded; fetch a session by ID for its full history.
func (s *LedgerService) FindSessions(ctx context.Context, filter showreel.SessionFilter) ([]*showreel.Session, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, domain, started_at, success FROM sessions WHERE 1=1")

	if filter.Domain != nil {
		query.WriteString(" AND domain = ?")
		args = append(args, *filter.Domain)
	}
	if filter.Success != nil {
		query.WriteString(" AND success = ?")
		args = append(args, boolToInt(*filter.Success))
	}

	query.WriteString(" ORDER BY started_at DESC, id DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*showreel.Session
	for rows.Next() {
		var session showreel.Session
		var startedAt string
		var success int

		if err := rows.Scan(&session.ID, &session.URL, &session.Domain, &startedAt, &success); err != nil {
			return nil, err
		}

		session.Success = success != 0
		session.StartedAt, err = time.Parse(time.RFC3339, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse started_at: %w", err)
		}
		sessions = append(sessions, &session)
	}
	return sessions, rows.Err()
}

// FindSuccessBySession retrieves the record indexed by RecordSuccess.
func (s *LedgerService) FindSuccessBySession(ctx context.Context, sessionID string) (*showreel.Record, error) {
	var data string

	err := s.db.QueryRowContext(ctx, `
		SELECT record FROM successes WHERE session_id = ?
	`, sessionID).Scan(&data)

	if err == sql.ErrNoRows {
		return nil, showreel.Errorf(showreel.ENOTFOUND, "no success recorded for session")
	}
	if err != nil {
		return nil, err
	}

	var rec showreel.Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	rec.Normalize()
	return &rec, nil
}

// findIterations loads a session's iterations in append order.
func (s *LedgerService) findIterations(ctx context.Context, sessionID string) ([]showreel.AttemptIteration, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, timestamp, strategies, success, error, companies, credits, artifact_ref
		FROM iterations
		WHERE session_id = ?
		ORDER BY idx ASC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	iterations := []showreel.AttemptIteration{}
	for rows.Next() {
		var it showreel.AttemptIteration
		var timestamp, strategies string
		var success int

		if err := rows.Scan(&it.Index, &timestamp, &strategies, &success, &it.Error,
			&it.ExtractedCompanies, &it.ExtractedCredits, &it.ArtifactRef); err != nil {
			return nil, err
		}

		it.Success = success != 0
		it.Timestamp, err = time.Parse(time.RFC3339, timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		if strategies != "" {
			it.StrategiesTried = strings.Split(strategies, ",")
		} else {
			it.StrategiesTried = []string{}
		}
		iterations = append(iterations, it)
	}
	return iterations, rows.Err()
}

// ensureSession returns ENOTFOUND when the session does not exist.
func (s *LedgerService) ensureSession(ctx context.Context, sessionID string) error {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM sessions WHERE id = ?", sessionID).Scan(&one)
	if err == sql.ErrNoRows {
		return showreel.Errorf(showreel.ENOTFOUND, "session not found")
	}
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
