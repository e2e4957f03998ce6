package mock

import (
	"context"

	"github.com/fwojciec/showreel"
)

var _ showreel.Ledger = (*Ledger)(nil)

// Ledger is a mock implementation of showreel.Ledger.
type Ledger struct {
	CreateSessionFn        func(ctx context.Context, session *showreel.Session) error
	AppendIterationFn      func(ctx context.Context, sessionID string, it *showreel.AttemptIteration) error
	CloseSessionFn         func(ctx context.Context, sessionID string, success bool) error
	RecordSuccessFn        func(ctx context.Context, sessionID string, rec *showreel.Record) error
	FindSessionByIDFn      func(ctx context.Context, id string) (*showreel.Session, error)
	FindSessionsFn         func(ctx context.Context, filter showreel.SessionFilter) ([]*showreel.Session, error)
	FindSuccessBySessionFn func(ctx context.Context, sessionID string) (*showreel.Record, error)
}

func (l *Ledger) CreateSession(ctx context.Context, session *showreel.Session) error {
	return l.CreateSessionFn(ctx, session)
}

func (l *Ledger) AppendIteration(ctx context.Context, sessionID string, it *showreel.AttemptIteration) error {
	return l.AppendIterationFn(ctx, sessionID, it)
}

func (l *Ledger) CloseSession(ctx context.Context, sessionID string, success bool) error {
	return l.CloseSessionFn(ctx, sessionID, success)
}

func (l *Ledger) RecordSuccess(ctx context.Context, sessionID string, rec *showreel.Record) error {
	return l.RecordSuccessFn(ctx, sessionID, rec)
}

func (l *Ledger) FindSessionByID(ctx context.Context, id string) (*showreel.Session, error) {
	return l.FindSessionByIDFn(ctx, id)
}

func (l *Ledger) FindSessions(ctx context.Context, filter showreel.SessionFilter) ([]*showreel.Session, error) {
	return l.FindSessionsFn(ctx, filter)
}

func (l *Ledger) FindSuccessBySession(ctx context.Context, sessionID string) (*showreel.Record, error) {
	return l.FindSuccessBySessionFn(ctx, sessionID)
}
