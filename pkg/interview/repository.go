package interview

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/screening/pkg/candidate"
	"github.com/artem13815/screening/pkg/job"
)

// TransitionRequest is a compare-and-set on a session's status.
type TransitionRequest struct {
	SessionID uuid.UUID
	From      []Status
	To        Status
	At        time.Time
	// EndsAt is stored when moving to IN_PROGRESS.
	EndsAt *time.Time
	// Questions are stored together with the move to IN_PROGRESS.
	Questions []Question
}

// SessionRepository: порт хранения сессий.
type SessionRepository interface {
	// Create returns ErrDuplicateCandidate if the candidate already has a session.
	Create(ctx context.Context, s Session) error
	GetByID(ctx context.Context, id uuid.UUID) (Session, error)
	GetByToken(ctx context.Context, token string) (Session, error)
	GetByCandidate(ctx context.Context, candidateID uuid.UUID) (Session, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]Session, error)
	// Transition atomically applies req. If the current status is not in
	// req.From it returns the unchanged session and ErrStatusChanged.
	Transition(ctx context.Context, req TransitionRequest) (Session, error)
	// ListExpirable returns non-terminal sessions past their deadline at now.
	ListExpirable(ctx context.Context, now time.Time, limit int) ([]Session, error)
	// ListQuestions returns the questions fixed at start, oral first; empty
	// for a session that never started.
	ListQuestions(ctx context.Context, sessionID uuid.UUID) ([]Question, error)
}

// ResponseRepository: порт хранения ответов и клиентских сигналов.
type ResponseRepository interface {
	// AppendResponse stores r only while the session is IN_PROGRESS and
	// r.RecordedAt is not past its EndsAt (ErrSessionNotActive otherwise); a
	// taken index yields ErrDuplicateQuestionIndex. AppendSignal has the same guard.
	AppendResponse(ctx context.Context, r ResponseRecord) error
	ListResponses(ctx context.Context, sessionID uuid.UUID) ([]ResponseRecord, error)
	AppendSignal(ctx context.Context, s Signal) error
	ListSignals(ctx context.Context, sessionID uuid.UUID) ([]Signal, error)
	// SiblingHashes returns the payload hashes recorded by other sessions of the job.
	SiblingHashes(ctx context.Context, jobID, exclude uuid.UUID) (map[string]struct{}, error)
}

// OutcomeRepository: порт хранения итогов.
type OutcomeRepository interface {
	// SaveOutcome stores o unless an outcome already exists, and returns the
	// stored one either way.
	SaveOutcome(ctx context.Context, o Outcome) (Outcome, error)
	GetOutcome(ctx context.Context, sessionID uuid.UUID) (Outcome, error)
	ListStandings(ctx context.Context, jobID uuid.UUID) ([]Standing, error)
	// ListUnfinalized returns COMPLETED sessions that have no outcome.
	ListUnfinalized(ctx context.Context, limit int) ([]Session, error)
}

type Store interface {
	SessionRepository
	ResponseRepository
	OutcomeRepository
}

type JobLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
}

type CandidateLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]candidate.Candidate, error)
}
