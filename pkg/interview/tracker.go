package interview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/screening/pkg/metrics"
)

// Status only moves forward, so a compare-and-set can lose at most a few times.
const maxCASAttempts = 3

// Tracker owns the session state machine. Every transition is a
// compare-and-set against the stored status.
type Tracker struct {
	store     Store
	engine    *ScoringEngine
	questions *Questioner
	settings  Settings
	log       *zap.Logger
}

// NewTracker builds the state machine. A nil questioner starts sessions
// without a question set.
func NewTracker(store Store, engine *ScoringEngine, questions *Questioner, settings Settings, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{store: store, engine: engine, questions: questions, settings: settings.withDefaults(), log: log}
}

func (t *Tracker) Get(ctx context.Context, id uuid.UUID) (Session, error) {
	return t.store.GetByID(ctx, id)
}

func (t *Tracker) GetByToken(ctx context.Context, token string) (Session, error) {
	return t.store.GetByToken(ctx, token)
}

// Start moves PENDING to IN_PROGRESS and fixes the question set of the
// session. A start after the link deadline expires the session and fails with
// ErrSessionExpired.
func (t *Tracker) Start(ctx context.Context, id uuid.UUID) (Session, error) {
	var (
		questions []Question
		prepared  bool
	)
	return t.apply(ctx, id, func(ctx context.Context, s Session, now time.Time) (Session, error) {
		switch s.Status {
		case StatusInProgress:
			return s, nil
		case StatusPending:
			if !now.Before(s.ExpiresAt) {
				return t.expireWith(ctx, s, now)
			}
			if !prepared && t.questions != nil {
				questions, prepared = t.questions.Prepare(ctx, s), true
				// the budget counts from the moment the questions are ready
				now = t.settings.now()
			}
			endsAt := now.Add(s.Config.TimeBudget() + t.settings.Grace)
			return t.commit(ctx, s, TransitionRequest{
				To:        StatusInProgress,
				At:        now,
				EndsAt:    &endsAt,
				Questions: questions,
			})
		case StatusExpired:
			return s, fmt.Errorf("%w: %w", ErrInvalidTransition, ErrSessionExpired)
		default:
			return s, ErrInvalidTransition
		}
	})
}

// Complete moves IN_PROGRESS to COMPLETED and finalizes the session. Repeating
// it on a COMPLETED session returns the stored outcome, finalizing first if a
// previous attempt stopped between the two steps.
func (t *Tracker) Complete(ctx context.Context, id uuid.UUID) (Session, Outcome, error) {
	s, err := t.apply(ctx, id, func(ctx context.Context, s Session, now time.Time) (Session, error) {
		switch s.Status {
		case StatusCompleted:
			return s, nil
		case StatusInProgress:
			if timedOut(s, now) {
				return t.expireWith(ctx, s, now)
			}
			return t.move(ctx, s, StatusCompleted, now)
		case StatusExpired:
			return s, fmt.Errorf("%w: %w", ErrInvalidTransition, ErrSessionExpired)
		default:
			return s, ErrInvalidTransition
		}
	})
	if err != nil {
		return s, Outcome{}, err
	}
	out, err := t.engine.Finalize(ctx, s.ID)
	if err != nil {
		t.log.Error("finalize session", zap.String("session_id", s.ID.String()), zap.Error(err))
		return s, Outcome{}, err
	}
	return s, out, nil
}

// Timeout expires an IN_PROGRESS session whose time budget ran out.
func (t *Tracker) Timeout(ctx context.Context, id uuid.UUID) (Session, error) {
	return t.apply(ctx, id, func(ctx context.Context, s Session, now time.Time) (Session, error) {
		switch s.Status {
		case StatusExpired:
			return s, nil
		case StatusInProgress:
			if !timedOut(s, now) {
				return s, ErrTimeRemaining
			}
			return t.move(ctx, s, StatusExpired, now)
		default:
			return s, ErrInvalidTransition
		}
	})
}

// Expire is the sweep step: a PENDING session past its link deadline or an
// IN_PROGRESS session past its time budget becomes EXPIRED.
func (t *Tracker) Expire(ctx context.Context, id uuid.UUID) (Session, error) {
	return t.apply(ctx, id, func(ctx context.Context, s Session, now time.Time) (Session, error) {
		switch s.Status {
		case StatusExpired:
			return s, nil
		case StatusCompleted:
			return s, ErrInvalidTransition
		}
		if !overdue(s, now) {
			return s, ErrTimeRemaining
		}
		return t.move(ctx, s, StatusExpired, now)
	})
}

type step func(ctx context.Context, s Session, now time.Time) (Session, error)

// apply re-reads the session and re-runs fn when a concurrent writer won the
// compare-and-set.
func (t *Tracker) apply(ctx context.Context, id uuid.UUID, fn step) (Session, error) {
	var (
		out Session
		err error
	)
	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		var s Session
		s, err = t.store.GetByID(ctx, id)
		if err != nil {
			return Session{}, err
		}
		out, err = fn(ctx, s, t.settings.now())
		if !errors.Is(err, ErrStatusChanged) {
			return out, err
		}
	}
	return out, err
}

func (t *Tracker) expireWith(ctx context.Context, s Session, now time.Time) (Session, error) {
	exp, err := t.move(ctx, s, StatusExpired, now)
	if err != nil {
		return exp, err
	}
	return exp, ErrSessionExpired
}

func (t *Tracker) move(ctx context.Context, s Session, to Status, at time.Time) (Session, error) {
	return t.commit(ctx, s, TransitionRequest{To: to, At: at})
}

// commit applies req as a compare-and-set from the status s was read with.
func (t *Tracker) commit(ctx context.Context, s Session, req TransitionRequest) (Session, error) {
	req.SessionID = s.ID
	req.From = []Status{s.Status}
	upd, err := t.store.Transition(ctx, req)
	if err != nil {
		return upd, err
	}
	metrics.SessionTransitions.WithLabelValues(string(s.Status), string(req.To)).Inc()
	t.log.Info("session transition",
		zap.String("session_id", s.ID.String()),
		zap.String("from", string(s.Status)),
		zap.String("to", string(req.To)),
	)
	return upd, nil
}

// Questions returns the question set fixed when the session started.
func (t *Tracker) Questions(ctx context.Context, id uuid.UUID) ([]Question, error) {
	return t.store.ListQuestions(ctx, id)
}

// timedOut reports whether a started session ran past its time budget.
func timedOut(s Session, now time.Time) bool {
	return s.Status == StatusInProgress && s.EndsAt != nil && now.After(*s.EndsAt)
}

// overdue reports whether the sweep may expire s at now.
func overdue(s Session, now time.Time) bool {
	switch s.Status {
	case StatusPending:
		return !now.Before(s.ExpiresAt)
	case StatusInProgress:
		return timedOut(s, now)
	}
	return false
}
