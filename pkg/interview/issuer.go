package interview

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// tokenBytes gives 256 bits of entropy per link.
const tokenBytes = 32

// Issuer creates the single interview session of a candidate.
type Issuer struct {
	sessions   SessionRepository
	candidates CandidateLookup
	jobs       JobLookup
	settings   Settings
	log        *zap.Logger
}

func NewIssuer(sessions SessionRepository, candidates CandidateLookup, jobs JobLookup, settings Settings, log *zap.Logger) *Issuer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Issuer{sessions: sessions, candidates: candidates, jobs: jobs, settings: settings.withDefaults(), log: log}
}

// Issue persists a PENDING session with a fresh token. The job's interview
// configuration is copied into the session so later job edits do not affect it.
func (i *Issuer) Issue(ctx context.Context, candidateID uuid.UUID) (Session, error) {
	c, err := i.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return Session{}, err
	}
	if _, err := i.sessions.GetByCandidate(ctx, candidateID); err == nil {
		return Session{}, ErrDuplicateCandidate
	} else if !errors.Is(err, ErrSessionNotFound) {
		return Session{}, err
	}
	j, err := i.jobs.GetByID(ctx, c.JobID)
	if err != nil {
		return Session{}, err
	}
	token, err := NewToken()
	if err != nil {
		return Session{}, err
	}
	now := i.settings.now()
	s := Session{
		ID:          uuid.New(),
		CandidateID: c.ID,
		JobID:       j.ID,
		Token:       token,
		Status:      StatusPending,
		Config:      j.Interview,
		CreatedAt:   now,
		ExpiresAt:   now.Add(i.settings.LinkTTL),
	}
	if err := i.sessions.Create(ctx, s); err != nil {
		return Session{}, err
	}
	i.log.Info("interview session issued",
		zap.String("session_id", s.ID.String()),
		zap.String("candidate_id", c.ID.String()),
		zap.Time("expires_at", s.ExpiresAt),
	)
	return s, nil
}

// NewToken returns a URL-safe random token.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
