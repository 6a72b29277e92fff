package interview

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/screening/pkg/apperr"
	"github.com/artem13815/screening/pkg/metrics"
	"github.com/artem13815/screening/pkg/nlp"
)

const (
	// Answers shorter than this after normalization are too generic to
	// count as a shared submission.
	minHashedPayload = 24
	maxPayloadBytes  = 64 << 10
	maxSignalDetails = 512
)

// ScoreRequest is what a per-kind scorer grades.
type ScoreRequest struct {
	SessionID      uuid.UUID
	Kind           Kind
	QuestionIndex  int
	Payload        string
	JobTitle       string
	JobDescription string
	Skills         []string
	// Question is the text asked; empty when the session has no question set.
	Question       string
	ExpectedSkills []string
}

// Scorer grades one answer on a 0..100 scale. Implementations must return the
// same score for the same request.
type Scorer interface {
	Score(ctx context.Context, req ScoreRequest) (float64, error)
}

type AnswerInput struct {
	QuestionIndex int
	Kind          Kind
	Payload       string
	Elapsed       time.Duration
}

type SignalInput struct {
	Kind    SignalKind
	Details string
}

// Collector accepts answers and client signals of IN_PROGRESS sessions.
type Collector struct {
	store    Store
	tracker  *Tracker
	jobs     JobLookup
	scorers  map[Kind]Scorer
	settings Settings
	log      *zap.Logger
}

func NewCollector(store Store, tracker *Tracker, jobs JobLookup, oral, coding Scorer, settings Settings, log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{
		store:    store,
		tracker:  tracker,
		jobs:     jobs,
		scorers:  map[Kind]Scorer{KindOral: oral, KindCoding: coding},
		settings: settings.withDefaults(),
		log:      log,
	}
}

// RecordAnswer scores and stores one answer. The first answer for a question
// index wins; a session whose time budget ran out is timed out and the answer
// is rejected.
func (c *Collector) RecordAnswer(ctx context.Context, sessionID uuid.UUID, in AnswerInput) (ResponseRecord, error) {
	if err := validateAnswer(in); err != nil {
		return ResponseRecord{}, err
	}
	s, err := c.active(ctx, sessionID)
	if err != nil {
		return ResponseRecord{}, err
	}
	if in.QuestionIndex < 0 || in.QuestionIndex >= s.QuestionCount(in.Kind) {
		return ResponseRecord{}, fmt.Errorf("%w: %s question %d of %d", ErrQuestionOutOfRange, in.Kind, in.QuestionIndex, s.QuestionCount(in.Kind))
	}
	// cheap pre-check so a duplicate does not cost a scorer call; the store
	// enforces uniqueness again on insert
	existing, err := c.store.ListResponses(ctx, s.ID)
	if err != nil {
		return ResponseRecord{}, err
	}
	for _, r := range existing {
		if r.Kind == in.Kind && r.QuestionIndex == in.QuestionIndex {
			return ResponseRecord{}, ErrDuplicateQuestionIndex
		}
	}
	j, err := c.jobs.GetByID(ctx, s.JobID)
	if err != nil {
		return ResponseRecord{}, err
	}
	qs, err := c.store.ListQuestions(ctx, s.ID)
	if err != nil {
		return ResponseRecord{}, err
	}
	asked, _ := QuestionAt(qs, in.Kind, in.QuestionIndex)

	rec := ResponseRecord{
		SessionID:     s.ID,
		QuestionIndex: in.QuestionIndex,
		Kind:          in.Kind,
		Payload:       in.Payload,
		PayloadHash:   PayloadHash(in.Payload),
		Elapsed:       in.Elapsed,
	}
	rec.SubScore, rec.ScoreError = c.score(ctx, ScoreRequest{
		SessionID:      s.ID,
		Kind:           in.Kind,
		QuestionIndex:  in.QuestionIndex,
		Payload:        in.Payload,
		JobTitle:       j.Title,
		JobDescription: j.Description,
		Skills:         j.RequiredSkills,
		Question:       asked.Text,
		ExpectedSkills: asked.ExpectedSkills,
	})
	// scoring may take long enough for the budget to run out
	rec.RecordedAt = c.settings.now()
	if timedOut(s, rec.RecordedAt) {
		return ResponseRecord{}, c.expireLate(ctx, s.ID)
	}

	if err := c.store.AppendResponse(ctx, rec); err != nil {
		return ResponseRecord{}, err
	}
	metrics.AnswersRecorded.WithLabelValues(string(in.Kind)).Inc()
	return rec, nil
}

// RecordSignal stores a client-reported proctoring event.
func (c *Collector) RecordSignal(ctx context.Context, sessionID uuid.UUID, in SignalInput) (Signal, error) {
	if !in.Kind.Valid() {
		return Signal{}, apperr.InvalidFields(map[string]string{"kind": "unknown signal kind"})
	}
	s, err := c.active(ctx, sessionID)
	if err != nil {
		return Signal{}, err
	}
	sig := Signal{
		SessionID:  s.ID,
		Kind:       in.Kind,
		Details:    truncate(strings.TrimSpace(in.Details), maxSignalDetails),
		RecordedAt: c.settings.now(),
	}
	if err := c.store.AppendSignal(ctx, sig); err != nil {
		return Signal{}, err
	}
	return sig, nil
}

func (c *Collector) Responses(ctx context.Context, sessionID uuid.UUID) ([]ResponseRecord, error) {
	return c.store.ListResponses(ctx, sessionID)
}

func (c *Collector) Signals(ctx context.Context, sessionID uuid.UUID) ([]Signal, error) {
	return c.store.ListSignals(ctx, sessionID)
}

// active returns the session if it accepts writes, timing it out when its
// budget is exhausted.
func (c *Collector) active(ctx context.Context, sessionID uuid.UUID) (Session, error) {
	s, err := c.store.GetByID(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if s.Status == StatusExpired {
		return Session{}, fmt.Errorf("%w: %w", ErrSessionNotActive, ErrSessionExpired)
	}
	if s.Status != StatusInProgress {
		return Session{}, ErrSessionNotActive
	}
	if timedOut(s, c.settings.now()) {
		return Session{}, c.expireLate(ctx, s.ID)
	}
	return s, nil
}

// expireLate times out a session that received a write after its deadline
// and returns the error for the rejected write.
func (c *Collector) expireLate(ctx context.Context, id uuid.UUID) error {
	if _, err := c.tracker.Timeout(ctx, id); err != nil && !errors.Is(err, ErrStatusChanged) {
		c.log.Warn("timeout on late write", zap.String("session_id", id.String()), zap.Error(err))
	}
	return fmt.Errorf("%w: %w", ErrSessionNotActive, ErrSessionExpired)
}

// score never fails the write: a scorer that gives up yields zero plus the reason.
func (c *Collector) score(ctx context.Context, req ScoreRequest) (float64, string) {
	sc := c.scorers[req.Kind]
	if sc == nil {
		return 0, "no scorer configured for " + string(req.Kind)
	}
	ctx, cancel := context.WithTimeout(ctx, c.settings.ScoreTimeout)
	defer cancel()

	start := time.Now()
	v, err := sc.Score(ctx, req)
	metrics.ScorerLatency.WithLabelValues(string(req.Kind)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ScorerFailures.WithLabelValues(string(req.Kind)).Inc()
		c.log.Warn("answer scored as zero",
			zap.String("session_id", req.SessionID.String()),
			zap.String("kind", string(req.Kind)),
			zap.Int("question_index", req.QuestionIndex),
			zap.Error(err),
		)
		return 0, err.Error()
	}
	return clampScore(v), ""
}

// PayloadHash fingerprints an answer for the duplicate-submission rule.
// Trivial answers get an empty hash.
func PayloadHash(payload string) string {
	norm := nlp.NormalizeText(payload)
	if len(norm) < minHashedPayload {
		return ""
	}
	sum := sha256.Sum256([]byte(norm))
	return hex.EncodeToString(sum[:])
}

func validateAnswer(in AnswerInput) error {
	fields := map[string]string{}
	if !in.Kind.Valid() {
		fields["kind"] = "must be ORAL or CODING"
	}
	if in.Elapsed < 0 {
		fields["elapsed"] = "must not be negative"
	}
	if len(in.Payload) > maxPayloadBytes {
		fields["payload"] = "too large"
	}
	if !utf8.ValidString(in.Payload) {
		fields["payload"] = "must be valid UTF-8"
	}
	if len(fields) > 0 {
		return apperr.InvalidFields(fields)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
