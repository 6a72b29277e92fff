package interview

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/artem13815/screening/pkg/metrics"
)

// Oral and coding averages are weighted equally. When a job has no questions
// of one kind the other kind carries the whole score.
const (
	OralWeight   = 0.5
	CodingWeight = 0.5
)

// ScoringEngine computes the overall score of a completed session and stores
// it together with the integrity flag, exactly once.
type ScoringEngine struct {
	store    Store
	monitor  *IntegrityMonitor
	settings Settings
	log      *zap.Logger
}

func NewScoringEngine(store Store, monitor *IntegrityMonitor, settings Settings, log *zap.Logger) *ScoringEngine {
	if log == nil {
		log = zap.NewNop()
	}
	return &ScoringEngine{store: store, monitor: monitor, settings: settings.withDefaults(), log: log}
}

// Finalize returns the stored outcome of a COMPLETED session, computing and
// storing it on first call. Score and integrity are evaluated concurrently and
// stored in one write, so callers never see one without the other.
func (e *ScoringEngine) Finalize(ctx context.Context, sessionID uuid.UUID) (Outcome, error) {
	if out, err := e.store.GetOutcome(ctx, sessionID); err == nil {
		return out, nil
	} else if !errors.Is(err, ErrOutcomeNotFound) {
		return Outcome{}, err
	}
	s, err := e.store.GetByID(ctx, sessionID)
	if err != nil {
		return Outcome{}, err
	}
	if s.Status != StatusCompleted {
		return Outcome{}, fmt.Errorf("finalize %s session: %w", s.Status, ErrInvalidTransition)
	}

	now := e.settings.now()
	var (
		score ScoreResult
		flag  IntegrityFlag
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rs, err := e.store.ListResponses(gctx, s.ID)
		if err != nil {
			return fmt.Errorf("list responses: %w", err)
		}
		score = e.Compute(s, rs)
		score.ComputedAt = now
		return nil
	})
	g.Go(func() error {
		f, err := e.monitor.Evaluate(gctx, s)
		if err != nil {
			return fmt.Errorf("evaluate integrity: %w", err)
		}
		flag = f
		flag.EvaluatedAt = now
		return nil
	})
	if err := g.Wait(); err != nil {
		return Outcome{}, err
	}

	stored, err := e.store.SaveOutcome(ctx, Outcome{Score: score, Integrity: flag})
	if err != nil {
		return Outcome{}, err
	}
	metrics.Finalized.WithLabelValues(strconv.FormatBool(stored.Integrity.Cheating)).Inc()
	e.log.Info("session finalized",
		zap.String("session_id", s.ID.String()),
		zap.Float64("score", stored.Score.Overall),
		zap.Bool("cheating", stored.Integrity.Cheating),
	)
	return stored, nil
}

// Compute grades the session from its responses. Unanswered questions count as
// zero; answers outside the configured ranges are ignored.
func (e *ScoringEngine) Compute(s Session, rs []ResponseRecord) ScoreResult {
	oralN, codingN := s.Config.OralQuestionCount, s.Config.CodingQuestionCount
	var oralSum, codingSum float64
	seen := make(map[Kind]map[int]struct{}, 2)
	for _, r := range rs {
		if r.QuestionIndex < 0 || r.QuestionIndex >= s.QuestionCount(r.Kind) {
			continue
		}
		if seen[r.Kind] == nil {
			seen[r.Kind] = map[int]struct{}{}
		}
		// first write wins
		if _, dup := seen[r.Kind][r.QuestionIndex]; dup {
			continue
		}
		seen[r.Kind][r.QuestionIndex] = struct{}{}
		switch r.Kind {
		case KindOral:
			oralSum += clampScore(r.SubScore)
		case KindCoding:
			codingSum += clampScore(r.SubScore)
		}
	}
	oralAvg := average(oralSum, oralN)
	codingAvg := average(codingSum, codingN)

	var overall float64
	switch {
	case oralN > 0 && codingN > 0:
		overall = OralWeight*oralAvg + CodingWeight*codingAvg
	case oralN > 0:
		overall = oralAvg
	case codingN > 0:
		overall = codingAvg
	}
	return ScoreResult{
		SessionID:     s.ID,
		Overall:       RoundHalfUp(overall),
		OralAverage:   RoundHalfUp(oralAvg),
		CodingAverage: RoundHalfUp(codingAvg),
	}
}

// RoundHalfUp rounds to one decimal, halves away from zero for non-negative
// scores. The epsilon absorbs binary representation error (72.25 -> 72.3).
func RoundHalfUp(v float64) float64 {
	return math.Floor(v*10+0.5+1e-9) / 10
}

func average(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return sum / float64(n)
}

func clampScore(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
