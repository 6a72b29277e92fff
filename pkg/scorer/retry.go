package scorer

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/artem13815/screening/pkg/apperr"
	"github.com/artem13815/screening/pkg/interview"
	"github.com/artem13815/screening/pkg/llm"
)

// RetryPolicy bounds how long one answer may wait for its scorer.
type RetryPolicy struct {
	Attempts       int           `yaml:"attempts"`
	AttemptTimeout time.Duration `yaml:"attempt_timeout"`
	BaseDelay      time.Duration `yaml:"base_delay"`
	MaxDelay       time.Duration `yaml:"max_delay"`
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts:       3,
		AttemptTimeout: 15 * time.Second,
		BaseDelay:      500 * time.Millisecond,
		MaxDelay:       4 * time.Second,
	}
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	d := DefaultRetryPolicy()
	if p.Attempts <= 0 {
		p.Attempts = d.Attempts
	}
	if p.AttemptTimeout <= 0 {
		p.AttemptTimeout = d.AttemptTimeout
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = d.BaseDelay
	}
	if p.MaxDelay < p.BaseDelay {
		p.MaxDelay = p.BaseDelay
	}
	return p
}

// Retrying retries transient failures of the wrapped scorer with capped
// exponential backoff. Each attempt gets its own timeout.
type Retrying struct {
	next   interview.Scorer
	policy RetryPolicy
	log    *zap.Logger
}

func NewRetrying(next interview.Scorer, policy RetryPolicy, log *zap.Logger) *Retrying {
	if log == nil {
		log = zap.NewNop()
	}
	return &Retrying{next: next, policy: policy.withDefaults(), log: log}
}

func (r *Retrying) Score(ctx context.Context, req interview.ScoreRequest) (float64, error) {
	b := retry.NewExponential(r.policy.BaseDelay)
	b = retry.WithCappedDuration(r.policy.MaxDelay, b)
	b = retry.WithMaxRetries(uint64(r.policy.Attempts-1), b)

	attempt := 0
	return retry.DoValue(ctx, b, func(ctx context.Context) (float64, error) {
		attempt++
		actx, cancel := context.WithTimeout(ctx, r.policy.AttemptTimeout)
		defer cancel()
		v, err := r.next.Score(actx, req)
		if err == nil {
			return v, nil
		}
		if ctx.Err() == nil && Transient(err) {
			r.log.Debug("scorer attempt failed",
				zap.Int("attempt", attempt),
				zap.String("kind", string(req.Kind)),
				zap.Error(err),
			)
			return 0, retry.RetryableError(err)
		}
		return 0, err
	})
}

// Transient reports whether err is worth another attempt.
func Transient(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, llm.ErrUnavailable), errors.Is(err, interview.ErrScorerUnavailable):
		return true
	case errors.Is(err, context.DeadlineExceeded):
		return true
	}
	return apperr.KindOf(err) == apperr.KindTransient
}

// Fallback answers from secondary whenever primary fails.
type Fallback struct {
	primary   interview.Scorer
	secondary interview.Scorer
	log       *zap.Logger
}

func NewFallback(primary, secondary interview.Scorer, log *zap.Logger) *Fallback {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fallback{primary: primary, secondary: secondary, log: log}
}

func (f *Fallback) Score(ctx context.Context, req interview.ScoreRequest) (float64, error) {
	if f.primary != nil {
		v, err := f.primary.Score(ctx, req)
		if err == nil {
			return v, nil
		}
		f.log.Warn("primary scorer failed, using fallback",
			zap.String("session_id", req.SessionID.String()),
			zap.String("kind", string(req.Kind)),
			zap.Error(err),
		)
	}
	return f.secondary.Score(ctx, req)
}
