package interview

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/artem13815/screening/pkg/metrics"
)

const sweepLockKey = "screening:sweep"

// Locker provides a best-effort cluster-wide lock so only one replica sweeps
// at a time. Sweeping twice is harmless, just wasted work.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock func(context.Context) error, ok bool, err error)
}

type SweepReport struct {
	Expired   int  `json:"expired"`
	Finalized int  `json:"finalized"`
	Failed    int  `json:"failed"`
	Skipped   bool `json:"skipped"`
}

// Sweeper expires abandoned sessions and finalizes completed sessions whose
// outcome is missing. Each session is an independent atomic step, so a crash
// mid-sweep is repaired by the next run.
type Sweeper struct {
	store    Store
	tracker  *Tracker
	engine   *ScoringEngine
	locker   Locker
	settings Settings
	log      *zap.Logger
	cron     *cron.Cron
}

// NewSweeper creates a sweeper; locker may be nil for a single replica.
func NewSweeper(store Store, tracker *Tracker, engine *ScoringEngine, locker Locker, settings Settings, log *zap.Logger) *Sweeper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sweeper{
		store:    store,
		tracker:  tracker,
		engine:   engine,
		locker:   locker,
		settings: settings.withDefaults(),
		log:      log,
	}
}

// Sweep runs one pass. It stops after SweepTimeout, which is also the lock
// TTL, so the lock cannot lapse while this replica is still sweeping.
func (s *Sweeper) Sweep(ctx context.Context) (SweepReport, error) {
	var rep SweepReport
	ctx, cancel := context.WithTimeout(ctx, s.settings.SweepTimeout)
	defer cancel()
	if s.locker != nil {
		unlock, ok, err := s.locker.TryLock(ctx, sweepLockKey, s.settings.SweepTimeout)
		if err != nil {
			return rep, err
		}
		if !ok {
			rep.Skipped = true
			return rep, nil
		}
		defer func() {
			if err := unlock(context.Background()); err != nil {
				s.log.Warn("release sweep lock", zap.Error(err))
			}
		}()
	}

	seen := map[uuid.UUID]struct{}{}
	for {
		batch, err := s.store.ListExpirable(ctx, s.settings.now(), s.settings.SweepBatch)
		if err != nil {
			return rep, err
		}
		progressed := false
		for _, sess := range batch {
			if _, ok := seen[sess.ID]; ok {
				continue
			}
			seen[sess.ID] = struct{}{}
			progressed = true
			if _, err := s.tracker.Expire(ctx, sess.ID); err != nil {
				if errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrTimeRemaining) || errors.Is(err, ErrStatusChanged) {
					continue
				}
				rep.Failed++
				s.log.Error("sweep expire", zap.String("session_id", sess.ID.String()), zap.Error(err))
				continue
			}
			rep.Expired++
			metrics.SweepExpired.Inc()
		}
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if len(batch) < s.settings.SweepBatch || !progressed {
			break
		}
	}

	pending, err := s.store.ListUnfinalized(ctx, s.settings.SweepBatch)
	if err != nil {
		return rep, err
	}
	for _, sess := range pending {
		if _, err := s.engine.Finalize(ctx, sess.ID); err != nil {
			rep.Failed++
			s.log.Error("sweep finalize", zap.String("session_id", sess.ID.String()), zap.Error(err))
			continue
		}
		rep.Finalized++
	}
	return rep, nil
}

// Start schedules Sweep with a cron spec such as "@every 1m".
func (s *Sweeper) Start(spec string) error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(spec, func() {
		rep, err := s.Sweep(context.Background())
		if err != nil {
			s.log.Error("sweep failed", zap.Error(err))
			return
		}
		if rep.Expired > 0 || rep.Finalized > 0 || rep.Failed > 0 {
			s.log.Info("sweep done",
				zap.Int("expired", rep.Expired),
				zap.Int("finalized", rep.Finalized),
				zap.Int("failed", rep.Failed),
			)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("sweeper scheduled", zap.String("spec", spec))
	return nil
}

// Stop waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}
