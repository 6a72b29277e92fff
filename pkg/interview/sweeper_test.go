package interview_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/screening/pkg/interview"
)

func TestSweepExpiresOverdueSessions(t *testing.T) {
	f := newFixture(t, options{})
	stale := f.issue(t, "stale")
	running := f.started(t, "running")
	f.clock.Advance(6 * 24 * time.Hour)
	fresh := f.issue(t, "fresh")
	f.clock.Advance(24 * time.Hour)

	rep, err := f.svc.Sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Expired)
	assert.Zero(t, rep.Failed)

	want := map[string]interview.Status{
		"stale":   interview.StatusExpired,
		"running": interview.StatusExpired,
		"fresh":   interview.StatusPending,
	}
	for name, s := range map[string]interview.Session{"stale": stale, "running": running, "fresh": fresh} {
		got, err := f.svc.Tracker.Get(context.Background(), s.ID)
		require.NoError(t, err)
		assert.Equal(t, want[name], got.Status, name)
	}

	// второй проход ничего не находит
	rep, err = f.svc.Sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, rep.Expired)
}

func TestSweepFinalizesCompletedSessions(t *testing.T) {
	f := newFixture(t, options{})
	s := f.started(t, "ann")
	f.answer(t, s.ID, interview.KindCoding, 0, "package main", time.Minute)

	// the process died between the transition and finalization
	_, err := f.db.Interviews().Transition(context.Background(), interview.TransitionRequest{
		SessionID: s.ID,
		From:      []interview.Status{interview.StatusInProgress},
		To:        interview.StatusCompleted,
		At:        f.clock.Now(),
	})
	require.NoError(t, err)

	rep, err := f.svc.Sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Finalized)

	out, err := f.db.Interviews().GetOutcome(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, out.Score.Overall)
}

func TestSweepSkipsWhenLockHeld(t *testing.T) {
	locker := &stubLocker{held: true}
	f := newFixture(t, options{locker: locker})
	f.issue(t, "stale")
	f.clock.Advance(8 * 24 * time.Hour)

	rep, err := f.svc.Sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.Skipped)
	assert.Zero(t, rep.Expired)

	locker.held = false
	rep, err = f.svc.Sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.False(t, rep.Skipped)
	assert.Equal(t, 1, rep.Expired)
	assert.Equal(t, 1, locker.released)
	assert.False(t, locker.held)
}

func TestSweepFinishesBeforeLockLapses(t *testing.T) {
	locker := &stubLocker{}
	f := newFixture(t, options{locker: locker})

	before := time.Now()
	_, err := f.svc.Sweeper.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, locker.ttl)
	require.False(t, locker.deadline.IsZero(), "sweep must run under a deadline")
	assert.False(t, locker.deadline.After(before.Add(locker.ttl).Add(time.Second)))
}

func TestSweeperSchedule(t *testing.T) {
	f := newFixture(t, options{})
	require.Error(t, f.svc.Sweeper.Start("not a schedule"))
	require.NoError(t, f.svc.Sweeper.Start("@every 1h"))
	f.svc.Sweeper.Stop()
}
