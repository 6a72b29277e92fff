package interview_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/screening/pkg/interview"
)

func TestIssueCreatesPendingSession(t *testing.T) {
	f := newFixture(t, options{})
	s := f.issue(t, "ann")

	assert.Equal(t, interview.StatusPending, s.Status)
	assert.Equal(t, f.job.Interview, s.Config)
	assert.Equal(t, f.clock.Now().Add(7*24*time.Hour), s.ExpiresAt)
	assert.GreaterOrEqual(t, len(s.Token), 43)

	_, err := f.svc.Issuer.Issue(context.Background(), s.CandidateID)
	assert.ErrorIs(t, err, interview.ErrDuplicateCandidate)
}

func TestTokensAreUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		tok, err := interview.NewToken()
		require.NoError(t, err)
		_, dup := seen[tok]
		require.False(t, dup)
		seen[tok] = struct{}{}
	}
}

func TestStartSetsDeadline(t *testing.T) {
	f := newFixture(t, options{})
	s := f.issue(t, "ann")
	now := f.clock.Now()

	started, err := f.svc.Tracker.Start(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, interview.StatusInProgress, started.Status)
	require.NotNil(t, started.StartedAt)
	require.NotNil(t, started.EndsAt)
	assert.Equal(t, now, *started.StartedAt)
	assert.Equal(t, now.Add(14*time.Minute+grace), *started.EndsAt)

	// повторный старт ничего не меняет
	f.clock.Advance(time.Minute)
	again, err := f.svc.Tracker.Start(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, *started.EndsAt, *again.EndsAt)
}

func TestStartAfterLinkExpiry(t *testing.T) {
	f := newFixture(t, options{})
	s := f.issue(t, "ann")
	f.clock.Advance(7*24*time.Hour + time.Second)

	_, err := f.svc.Tracker.Start(context.Background(), s.ID)
	require.ErrorIs(t, err, interview.ErrSessionExpired)

	got, err := f.svc.Tracker.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, interview.StatusExpired, got.Status)

	_, err = f.svc.Tracker.Start(context.Background(), s.ID)
	assert.ErrorIs(t, err, interview.ErrInvalidTransition)
	assert.ErrorIs(t, err, interview.ErrSessionExpired)
}

func TestCompletePendingIsRejected(t *testing.T) {
	f := newFixture(t, options{})
	s := f.issue(t, "ann")

	_, _, err := f.svc.Tracker.Complete(context.Background(), s.ID)
	assert.ErrorIs(t, err, interview.ErrInvalidTransition)
}

func TestCompleteIsIdempotent(t *testing.T) {
	f := newFixture(t, options{})
	s := f.started(t, "ann")
	f.answer(t, s.ID, interview.KindOral, 0, "I built a payments service in Go", 2*time.Minute)

	done, first, err := f.svc.Tracker.Complete(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, interview.StatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	f.clock.Advance(time.Hour)
	_, second, err := f.svc.Tracker.Complete(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompleteAfterBudgetExpires(t *testing.T) {
	f := newFixture(t, options{})
	s := f.started(t, "ann")
	f.clock.Advance(14*time.Minute + grace + time.Second)

	_, _, err := f.svc.Tracker.Complete(context.Background(), s.ID)
	require.ErrorIs(t, err, interview.ErrSessionExpired)

	got, err := f.svc.Tracker.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, interview.StatusExpired, got.Status)
}

func TestCompleteWithinGrace(t *testing.T) {
	f := newFixture(t, options{})
	s := f.started(t, "ann")
	f.clock.Advance(14*time.Minute + grace/2)

	done, _, err := f.svc.Tracker.Complete(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, interview.StatusCompleted, done.Status)
}

func TestTimeout(t *testing.T) {
	f := newFixture(t, options{})
	s := f.started(t, "ann")

	_, err := f.svc.Tracker.Timeout(context.Background(), s.ID)
	assert.ErrorIs(t, err, interview.ErrTimeRemaining)

	f.clock.Advance(time.Hour)
	got, err := f.svc.Tracker.Timeout(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, interview.StatusExpired, got.Status)
	assert.Nil(t, got.CompletedAt)

	_, err = f.svc.Tracker.Start(context.Background(), s.ID)
	assert.ErrorIs(t, err, interview.ErrInvalidTransition)
}

func TestExpireLeavesCompletedSessions(t *testing.T) {
	f := newFixture(t, options{})
	s := f.started(t, "ann")
	_, _, err := f.svc.Tracker.Complete(context.Background(), s.ID)
	require.NoError(t, err)

	f.clock.Advance(30 * 24 * time.Hour)
	_, err = f.svc.Tracker.Expire(context.Background(), s.ID)
	assert.ErrorIs(t, err, interview.ErrInvalidTransition)
}

func TestGetByUnknownToken(t *testing.T) {
	f := newFixture(t, options{})
	_, err := f.svc.Tracker.GetByToken(context.Background(), "nope")
	assert.ErrorIs(t, err, interview.ErrSessionNotFound)
}
