package interview_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/screening/pkg/interview"
)

func TestInviteBuildsLink(t *testing.T) {
	f := newFixture(t, options{})
	c := f.addCandidate(t, "Ann", "ann@example.com")

	inv, err := f.svc.Invite(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "https://hr.example.com/interview/"+inv.Token, inv.Link)
	assert.Equal(t, f.clock.Now().Add(7*24*time.Hour), inv.ExpiresAt)

	s, err := f.svc.Tracker.GetByToken(context.Background(), inv.Token)
	require.NoError(t, err)
	assert.Equal(t, c.ID, s.CandidateID)
}

func TestBoard(t *testing.T) {
	f := newFixture(t, options{})
	uninvited := f.addCandidate(t, "Carl", "carl@example.com")
	s := f.started(t, "ann")

	board, err := f.svc.Board(context.Background(), f.job.ID)
	require.NoError(t, err)
	require.Len(t, board, 2)

	byID := map[string]interview.BoardEntry{}
	for _, e := range board {
		byID[e.ID.String()] = e
	}
	assert.Equal(t, interview.StatusPending, byID[uninvited.ID.String()].Status)
	assert.Empty(t, byID[uninvited.ID.String()].Link)

	ann := byID[s.CandidateID.String()]
	assert.Equal(t, interview.StatusInProgress, ann.Status)
	assert.True(t, strings.HasSuffix(ann.Link, "/interview/"+s.Token))
}

func TestDetail(t *testing.T) {
	f := newFixture(t, options{})
	s := f.started(t, "ann")
	f.answer(t, s.ID, interview.KindOral, 0, "answer", time.Minute)
	_, err := f.svc.Collector.RecordSignal(context.Background(), s.ID, interview.SignalInput{Kind: interview.SignalFocusLoss})
	require.NoError(t, err)

	d, err := f.svc.Detail(context.Background(), s.CandidateID)
	require.NoError(t, err)
	require.NotNil(t, d.Session)
	assert.Nil(t, d.Outcome)
	assert.Len(t, d.Answers, 1)
	assert.Len(t, d.Signals, 1)

	_, _, err = f.svc.Tracker.Complete(context.Background(), s.ID)
	require.NoError(t, err)
	d, err = f.svc.Detail(context.Background(), s.CandidateID)
	require.NoError(t, err)
	require.NotNil(t, d.Outcome)
	assert.Equal(t, interview.StatusCompleted, d.Session.Status)

	lone := f.addCandidate(t, "Lone", "lone@example.com")
	d, err = f.svc.Detail(context.Background(), lone.ID)
	require.NoError(t, err)
	assert.Nil(t, d.Session)
	assert.Empty(t, d.Answers)
}

func TestRemaining(t *testing.T) {
	f := newFixture(t, options{})
	pending := f.issue(t, "bob")
	assert.Zero(t, f.svc.Remaining(pending))

	s := f.started(t, "ann")
	assert.Equal(t, 14*time.Minute+grace, f.svc.Remaining(s))

	f.clock.Advance(10 * time.Minute)
	assert.Equal(t, 4*time.Minute+grace, f.svc.Remaining(s))

	f.clock.Advance(time.Hour)
	assert.Zero(t, f.svc.Remaining(s))
}
