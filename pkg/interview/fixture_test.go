package interview_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/screening/pkg/candidate"
	"github.com/artem13815/screening/pkg/interview"
	"github.com/artem13815/screening/pkg/job"
	"github.com/artem13815/screening/pkg/repository/memory"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fixedScorer returns the same score for every answer.
type fixedScorer struct {
	score float64
	err   error
}

func (s fixedScorer) Score(context.Context, interview.ScoreRequest) (float64, error) {
	return s.score, s.err
}

// payloadScorer scores an answer by looking its payload up.
type payloadScorer map[string]float64

func (s payloadScorer) Score(_ context.Context, req interview.ScoreRequest) (float64, error) {
	v, ok := s[req.Payload]
	if !ok {
		return 0, errors.New("unknown payload")
	}
	return v, nil
}

type stubLocker struct {
	held     bool
	released int
	ttl      time.Duration
	deadline time.Time
}

func (l *stubLocker) TryLock(ctx context.Context, _ string, ttl time.Duration) (func(context.Context) error, bool, error) {
	l.ttl = ttl
	l.deadline, _ = ctx.Deadline()
	if l.held {
		return nil, false, nil
	}
	l.held = true
	return func(context.Context) error {
		l.held = false
		l.released++
		return nil
	}, true, nil
}

type fixture struct {
	db    *memory.DB
	clock *fakeClock
	svc   *interview.Service
	job   job.Job
}

type options struct {
	config  job.InterviewConfig
	oral    interview.Scorer
	coding  interview.Scorer
	locker  interview.Locker
	clock   *fakeClock
	planner interview.QuestionPlanner
}

// smallConfig: 2 oral questions of 1+1 min and 1 coding question of 10 min,
// so the time budget is 14 minutes.
func smallConfig() job.InterviewConfig {
	return job.InterviewConfig{
		OralQuestionCount:   2,
		CodingQuestionCount: 1,
		ThinkingMinutes:     1,
		RecordingMinutes:    1,
		CodingMinutes:       10,
	}
}

const grace = time.Minute

func newFixture(t *testing.T, opts options) *fixture {
	t.Helper()
	if opts.config == (job.InterviewConfig{}) {
		opts.config = smallConfig()
	}
	if opts.oral == nil {
		opts.oral = fixedScorer{score: 80}
	}
	if opts.coding == nil {
		opts.coding = fixedScorer{score: 60}
	}
	db := memory.New()
	clock := opts.clock
	if clock == nil {
		clock = newClock()
	}
	j := job.Job{
		ID:             uuid.New(),
		Title:          "Backend Engineer",
		Description:    "Go services",
		RequiredSkills: []string{"go", "postgresql"},
		Interview:      opts.config,
		CreatedAt:      clock.Now(),
	}
	require.NoError(t, db.Jobs().Create(context.Background(), j))

	svc := interview.NewService(interview.Deps{
		Store:        db.Interviews(),
		Jobs:         db.Jobs(),
		Candidates:   db.Candidates(),
		OralScorer:   opts.oral,
		CodingScorer: opts.coding,
		Locker:       opts.locker,
		Planner:      opts.planner,
		Settings: interview.Settings{
			Grace:       grace,
			LinkBaseURL: "https://hr.example.com/",
			Now:         clock.Now,
		},
	})
	return &fixture{db: db, clock: clock, svc: svc, job: j}
}

func (f *fixture) addCandidate(t *testing.T, name, email string) candidate.Candidate {
	t.Helper()
	c := candidate.Candidate{
		ID:        uuid.New(),
		JobID:     f.job.ID,
		Name:      name,
		Email:     email,
		CreatedAt: f.clock.Now(),
	}
	require.NoError(t, f.db.Candidates().Create(context.Background(), c))
	return c
}

// issue adds a candidate and issues its session.
func (f *fixture) issue(t *testing.T, name string) interview.Session {
	t.Helper()
	c := f.addCandidate(t, name, name+"@example.com")
	s, err := f.svc.Issuer.Issue(context.Background(), c.ID)
	require.NoError(t, err)
	return s
}

// started issues and starts a session.
func (f *fixture) started(t *testing.T, name string) interview.Session {
	t.Helper()
	s := f.issue(t, name)
	s, err := f.svc.Tracker.Start(context.Background(), s.ID)
	require.NoError(t, err)
	return s
}

func (f *fixture) answer(t *testing.T, id uuid.UUID, kind interview.Kind, idx int, payload string, elapsed time.Duration) interview.ResponseRecord {
	t.Helper()
	rec, err := f.svc.Collector.RecordAnswer(context.Background(), id, interview.AnswerInput{
		Kind:          kind,
		QuestionIndex: idx,
		Payload:       payload,
		Elapsed:       elapsed,
	})
	require.NoError(t, err)
	return rec
}
