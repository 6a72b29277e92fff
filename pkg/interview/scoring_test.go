package interview_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/screening/pkg/interview"
	"github.com/artem13815/screening/pkg/job"
)

func TestRoundHalfUp(t *testing.T) {
	cases := map[float64]float64{
		72.25:  72.3,
		72.24:  72.2,
		0.05:   0.1,
		0.04:   0,
		99.95:  100,
		100:    100,
		33.333: 33.3,
	}
	for in, want := range cases {
		assert.Equal(t, want, interview.RoundHalfUp(in), "round %v", in)
	}
}

func TestCompute(t *testing.T) {
	engine := interview.NewScoringEngine(nil, nil, interview.Settings{}, nil)
	rec := func(k interview.Kind, idx int, score float64) interview.ResponseRecord {
		return interview.ResponseRecord{Kind: k, QuestionIndex: idx, SubScore: score}
	}

	cases := []struct {
		name    string
		config  job.InterviewConfig
		answers []interview.ResponseRecord
		overall float64
		oral    float64
		coding  float64
	}{
		{
			name:    "missing answers count as zero",
			config:  job.InterviewConfig{OralQuestionCount: 2, CodingQuestionCount: 1},
			answers: []interview.ResponseRecord{rec(interview.KindOral, 0, 80), rec(interview.KindCoding, 0, 90)},
			overall: 65, oral: 40, coding: 90,
		},
		{
			name:    "oral only job",
			config:  job.InterviewConfig{OralQuestionCount: 3},
			answers: []interview.ResponseRecord{rec(interview.KindOral, 0, 70), rec(interview.KindOral, 1, 80), rec(interview.KindOral, 2, 95)},
			overall: 81.7, oral: 81.7,
		},
		{
			name:   "nothing answered",
			config: job.InterviewConfig{OralQuestionCount: 1, CodingQuestionCount: 1},
		},
		{
			name:   "out of range and duplicate answers ignored",
			config: job.InterviewConfig{OralQuestionCount: 1, CodingQuestionCount: 1},
			answers: []interview.ResponseRecord{
				rec(interview.KindOral, 0, 50),
				rec(interview.KindOral, 0, 100),
				rec(interview.KindOral, 5, 100),
				rec(interview.KindCoding, 0, 50),
			},
			overall: 50, oral: 50, coding: 50,
		},
		{
			name:   "uniform sub-scores",
			config: job.InterviewConfig{OralQuestionCount: 2, CodingQuestionCount: 1},
			answers: []interview.ResponseRecord{
				rec(interview.KindOral, 0, 80),
				rec(interview.KindOral, 1, 80),
				rec(interview.KindCoding, 0, 80),
			},
			overall: 80, oral: 80, coding: 80,
		},
		{
			name:    "perfect oral, coding unanswered",
			config:  job.InterviewConfig{OralQuestionCount: 2, CodingQuestionCount: 1},
			answers: []interview.ResponseRecord{rec(interview.KindOral, 0, 100), rec(interview.KindOral, 1, 100)},
			overall: 50, oral: 100,
		},
		{
			name:    "half up",
			config:  job.InterviewConfig{OralQuestionCount: 1, CodingQuestionCount: 1},
			answers: []interview.ResponseRecord{rec(interview.KindOral, 0, 72.5), rec(interview.KindCoding, 0, 72)},
			overall: 72.3, oral: 72.5, coding: 72,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := interview.Session{ID: uuid.New(), Config: tc.config}
			got := engine.Compute(s, tc.answers)
			assert.Equal(t, s.ID, got.SessionID)
			assert.Equal(t, tc.overall, got.Overall)
			assert.Equal(t, tc.oral, got.OralAverage)
			assert.Equal(t, tc.coding, got.CodingAverage)
		})
	}
}

func TestFinalizeStoresOutcomeOnce(t *testing.T) {
	f := newFixture(t, options{})
	s := f.started(t, "ann")
	f.answer(t, s.ID, interview.KindOral, 0, "first oral answer", 2*time.Minute)
	f.answer(t, s.ID, interview.KindOral, 1, "second oral answer", 2*time.Minute)
	f.answer(t, s.ID, interview.KindCoding, 0, "func add(a, b int) int { return a + b }", 5*time.Minute)

	_, out, err := f.svc.Tracker.Complete(context.Background(), s.ID)
	require.NoError(t, err)
	// oral 80, coding 60
	assert.Equal(t, 70.0, out.Score.Overall)
	assert.False(t, out.Integrity.Cheating)
	assert.Empty(t, out.Integrity.Reasons)

	f.clock.Advance(time.Hour)
	again, err := f.svc.Engine.Finalize(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestFinalizeRequiresCompletedSession(t *testing.T) {
	f := newFixture(t, options{})
	s := f.started(t, "ann")

	_, err := f.svc.Engine.Finalize(context.Background(), s.ID)
	assert.ErrorIs(t, err, interview.ErrInvalidTransition)
}
