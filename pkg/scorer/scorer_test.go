package scorer

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/screening/pkg/apperr"
	"github.com/artem13815/screening/pkg/interview"
	"github.com/artem13815/screening/pkg/llm"
)

type flakyScorer struct {
	calls    atomic.Int32
	failures int32
	err      error
	score    float64
}

func (s *flakyScorer) Score(context.Context, interview.ScoreRequest) (float64, error) {
	if s.calls.Add(1) <= s.failures {
		return 0, s.err
	}
	return s.score, nil
}

type chatFunc func(ctx context.Context, system, user string) (string, error)

func (f chatFunc) Ask(ctx context.Context, system, user string) (string, error) {
	return f(ctx, system, user)
}

func fastPolicy(attempts int) RetryPolicy {
	return RetryPolicy{
		Attempts:       attempts,
		AttemptTimeout: time.Second,
		BaseDelay:      time.Millisecond,
		MaxDelay:       2 * time.Millisecond,
	}
}

func TestRetryingRecoversFromTransientErrors(t *testing.T) {
	next := &flakyScorer{failures: 2, err: llm.ErrUnavailable, score: 77}
	r := NewRetrying(next, fastPolicy(3), nil)

	v, err := r.Score(context.Background(), interview.ScoreRequest{})
	require.NoError(t, err)
	assert.Equal(t, 77.0, v)
	assert.Equal(t, int32(3), next.calls.Load())
}

func TestRetryingGivesUp(t *testing.T) {
	next := &flakyScorer{failures: 10, err: interview.ErrScorerUnavailable}
	r := NewRetrying(next, fastPolicy(3), nil)

	_, err := r.Score(context.Background(), interview.ScoreRequest{})
	require.ErrorIs(t, err, interview.ErrScorerUnavailable)
	assert.Equal(t, int32(3), next.calls.Load())
}

func TestRetryingStopsOnPermanentError(t *testing.T) {
	next := &flakyScorer{failures: 10, err: errors.New("parse grade: score missing")}
	r := NewRetrying(next, fastPolicy(5), nil)

	_, err := r.Score(context.Background(), interview.ScoreRequest{})
	require.Error(t, err)
	assert.Equal(t, int32(1), next.calls.Load())
}

func TestTransient(t *testing.T) {
	assert.False(t, Transient(nil))
	assert.True(t, Transient(llm.ErrUnavailable))
	assert.True(t, Transient(context.DeadlineExceeded))
	assert.True(t, Transient(apperr.Transient("X", "busy")))
	assert.False(t, Transient(apperr.Validation("X", "bad")))
	assert.False(t, Transient(context.Canceled))
}

func TestFallback(t *testing.T) {
	req := interview.ScoreRequest{Payload: "answer"}

	ok := NewFallback(&flakyScorer{score: 90}, &flakyScorer{score: 10}, nil)
	v, err := ok.Score(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 90.0, v)

	broken := NewFallback(&flakyScorer{failures: 1, err: errors.New("boom")}, &flakyScorer{score: 10}, nil)
	v, err = broken.Score(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)

	none := NewFallback(nil, &flakyScorer{score: 42}, nil)
	v, err = none.Score(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
}

func TestLLMScore(t *testing.T) {
	var prompt string
	model := chatFunc(func(_ context.Context, _, user string) (string, error) {
		prompt = user
		return "Sure! ```json\n{\"score\": 83}\n```", nil
	})
	s := NewLLM(model)

	v, err := s.Score(context.Background(), interview.ScoreRequest{
		Kind:     interview.KindOral,
		Payload:  "I would shard the table by tenant",
		JobTitle: "Backend Engineer",
		Skills:   []string{"go", "postgresql"},
		Question: "How would you scale a hot table?",
	})
	require.NoError(t, err)
	assert.Equal(t, 83.0, v)
	assert.Contains(t, prompt, "Backend Engineer")
	assert.Contains(t, prompt, "go, postgresql")
	assert.Contains(t, prompt, "shard the table")
	assert.Contains(t, prompt, "How would you scale a hot table?")
}

func TestKeywordPrefersQuestionSkills(t *testing.T) {
	k := NewKeyword()
	req := interview.ScoreRequest{
		Kind:    interview.KindOral,
		Payload: "I tuned postgresql indexes",
		Skills:  []string{"go", "kafka"},
	}
	generic, err := k.Score(context.Background(), req)
	require.NoError(t, err)

	req.ExpectedSkills = []string{"postgresql"}
	targeted, err := k.Score(context.Background(), req)
	require.NoError(t, err)
	assert.Greater(t, targeted, generic)
}

func TestLLMScoreEdgeCases(t *testing.T) {
	reply := func(s string) *LLM {
		return NewLLM(chatFunc(func(context.Context, string, string) (string, error) { return s, nil }))
	}
	req := interview.ScoreRequest{Payload: "some answer"}

	v, err := reply(`{"score": 140}`).Score(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)

	_, err = reply(`{"grade": 50}`).Score(context.Background(), req)
	assert.Error(t, err)

	_, err = reply("no idea").Score(context.Background(), req)
	assert.Error(t, err)

	v, err = reply(`{"score": 50}`).Score(context.Background(), interview.ScoreRequest{Payload: "   "})
	require.NoError(t, err)
	assert.Zero(t, v)

	_, err = NewLLM(nil).Score(context.Background(), req)
	assert.ErrorIs(t, err, llm.ErrUnavailable)
}

func TestKeyword(t *testing.T) {
	k := NewKeyword()
	skills := []string{"Go", "PostgreSQL", "Kubernetes", "Kafka"}

	v, err := k.Score(context.Background(), interview.ScoreRequest{Payload: "", Skills: skills})
	require.NoError(t, err)
	assert.Zero(t, v)

	// 2 of 4 skills via aliases, 8 words of 80
	v, err = k.Score(context.Background(), interview.ScoreRequest{
		Payload: "I deployed golang services on k8s last year",
		Skills:  skills,
	})
	require.NoError(t, err)
	assert.Equal(t, 38.0, v)

	long := strings.Repeat("word ", 200)
	v, err = k.Score(context.Background(), interview.ScoreRequest{Payload: long})
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)
}

func TestCode(t *testing.T) {
	c := NewCode()
	src := `func sum(xs []int) int {
	// total
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}`
	v, err := c.Score(context.Background(), interview.ScoreRequest{Payload: src})
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)

	v, err = c.Score(context.Background(), interview.ScoreRequest{Payload: "print(1"})
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	v, err = c.Score(context.Background(), interview.ScoreRequest{Payload: "  \n "})
	require.NoError(t, err)
	assert.Zero(t, v)
}
