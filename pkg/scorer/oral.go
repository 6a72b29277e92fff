package scorer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/artem13815/screening/pkg/interview"
	"github.com/artem13815/screening/pkg/llm"
)

const maxPromptAnswer = 8000

// LLM grades oral answers (transcripts) with a chat model.
type LLM struct {
	model llm.ChatModel
}

func NewLLM(model llm.ChatModel) *LLM {
	return &LLM{model: model}
}

type llmGrade struct {
	Score *float64 `json:"score"`
}

func (s *LLM) Score(ctx context.Context, req interview.ScoreRequest) (float64, error) {
	if s.model == nil {
		return 0, fmt.Errorf("%w: no model configured", llm.ErrUnavailable)
	}
	answer := strings.TrimSpace(req.Payload)
	if answer == "" {
		return 0, nil
	}
	if len(answer) > maxPromptAnswer {
		answer = answer[:maxPromptAnswer]
	}
	system := "You grade screening interview answers. Reply with JSON only: {\"score\": <integer 0-100>}."
	question := req.Question
	if question == "" {
		question = fmt.Sprintf("%s question %d", req.Kind, req.QuestionIndex+1)
	}
	user := fmt.Sprintf(
		"Position: %s\nDescription: %s\nRequired skills: %s\nQuestion: %s\nSkills the question checks: %s\n\nCandidate answer:\n<<<\n%s\n>>>\n",
		req.JobTitle,
		req.JobDescription,
		strings.Join(req.Skills, ", "),
		question,
		strings.Join(req.ExpectedSkills, ", "),
		answer,
	)
	raw, err := s.model.Ask(ctx, system, user)
	if err != nil {
		return 0, err
	}
	var g llmGrade
	if err := llm.DecodeJSON(raw, &g); err != nil {
		return 0, fmt.Errorf("parse grade: %w", err)
	}
	if g.Score == nil {
		return 0, errors.New("parse grade: score missing")
	}
	return clamp(*g.Score), nil
}

func clamp(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 100:
		return 100
	}
	return v
}
