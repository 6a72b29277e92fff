package question

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/artem13815/screening/pkg/interview"
	"github.com/artem13815/screening/pkg/llm"
)

const defaultModelTimeout = 30 * time.Second

// Planner implements interview.QuestionPlanner.
type Planner struct {
	model        llm.ChatModel
	bank         *Bank
	modelTimeout time.Duration
	log          *zap.Logger
}

// NewPlanner builds a planner. A nil model drafts oral questions from
// templates only; a nil bank uses DefaultBank.
func NewPlanner(model llm.ChatModel, bank *Bank, log *zap.Logger) *Planner {
	if bank == nil {
		bank = DefaultBank()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{model: model, bank: bank, modelTimeout: defaultModelTimeout, log: log}
}

// Plan never fails on a model error: the missing oral questions come from
// templates instead.
func (p *Planner) Plan(ctx context.Context, req interview.PlanRequest) ([]interview.Question, error) {
	n := req.Config.OralQuestionCount
	out := make([]interview.Question, 0, n+req.Config.CodingQuestionCount)
	if p.model != nil && n > 0 {
		mctx, cancel := context.WithTimeout(ctx, p.modelTimeout)
		drafted, err := askModel(mctx, p.model, req, n)
		cancel()
		if err != nil {
			p.log.Warn("draft oral questions, using templates",
				zap.String("session_id", req.SessionID.String()),
				zap.Error(err),
			)
		}
		out = append(out, drafted...)
	}
	if len(out) < n {
		out = append(out, templates(req, len(out), n-len(out))...)
	}
	out = append(out, p.bank.Pick(req.SessionID, req.JobTitle, req.Skills, req.Config.CodingQuestionCount)...)
	return out, nil
}

var _ interview.QuestionPlanner = (*Planner)(nil)
