package interview

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/screening/pkg/job"
)

// Question is one question of a session, fixed when the session starts.
type Question struct {
	Kind             Kind     `json:"kind"`
	Index            int      `json:"index"`
	Text             string   `json:"text"`
	ExpectedSkills   []string `json:"expected_skills"`
	TimeLimitSeconds int      `json:"time_limit_seconds"`
	// Source is where the text came from: "llm", "template", "bank" or "builtin".
	Source string `json:"source,omitempty"`
}

const SourceBuiltin = "builtin"

// PlanRequest is everything a planner may draft questions from.
type PlanRequest struct {
	SessionID       uuid.UUID
	Config          job.InterviewConfig
	JobTitle        string
	JobDescription  string
	Skills          []string
	ExperienceLevel job.ExperienceLevel
	CandidateName   string
	ResumeText      string
}

// QuestionPlanner drafts the questions of a session. It may return fewer or
// more questions than configured; the Questioner fits them to the config.
type QuestionPlanner interface {
	Plan(ctx context.Context, req PlanRequest) ([]Question, error)
}

// Questioner fixes the question set of a session.
type Questioner struct {
	planner    QuestionPlanner
	jobs       JobLookup
	candidates CandidateLookup
	log        *zap.Logger
}

func NewQuestioner(planner QuestionPlanner, jobs JobLookup, candidates CandidateLookup, log *zap.Logger) *Questioner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Questioner{planner: planner, jobs: jobs, candidates: candidates, log: log}
}

// Prepare never fails: without a planner, or when it errors, the built-in
// questions fill the set. The result holds exactly the configured number of
// questions of each kind, oral first.
func (q *Questioner) Prepare(ctx context.Context, s Session) []Question {
	req := PlanRequest{SessionID: s.ID, Config: s.Config}
	if q.jobs != nil {
		if j, err := q.jobs.GetByID(ctx, s.JobID); err == nil {
			req.JobTitle = j.Title
			req.JobDescription = j.Description
			req.Skills = j.RequiredSkills
			req.ExperienceLevel = j.ExperienceLevel
		}
	}
	if q.candidates != nil {
		if c, err := q.candidates.GetByID(ctx, s.CandidateID); err == nil {
			req.CandidateName = c.Name
			req.ResumeText = c.ResumeText
		}
	}

	var planned []Question
	if q.planner != nil {
		var err error
		planned, err = q.planner.Plan(ctx, req)
		if err != nil {
			q.log.Warn("plan questions", zap.String("session_id", s.ID.String()), zap.Error(err))
			planned = nil
		}
	}
	return fitQuestions(req, planned)
}

// fitQuestions keeps the first planned questions of each kind in order, pads
// with built-in ones and sets indexes and time limits.
func fitQuestions(req PlanRequest, planned []Question) []Question {
	out := make([]Question, 0, req.Config.OralQuestionCount+req.Config.CodingQuestionCount)
	for _, k := range []Kind{KindOral, KindCoding} {
		want, limit := req.Config.OralQuestionCount, (req.Config.ThinkingMinutes+req.Config.RecordingMinutes)*60
		if k == KindCoding {
			want, limit = req.Config.CodingQuestionCount, req.Config.CodingMinutes*60
		}
		n := 0
		for _, p := range planned {
			if n == want {
				break
			}
			if p.Kind != k || p.Text == "" {
				continue
			}
			p.Index = n
			p.TimeLimitSeconds = limit
			p.ExpectedSkills = slices.Clone(p.ExpectedSkills)
			if p.ExpectedSkills == nil {
				p.ExpectedSkills = []string{}
			}
			out = append(out, p)
			n++
		}
		for ; n < want; n++ {
			out = append(out, Question{
				Kind:             k,
				Index:            n,
				Text:             builtinQuestion(k, n, req.JobTitle),
				ExpectedSkills:   []string{},
				TimeLimitSeconds: limit,
				Source:           SourceBuiltin,
			})
		}
	}
	return out
}

var builtinOral = []string{
	"Tell us about a project where you worked as a %s. What was your part in it?",
	"Describe the hardest problem you solved recently in your %s work and how you approached it.",
	"How would you explain a technical decision you made to a colleague who is not a %s?",
	"What did you learn in the last year that made you a better %s?",
}

func builtinQuestion(k Kind, i int, title string) string {
	if title == "" {
		title = "specialist"
	}
	if k == KindCoding {
		return fmt.Sprintf("Task %d: write a small function from your everyday work as a %s, then state its time and memory complexity.", i+1, title)
	}
	return fmt.Sprintf(builtinOral[i%len(builtinOral)], title)
}

// QuestionAt returns the question of kind k at index i from qs.
func QuestionAt(qs []Question, k Kind, i int) (Question, bool) {
	for _, q := range qs {
		if q.Kind == k && q.Index == i {
			return q, true
		}
	}
	return Question{}, false
}
