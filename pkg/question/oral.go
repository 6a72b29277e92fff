package question

import (
	"context"
	"fmt"
	"strings"

	"github.com/artem13815/screening/pkg/interview"
	"github.com/artem13815/screening/pkg/llm"
	"github.com/artem13815/screening/pkg/nlp"
)

const (
	SourceModel    = "llm"
	SourceTemplate = "template"
	SourceBank     = "bank"

	maxPromptResume = 4000
)

type draft struct {
	Questions []struct {
		Question       string   `json:"question"`
		ExpectedSkills []string `json:"expected_skills"`
	} `json:"questions"`
}

// askModel asks the chat model for n oral questions. It returns what the
// model produced, possibly fewer than n.
func askModel(ctx context.Context, model llm.ChatModel, req interview.PlanRequest, n int) ([]interview.Question, error) {
	resume := strings.TrimSpace(req.ResumeText)
	if len(resume) > maxPromptResume {
		resume = resume[:maxPromptResume]
	}
	if resume == "" {
		resume = "(no resume provided)"
	}
	system := "You write oral screening interview questions. Questions are open-ended: they check the experience the resume claims, " +
		"test technical depth in the required skills and include a practical scenario. " +
		"Reply with JSON only: {\"questions\": [{\"question\": \"...\", \"expected_skills\": [\"...\"]}]}."
	user := fmt.Sprintf(
		"Position: %s\nLevel: %s\nDescription: %s\nRequired skills: %s\nNumber of questions: %d\n\nResume:\n<<<\n%s\n>>>\n",
		req.JobTitle,
		req.ExperienceLevel,
		req.JobDescription,
		strings.Join(req.Skills, ", "),
		n,
		resume,
	)
	raw, err := model.Ask(ctx, system, user)
	if err != nil {
		return nil, err
	}
	var d draft
	if err := llm.DecodeJSON(raw, &d); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}
	out := make([]interview.Question, 0, n)
	for _, q := range d.Questions {
		text := strings.TrimSpace(q.Question)
		if text == "" {
			continue
		}
		out = append(out, interview.Question{
			Kind:           interview.KindOral,
			Index:          len(out),
			Text:           text,
			ExpectedSkills: q.ExpectedSkills,
			Source:         SourceModel,
		})
		if len(out) == n {
			break
		}
	}
	return out, nil
}

var oralTemplates = []string{
	"Walk us through a project where you used %s. What did you build and what was your part in it?",
	"Describe a hard problem you ran into while working with %s and how you solved it.",
	"How would you design a system built on %s that has to handle ten times its current load?",
	"When a task needed %s and you did not know it well, how did you get up to speed?",
	"Tell us about a time you made something built with %s faster. How did you find the bottleneck?",
}

// templates builds oral questions around the job skills the resume
// mentions, or the required skills when it mentions none.
func templates(req interview.PlanRequest, from, n int) []interview.Question {
	skills, _ := nlp.MatchSkills(req.ResumeText, req.Skills)
	if len(skills) == 0 {
		skills = req.Skills
	}
	title := req.JobTitle
	if title == "" {
		title = "this"
	}
	out := make([]interview.Question, 0, n)
	for i := from; i < from+n; i++ {
		q := interview.Question{Kind: interview.KindOral, Index: i, Source: SourceTemplate, ExpectedSkills: []string{}}
		switch {
		case i < len(oralTemplates) && len(skills) > 0:
			skill := skills[i%len(skills)]
			q.Text = fmt.Sprintf(oralTemplates[i], skill)
			q.ExpectedSkills = []string{skill}
		default:
			q.Text = fmt.Sprintf("Why is the %s role the right next step for you, and what would you change in your first months?", title)
		}
		out = append(out, q)
	}
	return out
}
