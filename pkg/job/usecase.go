package job

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/screening/pkg/apperr"
)

var ErrNotFound = apperr.NotFound("JOB_NOT_FOUND", "job not found")

// maxQuestions bounds each question count so a typo cannot create an interview
// nobody can finish.
const maxQuestions = 50

// UseCase инкапсулирует сценарии работы с вакансиями.
type UseCase interface {
	Create(ctx context.Context, in CreateInput) (Job, error)
	Get(ctx context.Context, id uuid.UUID) (Job, error)
	List(ctx context.Context, limit, offset int) ([]Summary, error)
}

// CreateInput is the recruiter form. Zero counts and times fall back to the
// defaults; RequiredSkills is the comma-separated form field.
type CreateInput struct {
	OwnerID         uuid.UUID
	Title           string
	Description     string
	RequiredSkills  string
	ExperienceLevel string
	Interview       InterviewConfig
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, in CreateInput) (Job, error) {
	fields := map[string]string{}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		fields["title"] = "title is required"
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		fields["description"] = "description is required"
	}
	level := ExperienceLevel(strings.TrimSpace(in.ExperienceLevel))
	if level == "" {
		level = LevelEntry
	}
	if !level.Valid() {
		fields["experience_level"] = "unknown experience level"
	}
	cfg := withDefaults(in.Interview)
	validateConfig(cfg, fields)
	if len(fields) > 0 {
		return Job{}, apperr.InvalidFields(fields)
	}

	j := Job{
		ID:              uuid.New(),
		OwnerID:         in.OwnerID,
		Title:           title,
		Description:     desc,
		RequiredSkills:  SplitSkills(in.RequiredSkills),
		ExperienceLevel: level,
		Interview:       cfg,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.repo.Create(ctx, j); err != nil {
		return Job{}, err
	}
	return j, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Summary, error) {
	return s.repo.ListSummaries(ctx, limit, offset)
}

// SplitSkills разбивает строку навыков по запятым, сохраняя порядок и убирая дубликаты.
func SplitSkills(raw string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, part := range strings.Split(raw, ",") {
		s := strings.TrimSpace(part)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

func withDefaults(c InterviewConfig) InterviewConfig {
	def := DefaultInterviewConfig()
	if c.OralQuestionCount == 0 && c.CodingQuestionCount == 0 {
		c.OralQuestionCount = def.OralQuestionCount
		c.CodingQuestionCount = def.CodingQuestionCount
	}
	if c.ThinkingMinutes == 0 {
		c.ThinkingMinutes = def.ThinkingMinutes
	}
	if c.RecordingMinutes == 0 {
		c.RecordingMinutes = def.RecordingMinutes
	}
	if c.CodingMinutes == 0 {
		c.CodingMinutes = def.CodingMinutes
	}
	return c
}

func validateConfig(c InterviewConfig, fields map[string]string) {
	if c.OralQuestionCount < 0 || c.OralQuestionCount > maxQuestions {
		fields["oral_question_count"] = "must be between 0 and 50"
	}
	if c.CodingQuestionCount < 0 || c.CodingQuestionCount > maxQuestions {
		fields["coding_question_count"] = "must be between 0 and 50"
	}
	if c.ThinkingMinutes < 0 {
		fields["thinking_time"] = "must not be negative"
	}
	if c.RecordingMinutes < 0 {
		fields["recording_time"] = "must not be negative"
	}
	if c.CodingMinutes < 0 {
		fields["coding_time"] = "must not be negative"
	}
}
