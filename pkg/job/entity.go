package job

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "Entry Level"
	LevelMid    ExperienceLevel = "Mid Level"
	LevelSenior ExperienceLevel = "Senior Level"
	LevelLead   ExperienceLevel = "Lead / Manager"
)

func (l ExperienceLevel) Valid() bool {
	switch l {
	case LevelEntry, LevelMid, LevelSenior, LevelLead:
		return true
	}
	return false
}

// InterviewConfig: параметры интервью вакансии. Время в минутах.
type InterviewConfig struct {
	OralQuestionCount   int `json:"oral_question_count"`
	CodingQuestionCount int `json:"coding_question_count"`
	ThinkingMinutes     int `json:"thinking_time"`
	RecordingMinutes    int `json:"recording_time"`
	CodingMinutes       int `json:"coding_time"`
}

// DefaultInterviewConfig mirrors the recruiter form defaults.
func DefaultInterviewConfig() InterviewConfig {
	return InterviewConfig{
		OralQuestionCount:   5,
		CodingQuestionCount: 2,
		ThinkingMinutes:     1,
		RecordingMinutes:    3,
		CodingMinutes:       60,
	}
}

// TimeBudget is the total time a candidate has once the interview is started:
// thinking and recording windows per oral question plus the coding window per
// coding question.
func (c InterviewConfig) TimeBudget() time.Duration {
	oral := c.OralQuestionCount * (c.ThinkingMinutes + c.RecordingMinutes)
	coding := c.CodingQuestionCount * c.CodingMinutes
	return time.Duration(oral+coding) * time.Minute
}

// Job: вакансия с конфигурацией интервью.
type Job struct {
	ID              uuid.UUID       `json:"id"`
	OwnerID         uuid.UUID       `json:"owner_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	RequiredSkills  []string        `json:"required_skills"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Interview       InterviewConfig `json:"interview"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Summary is a job annotated with derived counters for the dashboard.
type Summary struct {
	Job
	CandidatesCount          int `json:"candidates_count"`
	CompletedInterviewsCount int `json:"completed_interviews_count"`
}

// Repository: порт для работы с вакансиями.
type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	ListSummaries(ctx context.Context, limit, offset int) ([]Summary, error)
}
