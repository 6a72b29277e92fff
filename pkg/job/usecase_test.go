package job_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/screening/pkg/apperr"
	"github.com/artem13815/screening/pkg/job"
	"github.com/artem13815/screening/pkg/repository/memory"
)

func TestCreateAppliesDefaults(t *testing.T) {
	uc := job.NewService(memory.New().Jobs())

	j, err := uc.Create(context.Background(), job.CreateInput{
		Title:          " Backend Engineer ",
		Description:    "Go services",
		RequiredSkills: "Go, PostgreSQL, go, , Kafka",
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", j.Title)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Kafka"}, j.RequiredSkills)
	assert.Equal(t, job.LevelEntry, j.ExperienceLevel)
	assert.Equal(t, job.DefaultInterviewConfig(), j.Interview)

	got, err := uc.Get(context.Background(), j.ID)
	require.NoError(t, err)
	assert.Equal(t, j.ID, got.ID)
}

func TestCreateKeepsExplicitZeroKind(t *testing.T) {
	uc := job.NewService(memory.New().Jobs())

	j, err := uc.Create(context.Background(), job.CreateInput{
		Title:       "Analyst",
		Description: "SQL",
		Interview:   job.InterviewConfig{OralQuestionCount: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, j.Interview.OralQuestionCount)
	assert.Zero(t, j.Interview.CodingQuestionCount)
}

func TestCreateValidation(t *testing.T) {
	uc := job.NewService(memory.New().Jobs())

	_, err := uc.Create(context.Background(), job.CreateInput{
		ExperienceLevel: "Wizard",
		Interview:       job.InterviewConfig{OralQuestionCount: 51, CodingMinutes: -1},
	})
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	for _, f := range []string{"title", "description", "experience_level", "oral_question_count", "coding_time"} {
		assert.Contains(t, e.Fields, f)
	}
}

func TestGetUnknown(t *testing.T) {
	uc := job.NewService(memory.New().Jobs())
	_, err := uc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func TestTimeBudget(t *testing.T) {
	cfg := job.InterviewConfig{OralQuestionCount: 5, CodingQuestionCount: 2, ThinkingMinutes: 1, RecordingMinutes: 3, CodingMinutes: 60}
	assert.Equal(t, 140, int(cfg.TimeBudget().Minutes()))
}
