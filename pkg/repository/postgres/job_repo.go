package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/screening/pkg/job"
)

// JobRepository хранит вакансии вместе с конфигурацией интервью.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

const jobColumns = `j.id, j.owner_id, j.title, j.description, j.required_skills, j.experience_level,
	j.oral_question_count, j.coding_question_count, j.thinking_minutes, j.recording_minutes,
	j.coding_minutes, j.created_at`

func (r *JobRepository) Create(ctx context.Context, j job.Job) error {
	skills := j.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO jobs (id, owner_id, title, description, required_skills, experience_level,
	oral_question_count, coding_question_count, thinking_minutes, recording_minutes,
	coding_minutes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`, j.ID, j.OwnerID, j.Title, j.Description, skills, string(j.ExperienceLevel),
		j.Interview.OralQuestionCount, j.Interview.CodingQuestionCount, j.Interview.ThinkingMinutes,
		j.Interview.RecordingMinutes, j.Interview.CodingMinutes, j.CreatedAt)
	return err
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1`, id)
	j, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return job.Job{}, job.ErrNotFound
	}
	return j, err
}

func (r *JobRepository) ListSummaries(ctx context.Context, limit, offset int) ([]job.Summary, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+jobColumns+`,
	(SELECT count(*) FROM candidates c WHERE c.job_id = j.id),
	(SELECT count(*) FROM interview_sessions s WHERE s.job_id = j.id AND s.status = 'COMPLETED')
FROM jobs j
ORDER BY j.created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []job.Summary{}
	for rows.Next() {
		var (
			s     job.Summary
			level string
		)
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Title, &s.Description, &s.RequiredSkills, &level,
			&s.Interview.OralQuestionCount, &s.Interview.CodingQuestionCount, &s.Interview.ThinkingMinutes,
			&s.Interview.RecordingMinutes, &s.Interview.CodingMinutes, &s.CreatedAt,
			&s.CandidatesCount, &s.CompletedInterviewsCount); err != nil {
			return nil, err
		}
		s.ExperienceLevel = job.ExperienceLevel(level)
		s.CreatedAt = s.CreatedAt.UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanJob(row pgx.Row) (job.Job, error) {
	var (
		j     job.Job
		level string
	)
	if err := row.Scan(&j.ID, &j.OwnerID, &j.Title, &j.Description, &j.RequiredSkills, &level,
		&j.Interview.OralQuestionCount, &j.Interview.CodingQuestionCount, &j.Interview.ThinkingMinutes,
		&j.Interview.RecordingMinutes, &j.Interview.CodingMinutes, &j.CreatedAt); err != nil {
		return job.Job{}, err
	}
	j.ExperienceLevel = job.ExperienceLevel(level)
	j.CreatedAt = j.CreatedAt.UTC()
	return j, nil
}
