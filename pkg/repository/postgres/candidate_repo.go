package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/screening/pkg/candidate"
)

type CandidateRepository struct {
	pool *pgxpool.Pool
}

func NewCandidateRepository(pool *pgxpool.Pool) *CandidateRepository {
	return &CandidateRepository{pool: pool}
}

const candidateColumns = `id, job_id, name, email, resume_url, resume_file, resume_text, created_at`

func (r *CandidateRepository) Create(ctx context.Context, c candidate.Candidate) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO candidates (`+candidateColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, c.ID, c.JobID, c.Name, c.Email, c.ResumeURL, c.ResumeFile, c.ResumeText, c.CreatedAt)
	if isUniqueViolation(err) {
		return candidate.ErrDuplicateEmail
	}
	return err
}

func (r *CandidateRepository) GetByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
	c, err := scanCandidate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return candidate.Candidate{}, candidate.ErrNotFound
	}
	return c, err
}

func (r *CandidateRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]candidate.Candidate, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+candidateColumns+` FROM candidates WHERE job_id = $1 ORDER BY created_at, id
`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []candidate.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete cascades to the candidate's interview session.
func (r *CandidateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return candidate.ErrNotFound
	}
	return nil
}

func scanCandidate(row pgx.Row) (candidate.Candidate, error) {
	var c candidate.Candidate
	err := row.Scan(&c.ID, &c.JobID, &c.Name, &c.Email, &c.ResumeURL, &c.ResumeFile, &c.ResumeText, &c.CreatedAt)
	c.CreatedAt = c.CreatedAt.UTC()
	return c, err
}
