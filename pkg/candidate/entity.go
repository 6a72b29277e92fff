package candidate

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Candidate: кандидат, загруженный рекрутером на вакансию.
type Candidate struct {
	ID         uuid.UUID `json:"id"`
	JobID      uuid.UUID `json:"job_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	ResumeURL  string    `json:"resume_url,omitempty"`
	ResumeFile string    `json:"resume_file,omitempty"`
	ResumeText string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// Invitation is the result of issuing an interview session for a candidate.
type Invitation struct {
	Token     string    `json:"token"`
	Link      string    `json:"link"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Repository: порт хранения кандидатов. Create returns ErrDuplicateEmail when
// the (job, email) pair is taken.
type Repository interface {
	Create(ctx context.Context, c Candidate) error
	GetByID(ctx context.Context, id uuid.UUID) (Candidate, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]Candidate, error)
	// Delete removes the candidate together with anything issued for it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Inviter issues the interview session for a freshly created candidate.
type Inviter interface {
	Invite(ctx context.Context, c Candidate) (Invitation, error)
}
