package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/artem13815/screening/pkg/interview"
	"github.com/artem13815/screening/pkg/job"
)

type JobRepository struct{ db *DB }

func (r *JobRepository) Create(_ context.Context, j job.Job) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	j.RequiredSkills = slices.Clone(j.RequiredSkills)
	r.db.jobs[j.ID] = j
	r.db.jobOrder = append(r.db.jobOrder, j.ID)
	return nil
}

func (r *JobRepository) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	j, ok := r.db.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	j.RequiredSkills = slices.Clone(j.RequiredSkills)
	return j, nil
}

// ListSummaries returns the newest jobs first.
func (r *JobRepository) ListSummaries(_ context.Context, limit, offset int) ([]job.Summary, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []job.Summary{}
	for i := len(r.db.jobOrder) - 1; i >= 0; i-- {
		j := r.db.jobs[r.db.jobOrder[i]]
		j.RequiredSkills = slices.Clone(j.RequiredSkills)
		sum := job.Summary{Job: j}
		for _, c := range r.db.candidates {
			if c.JobID == j.ID {
				sum.CandidatesCount++
			}
		}
		for _, s := range r.db.sessions {
			if s.JobID == j.ID && s.Status == interview.StatusCompleted {
				sum.CompletedInterviewsCount++
			}
		}
		out = append(out, sum)
	}
	return page(out, limit, offset), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
