package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/artem13815/screening/pkg/candidate"
)

type CandidateRepository struct{ db *DB }

func (r *CandidateRepository) Create(_ context.Context, c candidate.Candidate) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, id := range r.db.candOrder {
		ex := r.db.candidates[id]
		if ex.JobID == c.JobID && strings.EqualFold(ex.Email, c.Email) {
			return candidate.ErrDuplicateEmail
		}
	}
	r.db.candidates[c.ID] = c
	r.db.candOrder = append(r.db.candOrder, c.ID)
	return nil
}

func (r *CandidateRepository) GetByID(_ context.Context, id uuid.UUID) (candidate.Candidate, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.candidates[id]
	if !ok {
		return candidate.Candidate{}, candidate.ErrNotFound
	}
	return c, nil
}

// ListByJob returns candidates in upload order.
func (r *CandidateRepository) ListByJob(_ context.Context, jobID uuid.UUID) ([]candidate.Candidate, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []candidate.Candidate{}
	for _, id := range r.db.candOrder {
		if c := r.db.candidates[id]; c.JobID == jobID {
			out = append(out, c)
		}
	}
	return out, nil
}

// Delete also drops the candidate's session and its records, as the
// foreign keys do in postgres.
func (r *CandidateRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.candidates[id]; !ok {
		return candidate.ErrNotFound
	}
	delete(r.db.candidates, id)
	r.db.candOrder = slices.DeleteFunc(r.db.candOrder, func(x uuid.UUID) bool { return x == id })
	for sid, s := range r.db.sessions {
		if s.CandidateID == id {
			r.db.dropSession(sid)
		}
	}
	return nil
}
