package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/screening/pkg/interview"
)

type InterviewRepository struct{ db *DB }

func (r *InterviewRepository) Create(_ context.Context, s interview.Session) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, ex := range r.db.sessions {
		if ex.CandidateID == s.CandidateID {
			return interview.ErrDuplicateCandidate
		}
	}
	r.db.sessions[s.ID] = cloneSession(s)
	r.db.sessOrder = append(r.db.sessOrder, s.ID)
	return nil
}

func (r *InterviewRepository) GetByID(_ context.Context, id uuid.UUID) (interview.Session, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	s, ok := r.db.sessions[id]
	if !ok {
		return interview.Session{}, interview.ErrSessionNotFound
	}
	return cloneSession(s), nil
}

func (r *InterviewRepository) GetByToken(_ context.Context, token string) (interview.Session, error) {
	return r.find(func(s interview.Session) bool { return token != "" && s.Token == token })
}

func (r *InterviewRepository) GetByCandidate(_ context.Context, candidateID uuid.UUID) (interview.Session, error) {
	return r.find(func(s interview.Session) bool { return s.CandidateID == candidateID })
}

func (r *InterviewRepository) find(match func(interview.Session) bool) (interview.Session, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, id := range r.db.sessOrder {
		if s := r.db.sessions[id]; match(s) {
			return cloneSession(s), nil
		}
	}
	return interview.Session{}, interview.ErrSessionNotFound
}

func (r *InterviewRepository) ListByJob(_ context.Context, jobID uuid.UUID) ([]interview.Session, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []interview.Session{}
	for _, id := range r.db.sessOrder {
		if s := r.db.sessions[id]; s.JobID == jobID {
			out = append(out, cloneSession(s))
		}
	}
	return out, nil
}

func (r *InterviewRepository) Transition(_ context.Context, req interview.TransitionRequest) (interview.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.sessions[req.SessionID]
	if !ok {
		return interview.Session{}, interview.ErrSessionNotFound
	}
	if !slices.Contains(req.From, s.Status) {
		return cloneSession(s), interview.ErrStatusChanged
	}
	at := req.At
	s.Status = req.To
	switch req.To {
	case interview.StatusInProgress:
		s.StartedAt = &at
	case interview.StatusCompleted:
		s.CompletedAt = &at
	}
	if req.EndsAt != nil {
		endsAt := *req.EndsAt
		s.EndsAt = &endsAt
	}
	if len(req.Questions) > 0 {
		r.db.questions[s.ID] = cloneQuestions(req.Questions)
	}
	r.db.sessions[s.ID] = s
	return cloneSession(s), nil
}

func (r *InterviewRepository) ListQuestions(_ context.Context, sessionID uuid.UUID) ([]interview.Question, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return cloneQuestions(r.db.questions[sessionID]), nil
}

func cloneQuestions(qs []interview.Question) []interview.Question {
	out := make([]interview.Question, len(qs))
	for i, q := range qs {
		q.ExpectedSkills = slices.Clone(q.ExpectedSkills)
		out[i] = q
	}
	return out
}

func (r *InterviewRepository) ListExpirable(_ context.Context, now time.Time, limit int) ([]interview.Session, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []interview.Session{}
	for _, id := range r.db.sessOrder {
		s := r.db.sessions[id]
		due := false
		switch s.Status {
		case interview.StatusPending:
			due = !now.Before(s.ExpiresAt)
		case interview.StatusInProgress:
			due = s.EndsAt != nil && now.After(*s.EndsAt)
		}
		if due {
			out = append(out, cloneSession(s))
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *InterviewRepository) AppendResponse(_ context.Context, rec interview.ResponseRecord) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.sessions[rec.SessionID]
	if !ok {
		return interview.ErrSessionNotFound
	}
	if !accepting(s, rec.RecordedAt) {
		return interview.ErrSessionNotActive
	}
	key := responseKey{session: rec.SessionID, kind: rec.Kind, index: rec.QuestionIndex}
	if _, dup := r.db.answered[key]; dup {
		return interview.ErrDuplicateQuestionIndex
	}
	r.db.answered[key] = struct{}{}
	r.db.responses[rec.SessionID] = append(r.db.responses[rec.SessionID], rec)
	return nil
}

func (r *InterviewRepository) ListResponses(_ context.Context, sessionID uuid.UUID) ([]interview.ResponseRecord, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]interview.ResponseRecord, len(r.db.responses[sessionID]))
	copy(out, r.db.responses[sessionID])
	return out, nil
}

func (r *InterviewRepository) AppendSignal(_ context.Context, sig interview.Signal) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.sessions[sig.SessionID]
	if !ok {
		return interview.ErrSessionNotFound
	}
	if !accepting(s, sig.RecordedAt) {
		return interview.ErrSessionNotActive
	}
	r.db.signals[sig.SessionID] = append(r.db.signals[sig.SessionID], sig)
	return nil
}

func (r *InterviewRepository) ListSignals(_ context.Context, sessionID uuid.UUID) ([]interview.Signal, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]interview.Signal, len(r.db.signals[sessionID]))
	copy(out, r.db.signals[sessionID])
	return out, nil
}

func (r *InterviewRepository) SiblingHashes(_ context.Context, jobID, exclude uuid.UUID) (map[string]struct{}, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := map[string]struct{}{}
	for sid, rs := range r.db.responses {
		if sid == exclude || r.db.sessions[sid].JobID != jobID {
			continue
		}
		for _, rec := range rs {
			if rec.PayloadHash != "" {
				out[rec.PayloadHash] = struct{}{}
			}
		}
	}
	return out, nil
}

func (r *InterviewRepository) SaveOutcome(_ context.Context, o interview.Outcome) (interview.Outcome, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	id := o.Score.SessionID
	if _, ok := r.db.sessions[id]; !ok {
		return interview.Outcome{}, interview.ErrSessionNotFound
	}
	if stored, ok := r.db.outcomes[id]; ok {
		return cloneOutcome(stored), nil
	}
	r.db.outcomes[id] = cloneOutcome(o)
	return cloneOutcome(o), nil
}

func (r *InterviewRepository) GetOutcome(_ context.Context, sessionID uuid.UUID) (interview.Outcome, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	o, ok := r.db.outcomes[sessionID]
	if !ok {
		return interview.Outcome{}, interview.ErrOutcomeNotFound
	}
	return cloneOutcome(o), nil
}

func (r *InterviewRepository) ListStandings(_ context.Context, jobID uuid.UUID) ([]interview.Standing, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []interview.Standing{}
	for _, id := range r.db.sessOrder {
		s := r.db.sessions[id]
		if s.JobID != jobID || s.Status != interview.StatusCompleted || s.CompletedAt == nil {
			continue
		}
		o, ok := r.db.outcomes[id]
		if !ok {
			continue
		}
		c := r.db.candidates[s.CandidateID]
		out = append(out, interview.Standing{
			CandidateID: s.CandidateID,
			Name:        c.Name,
			Email:       c.Email,
			Score:       o.Score.Overall,
			Cheating:    o.Integrity.Cheating,
			CompletedAt: *s.CompletedAt,
		})
	}
	return out, nil
}

func (r *InterviewRepository) ListUnfinalized(_ context.Context, limit int) ([]interview.Session, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := []interview.Session{}
	for _, id := range r.db.sessOrder {
		s := r.db.sessions[id]
		if s.Status != interview.StatusCompleted {
			continue
		}
		if _, ok := r.db.outcomes[id]; ok {
			continue
		}
		out = append(out, cloneSession(s))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// accepting reports whether s takes a write recorded at.
func accepting(s interview.Session, at time.Time) bool {
	if s.Status != interview.StatusInProgress {
		return false
	}
	return s.EndsAt == nil || !at.After(*s.EndsAt)
}

func cloneSession(s interview.Session) interview.Session {
	s.StartedAt = cloneTime(s.StartedAt)
	s.CompletedAt = cloneTime(s.CompletedAt)
	s.EndsAt = cloneTime(s.EndsAt)
	return s
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneOutcome(o interview.Outcome) interview.Outcome {
	o.Integrity.Reasons = slices.Clone(o.Integrity.Reasons)
	if o.Integrity.Reasons == nil {
		o.Integrity.Reasons = []interview.ReasonCode{}
	}
	return o
}
