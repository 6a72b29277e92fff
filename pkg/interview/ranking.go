package interview

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

// Ranker orders the completed candidates of a job. Ranks are computed on
// every call and never stored.
type Ranker struct {
	outcomes OutcomeRepository
	jobs     JobLookup
}

func NewRanker(outcomes OutcomeRepository, jobs JobLookup) *Ranker {
	return &Ranker{outcomes: outcomes, jobs: jobs}
}

func (r *Ranker) Rank(ctx context.Context, jobID uuid.UUID) ([]RankEntry, error) {
	if _, err := r.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	standings, err := r.outcomes.ListStandings(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return RankStandings(standings), nil
}

// RankStandings sorts by score descending; equal scores go to the earlier
// completion, then to the candidate id so the order is total.
func RankStandings(standings []Standing) []RankEntry {
	sorted := make([]Standing, len(standings))
	copy(sorted, standings)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.CompletedAt.Equal(b.CompletedAt) {
			return a.CompletedAt.Before(b.CompletedAt)
		}
		return a.CandidateID.String() < b.CandidateID.String()
	})
	out := make([]RankEntry, 0, len(sorted))
	for i, s := range sorted {
		out = append(out, RankEntry{
			Rank:        i + 1,
			CandidateID: s.CandidateID,
			Name:        s.Name,
			Email:       s.Email,
			Score:       s.Score,
			Cheating:    s.Cheating,
		})
	}
	return out
}
