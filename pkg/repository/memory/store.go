// Package memory is an in-process implementation of every repository port.
// One mutex guards all tables, which gives the same atomicity as the
// postgres transactions.
package memory

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/artem13815/screening/pkg/auth"
	"github.com/artem13815/screening/pkg/candidate"
	"github.com/artem13815/screening/pkg/interview"
	"github.com/artem13815/screening/pkg/job"
)

type responseKey struct {
	session uuid.UUID
	kind    interview.Kind
	index   int
}

type DB struct {
	mu sync.RWMutex

	users      []auth.User
	jobs       map[uuid.UUID]job.Job
	jobOrder   []uuid.UUID
	candidates map[uuid.UUID]candidate.Candidate
	candOrder  []uuid.UUID
	sessions   map[uuid.UUID]interview.Session
	sessOrder  []uuid.UUID
	responses  map[uuid.UUID][]interview.ResponseRecord
	answered   map[responseKey]struct{}
	signals    map[uuid.UUID][]interview.Signal
	outcomes   map[uuid.UUID]interview.Outcome
	questions  map[uuid.UUID][]interview.Question
}

func New() *DB {
	return &DB{
		jobs:       map[uuid.UUID]job.Job{},
		candidates: map[uuid.UUID]candidate.Candidate{},
		sessions:   map[uuid.UUID]interview.Session{},
		responses:  map[uuid.UUID][]interview.ResponseRecord{},
		answered:   map[responseKey]struct{}{},
		signals:    map[uuid.UUID][]interview.Signal{},
		outcomes:   map[uuid.UUID]interview.Outcome{},
		questions:  map[uuid.UUID][]interview.Question{},
	}
}

// dropSession removes a session with everything recorded for it. Caller holds mu.
func (db *DB) dropSession(id uuid.UUID) {
	delete(db.sessions, id)
	db.sessOrder = slices.DeleteFunc(db.sessOrder, func(x uuid.UUID) bool { return x == id })
	delete(db.responses, id)
	delete(db.signals, id)
	delete(db.outcomes, id)
	delete(db.questions, id)
	for k := range db.answered {
		if k.session == id {
			delete(db.answered, k)
		}
	}
}

func (db *DB) Users() *UserRepository           { return &UserRepository{db: db} }
func (db *DB) Jobs() *JobRepository             { return &JobRepository{db: db} }
func (db *DB) Candidates() *CandidateRepository { return &CandidateRepository{db: db} }
func (db *DB) Interviews() *InterviewRepository { return &InterviewRepository{db: db} }

var (
	_ auth.UserRepository  = (*UserRepository)(nil)
	_ job.Repository       = (*JobRepository)(nil)
	_ candidate.Repository = (*CandidateRepository)(nil)
	_ interview.Store      = (*InterviewRepository)(nil)
)
