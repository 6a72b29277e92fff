package interview

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/screening/pkg/candidate"
)

type Deps struct {
	Store        Store
	Jobs         JobLookup
	Candidates   CandidateLookup
	OralScorer   Scorer
	CodingScorer Scorer
	// Planner drafts questions; nil leaves only the built-in ones.
	Planner  QuestionPlanner
	Rules    []Rule
	Notifier Notifier
	Locker   Locker
	Settings Settings
	Log      *zap.Logger
}

// Service is the entry point of the interview pipeline used by the HTTP layer.
type Service struct {
	Issuer    *Issuer
	Tracker   *Tracker
	Collector *Collector
	Engine    *ScoringEngine
	Monitor   *IntegrityMonitor
	Ranker    *Ranker
	Sweeper   *Sweeper

	store      Store
	candidates CandidateLookup
	notifier   Notifier
	settings   Settings
	log        *zap.Logger
}

func NewService(d Deps) *Service {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	settings := d.Settings.withDefaults()
	rules := d.Rules
	if len(rules) == 0 {
		rules = DefaultRules(DefaultIntegrityPolicy())
	}
	monitor := NewIntegrityMonitor(d.Store, rules...)
	engine := NewScoringEngine(d.Store, monitor, settings, d.Log)
	questioner := NewQuestioner(d.Planner, d.Jobs, d.Candidates, d.Log)
	tracker := NewTracker(d.Store, engine, questioner, settings, d.Log)
	return &Service{
		Issuer:     NewIssuer(d.Store, d.Candidates, d.Jobs, settings, d.Log),
		Tracker:    tracker,
		Collector:  NewCollector(d.Store, tracker, d.Jobs, d.OralScorer, d.CodingScorer, settings, d.Log),
		Engine:     engine,
		Monitor:    monitor,
		Ranker:     NewRanker(d.Store, d.Jobs),
		Sweeper:    NewSweeper(d.Store, tracker, engine, d.Locker, settings, d.Log),
		store:      d.Store,
		candidates: d.Candidates,
		notifier:   d.Notifier,
		settings:   settings,
		log:        d.Log,
	}
}

// Invite issues the session of a freshly created candidate and notifies them.
func (s *Service) Invite(ctx context.Context, c candidate.Candidate) (candidate.Invitation, error) {
	sess, err := s.Issuer.Issue(ctx, c.ID)
	if err != nil {
		return candidate.Invitation{}, err
	}
	inv := candidate.Invitation{
		Token:     sess.Token,
		Link:      s.Link(sess.Token),
		ExpiresAt: sess.ExpiresAt,
	}
	if s.notifier != nil {
		if err := s.notifier.Invited(ctx, c, inv); err != nil {
			s.log.Warn("notify candidate", zap.String("candidate_id", c.ID.String()), zap.Error(err))
		}
	}
	return inv, nil
}

// Link builds the candidate-facing URL for token.
func (s *Service) Link(token string) string {
	return strings.TrimRight(s.settings.LinkBaseURL, "/") + "/interview/" + token
}

type BoardEntry struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Link   string    `json:"link"`
	Status Status    `json:"status"`
}

// Board lists every candidate of a job with the current status of its session.
// A candidate whose session was never issued shows as PENDING without a link.
func (s *Service) Board(ctx context.Context, jobID uuid.UUID) ([]BoardEntry, error) {
	cands, err := s.candidates.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.store.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	byCandidate := make(map[uuid.UUID]Session, len(sessions))
	for _, sess := range sessions {
		byCandidate[sess.CandidateID] = sess
	}
	out := make([]BoardEntry, 0, len(cands))
	for _, c := range cands {
		e := BoardEntry{ID: c.ID, Name: c.Name, Email: c.Email, Status: StatusPending}
		if sess, ok := byCandidate[c.ID]; ok {
			e.Link = s.Link(sess.Token)
			e.Status = sess.Status
		}
		out = append(out, e)
	}
	return out, nil
}

// Detail is everything recorded about one candidate.
type Detail struct {
	Candidate candidate.Candidate `json:"candidate"`
	Session   *Session            `json:"session,omitempty"`
	Link      string              `json:"link,omitempty"`
	Questions []Question          `json:"questions"`
	Answers   []ResponseRecord    `json:"answers"`
	Signals   []Signal            `json:"signals"`
	Outcome   *Outcome            `json:"outcome,omitempty"`
}

func (s *Service) Detail(ctx context.Context, candidateID uuid.UUID) (Detail, error) {
	c, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return Detail{}, err
	}
	d := Detail{Candidate: c, Questions: []Question{}, Answers: []ResponseRecord{}, Signals: []Signal{}}
	sess, err := s.store.GetByCandidate(ctx, candidateID)
	if errors.Is(err, ErrSessionNotFound) {
		return d, nil
	}
	if err != nil {
		return Detail{}, err
	}
	d.Session = &sess
	d.Link = s.Link(sess.Token)
	if d.Questions, err = s.store.ListQuestions(ctx, sess.ID); err != nil {
		return Detail{}, err
	}
	if d.Answers, err = s.store.ListResponses(ctx, sess.ID); err != nil {
		return Detail{}, err
	}
	if d.Signals, err = s.store.ListSignals(ctx, sess.ID); err != nil {
		return Detail{}, err
	}
	out, err := s.store.GetOutcome(ctx, sess.ID)
	switch {
	case err == nil:
		d.Outcome = &out
	case !errors.Is(err, ErrOutcomeNotFound):
		return Detail{}, err
	}
	return d, nil
}

// Remaining returns the time left in a started session, zero once it ran out.
func (s *Service) Remaining(sess Session) time.Duration {
	if sess.Status != StatusInProgress || sess.EndsAt == nil {
		return 0
	}
	left := sess.EndsAt.Sub(s.settings.now())
	if left < 0 {
		return 0
	}
	return left
}
