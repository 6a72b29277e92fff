package candidate

import (
	"context"
	"errors"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/screening/pkg/apperr"
	"github.com/artem13815/screening/pkg/job"
)

var (
	ErrNotFound       = apperr.NotFound("CANDIDATE_NOT_FOUND", "candidate not found")
	ErrDuplicateEmail = apperr.Conflict("DUPLICATE_EMAIL", "candidate with this email already exists for the job")
)

// JobLookup is the slice of the job repository the use case needs.
type JobLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
}

// UseCase: сценарии загрузки кандидатов.
type UseCase interface {
	Add(ctx context.Context, in AddInput) (Added, error)
	AddBulk(ctx context.Context, jobID uuid.UUID, rows []Row) (BulkResult, error)
	Get(ctx context.Context, id uuid.UUID) (Candidate, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]Candidate, error)
}

// AddInput is a manual upload. ResumeData is the raw resume file, if any.
type AddInput struct {
	JobID          uuid.UUID
	Name           string
	Email          string
	ResumeURL      string
	ResumeFilename string
	ResumePath     string
	ResumeData     []byte
}

type Added struct {
	Candidate  Candidate  `json:"candidate"`
	Invitation Invitation `json:"invitation"`
}

type BulkSuccess struct {
	Row   int       `json:"row"`
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Link  string    `json:"link"`
}

type BulkError struct {
	Row   int    `json:"row"`
	Email string `json:"email"`
	Error string `json:"error"`
}

// BulkResult never fails as a whole because of a bad row.
type BulkResult struct {
	Success []BulkSuccess `json:"success"`
	Errors  []BulkError   `json:"errors"`
}

type service struct {
	repo    Repository
	jobs    JobLookup
	inviter Inviter
	log     *zap.Logger
	now     func() time.Time
}

func NewService(repo Repository, jobs JobLookup, inviter Inviter, log *zap.Logger) UseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, jobs: jobs, inviter: inviter, log: log, now: time.Now}
}

func (s *service) Add(ctx context.Context, in AddInput) (Added, error) {
	if _, err := s.jobs.GetByID(ctx, in.JobID); err != nil {
		return Added{}, err
	}
	c, err := s.validate(in.JobID, in.Name, in.Email, in.ResumeURL, true)
	if err != nil {
		return Added{}, err
	}
	if len(in.ResumeData) > 0 {
		c.ResumeFile = in.ResumePath
		c.ResumeText = resumeText(in.ResumeFilename, in.ResumeData)
	}
	return s.create(ctx, c)
}

func (s *service) AddBulk(ctx context.Context, jobID uuid.UUID, rows []Row) (BulkResult, error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return BulkResult{}, err
	}
	res := BulkResult{Success: []BulkSuccess{}, Errors: []BulkError{}}
	for _, row := range rows {
		c, err := s.validate(jobID, row.Name, row.Email, row.ResumeURL, false)
		if err == nil {
			var added Added
			added, err = s.create(ctx, c)
			if err == nil {
				res.Success = append(res.Success, BulkSuccess{
					Row:   row.Line,
					ID:    added.Candidate.ID,
					Email: added.Candidate.Email,
					Link:  added.Invitation.Link,
				})
				continue
			}
		}
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		res.Errors = append(res.Errors, BulkError{Row: row.Line, Email: row.Email, Error: rowError(err)})
	}
	s.log.Info("bulk upload processed",
		zap.String("job_id", jobID.String()),
		zap.Int("success", len(res.Success)),
		zap.Int("errors", len(res.Errors)),
	)
	return res, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (Candidate, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByJob(ctx context.Context, jobID uuid.UUID) ([]Candidate, error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.repo.ListByJob(ctx, jobID)
}

func (s *service) create(ctx context.Context, c Candidate) (Added, error) {
	if err := s.repo.Create(ctx, c); err != nil {
		return Added{}, err
	}
	inv, err := s.inviter.Invite(ctx, c)
	if err != nil {
		s.log.Error("issue interview session", zap.String("candidate_id", c.ID.String()), zap.Error(err))
		// a candidate without a session could never be invited again
		if derr := s.repo.Delete(context.WithoutCancel(ctx), c.ID); derr != nil {
			s.log.Error("remove uninvited candidate", zap.String("candidate_id", c.ID.String()), zap.Error(derr))
			return Added{}, errors.Join(err, derr)
		}
		return Added{}, err
	}
	return Added{Candidate: c, Invitation: inv}, nil
}

func (s *service) validate(jobID uuid.UUID, name, email, resumeURL string, nameRequired bool) (Candidate, error) {
	fields := map[string]string{}
	name = strings.TrimSpace(name)
	if name == "" {
		if nameRequired {
			fields["name"] = "name is required"
		}
		name = "Unknown"
	}
	addr, ok := normalizeEmail(email)
	if !ok {
		fields["email"] = "invalid email"
	}
	resumeURL = strings.TrimSpace(resumeURL)
	if resumeURL != "" {
		if u, err := url.ParseRequestURI(resumeURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			fields["resume_url"] = "invalid url"
		}
	}
	if len(fields) > 0 {
		return Candidate{}, apperr.InvalidFields(fields)
	}
	return Candidate{
		ID:        uuid.New(),
		JobID:     jobID,
		Name:      name,
		Email:     addr,
		ResumeURL: resumeURL,
		CreatedAt: s.now().UTC(),
	}, nil
}

// normalizeEmail accepts only a bare address ("a@b.c"), not "Name <a@b.c>".
func normalizeEmail(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", false
	}
	at := strings.LastIndex(raw, "@")
	if !strings.Contains(raw[at+1:], ".") {
		return "", false
	}
	return strings.ToLower(raw), true
}

func rowError(err error) string {
	if e, ok := apperr.As(err); ok {
		if len(e.Fields) > 0 {
			var parts []string
			for _, k := range []string{"name", "email", "resume_url"} {
				if v, ok := e.Fields[k]; ok {
					parts = append(parts, k+": "+v)
				}
			}
			return strings.Join(parts, "; ")
		}
		return e.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out"
	}
	return "internal error"
}

// resumeText never fails the upload: unreadable files are recorded as a note.
func resumeText(filename string, data []byte) string {
	text, err := ParseResumeText(filename, data)
	if err != nil {
		return "Error parsing uploaded resume (" + filename + "): " + err.Error()
	}
	if text == "" {
		return "Warning: resume uploaded (" + filename + ") but no text could be extracted."
	}
	return text
}
