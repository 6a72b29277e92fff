package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/screening/pkg/interview"
)

// InterviewRepository implements interview.Store. Status changes are
// compare-and-set updates and a start writes the question set in the same
// transaction; answer and signal inserts hold the session row
// FOR SHARE so they serialize against a concurrent expiry.
type InterviewRepository struct {
	pool *pgxpool.Pool
}

func NewInterviewRepository(pool *pgxpool.Pool) *InterviewRepository {
	return &InterviewRepository{pool: pool}
}

const sessionColumns = `id, candidate_id, job_id, token, status,
	oral_question_count, coding_question_count, thinking_minutes, recording_minutes, coding_minutes,
	created_at, started_at, completed_at, expires_at, ends_at`

func (r *InterviewRepository) Create(ctx context.Context, s interview.Session) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO interview_sessions (`+sessionColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
`, s.ID, s.CandidateID, s.JobID, s.Token, string(s.Status),
		s.Config.OralQuestionCount, s.Config.CodingQuestionCount, s.Config.ThinkingMinutes,
		s.Config.RecordingMinutes, s.Config.CodingMinutes,
		s.CreatedAt, s.StartedAt, s.CompletedAt, s.ExpiresAt, s.EndsAt)
	if isUniqueViolation(err) {
		return interview.ErrDuplicateCandidate
	}
	return err
}

func (r *InterviewRepository) GetByID(ctx context.Context, id uuid.UUID) (interview.Session, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *InterviewRepository) GetByToken(ctx context.Context, token string) (interview.Session, error) {
	return r.getOne(ctx, `token = $1`, token)
}

func (r *InterviewRepository) GetByCandidate(ctx context.Context, candidateID uuid.UUID) (interview.Session, error) {
	return r.getOne(ctx, `candidate_id = $1`, candidateID)
}

func (r *InterviewRepository) getOne(ctx context.Context, where string, arg any) (interview.Session, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM interview_sessions WHERE `+where, arg)
	s, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return interview.Session{}, interview.ErrSessionNotFound
	}
	return s, err
}

func (r *InterviewRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]interview.Session, error) {
	return r.list(ctx, `SELECT `+sessionColumns+` FROM interview_sessions WHERE job_id = $1 ORDER BY created_at, id`, jobID)
}

func (r *InterviewRepository) Transition(ctx context.Context, req interview.TransitionRequest) (interview.Session, error) {
	from := make([]string, len(req.From))
	for i, st := range req.From {
		from[i] = string(st)
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return interview.Session{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
UPDATE interview_sessions SET
	status = $2::text,
	started_at = CASE WHEN $2::text = 'IN_PROGRESS' THEN $3::timestamptz ELSE started_at END,
	completed_at = CASE WHEN $2::text = 'COMPLETED' THEN $3::timestamptz ELSE completed_at END,
	ends_at = COALESCE($4::timestamptz, ends_at)
WHERE id = $1 AND status = ANY($5::text[])
RETURNING `+sessionColumns, req.SessionID, string(req.To), req.At, req.EndsAt, from)
	s, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = tx.Rollback(ctx)
		cur, gerr := r.GetByID(ctx, req.SessionID)
		if gerr != nil {
			return interview.Session{}, gerr
		}
		return cur, interview.ErrStatusChanged
	}
	if err != nil {
		return interview.Session{}, err
	}
	if len(req.Questions) > 0 {
		rows := make([][]any, len(req.Questions))
		for i, q := range req.Questions {
			skills := q.ExpectedSkills
			if skills == nil {
				skills = []string{}
			}
			rows[i] = []any{req.SessionID, string(q.Kind), q.Index, q.Text, skills, q.TimeLimitSeconds, q.Source}
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"interview_questions"},
			[]string{"session_id", "kind", "question_index", "text", "expected_skills", "time_limit_seconds", "source"},
			pgx.CopyFromRows(rows)); err != nil {
			return interview.Session{}, fmt.Errorf("store questions: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return interview.Session{}, err
	}
	return s, nil
}

func (r *InterviewRepository) ListQuestions(ctx context.Context, sessionID uuid.UUID) ([]interview.Question, error) {
	rows, err := r.pool.Query(ctx, `
SELECT kind, question_index, text, expected_skills, time_limit_seconds, source
FROM interview_questions WHERE session_id = $1
ORDER BY CASE kind WHEN 'ORAL' THEN 0 ELSE 1 END, question_index
`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []interview.Question{}
	for rows.Next() {
		var (
			q    interview.Question
			kind string
		)
		if err := rows.Scan(&kind, &q.Index, &q.Text, &q.ExpectedSkills, &q.TimeLimitSeconds, &q.Source); err != nil {
			return nil, err
		}
		q.Kind = interview.Kind(kind)
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *InterviewRepository) ListExpirable(ctx context.Context, now time.Time, limit int) ([]interview.Session, error) {
	return r.list(ctx, `
SELECT `+sessionColumns+` FROM interview_sessions
WHERE (status = 'PENDING' AND expires_at <= $1)
   OR (status = 'IN_PROGRESS' AND ends_at < $1)
ORDER BY expires_at, id
LIMIT $2`, now, limit)
}

func (r *InterviewRepository) AppendResponse(ctx context.Context, rec interview.ResponseRecord) error {
	return r.whileActive(ctx, rec.SessionID, rec.RecordedAt, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
INSERT INTO interview_responses (session_id, kind, question_index, payload, payload_hash,
	sub_score, score_error, elapsed_ms, recorded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, rec.SessionID, string(rec.Kind), rec.QuestionIndex, rec.Payload, rec.PayloadHash,
			rec.SubScore, rec.ScoreError, rec.Elapsed.Milliseconds(), rec.RecordedAt)
		if isUniqueViolation(err) {
			return interview.ErrDuplicateQuestionIndex
		}
		return err
	})
}

func (r *InterviewRepository) ListResponses(ctx context.Context, sessionID uuid.UUID) ([]interview.ResponseRecord, error) {
	rows, err := r.pool.Query(ctx, `
SELECT session_id, kind, question_index, payload, payload_hash, sub_score, score_error, elapsed_ms, recorded_at
FROM interview_responses WHERE session_id = $1
ORDER BY recorded_at, kind, question_index
`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []interview.ResponseRecord{}
	for rows.Next() {
		var (
			rec       interview.ResponseRecord
			kind      string
			elapsedMS int64
		)
		if err := rows.Scan(&rec.SessionID, &kind, &rec.QuestionIndex, &rec.Payload, &rec.PayloadHash,
			&rec.SubScore, &rec.ScoreError, &elapsedMS, &rec.RecordedAt); err != nil {
			return nil, err
		}
		rec.Kind = interview.Kind(kind)
		rec.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		rec.RecordedAt = rec.RecordedAt.UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *InterviewRepository) AppendSignal(ctx context.Context, sig interview.Signal) error {
	return r.whileActive(ctx, sig.SessionID, sig.RecordedAt, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
INSERT INTO interview_signals (session_id, kind, details, recorded_at) VALUES ($1, $2, $3, $4)
`, sig.SessionID, string(sig.Kind), sig.Details, sig.RecordedAt)
		return err
	})
}

func (r *InterviewRepository) ListSignals(ctx context.Context, sessionID uuid.UUID) ([]interview.Signal, error) {
	rows, err := r.pool.Query(ctx, `
SELECT session_id, kind, details, recorded_at FROM interview_signals WHERE session_id = $1 ORDER BY id
`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []interview.Signal{}
	for rows.Next() {
		var (
			sig  interview.Signal
			kind string
		)
		if err := rows.Scan(&sig.SessionID, &kind, &sig.Details, &sig.RecordedAt); err != nil {
			return nil, err
		}
		sig.Kind = interview.SignalKind(kind)
		sig.RecordedAt = sig.RecordedAt.UTC()
		out = append(out, sig)
	}
	return out, rows.Err()
}

func (r *InterviewRepository) SiblingHashes(ctx context.Context, jobID, exclude uuid.UUID) (map[string]struct{}, error) {
	rows, err := r.pool.Query(ctx, `
SELECT DISTINCT resp.payload_hash
FROM interview_responses resp
JOIN interview_sessions s ON s.id = resp.session_id
WHERE s.job_id = $1 AND resp.session_id <> $2 AND resp.payload_hash <> ''
`, jobID, exclude)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]struct{}{}
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		out[h] = struct{}{}
	}
	return out, rows.Err()
}

// SaveOutcome writes score and integrity flag in one row; the first writer wins.
func (r *InterviewRepository) SaveOutcome(ctx context.Context, o interview.Outcome) (interview.Outcome, error) {
	reasons := make([]string, len(o.Integrity.Reasons))
	for i, rc := range o.Integrity.Reasons {
		reasons[i] = string(rc)
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO interview_outcomes (session_id, overall, oral_average, coding_average, computed_at,
	cheating, reasons, evaluated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (session_id) DO NOTHING
`, o.Score.SessionID, o.Score.Overall, o.Score.OralAverage, o.Score.CodingAverage, o.Score.ComputedAt,
		o.Integrity.Cheating, reasons, o.Integrity.EvaluatedAt)
	if err != nil {
		return interview.Outcome{}, fmt.Errorf("save outcome: %w", err)
	}
	return r.GetOutcome(ctx, o.Score.SessionID)
}

func (r *InterviewRepository) GetOutcome(ctx context.Context, sessionID uuid.UUID) (interview.Outcome, error) {
	row := r.pool.QueryRow(ctx, `
SELECT session_id, overall, oral_average, coding_average, computed_at, cheating, reasons, evaluated_at
FROM interview_outcomes WHERE session_id = $1
`, sessionID)
	var (
		o       interview.Outcome
		reasons []string
	)
	err := row.Scan(&o.Score.SessionID, &o.Score.Overall, &o.Score.OralAverage, &o.Score.CodingAverage,
		&o.Score.ComputedAt, &o.Integrity.Cheating, &reasons, &o.Integrity.EvaluatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return interview.Outcome{}, interview.ErrOutcomeNotFound
	}
	if err != nil {
		return interview.Outcome{}, err
	}
	o.Integrity.SessionID = o.Score.SessionID
	o.Integrity.Reasons = make([]interview.ReasonCode, len(reasons))
	for i, rc := range reasons {
		o.Integrity.Reasons[i] = interview.ReasonCode(rc)
	}
	o.Score.ComputedAt = o.Score.ComputedAt.UTC()
	o.Integrity.EvaluatedAt = o.Integrity.EvaluatedAt.UTC()
	return o, nil
}

func (r *InterviewRepository) ListStandings(ctx context.Context, jobID uuid.UUID) ([]interview.Standing, error) {
	rows, err := r.pool.Query(ctx, `
SELECT s.candidate_id, c.name, c.email, o.overall, o.cheating, s.completed_at
FROM interview_sessions s
JOIN interview_outcomes o ON o.session_id = s.id
JOIN candidates c ON c.id = s.candidate_id
WHERE s.job_id = $1 AND s.status = 'COMPLETED'
`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []interview.Standing{}
	for rows.Next() {
		var st interview.Standing
		if err := rows.Scan(&st.CandidateID, &st.Name, &st.Email, &st.Score, &st.Cheating, &st.CompletedAt); err != nil {
			return nil, err
		}
		st.CompletedAt = st.CompletedAt.UTC()
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *InterviewRepository) ListUnfinalized(ctx context.Context, limit int) ([]interview.Session, error) {
	return r.list(ctx, `
SELECT `+prefixed("s", sessionColumns)+`
FROM interview_sessions s
LEFT JOIN interview_outcomes o ON o.session_id = s.id
WHERE s.status = 'COMPLETED' AND o.session_id IS NULL
ORDER BY s.completed_at, s.id
LIMIT $1`, limit)
}

// whileActive runs fn in a transaction that holds the session row FOR SHARE
// and has checked it is IN_PROGRESS with its deadline not passed at at.
func (r *InterviewRepository) whileActive(ctx context.Context, sessionID uuid.UUID, at time.Time, fn func(pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		status string
		endsAt *time.Time
	)
	err = tx.QueryRow(ctx, `SELECT status, ends_at FROM interview_sessions WHERE id = $1 FOR SHARE`, sessionID).Scan(&status, &endsAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return interview.ErrSessionNotFound
	}
	if err != nil {
		return err
	}
	if interview.Status(status) != interview.StatusInProgress || (endsAt != nil && at.After(*endsAt)) {
		return interview.ErrSessionNotActive
	}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *InterviewRepository) list(ctx context.Context, query string, args ...any) ([]interview.Session, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []interview.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSession(row pgx.Row) (interview.Session, error) {
	var (
		s      interview.Session
		status string
	)
	err := row.Scan(&s.ID, &s.CandidateID, &s.JobID, &s.Token, &status,
		&s.Config.OralQuestionCount, &s.Config.CodingQuestionCount, &s.Config.ThinkingMinutes,
		&s.Config.RecordingMinutes, &s.Config.CodingMinutes,
		&s.CreatedAt, &s.StartedAt, &s.CompletedAt, &s.ExpiresAt, &s.EndsAt)
	if err != nil {
		return interview.Session{}, err
	}
	s.Status = interview.Status(status)
	s.CreatedAt = s.CreatedAt.UTC()
	s.ExpiresAt = s.ExpiresAt.UTC()
	s.StartedAt = utc(s.StartedAt)
	s.CompletedAt = utc(s.CompletedAt)
	s.EndsAt = utc(s.EndsAt)
	return s, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
