package interview

import (
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/screening/pkg/job"
)

// Status of an interview session. Transitions only move forward:
// PENDING -> IN_PROGRESS -> {COMPLETED, EXPIRED}, PENDING -> EXPIRED.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusExpired    Status = "EXPIRED"
)

// Terminal reports whether no transition may leave s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusExpired
}

type Kind string

const (
	KindOral   Kind = "ORAL"
	KindCoding Kind = "CODING"
)

func (k Kind) Valid() bool { return k == KindOral || k == KindCoding }

// Session: одна попытка кандидата пройти интервью по уникальной ссылке.
type Session struct {
	ID          uuid.UUID           `json:"id"`
	CandidateID uuid.UUID           `json:"candidate_id"`
	JobID       uuid.UUID           `json:"job_id"`
	Token       string              `json:"-"`
	Status      Status              `json:"status"`
	Config      job.InterviewConfig `json:"config"`
	CreatedAt   time.Time           `json:"created_at"`
	StartedAt   *time.Time          `json:"started_at,omitempty"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	ExpiresAt   time.Time           `json:"expires_at"`
	// EndsAt is set on start: the moment the time budget (plus grace) runs out.
	EndsAt *time.Time `json:"ends_at,omitempty"`
}

// QuestionCount returns the configured number of questions of kind k.
func (s Session) QuestionCount(k Kind) int {
	switch k {
	case KindOral:
		return s.Config.OralQuestionCount
	case KindCoding:
		return s.Config.CodingQuestionCount
	}
	return 0
}

// ResponseRecord is one answered question. (SessionID, Kind, QuestionIndex) is unique.
type ResponseRecord struct {
	SessionID     uuid.UUID     `json:"session_id"`
	QuestionIndex int           `json:"question_index"`
	Kind          Kind          `json:"kind"`
	Payload       string        `json:"payload"`
	PayloadHash   string        `json:"-"`
	SubScore      float64       `json:"sub_score"`
	ScoreError    string        `json:"score_error,omitempty"`
	Elapsed       time.Duration `json:"elapsed"`
	RecordedAt    time.Time     `json:"recorded_at"`
}

type SignalKind string

const (
	SignalTabSwitch SignalKind = "TAB_SWITCH"
	SignalFocusLoss SignalKind = "FOCUS_LOSS"
	SignalCopyPaste SignalKind = "COPY_PASTE"
	SignalOther     SignalKind = "OTHER"
)

func (k SignalKind) Valid() bool {
	switch k {
	case SignalTabSwitch, SignalFocusLoss, SignalCopyPaste, SignalOther:
		return true
	}
	return false
}

// Signal is a client-reported proctoring event. Untrusted input.
type Signal struct {
	SessionID  uuid.UUID  `json:"session_id"`
	Kind       SignalKind `json:"kind"`
	Details    string     `json:"details,omitempty"`
	RecordedAt time.Time  `json:"recorded_at"`
}

type ScoreResult struct {
	SessionID     uuid.UUID `json:"session_id"`
	Overall       float64   `json:"overall"`
	OralAverage   float64   `json:"oral_average"`
	CodingAverage float64   `json:"coding_average"`
	ComputedAt    time.Time `json:"computed_at"`
}

type ReasonCode string

const (
	ReasonTooFast             ReasonCode = "ANSWER_TOO_FAST"
	ReasonTabSwitch           ReasonCode = "EXCESSIVE_TAB_SWITCH"
	ReasonCopyPaste           ReasonCode = "EXCESSIVE_COPY_PASTE"
	ReasonDuplicateSubmission ReasonCode = "DUPLICATE_SUBMISSION_PATTERN"
)

type IntegrityFlag struct {
	SessionID   uuid.UUID    `json:"session_id"`
	Cheating    bool         `json:"cheating"`
	Reasons     []ReasonCode `json:"reasons"`
	EvaluatedAt time.Time    `json:"evaluated_at"`
}

// Outcome is the finalized, immutable result of a completed session.
type Outcome struct {
	Score     ScoreResult   `json:"score"`
	Integrity IntegrityFlag `json:"integrity"`
}

// Standing is a completed session with its outcome, as read for ranking.
type Standing struct {
	CandidateID uuid.UUID
	Name        string
	Email       string
	Score       float64
	Cheating    bool
	CompletedAt time.Time
}

type RankEntry struct {
	Rank        int       `json:"rank"`
	CandidateID uuid.UUID `json:"candidate_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Score       float64   `json:"score"`
	Cheating    bool      `json:"cheating"`
}
