package interview

import "github.com/artem13815/screening/pkg/apperr"

var (
	ErrSessionNotFound        = apperr.NotFound("SESSION_NOT_FOUND", "interview session not found")
	ErrOutcomeNotFound        = apperr.NotFound("OUTCOME_NOT_FOUND", "session has no outcome yet")
	ErrDuplicateCandidate     = apperr.Conflict("DUPLICATE_CANDIDATE", "session already issued for candidate")
	ErrSessionExpired         = apperr.Conflict("SESSION_EXPIRED", "interview session expired")
	ErrInvalidTransition      = apperr.Conflict("INVALID_TRANSITION", "status transition not allowed")
	ErrTimeRemaining          = apperr.Conflict("TIME_REMAINING", "interview time budget not exhausted")
	ErrSessionNotActive       = apperr.Conflict("SESSION_NOT_ACTIVE", "interview session is not in progress")
	ErrDuplicateQuestionIndex = apperr.Conflict("DUPLICATE_QUESTION_INDEX", "question already answered")
	ErrQuestionOutOfRange     = apperr.Validation("QUESTION_OUT_OF_RANGE", "question index out of range")
	ErrScorerUnavailable      = apperr.Transient("SCORER_UNAVAILABLE", "answer scorer unavailable")

	// ErrStatusChanged is returned by SessionRepository.Transition when the
	// stored status is not one of the expected source states.
	ErrStatusChanged = apperr.Conflict("STATUS_CHANGED", "session status changed concurrently")
)
