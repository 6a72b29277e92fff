package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/screening/api/http/presenter"
	"github.com/artem13815/screening/pkg/apperr"
	"github.com/artem13815/screening/pkg/interview"
	"github.com/artem13815/screening/pkg/job"
)

// InterviewHandler serves the candidate side. The token in the path is the
// only credential.
type InterviewHandler struct {
	pipeline *interview.Service
	jobs     job.UseCase
}

func NewInterviewHandler(pipeline *interview.Service, jobs job.UseCase) *InterviewHandler {
	return &InterviewHandler{pipeline: pipeline, jobs: jobs}
}

type answeredDTO struct {
	Kind          interview.Kind `json:"kind"`
	QuestionIndex int            `json:"question_index"`
}

type sessionView struct {
	Status           interview.Status    `json:"status"`
	JobTitle         string              `json:"job_title"`
	Config           job.InterviewConfig `json:"config"`
	ExpiresAt        time.Time           `json:"expires_at"`
	EndsAt           *time.Time          `json:"ends_at,omitempty"`
	RemainingSeconds int64               `json:"remaining_seconds"`
	// Questions are empty until the session starts.
	Questions []interview.Question `json:"questions"`
	Answered  []answeredDTO        `json:"answered"`
}

// Get
// @Summary Interview session by token
// @Tags    interview
// @Produce json
// @Param   token path string true "interview token"
// @Success 200 {object} sessionView
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /interview/{token}/ [get]
func (h *InterviewHandler) Get(c *fiber.Ctx) error {
	s, err := h.pipeline.Tracker.GetByToken(c.UserContext(), c.Params("token"))
	if err != nil {
		return presenter.Fail(c, err)
	}
	return h.view(c, http.StatusOK, s)
}

// Start
// @Summary Start the interview
// @Tags    interview
// @Produce json
// @Param   token path string true "interview token"
// @Success 200 {object} sessionView
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /interview/{token}/start/ [post]
func (h *InterviewHandler) Start(c *fiber.Ctx) error {
	s, err := h.pipeline.Tracker.GetByToken(c.UserContext(), c.Params("token"))
	if err != nil {
		return presenter.Fail(c, err)
	}
	s, err = h.pipeline.Tracker.Start(c.UserContext(), s.ID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return h.view(c, http.StatusOK, s)
}

type answerRequest struct {
	Kind           interview.Kind `json:"kind"`
	QuestionIndex  *int           `json:"question_index"`
	Payload        string         `json:"payload"`
	ElapsedSeconds float64        `json:"elapsed_seconds"`
}

type answerResponse struct {
	Kind          interview.Kind `json:"kind"`
	QuestionIndex int            `json:"question_index"`
	RecordedAt    time.Time      `json:"recorded_at"`
}

// Answer
// @Summary Submit an answer
// @Description Oral answers carry the transcript, coding answers the source code. The first answer for a question wins.
// @Tags    interview
// @Accept  json
// @Produce json
// @Param   token path string true "interview token"
// @Param   input body answerRequest true "answer"
// @Success 201 {object} answerResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /interview/{token}/answers/ [post]
func (h *InterviewHandler) Answer(c *fiber.Ctx) error {
	var req answerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if req.QuestionIndex == nil {
		return presenter.Fail(c, apperr.InvalidFields(map[string]string{"question_index": "required"}))
	}
	s, err := h.pipeline.Tracker.GetByToken(c.UserContext(), c.Params("token"))
	if err != nil {
		return presenter.Fail(c, err)
	}
	rec, err := h.pipeline.Collector.RecordAnswer(c.UserContext(), s.ID, interview.AnswerInput{
		Kind:          req.Kind,
		QuestionIndex: *req.QuestionIndex,
		Payload:       req.Payload,
		Elapsed:       time.Duration(req.ElapsedSeconds * float64(time.Second)),
	})
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, answerResponse{
		Kind:          rec.Kind,
		QuestionIndex: rec.QuestionIndex,
		RecordedAt:    rec.RecordedAt,
	})
}

type signalRequest struct {
	Kind    interview.SignalKind `json:"kind"`
	Details string               `json:"details"`
}

// Signal
// @Summary Report a proctoring event
// @Tags    interview
// @Accept  json
// @Produce json
// @Param   token path string true "interview token"
// @Param   input body signalRequest true "signal"
// @Success 201 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /interview/{token}/signals/ [post]
func (h *InterviewHandler) Signal(c *fiber.Ctx) error {
	var req signalRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	s, err := h.pipeline.Tracker.GetByToken(c.UserContext(), c.Params("token"))
	if err != nil {
		return presenter.Fail(c, err)
	}
	if _, err := h.pipeline.Collector.RecordSignal(c.UserContext(), s.ID, interview.SignalInput{
		Kind:    req.Kind,
		Details: req.Details,
	}); err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{"status": "recorded"})
}

// Complete
// @Summary Finish the interview
// @Tags    interview
// @Produce json
// @Param   token path string true "interview token"
// @Success 200 {object} sessionView
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /interview/{token}/complete/ [post]
func (h *InterviewHandler) Complete(c *fiber.Ctx) error {
	s, err := h.pipeline.Tracker.GetByToken(c.UserContext(), c.Params("token"))
	if err != nil {
		return presenter.Fail(c, err)
	}
	s, _, err = h.pipeline.Tracker.Complete(c.UserContext(), s.ID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return h.view(c, http.StatusOK, s)
}

func (h *InterviewHandler) view(c *fiber.Ctx, status int, s interview.Session) error {
	var err error
	v := sessionView{
		Status:           s.Status,
		Config:           s.Config,
		ExpiresAt:        s.ExpiresAt,
		EndsAt:           s.EndsAt,
		RemainingSeconds: int64(h.pipeline.Remaining(s) / time.Second),
		Answered:         []answeredDTO{},
	}
	if j, err := h.jobs.Get(c.UserContext(), s.JobID); err == nil {
		v.JobTitle = j.Title
	}
	if v.Questions, err = h.pipeline.Tracker.Questions(c.UserContext(), s.ID); err != nil {
		return presenter.Fail(c, err)
	}
	rs, err := h.pipeline.Collector.Responses(c.UserContext(), s.ID)
	if err != nil {
		return presenter.Fail(c, err)
	}
	for _, r := range rs {
		v.Answered = append(v.Answered, answeredDTO{Kind: r.Kind, QuestionIndex: r.QuestionIndex})
	}
	return presenter.JSON(c, status, v)
}
