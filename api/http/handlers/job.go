package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/screening/api/http/presenter"
	"github.com/artem13815/screening/pkg/apperr"
	"github.com/artem13815/screening/pkg/export"
	"github.com/artem13815/screening/pkg/interview"
	"github.com/artem13815/screening/pkg/job"
)

type JobHandler struct {
	jobs     job.UseCase
	pipeline *interview.Service
}

func NewJobHandler(jobs job.UseCase, pipeline *interview.Service) *JobHandler {
	return &JobHandler{jobs: jobs, pipeline: pipeline}
}

type createJobRequest struct {
	Title               string `json:"title"`
	Description         string `json:"description"`
	RequiredSkills      string `json:"required_skills"`
	ExperienceLevel     string `json:"experience_level"`
	OralQuestionCount   int    `json:"oral_question_count"`
	CodingQuestionCount int    `json:"coding_question_count"`
	ThinkingTime        int    `json:"thinking_time"`
	RecordingTime       int    `json:"recording_time"`
	CodingTime          int    `json:"coding_time"`
}

// Create создаёт вакансию.
// @Summary     Create job
// @Description Creates a job with its interview configuration. Omitted counts and times use the defaults 5/2/1/3/60.
// @Tags        jobs
// @Accept      json,mpfd,x-www-form-urlencoded
// @Produce     json
// @Param       input body createJobRequest true "job"
// @Security    BearerAuth
// @Success     201 {object} job.Job
// @Failure     400 {object} presenter.ErrorResponse
// @Router      /jobs/ [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	req, err := parseCreateJob(c)
	if err != nil {
		return presenter.Fail(c, err)
	}
	j, err := h.jobs.Create(c.UserContext(), job.CreateInput{
		OwnerID:         userID(c),
		Title:           req.Title,
		Description:     req.Description,
		RequiredSkills:  req.RequiredSkills,
		ExperienceLevel: req.ExperienceLevel,
		Interview: job.InterviewConfig{
			OralQuestionCount:   req.OralQuestionCount,
			CodingQuestionCount: req.CodingQuestionCount,
			ThinkingMinutes:     req.ThinkingTime,
			RecordingMinutes:    req.RecordingTime,
			CodingMinutes:       req.CodingTime,
		},
	})
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, j)
}

func parseCreateJob(c *fiber.Ctx) (createJobRequest, error) {
	var req createJobRequest
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON) {
		if err := c.BodyParser(&req); err != nil {
			return req, apperr.Validation("INVALID_JSON", "invalid JSON payload")
		}
		return req, nil
	}
	fields := map[string]string{}
	formInt := func(key string) int {
		v := strings.TrimSpace(c.FormValue(key))
		if v == "" {
			return 0
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			fields[key] = "must be an integer"
		}
		return n
	}
	req = createJobRequest{
		Title:               c.FormValue("title"),
		Description:         c.FormValue("description"),
		RequiredSkills:      c.FormValue("required_skills"),
		ExperienceLevel:     c.FormValue("experience_level"),
		OralQuestionCount:   formInt("oral_question_count"),
		CodingQuestionCount: formInt("coding_question_count"),
		ThinkingTime:        formInt("thinking_time"),
		RecordingTime:       formInt("recording_time"),
		CodingTime:          formInt("coding_time"),
	}
	if len(fields) > 0 {
		return req, apperr.InvalidFields(fields)
	}
	return req, nil
}

// List возвращает вакансии со счётчиками кандидатов.
// @Summary  List jobs
// @Tags     jobs
// @Produce  json
// @Param    limit  query int false "limit (default 50, max 200)"
// @Param    offset query int false "offset"
// @Security BearerAuth
// @Success  200 {array} job.Summary
// @Router   /jobs/ [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.jobs.List(c.UserContext(), limit, offset)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Get
// @Summary  Get job
// @Tags     jobs
// @Produce  json
// @Param    id path string true "job id"
// @Security BearerAuth
// @Success  200 {object} job.Job
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /jobs/{id}/ [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	j, err := h.jobs.Get(c.UserContext(), id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, j)
}

// Status returns every candidate of the job with the state of its interview.
// @Summary  Candidate statuses
// @Tags     jobs
// @Produce  json
// @Param    id path string true "job id"
// @Security BearerAuth
// @Success  200 {array} interview.BoardEntry
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /jobs/{id}/status/ [get]
func (h *JobHandler) Status(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	if _, err := h.jobs.Get(c.UserContext(), id); err != nil {
		return presenter.Fail(c, err)
	}
	board, err := h.pipeline.Board(c.UserContext(), id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, board)
}

type rankingItem struct {
	Rank        int     `json:"rank"`
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Score       float64 `json:"score"`
	Cheating    bool    `json:"cheating"`
}

// Ranking returns completed candidates ordered by score.
// @Summary  Ranking
// @Tags     jobs
// @Produce  json
// @Param    id path string true "job id"
// @Security BearerAuth
// @Success  200 {array} rankingItem
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /jobs/{id}/ranking/ [get]
func (h *JobHandler) Ranking(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	entries, err := h.pipeline.Ranker.Rank(c.UserContext(), id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	out := make([]rankingItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, rankingItem{
			Rank:        e.Rank,
			CandidateID: e.CandidateID.String(),
			Name:        e.Name,
			Email:       e.Email,
			Score:       e.Score,
			Cheating:    e.Cheating,
		})
	}
	return presenter.JSON(c, http.StatusOK, out)
}

// ExportRanking
// @Summary  Ranking as xlsx
// @Tags     jobs
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param    id path string true "job id"
// @Security BearerAuth
// @Success  200 {file} file
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /jobs/{id}/ranking/export/ [get]
func (h *JobHandler) ExportRanking(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	j, err := h.jobs.Get(c.UserContext(), id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	entries, err := h.pipeline.Ranker.Rank(c.UserContext(), id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	data, err := export.RankingXLSX(j, entries)
	if err != nil {
		return presenter.Fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ranking-`+id.String()+`.xlsx"`)
	return c.Status(http.StatusOK).Send(data)
}
