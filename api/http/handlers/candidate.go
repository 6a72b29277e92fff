package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/screening/api/http/presenter"
	"github.com/artem13815/screening/pkg/apperr"
	"github.com/artem13815/screening/pkg/candidate"
	"github.com/artem13815/screening/pkg/interview"
)

type CandidateHandler struct {
	uc       candidate.UseCase
	pipeline *interview.Service
	// Limit uploaded file size read into memory (bytes)
	maxBytes int64
	baseDir  string
}

func NewCandidateHandler(uc candidate.UseCase, pipeline *interview.Service, uploadDir string) *CandidateHandler {
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	return &CandidateHandler{uc: uc, pipeline: pipeline, maxBytes: 15 << 20, baseDir: uploadDir}
}

// Upload добавляет кандидатов: файлом (csv/xlsx) или вручную.
// @Summary     Upload candidates
// @Description With a "file" part (.csv or .xlsx) every row becomes a candidate and bad rows are reported without aborting the batch. Otherwise a single candidate is created from name, email and an optional resume_file (.pdf/.docx) or resume_url.
// @Tags        candidates
// @Accept      mpfd
// @Produce     json
// @Param       id          path     string true  "job id"
// @Param       file        formData file   false "csv or xlsx with name, email, resume link columns"
// @Param       name        formData string false "candidate name"
// @Param       email       formData string false "candidate email"
// @Param       resume_url  formData string false "resume link"
// @Param       resume_file formData file   false "resume (.pdf or .docx)"
// @Security    BearerAuth
// @Success     201 {object} candidate.BulkResult
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     404 {object} presenter.ErrorResponse
// @Failure     409 {object} presenter.ErrorResponse
// @Router      /jobs/{id}/upload_candidates/ [post]
func (h *CandidateHandler) Upload(c *fiber.Ctx) error {
	jobID, err := pathID(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		return h.bulk(c, jobID, fh)
	}
	return h.manual(c, jobID)
}

func (h *CandidateHandler) bulk(c *fiber.Ctx, jobID uuid.UUID, fh *multipart.FileHeader) error {
	if !candidate.SupportedBulk(fh.Filename) {
		return presenter.Fail(c, apperr.InvalidFields(map[string]string{"file": "only .csv and .xlsx are supported"}))
	}
	data, err := h.read(fh)
	if err != nil {
		return presenter.Fail(c, err)
	}
	rows, err := candidate.ParseBulk(fh.Filename, data)
	if err != nil {
		return presenter.Fail(c, apperr.InvalidFields(map[string]string{"file": err.Error()}))
	}
	res, err := h.uc.AddBulk(c.UserContext(), jobID, rows)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, res)
}

func (h *CandidateHandler) manual(c *fiber.Ctx, jobID uuid.UUID) error {
	in := candidate.AddInput{
		JobID:     jobID,
		Name:      c.FormValue("name"),
		Email:     c.FormValue("email"),
		ResumeURL: c.FormValue("resume_url"),
	}
	if fh, err := c.FormFile("resume_file"); err == nil && fh != nil {
		if !candidate.SupportedResume(fh.Filename) {
			return presenter.Fail(c, apperr.InvalidFields(map[string]string{"resume_file": "only .pdf and .docx are supported"}))
		}
		data, err := h.read(fh)
		if err != nil {
			return presenter.Fail(c, err)
		}
		path, err := h.store(fh.Filename, data)
		if err != nil {
			return presenter.Fail(c, err)
		}
		in.ResumeFilename = fh.Filename
		in.ResumePath = path
		in.ResumeData = data
	}
	added, err := h.uc.Add(c.UserContext(), in)
	if err != nil {
		if in.ResumePath != "" {
			_ = os.Remove(in.ResumePath)
		}
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"id":         added.Candidate.ID,
		"name":       added.Candidate.Name,
		"email":      added.Candidate.Email,
		"link":       added.Invitation.Link,
		"expires_at": added.Invitation.ExpiresAt,
	})
}

// Detail
// @Summary  Candidate detail
// @Description Candidate with session, answers, signals and the finalized outcome.
// @Tags     candidates
// @Produce  json
// @Param    id path string true "candidate id"
// @Security BearerAuth
// @Success  200 {object} interview.Detail
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /candidates/{id}/detail/ [get]
func (h *CandidateHandler) Detail(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return presenter.Fail(c, err)
	}
	d, err := h.pipeline.Detail(c.UserContext(), id)
	if err != nil {
		return presenter.Fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, d)
}

func (h *CandidateHandler) read(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, apperr.Validation("BAD_UPLOAD", "failed to open uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		return nil, apperr.Validation("BAD_UPLOAD", "failed to read uploaded file")
	}
	if int64(len(data)) > h.maxBytes {
		return nil, apperr.Validation("FILE_TOO_LARGE", "file is too large")
	}
	return data, nil
}

// store keeps the original resume next to the service, named by a fresh id.
func (h *CandidateHandler) store(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(h.baseDir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(h.baseDir, uuid.NewString()+strings.ToLower(filepath.Ext(filename)))
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", err
	}
	return dst, nil
}
