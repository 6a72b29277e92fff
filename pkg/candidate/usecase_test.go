package candidate_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/artem13815/screening/pkg/apperr"
	"github.com/artem13815/screening/pkg/candidate"
	"github.com/artem13815/screening/pkg/job"
	"github.com/artem13815/screening/pkg/repository/memory"
)

type stubInviter struct {
	invited []uuid.UUID
	err     error
}

func (s *stubInviter) Invite(_ context.Context, c candidate.Candidate) (candidate.Invitation, error) {
	if s.err != nil {
		return candidate.Invitation{}, s.err
	}
	s.invited = append(s.invited, c.ID)
	return candidate.Invitation{
		Token:     "tok-" + c.Email,
		Link:      "https://hr.example.com/interview/tok-" + c.Email,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func setup(t *testing.T) (candidate.UseCase, *stubInviter, job.Job) {
	t.Helper()
	db := memory.New()
	j := job.Job{ID: uuid.New(), Title: "Backend", Interview: job.DefaultInterviewConfig()}
	require.NoError(t, db.Jobs().Create(context.Background(), j))
	inv := &stubInviter{}
	return candidate.NewService(db.Candidates(), db.Jobs(), inv, nil), inv, j
}

func TestAddIssuesInvitation(t *testing.T) {
	uc, inv, j := setup(t)

	added, err := uc.Add(context.Background(), candidate.AddInput{
		JobID: j.ID,
		Name:  " Ann Lee ",
		Email: "Ann@Example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", added.Candidate.Name)
	assert.Equal(t, "ann@example.com", added.Candidate.Email)
	assert.Equal(t, []uuid.UUID{added.Candidate.ID}, inv.invited)
	assert.NotEmpty(t, added.Invitation.Link)

	_, err = uc.Add(context.Background(), candidate.AddInput{JobID: j.ID, Name: "Ann", Email: "ann@example.com"})
	assert.ErrorIs(t, err, candidate.ErrDuplicateEmail)
}

func TestAddValidation(t *testing.T) {
	uc, inv, j := setup(t)

	_, err := uc.Add(context.Background(), candidate.AddInput{
		JobID:     j.ID,
		Email:     "Ann <ann@example.com>",
		ResumeURL: "ftp://cv",
	})
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	assert.Contains(t, e.Fields, "name")
	assert.Contains(t, e.Fields, "email")
	assert.Contains(t, e.Fields, "resume_url")
	assert.Empty(t, inv.invited)

	_, err = uc.Add(context.Background(), candidate.AddInput{JobID: uuid.New(), Name: "Ann", Email: "ann@example.com"})
	assert.ErrorIs(t, err, job.ErrNotFound)
}

func TestAddUnreadableResumeIsNoted(t *testing.T) {
	uc, _, j := setup(t)

	added, err := uc.Add(context.Background(), candidate.AddInput{
		JobID:          j.ID,
		Name:           "Ann",
		Email:          "ann@example.com",
		ResumeFilename: "cv.pdf",
		ResumePath:     "uploads/cv.pdf",
		ResumeData:     []byte("not a pdf"),
	})
	require.NoError(t, err)
	assert.Equal(t, "uploads/cv.pdf", added.Candidate.ResumeFile)
	assert.Contains(t, added.Candidate.ResumeText, "Error parsing uploaded resume (cv.pdf)")
}

func TestAddBulkReportsRowErrors(t *testing.T) {
	uc, inv, j := setup(t)
	csv := "Candidate Name,Candidate Email,Resume Link\n" +
		"Ann,ann@example.com,https://cv.example.com/ann\n" +
		"Bob,not-an-email,\n" +
		"Cid,cid@example.com,\n"
	rows, err := candidate.ParseBulk("people.csv", []byte(csv))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	res, err := uc.AddBulk(context.Background(), j.ID, rows)
	require.NoError(t, err)
	assert.Len(t, res.Success, 2)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Row)
	assert.Equal(t, "not-an-email", res.Errors[0].Email)
	assert.Contains(t, res.Errors[0].Error, "email")
	assert.Len(t, inv.invited, 2)
}

func TestAddBulkDuplicateRow(t *testing.T) {
	uc, _, j := setup(t)
	rows := []candidate.Row{
		{Line: 1, Name: "Ann", Email: "ann@example.com"},
		{Line: 2, Name: "Ann again", Email: "ANN@example.com"},
		{Line: 3, Email: "anon@example.com"},
	}
	res, err := uc.AddBulk(context.Background(), j.ID, rows)
	require.NoError(t, err)
	require.Len(t, res.Success, 2)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Row)

	c, err := uc.Get(context.Background(), res.Success[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", c.Name)
}

func TestAddBulkInviterFailure(t *testing.T) {
	uc, inv, j := setup(t)
	inv.err = errors.New("db down")

	res, err := uc.AddBulk(context.Background(), j.ID, []candidate.Row{{Line: 1, Name: "Ann", Email: "ann@example.com"}})
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "internal error", res.Errors[0].Error)
}

func TestAddInviterFailureLeavesNoCandidate(t *testing.T) {
	uc, inv, j := setup(t)
	inv.err = errors.New("db down")
	in := candidate.AddInput{JobID: j.ID, Name: "Ann", Email: "ann@example.com"}

	_, err := uc.Add(context.Background(), in)
	require.EqualError(t, err, "db down")

	list, err := uc.ListByJob(context.Background(), j.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	inv.err = nil
	added, err := uc.Add(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{added.Candidate.ID}, inv.invited)

	list, err = uc.ListByJob(context.Background(), j.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAddBulkRetryAfterInviterFailure(t *testing.T) {
	uc, inv, j := setup(t)
	rows := []candidate.Row{{Line: 1, Name: "Ann", Email: "ann@example.com"}}
	inv.err = errors.New("db down")

	res, err := uc.AddBulk(context.Background(), j.ID, rows)
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)

	inv.err = nil
	res, err = uc.AddBulk(context.Background(), j.ID, rows)
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Success, 1)
}

func TestParseBulkXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Email", "Name"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"ann@example.com", "Ann"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"bob@example.com", "Bob"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := candidate.ParseBulk("people.xlsx", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, candidate.Row{Line: 1, Name: "Ann", Email: "ann@example.com"}, rows[0])
	assert.Equal(t, 3, rows[1].Line)
}

func TestParseBulkErrors(t *testing.T) {
	_, err := candidate.ParseBulk("people.txt", []byte("x"))
	assert.Error(t, err)
	_, err = candidate.ParseBulk("people.csv", []byte("name,phone\nann,1\n"))
	assert.EqualError(t, err, "missing email column")
	_, err = candidate.ParseBulk("people.csv", nil)
	assert.Error(t, err)
	assert.True(t, candidate.SupportedBulk("A.XLSX"))
	assert.False(t, candidate.SupportedBulk("a.pdf"))
}
