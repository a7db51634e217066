package student_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/placement-portal/internal/application/apitest"
	"github.com/jhoicas/placement-portal/internal/application/student"
	"github.com/jhoicas/placement-portal/internal/domain"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

func newService(api *apitest.Backend, rec *apitest.Recorder) *student.Service {
	if rec == nil {
		rec = &apitest.Recorder{}
	}
	return student.NewService(student.Deps{
		Jobs:         api.JobsAPI(),
		Applications: api.ApplicationsAPI(),
		Students:     api,
		Analytics:    api,
		Notify:       rec,
		MediaURL:     func(p string) string { return "http://localhost:5000" + p },
	})
}

func seedJobs(api *apitest.Backend) {
	api.Jobs = []entity.Job{
		{ID: "j1", Title: "Backend Engineer", Status: entity.JobOpen, Company: &entity.CompanySummary{CompanyName: "Acme"}},
		{ID: "j2", Title: "Data Analyst", Status: entity.JobClosed, Company: &entity.CompanySummary{CompanyName: "Globex"}},
		{ID: "j3", Title: "Frontend Dev", Description: "React y GO", Status: entity.JobOpen, Company: &entity.CompanySummary{CompanyName: "Initech"}},
	}
}

// ─── Listado ────────────────────────────────────────────────────────────────

func TestLoadJobs_CargaEnParaleloYMarcaPostuladas(t *testing.T) {
	api := apitest.New()
	seedJobs(api)
	api.Applications = []entity.Application{{ID: "a1", JobID: "j3", Status: entity.StatusApplied}}
	svc := newService(api, &apitest.Recorder{})

	view, err := svc.LoadJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, api.Calls("Jobs.List"))
	assert.Equal(t, 1, api.Calls("Applications.Mine"))

	cards := view.Visible("")
	require.Len(t, cards, 2)
	assert.Equal(t, "j1", cards[0].Job.ID)
	assert.Equal(t, student.ButtonState{Label: student.LabelApply}, cards[0].Button)
	assert.Equal(t, student.ButtonState{Label: student.LabelApplied, Disabled: true}, cards[1].Button)
}

func TestVisible_OfertasCerradasNuncaAparecen(t *testing.T) {
	api := apitest.New()
	seedJobs(api)
	view, err := newService(api, nil).LoadJobs(context.Background())
	require.NoError(t, err)

	for _, term := range []string{"", "data", "globex", "analyst"} {
		for _, c := range view.Visible(term) {
			assert.Equal(t, entity.JobOpen, c.Job.Status, term)
		}
	}
	assert.Len(t, view.Visible("go"), 1)
	assert.Len(t, view.Visible("ACME"), 1)
}

func TestLoadJobs_FalloDeUnaCarga(t *testing.T) {
	api := apitest.New()
	api.Fail["Applications.Mine"] = errors.New("Unauthorized")
	_, err := newService(api, nil).LoadJobs(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, api.Calls("Jobs.List"), "ambas cargas terminan")
}

// ─── Postulación ────────────────────────────────────────────────────────────

func TestApply_BotonPasaAApplied(t *testing.T) {
	api := apitest.New()
	seedJobs(api)
	rec := &apitest.Recorder{}
	view, err := newService(api, rec).LoadJobs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, student.LabelApply, view.Button("j1").Label)
	require.NoError(t, view.Apply(context.Background(), "j1"))
	assert.Equal(t, student.ButtonState{Label: student.LabelApplied, Disabled: true}, view.Button("j1"))
	assert.Equal(t, []string{student.MsgApplied}, rec.Successes)
}

func TestApply_DuplicadoSeRechazaSinRed(t *testing.T) {
	api := apitest.New()
	seedJobs(api)
	api.Applications = []entity.Application{{ID: "a1", JobID: "j1"}}
	view, err := newService(api, nil).LoadJobs(context.Background())
	require.NoError(t, err)

	before := api.TotalCalls()
	err = view.Apply(context.Background(), "j1")
	assert.ErrorIs(t, err, domain.ErrAlreadyApplied)
	assert.Equal(t, before, api.TotalCalls())
	assert.Equal(t, 0, api.Calls("Apply"))
}

func TestApply_OfertaCerradaSeRechazaLocalmente(t *testing.T) {
	api := apitest.New()
	seedJobs(api)
	view, _ := newService(api, nil).LoadJobs(context.Background())
	assert.ErrorIs(t, view.Apply(context.Background(), "j2"), domain.ErrJobNotOpen)
	assert.Equal(t, 0, api.Calls("Apply"))
}

func TestApply_ErrorDelServidorNotifica(t *testing.T) {
	api := apitest.New()
	seedJobs(api)
	api.Fail["Apply"] = errors.New("Job is no longer accepting applications")
	rec := &apitest.Recorder{}
	view, _ := newService(api, rec).LoadJobs(context.Background())

	err := view.Apply(context.Background(), "j1")
	require.Error(t, err)
	assert.Equal(t, []string{"Job is no longer accepting applications"}, rec.Errors)
	assert.Equal(t, student.LabelApply, view.Button("j1").Label)
}

// ─── Perfil y currículum ────────────────────────────────────────────────────

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, student.SplitSkills(" Go, SQL ,, Docker, "))
	assert.Equal(t, []string{}, student.SplitSkills(""))
}

func TestSaveProfile_EnviaSkillsYRefresca(t *testing.T) {
	api := apitest.New()
	rec := &apitest.Recorder{}
	svc := newService(api, rec)

	view, err := svc.SaveProfile(context.Background(), student.ProfileForm{FirstName: "Asha", LastName: "Rao", Skills: "Go, SQL"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, api.LastProfile.Skills)
	assert.Equal(t, "Asha Rao", view.FullName)
	assert.Equal(t, "Go, SQL", view.SkillsDisplay)
	assert.Equal(t, 1, api.Calls("Students.Profile"))
	assert.Equal(t, []string{student.MsgProfileSaved}, rec.Successes)
}

func TestUploadResume_NoPDFSinRed(t *testing.T) {
	api := apitest.New()
	rec := &apitest.Recorder{}
	_, err := newService(api, rec).UploadResume(context.Background(), "cv.docx", []byte("PK\x03\x04 word document"))
	assert.ErrorIs(t, err, domain.ErrNotPDF)
	assert.Equal(t, 0, api.TotalCalls())
	assert.Equal(t, []string{student.MsgResumeNotPDF}, rec.Errors)
}

func TestUploadResume_DemasiadoGrandeSinRed(t *testing.T) {
	api := apitest.New()
	rec := &apitest.Recorder{}
	big := append(append([]byte{}, pdfBytes...), bytes.Repeat([]byte("0"), 5*1024*1024)...)

	_, err := newService(api, rec).UploadResume(context.Background(), "cv.pdf", big)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	assert.Equal(t, 0, api.TotalCalls())
	assert.Equal(t, []string{student.MsgResumeTooLarge}, rec.Errors)
}

func TestUploadResume_SubeYResuelveEnlace(t *testing.T) {
	api := apitest.New()
	rec := &apitest.Recorder{}
	view, err := newService(api, rec).UploadResume(context.Background(), "cv.pdf", pdfBytes)
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, api.LastUpload)
	assert.Equal(t, "http://localhost:5000/uploads/cv.pdf", view.ResumeLink)
	assert.Equal(t, []string{student.MsgResumeUploaded}, rec.Successes)
}

func TestDashboard_DelegaEnAnalytics(t *testing.T) {
	api := apitest.New()
	api.StudentStats = entity.StudentStats{TotalApplied: 3, HiredCount: 1}
	stats, err := newService(api, nil).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalApplied)
}
