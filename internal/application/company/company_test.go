package company_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/placement-portal/internal/application/apitest"
	"github.com/jhoicas/placement-portal/internal/application/company"
	"github.com/jhoicas/placement-portal/internal/domain"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
	"github.com/jhoicas/placement-portal/internal/domain/lifecycle"
)

func newService(api *apitest.Backend, rec *apitest.Recorder) *company.Service {
	return company.NewService(api.JobsAPI(), api.ApplicationsAPI(), api, rec, nil)
}

// ─── Publicar oferta ────────────────────────────────────────────────────────

func TestPostJob_OmiteOpcionalesVacios(t *testing.T) {
	api := apitest.New()
	rec := &apitest.Recorder{}
	job, err := newService(api, rec).PostJob(context.Background(), company.JobForm{
		Title: "SWE", Description: "Build things", Requirements: "Go", Location: "  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "SWE", job.Title)
	assert.Empty(t, api.LastJobInput.Location)
	assert.Empty(t, api.LastJobInput.Salary)
	assert.Equal(t, []string{company.MsgJobPosted}, rec.Successes)
}

func TestPostJob_CamposRequeridosSinRed(t *testing.T) {
	api := apitest.New()
	_, err := newService(api, &apitest.Recorder{}).PostJob(context.Background(), company.JobForm{Title: "SWE"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "description, requirements")
	assert.Equal(t, 0, api.TotalCalls())
}

// ─── Mis ofertas ────────────────────────────────────────────────────────────

func TestJobsBoard_ToggleEnviaOfertaCompleta(t *testing.T) {
	api := apitest.New()
	api.MyJobs = []entity.Job{{ID: "j1", Title: "SWE", Description: "d", Requirements: "r", Location: "Pune", Status: entity.JobOpen}}
	rec := &apitest.Recorder{}
	board, err := newService(api, rec).LoadJobs(context.Background())
	require.NoError(t, err)

	job, err := board.Toggle(context.Background(), "j1")
	require.NoError(t, err)
	assert.Equal(t, entity.JobClosed, job.Status)
	assert.Equal(t, "SWE", api.LastJobInput.Title)
	assert.Equal(t, "Pune", api.LastJobInput.Location)
	assert.Equal(t, entity.JobClosed, api.LastJobInput.Status)
	assert.Equal(t, entity.JobClosed, board.Jobs()[0].Status)
	assert.Equal(t, []string{"Job status updated to CLOSED"}, rec.Successes)
}

func TestJobsBoard_DeleteQuitaDelListado(t *testing.T) {
	api := apitest.New()
	api.MyJobs = []entity.Job{{ID: "j1"}, {ID: "j2"}}
	rec := &apitest.Recorder{}
	board, _ := newService(api, rec).LoadJobs(context.Background())

	require.NoError(t, board.Delete(context.Background(), "j1"))
	require.Len(t, board.Jobs(), 1)
	assert.Equal(t, "j2", board.Jobs()[0].ID)
	assert.Equal(t, 1, api.Calls("Jobs.Mine"))
}

func TestJobsBoard_DeleteFallidoNotifica(t *testing.T) {
	api := apitest.New()
	api.MyJobs = []entity.Job{{ID: "j1"}}
	api.Fail["Jobs.Delete"] = errors.New("")
	rec := &apitest.Recorder{}
	board, _ := newService(api, rec).LoadJobs(context.Background())

	require.Error(t, board.Delete(context.Background(), "j1"))
	assert.Len(t, board.Jobs(), 1)
	assert.Equal(t, []string{company.MsgJobDeleteFailed}, rec.Errors)
}

// ─── Candidatos ─────────────────────────────────────────────────────────────

func candidates() []entity.Application {
	return []entity.Application{
		{ID: "a1", JobID: "j1", Status: entity.StatusApplied, Student: &entity.StudentSummary{FirstName: "Asha", LastName: "Rao"}},
		{ID: "a2", JobID: "j1", Status: entity.StatusShortlisted},
		{ID: "a3", JobID: "j2", Status: entity.StatusHired},
	}
}

func TestCandidates_AccionesPorEstado(t *testing.T) {
	api := apitest.New()
	api.Applications = candidates()
	board, err := newService(api, &apitest.Recorder{}).LoadCandidates(context.Background(), "")
	require.NoError(t, err)

	list := board.Candidates()
	require.Len(t, list, 3)
	assert.Equal(t, "Asha Rao", list[0].Name)
	assert.Equal(t, []lifecycle.Action{
		{Label: "Shortlist", Target: entity.StatusShortlisted},
		{Label: "Reject", Target: entity.StatusRejected},
	}, list[0].Actions)
	assert.Equal(t, []lifecycle.Action{{Label: "Mark as Hired", Target: entity.StatusHired}}, list[1].Actions)
	assert.Empty(t, list[2].Actions)
}

func TestCandidates_FiltroPorOferta(t *testing.T) {
	api := apitest.New()
	api.Applications = candidates()
	board, err := newService(api, &apitest.Recorder{}).LoadCandidates(context.Background(), "j2")
	require.NoError(t, err)
	assert.Len(t, board.Candidates(), 1)
	assert.Equal(t, 1, api.Calls("Applications.ForJob"))
}

func TestCandidates_UpdateStatusParcheOptimista(t *testing.T) {
	api := apitest.New()
	api.Applications = candidates()
	rec := &apitest.Recorder{}
	board, _ := newService(api, rec).LoadCandidates(context.Background(), "")

	app, err := board.UpdateStatus(context.Background(), "a1", entity.StatusShortlisted)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusShortlisted, app.Status)
	assert.Equal(t, entity.StatusShortlisted, board.Candidates()[0].Application.Status)
	assert.Equal(t, 1, api.Calls("Applications.CompanyAll"), "sin recarga")
	assert.Equal(t, []string{"Application shortlisted successfully!"}, rec.Successes)
}

func TestCandidates_NuncaVuelveAApplied(t *testing.T) {
	api := apitest.New()
	api.Applications = candidates()
	board, _ := newService(api, &apitest.Recorder{}).LoadCandidates(context.Background(), "")

	for _, id := range []string{"a1", "a2", "a3"} {
		_, err := board.UpdateStatus(context.Background(), id, entity.StatusApplied)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, id)
	}
	_, err := board.UpdateStatus(context.Background(), "a2", entity.StatusRejected)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "SHORTLISTED -> REJECTED no tiene control")
	assert.Equal(t, 0, api.Calls("Applications.UpdateStatus"))
}

func TestDashboard_DelegaEnAnalytics(t *testing.T) {
	api := apitest.New()
	api.CompanyStats = entity.CompanyStats{TotalJobs: 4, OpenJobs: 2}
	stats, err := newService(api, &apitest.Recorder{}).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.OpenJobs)
}
