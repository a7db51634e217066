package admin_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/placement-portal/internal/application/admin"
	"github.com/jhoicas/placement-portal/internal/application/apitest"
	"github.com/jhoicas/placement-portal/internal/application/ports"
	"github.com/jhoicas/placement-portal/internal/domain"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
	"github.com/jhoicas/placement-portal/internal/domain/search"
	"github.com/jhoicas/placement-portal/internal/infrastructure/report"
)

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newService(api *apitest.Backend, rec *apitest.Recorder) *admin.Service {
	renderers := map[string]ports.ReportRenderer{}
	for f, r := range report.NewRegistry(time.UTC) {
		renderers[f] = r
	}
	return admin.NewService(admin.Deps{
		Admin:     api,
		Jobs:      api.JobsAPI(),
		Renderers: renderers,
		Notify:    rec,
		Now:       func() time.Time { return fixedNow },
	})
}

func accounts() []entity.Account {
	return []entity.Account{
		{ID: "s1", Email: "asha@x.com", Role: "STUDENT", Status: entity.AccountActive, StudentProfile: &entity.StudentName{FirstName: "Asha", LastName: "Rao"}},
		{ID: "c1", Email: "hr@acme.com", Role: "COMPANY", Status: entity.AccountPending, CompanyProfile: &entity.CompanySummary{CompanyName: "Acme"}},
		{ID: "c2", Email: "hr@globex.com", Role: "COMPANY", Status: entity.AccountBlocked, CompanyProfile: &entity.CompanySummary{CompanyName: "Globex"}},
		{ID: "ad", Email: "root@portal.com", Role: "ADMIN", Status: entity.AccountActive},
	}
}

// ─── Indicadores ────────────────────────────────────────────────────────────

func TestDerive_Indicadores(t *testing.T) {
	o := admin.Derive(entity.AdminStats{TotalStudents: 3, PlacedStudents: 2, TotalApplications: 7, TotalCompanies: 4, TotalJobs: 10})
	assert.Equal(t, int64(67), o.PlacementRate)
	assert.Equal(t, "2.3", o.ApplicationsPerStudent)
	assert.Equal(t, "2.5", o.JobsPerCompany)
}

func TestDerive_DenominadorCero(t *testing.T) {
	o := admin.Derive(entity.AdminStats{TotalJobs: 5, TotalApplications: 2})
	assert.Equal(t, int64(0), o.PlacementRate)
	assert.Equal(t, "0", o.ApplicationsPerStudent)
	assert.Equal(t, "0", o.JobsPerCompany)
}

func TestDerive_RedondeoMitadHaciaArriba(t *testing.T) {
	o := admin.Derive(entity.AdminStats{TotalStudents: 8, PlacedStudents: 1})
	assert.Equal(t, int64(13), o.PlacementRate) // 12.5
}

// ─── Usuarios ───────────────────────────────────────────────────────────────

func TestUsers_AprobarPendienteSinRecarga(t *testing.T) {
	api := apitest.New()
	api.Accounts = accounts()
	rec := &apitest.Recorder{}
	board, err := newService(api, rec).LoadUsers(context.Background())
	require.NoError(t, err)

	acc, err := board.SetStatus(context.Background(), "c1", entity.AccountActive)
	require.NoError(t, err)
	assert.Equal(t, entity.AccountActive, acc.Status)

	local, ok := board.Account("c1")
	require.True(t, ok)
	assert.Equal(t, entity.AccountActive, local.Status)
	assert.Equal(t, 1, api.Calls("Admin.Users"), "sin recarga")
	assert.Equal(t, []string{"User status updated to ACTIVE"}, rec.Successes)
}

func TestUsers_AdminProtegido(t *testing.T) {
	api := apitest.New()
	api.Accounts = accounts()
	board, _ := newService(api, &apitest.Recorder{}).LoadUsers(context.Background())

	_, err := board.SetStatus(context.Background(), "ad", entity.AccountBlocked)
	assert.ErrorIs(t, err, domain.ErrProtectedAccount)
	assert.ErrorIs(t, board.Delete(context.Background(), "ad"), domain.ErrProtectedAccount)
	assert.Equal(t, 0, api.Calls("Admin.UpdateUserStatus"))
	assert.Equal(t, 0, api.Calls("Admin.DeleteUser"))
}

func TestUsers_TransicionSinControl(t *testing.T) {
	api := apitest.New()
	api.Accounts = accounts()
	board, _ := newService(api, &apitest.Recorder{}).LoadUsers(context.Background())

	_, err := board.SetStatus(context.Background(), "c2", entity.AccountRejected)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUsers_FiltroYAcciones(t *testing.T) {
	api := apitest.New()
	api.Accounts = accounts()
	board, _ := newService(api, &apitest.Recorder{}).LoadUsers(context.Background())

	rows := board.Filter(search.TabCompany, "")
	require.Len(t, rows, 2)
	assert.Equal(t, "Acme", rows[0].Name)
	assert.Equal(t, "Approve", rows[0].Actions[0].Label)
	assert.Equal(t, "Unblock", rows[1].Actions[0].Label)

	rows = board.Filter(search.TabAll, "ROOT@")
	require.Len(t, rows, 1)
	assert.Equal(t, "Admin User", rows[0].Name)
	assert.False(t, rows[0].Deletable)
	assert.Empty(t, rows[0].Actions)
}

func TestUsers_DeleteQuitaDelListado(t *testing.T) {
	api := apitest.New()
	api.Accounts = accounts()
	rec := &apitest.Recorder{}
	board, _ := newService(api, rec).LoadUsers(context.Background())

	require.NoError(t, board.Delete(context.Background(), "s1"))
	_, ok := board.Account("s1")
	assert.False(t, ok)
	assert.Equal(t, []string{admin.MsgUserDeleted}, rec.Successes)
}

// ─── Reporte ────────────────────────────────────────────────────────────────

func reportRows() []entity.PlacementRow {
	return []entity.PlacementRow{
		{StudentName: "Asha Rao", StudentEmail: "asha@x.com", CompanyName: "Acme", JobTitle: "SWE", Status: entity.StatusHired, AppliedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)},
		{StudentName: "Ben Ode", StudentEmail: "ben@x.com", CompanyName: "Globex", JobTitle: "Analyst", Status: entity.StatusApplied, AppliedAt: time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)},
	}
}

func TestReport_FiltroYColocados(t *testing.T) {
	api := apitest.New()
	api.Report = reportRows()
	view, err := newService(api, &apitest.Recorder{}).LoadReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, view.Placed())
	assert.Len(t, view.Filter("globex"), 1)
	assert.Len(t, view.Filter(""), 2)
}

func TestExportReport_CSV(t *testing.T) {
	api := apitest.New()
	api.Report = reportRows()[:1]
	rec := &apitest.Recorder{}

	exp, err := newService(api, rec).ExportReport(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "placement_report_2024-06-01.csv", exp.Filename)
	assert.Equal(t, "Student Name,Email,Company,Job Title,Status,Date Applied\n\"Asha Rao\",\"asha@x.com\",\"Acme\",\"SWE\",\"HIRED\",\"3/5/2024\"", string(exp.Body))
	assert.Equal(t, []string{admin.MsgReportGenerated}, rec.Successes)
}

func TestExportReport_FormatoDesconocido(t *testing.T) {
	api := apitest.New()
	_, err := newService(api, &apitest.Recorder{}).ExportReport(context.Background(), "docx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, api.TotalCalls())
}

func TestExportReport_FalloNotifica(t *testing.T) {
	api := apitest.New()
	api.Fail["Admin.PlacementReport"] = errors.New("Access denied")
	rec := &apitest.Recorder{}
	_, err := newService(api, rec).ExportReport(context.Background(), "xml")
	require.Error(t, err)
	assert.Equal(t, []string{"Failed to generate report: Access denied"}, rec.Errors)
}

func TestDeleteJob(t *testing.T) {
	api := apitest.New()
	api.Jobs = []entity.Job{{ID: "j1"}}
	rec := &apitest.Recorder{}
	svc := newService(api, rec)
	require.NoError(t, svc.DeleteJob(context.Background(), "j1"))
	jobs, err := svc.AllJobs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
