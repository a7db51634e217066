package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/placement-portal/internal/domain/entity"
	"github.com/jhoicas/placement-portal/internal/domain/search"
)

func sampleJobs() []entity.Job {
	acme := &entity.CompanySummary{CompanyName: "Acme Corp"}
	globex := &entity.CompanySummary{CompanyName: "Globex"}
	return []entity.Job{
		{ID: "j1", Title: "Backend Engineer", Description: "Go services", Status: entity.JobOpen, Company: acme},
		{ID: "j2", Title: "Data Analyst", Description: "SQL and dashboards", Status: entity.JobClosed, Company: acme},
		{ID: "j3", Title: "Frontend Developer", Description: "React", Status: entity.JobOpen, Company: globex},
	}
}

func ids(jobs []entity.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestStudentJobs_ExcluyeCerradas(t *testing.T) {
	for _, term := range []string{"", "data", "acme", "SQL", "analyst", "zzz"} {
		for _, j := range search.StudentJobs(sampleJobs(), term) {
			assert.Equal(t, entity.JobOpen, j.Status, "término %q", term)
		}
	}
}

func TestStudentJobs_CoincideTituloEmpresaDescripcion(t *testing.T) {
	assert.Equal(t, []string{"j1", "j3"}, ids(search.StudentJobs(sampleJobs(), "")))
	assert.Equal(t, []string{"j1"}, ids(search.StudentJobs(sampleJobs(), "BACKEND")))
	assert.Equal(t, []string{"j3"}, ids(search.StudentJobs(sampleJobs(), "globex")))
	assert.Equal(t, []string{"j1"}, ids(search.StudentJobs(sampleJobs(), "go serv")))
	assert.Empty(t, search.StudentJobs(sampleJobs(), "analyst"))
}

func TestContains_FoldingUnicode(t *testing.T) {
	assert.True(t, search.Contains("Straße Logistics", "STRASSE"))
	assert.True(t, search.Contains("Ingeniería", "INGENIERÍA"))
	assert.False(t, search.Contains("Acme", "globex"))
}

func TestReport_FiltraPorEstudianteEmpresaCargo(t *testing.T) {
	rows := []entity.PlacementRow{
		{StudentName: "Asha Rao", CompanyName: "Acme", JobTitle: "SWE"},
		{StudentName: "Luis Pérez", CompanyName: "Globex", JobTitle: "Analyst"},
	}
	assert.Len(t, search.Report(rows, "asha"), 1)
	assert.Len(t, search.Report(rows, "globex"), 1)
	assert.Len(t, search.Report(rows, "swe"), 1)
	assert.Len(t, search.Report(rows, ""), 2)
}

func TestUsers_PestanaYBusqueda(t *testing.T) {
	accounts := []entity.Account{
		{ID: "u1", Email: "asha@x.com", Role: "STUDENT", StudentProfile: &entity.StudentName{FirstName: "Asha", LastName: "Rao"}},
		{ID: "u2", Email: "hr@acme.com", Role: "COMPANY", CompanyProfile: &entity.CompanySummary{CompanyName: "Acme"}},
		{ID: "u3", Email: "root@portal.edu", Role: "ADMIN"},
	}
	assert.Len(t, search.Users(accounts, search.TabAll, ""), 3)
	assert.Len(t, search.Users(accounts, search.TabCompany, ""), 1)
	assert.Len(t, search.Users(accounts, search.TabAll, "rao"), 1)
	assert.Len(t, search.Users(accounts, search.TabAll, "admin user"), 1)
	assert.Empty(t, search.Users(accounts, search.TabStudent, "acme"))
	assert.Equal(t, search.TabAll, search.ParseTab("whatever"))
	assert.Equal(t, search.TabAdmin, search.ParseTab("admin"))
}
