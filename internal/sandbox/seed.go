package sandbox

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/placement-portal/internal/domain/entity"
)

// Cuentas demo; todas con DemoPassword.
const (
	DemoStudentEmail = "demo@student.com"
	DemoCompanyEmail = "demo@company.com"
	DemoAdminEmail   = "demo@admin.com"
	DemoPassword     = "password"
)

// SeedDemo carga las cuentas demo, dos ofertas y una postulación. Idempotente por email.
func (b *Backend) SeedDemo() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), b.opts.BcryptCost)
	if err != nil {
		return fmt.Errorf("seed: hash: %w", err)
	}
	now := b.now()

	b.st.mu.Lock()
	defer b.st.mu.Unlock()
	if _, done := b.st.byEmail[DemoAdminEmail]; done {
		return nil
	}

	add := func(u *userRecord) {
		u.ID = uuid.New().String()
		u.PasswordHash = string(hash)
		u.Status = entity.AccountActive
		u.CreatedAt = now
		b.st.users[u.ID] = u
		b.st.byEmail[u.Email] = u.ID
	}
	adminUser := &userRecord{Email: DemoAdminEmail, Role: RoleAdmin}
	companyUser := &userRecord{Email: DemoCompanyEmail, Role: RoleCompany, CompanyName: "Demo Company"}
	studentUser := &userRecord{Email: DemoStudentEmail, Role: RoleStudent, Profile: entity.StudentProfile{
		FirstName:      "Demo",
		LastName:       "Student",
		University:     "State University",
		GraduationYear: "2025",
		Skills:         []string{"Go", "SQL"},
	}}
	add(adminUser)
	add(companyUser)
	add(studentUser)

	backend := &entity.Job{
		ID:           uuid.New().String(),
		Title:        "Backend Engineer",
		Description:  "Build and operate the placement APIs.",
		Requirements: "Go, PostgreSQL",
		Location:     "Remote",
		Salary:       "60000",
		Status:       entity.JobOpen,
		CreatedAt:    now.Add(-time.Hour),
		CompanyID:    companyUser.ID,
	}
	analyst := &entity.Job{
		ID:           uuid.New().String(),
		Title:        "Data Analyst",
		Description:  "Report on campus hiring trends.",
		Requirements: "SQL, spreadsheets",
		Status:       entity.JobOpen,
		CreatedAt:    now,
		CompanyID:    companyUser.ID,
	}
	b.st.jobs[backend.ID] = backend
	b.st.jobs[analyst.ID] = analyst

	app := &entity.Application{
		ID:        uuid.New().String(),
		JobID:     backend.ID,
		StudentID: studentUser.ID,
		Status:    entity.StatusApplied,
		AppliedAt: now,
	}
	b.st.apps[app.ID] = app

	b.log.Info().Int("users", len(b.st.users)).Int("jobs", len(b.st.jobs)).Msg("datos demo cargados")
	return nil
}
