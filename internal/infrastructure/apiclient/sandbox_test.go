package apiclient_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/placement-portal/internal/application/dto"
	"github.com/jhoicas/placement-portal/internal/application/ports"
	"github.com/jhoicas/placement-portal/internal/domain"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
	"github.com/jhoicas/placement-portal/internal/infrastructure/apiclient"
	"github.com/jhoicas/placement-portal/internal/infrastructure/storage"
	"github.com/jhoicas/placement-portal/internal/sandbox"
	"github.com/jhoicas/placement-portal/pkg/config"
)

// startSandbox levanta el backend en memoria sobre un listener loopback.
func startSandbox(t *testing.T) string {
	t.Helper()
	b := sandbox.NewBackend(sandbox.Options{
		JWT:        config.JWTConfig{Secret: "integration-secret", Issuer: "sandbox-it", Expiration: 30},
		BcryptCost: bcrypt.MinCost,
	})
	require.NoError(t, b.SeedDemo())
	app := sandbox.NewApp(b)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String()
}

func loggedIn(t *testing.T, base, email string) (*apiclient.Client, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	c, err := apiclient.New(apiclient.Options{BaseURL: base + "/api", BackendURL: base, Store: kv})
	require.NoError(t, err)
	_, err = c.Auth.Login(context.Background(), email, sandbox.DemoPassword)
	require.NoError(t, err)
	return c, kv
}

func TestSandbox_FlujoEstudianteEmpresaAdmin(t *testing.T) {
	ctx := context.Background()
	base := startSandbox(t)

	student, kv := loggedIn(t, base, sandbox.DemoStudentEmail)
	role, found, err := kv.Get(ctx, ports.KeyRole)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "STUDENT", role)

	jobs, err := student.Jobs.List(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	var analyst entity.Job
	for _, j := range jobs {
		if j.Title == "Data Analyst" {
			analyst = j
		}
	}
	require.NotEmpty(t, analyst.ID)

	app, err := student.Applications.Apply(ctx, analyst.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApplied, app.Status)

	_, err = student.Applications.Apply(ctx, analyst.ID)
	require.Error(t, err)
	assert.Equal(t, "You have already applied to this job", err.Error())
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	up, err := student.Students.UploadResume(ctx, "cv.pdf", []byte("%PDF-1.4\n%%EOF\n"))
	require.NoError(t, err)
	profile, err := student.Students.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, up.ResumeURL, profile.ResumeURL)
	assert.Equal(t, base+up.ResumeURL, student.MediaURL(profile.ResumeURL))

	company, _ := loggedIn(t, base, sandbox.DemoCompanyEmail)
	cands, err := company.Applications.ForJob(ctx, analyst.ID)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, "Demo Student", cands[0].CandidateName())

	_, err = company.Applications.UpdateStatus(ctx, app.ID, entity.StatusHired)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "APPLIED -> HIRED no es una arista legal")
	updated, err := company.Applications.UpdateStatus(ctx, app.ID, entity.StatusShortlisted)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusShortlisted, updated.Status)

	admin, _ := loggedIn(t, base, sandbox.DemoAdminEmail)
	rows, err := admin.Admin.PlacementReport(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = student.Admin.Stats(ctx)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestSandbox_EmpresaNuevaPendiente(t *testing.T) {
	ctx := context.Background()
	base := startSandbox(t)
	c, err := apiclient.New(apiclient.Options{BaseURL: base + "/api", Store: storage.NewMemory()})
	require.NoError(t, err)

	require.NoError(t, c.Auth.Register(ctx, dto.RegisterRequest{
		Email: "jobs@umbrella.com", Password: "secret1", Role: "COMPANY", CompanyName: "Umbrella",
	}))
	_, err = c.Auth.Login(ctx, "jobs@umbrella.com", "secret1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	err = c.Auth.Register(ctx, dto.RegisterRequest{Email: "jobs@umbrella.com", Password: "secret1", Role: "COMPANY", CompanyName: "Umbrella"})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}
