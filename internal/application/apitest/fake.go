// Package apitest dobles en memoria de los puertos de la API para tests de casos de uso.
// Cuenta las llamadas por operación para verificar rechazos locales sin red.
package apitest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/placement-portal/internal/application/dto"
	"github.com/jhoicas/placement-portal/internal/application/ports"
	"github.com/jhoicas/placement-portal/internal/domain"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
)

// Backend implementa todos los puertos sobre un estado en memoria.
type Backend struct {
	mu    sync.Mutex
	calls map[string]int

	Identity entity.Identity
	Token    string

	Jobs         []entity.Job
	MyJobs       []entity.Job
	Applications []entity.Application
	ProfileData  entity.StudentProfile
	Accounts     []entity.Account
	Report       []entity.PlacementRow

	AdminStats   entity.AdminStats
	StudentStats entity.StudentStats
	CompanyStats entity.CompanyStats

	// Fail error forzado por operación ("Apply", "Jobs.List", ...).
	Fail map[string]error

	LastRegister dto.RegisterRequest
	LastJobInput dto.JobInput
	LastProfile  dto.ProfileUpdate
	LastUpload   []byte
}

var (
	_ ports.AuthAPI         = (*Backend)(nil)
	_ ports.StudentsAPI     = (*Backend)(nil)
	_ ports.AdminAPI        = (*Backend)(nil)
	_ ports.AnalyticsAPI    = (*Backend)(nil)
	_ ports.ApplicationsAPI = Applications{}
	_ ports.JobsAPI         = Jobs{}
)

// New backend vacío.
func New() *Backend {
	return &Backend{calls: make(map[string]int), Fail: make(map[string]error)}
}

// Calls número de llamadas a op.
func (b *Backend) Calls(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

// TotalCalls llamadas acumuladas a cualquier operación.
func (b *Backend) TotalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		n += c
	}
	return n
}

func (b *Backend) hit(op string) error {
	b.calls[op]++
	return b.Fail[op]
}

// ─── Auth ────────────────────────────────────────────────────────────────────

func (b *Backend) Register(_ context.Context, in dto.RegisterRequest) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.LastRegister = in
	return b.hit("Register")
}

func (b *Backend) Login(_ context.Context, email, _ string) (*dto.LoginResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.hit("Login"); err != nil {
		return nil, err
	}
	id := b.Identity
	if id.Email == "" {
		id.Email = email
	}
	return &dto.LoginResponse{User: id, Token: b.Token}, nil
}

func (b *Backend) Logout(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hit("Logout")
}

// ─── Jobs ────────────────────────────────────────────────────────────────────

// Jobs vista JobsAPI del backend (evita choque de nombres con AdminAPI/AuthAPI).
type Jobs struct{ *Backend }

// JobsAPI adaptador JobsAPI.
func (b *Backend) JobsAPI() Jobs { return Jobs{b} }

func (j Jobs) List(context.Context) ([]entity.Job, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.hit("Jobs.List"); err != nil {
		return nil, err
	}
	return append([]entity.Job(nil), j.Jobs...), nil
}

func (j Jobs) Mine(context.Context) ([]entity.Job, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.hit("Jobs.Mine"); err != nil {
		return nil, err
	}
	return append([]entity.Job(nil), j.MyJobs...), nil
}

func (j Jobs) Get(_ context.Context, id string) (*entity.Job, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.hit("Jobs.Get"); err != nil {
		return nil, err
	}
	for _, job := range append(j.Jobs, j.MyJobs...) {
		if job.ID == id {
			out := job
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (j Jobs) Create(_ context.Context, in dto.JobInput) (*entity.Job, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.LastJobInput = in
	if err := j.hit("Jobs.Create"); err != nil {
		return nil, err
	}
	job := entity.Job{
		ID:           fmt.Sprintf("job-%d", len(j.MyJobs)+1),
		Title:        in.Title,
		Description:  in.Description,
		Requirements: in.Requirements,
		Location:     in.Location,
		Salary:       in.Salary,
		Status:       entity.JobOpen,
		CreatedAt:    time.Now().UTC(),
	}
	j.MyJobs = append(j.MyJobs, job)
	return &job, nil
}

func (j Jobs) Update(_ context.Context, id string, in dto.JobInput) (*entity.Job, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.LastJobInput = in
	if err := j.hit("Jobs.Update"); err != nil {
		return nil, err
	}
	for i := range j.MyJobs {
		if j.MyJobs[i].ID == id {
			j.MyJobs[i].Status = in.Status
			out := j.MyJobs[i]
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (j Jobs) Delete(_ context.Context, id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.hit("Jobs.Delete"); err != nil {
		return err
	}
	j.Jobs = removeJob(j.Jobs, id)
	j.MyJobs = removeJob(j.MyJobs, id)
	return nil
}

func removeJob(jobs []entity.Job, id string) []entity.Job {
	out := make([]entity.Job, 0, len(jobs))
	for _, job := range jobs {
		if job.ID != id {
			out = append(out, job)
		}
	}
	return out
}

// ─── Applications ────────────────────────────────────────────────────────────

// Applications vista ApplicationsAPI del backend.
type Applications struct{ *Backend }

// ApplicationsAPI adaptador ApplicationsAPI.
func (b *Backend) ApplicationsAPI() Applications { return Applications{b} }

func (a Applications) Apply(_ context.Context, jobID string) (*entity.Application, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.hit("Apply"); err != nil {
		return nil, err
	}
	app := entity.Application{
		ID:        fmt.Sprintf("app-%d", len(a.Applications)+1),
		JobID:     jobID,
		Status:    entity.StatusApplied,
		AppliedAt: time.Now().UTC(),
	}
	a.Applications = append(a.Applications, app)
	return &app, nil
}

func (a Applications) Mine(context.Context) ([]entity.Application, error) {
	return a.list("Applications.Mine")
}

func (a Applications) CompanyAll(context.Context) ([]entity.Application, error) {
	return a.list("Applications.CompanyAll")
}

func (a Applications) ForJob(_ context.Context, jobID string) ([]entity.Application, error) {
	all, err := a.list("Applications.ForJob")
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, app := range all {
		if app.JobID == jobID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (a Applications) UpdateStatus(_ context.Context, id string, status entity.ApplicationStatus) (*entity.Application, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.hit("Applications.UpdateStatus"); err != nil {
		return nil, err
	}
	for i := range a.Applications {
		if a.Applications[i].ID == id {
			a.Applications[i].Status = status
			out := a.Applications[i]
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (a Applications) list(op string) ([]entity.Application, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.hit(op); err != nil {
		return nil, err
	}
	return append([]entity.Application(nil), a.Applications...), nil
}

// ─── Students ────────────────────────────────────────────────────────────────

func (b *Backend) Profile(context.Context) (*entity.StudentProfile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.hit("Students.Profile"); err != nil {
		return nil, err
	}
	p := b.ProfileData
	return &p, nil
}

func (b *Backend) UpdateProfile(_ context.Context, in dto.ProfileUpdate) (*entity.StudentProfile, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.LastProfile = in
	if err := b.hit("Students.UpdateProfile"); err != nil {
		return nil, err
	}
	b.ProfileData.FirstName, b.ProfileData.LastName = in.FirstName, in.LastName
	b.ProfileData.Skills = in.Skills
	p := b.ProfileData
	return &p, nil
}

func (b *Backend) UploadResume(_ context.Context, filename string, content []byte) (*dto.UploadResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.LastUpload = content
	if err := b.hit("Students.UploadResume"); err != nil {
		return nil, err
	}
	b.ProfileData.ResumeURL = "/uploads/" + filename
	return &dto.UploadResponse{Message: "Resume uploaded successfully", ResumeURL: b.ProfileData.ResumeURL}, nil
}

// ─── Admin ───────────────────────────────────────────────────────────────────

func (b *Backend) Stats(context.Context) (*entity.AdminStats, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.hit("Admin.Stats"); err != nil {
		return nil, err
	}
	s := b.AdminStats
	return &s, nil
}

func (b *Backend) Users(context.Context) ([]entity.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.hit("Admin.Users"); err != nil {
		return nil, err
	}
	return append([]entity.Account(nil), b.Accounts...), nil
}

func (b *Backend) UpdateUserStatus(_ context.Context, id string, status entity.AccountStatus) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.hit("Admin.UpdateUserStatus"); err != nil {
		return err
	}
	for i := range b.Accounts {
		if b.Accounts[i].ID == id {
			b.Accounts[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (b *Backend) DeleteUser(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.hit("Admin.DeleteUser"); err != nil {
		return err
	}
	out := b.Accounts[:0]
	for _, a := range b.Accounts {
		if a.ID != id {
			out = append(out, a)
		}
	}
	b.Accounts = out
	return nil
}

func (b *Backend) PlacementReport(context.Context) ([]entity.PlacementRow, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.hit("Admin.PlacementReport"); err != nil {
		return nil, err
	}
	return append([]entity.PlacementRow(nil), b.Report...), nil
}

// ─── Analytics ───────────────────────────────────────────────────────────────

func (b *Backend) Platform(context.Context) (*entity.AdminStats, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.hit("Analytics.Platform"); err != nil {
		return nil, err
	}
	s := b.AdminStats
	return &s, nil
}

func (b *Backend) Student(context.Context) (*entity.StudentStats, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.hit("Analytics.Student"); err != nil {
		return nil, err
	}
	s := b.StudentStats
	return &s, nil
}

func (b *Backend) Company(context.Context) (*entity.CompanyStats, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.hit("Analytics.Company"); err != nil {
		return nil, err
	}
	s := b.CompanyStats
	return &s, nil
}

// Recorder publisher que guarda las notificaciones en orden.
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, msg)
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, msg)
}
