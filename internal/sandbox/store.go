// Package sandbox backend de referencia en memoria que implementa el contrato REST del
// portal: auth JWT, contraseñas bcrypt, RBAC y reglas de estado aplicadas en el servidor.
package sandbox

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/placement-portal/internal/domain/entity"
)

// Roles tal como viajan en el token y en las cuentas.
const (
	RoleStudent = "STUDENT"
	RoleCompany = "COMPANY"
	RoleAdmin   = "ADMIN"
)

type userRecord struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	Status       entity.AccountStatus
	CreatedAt    time.Time
	CompanyName  string
	Profile      entity.StudentProfile
}

func (u *userRecord) displayName() string {
	switch u.Role {
	case RoleStudent:
		return u.Profile.FirstName + " " + u.Profile.LastName
	case RoleCompany:
		return u.CompanyName
	default:
		return "Admin User"
	}
}

func (u *userRecord) account() entity.Account {
	a := entity.Account{ID: u.ID, Email: u.Email, Role: u.Role, Status: u.Status, CreatedAt: u.CreatedAt}
	switch u.Role {
	case RoleStudent:
		a.StudentProfile = &entity.StudentName{FirstName: u.Profile.FirstName, LastName: u.Profile.LastName}
	case RoleCompany:
		a.CompanyProfile = &entity.CompanySummary{CompanyName: u.CompanyName}
	}
	return a
}

// store estado del sandbox protegido por RWMutex.
type store struct {
	mu      sync.RWMutex
	users   map[string]*userRecord
	byEmail map[string]string
	jobs    map[string]*entity.Job
	apps    map[string]*entity.Application
	uploads map[string][]byte
}

func newStore() *store {
	return &store{
		users:   make(map[string]*userRecord),
		byEmail: make(map[string]string),
		jobs:    make(map[string]*entity.Job),
		apps:    make(map[string]*entity.Application),
		uploads: make(map[string][]byte),
	}
}

// ─── Vistas (requieren lock de lectura tomado) ────────────────────────────────

func (s *store) jobView(j *entity.Job) entity.Job {
	out := *j
	if owner, ok := s.users[j.CompanyID]; ok {
		out.Company = &entity.CompanySummary{CompanyName: owner.CompanyName}
	}
	return out
}

func (s *store) appView(a *entity.Application) entity.Application {
	out := *a
	if j, ok := s.jobs[a.JobID]; ok {
		sum := &entity.JobSummary{Title: j.Title, Description: j.Description}
		if owner, ok := s.users[j.CompanyID]; ok {
			sum.Company = &entity.CompanySummary{CompanyName: owner.CompanyName}
		}
		out.Job = sum
	}
	if st, ok := s.users[a.StudentID]; ok {
		out.Student = &entity.StudentSummary{
			FirstName: st.Profile.FirstName,
			LastName:  st.Profile.LastName,
			ResumeURL: st.Profile.ResumeURL,
			User:      &entity.UserEmail{Email: st.Email},
		}
	}
	return out
}

func (s *store) jobsWhere(keep func(*entity.Job) bool) []entity.Job {
	out := make([]entity.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if keep(j) {
			out = append(out, s.jobView(j))
		}
	}
	sort.Slice(out, func(i, k int) bool { return newer(out[i].CreatedAt, out[k].CreatedAt, out[i].ID, out[k].ID) })
	return out
}

func (s *store) appsWhere(keep func(*entity.Application) bool) []entity.Application {
	out := make([]entity.Application, 0, len(s.apps))
	for _, a := range s.apps {
		if keep(a) {
			out = append(out, s.appView(a))
		}
	}
	sort.Slice(out, func(i, k int) bool { return newer(out[i].AppliedAt, out[k].AppliedAt, out[i].ID, out[k].ID) })
	return out
}

func sortAccounts(out []entity.Account) {
	sort.Slice(out, func(i, k int) bool { return newer(out[i].CreatedAt, out[k].CreatedAt, out[i].ID, out[k].ID) })
}

// newer orden descendente por fecha, desempate estable por ID.
func newer(a, b time.Time, idA, idB string) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return idA < idB
}
