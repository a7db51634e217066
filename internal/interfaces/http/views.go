package http

import (
	"context"
	"sync"

	"github.com/jhoicas/placement-portal/internal/application/admin"
	"github.com/jhoicas/placement-portal/internal/application/company"
	"github.com/jhoicas/placement-portal/internal/application/session"
	"github.com/jhoicas/placement-portal/internal/application/student"
)

// ViewCache vistas montadas de la sesión actual. Los GET de listado las (re)cargan y las
// mutaciones actúan sobre la vista montada, cargándola solo si falta. Se vacía en
// login/logout y cuando cambia la identidad de la sesión.
type ViewCache struct {
	session *session.Store

	mu          sync.Mutex
	owner       string
	studentJobs *student.JobsView
	companyJobs *company.JobsBoard
	candidates  map[string]*company.CandidatesBoard // por filtro de oferta ("" = todas)
	users       *admin.UsersBoard
}

// NewViewCache cache vacía ligada a store.
func NewViewCache(store *session.Store) *ViewCache {
	return &ViewCache{session: store, candidates: make(map[string]*company.CandidatesBoard)}
}

// Reset descarta todas las vistas montadas.
func (v *ViewCache) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.clearLocked()
}

func (v *ViewCache) clearLocked() {
	v.studentJobs = nil
	v.companyJobs = nil
	v.candidates = make(map[string]*company.CandidatesBoard)
	v.users = nil
}

// syncOwnerLocked vacía la cache si la sesión ya no es la que montó las vistas.
func (v *ViewCache) syncOwnerLocked() {
	owner := ""
	if id, ok := v.session.Current(); ok {
		owner = id.ID + "|" + id.Role
	}
	if owner != v.owner {
		v.clearLocked()
		v.owner = owner
	}
}

// mount devuelve la vista del slot; con reload o slot vacío la carga y la guarda.
func mount[T any](v *ViewCache, slot **T, reload bool, load func() (*T, error)) (*T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.syncOwnerLocked()
	if *slot != nil && !reload {
		return *slot, nil
	}
	view, err := load()
	if err != nil {
		return nil, err
	}
	*slot = view
	return view, nil
}

// StudentJobs listado de ofertas del estudiante.
func (v *ViewCache) StudentJobs(ctx context.Context, svc *student.Service, reload bool) (*student.JobsView, error) {
	return mount(v, &v.studentJobs, reload, func() (*student.JobsView, error) { return svc.LoadJobs(ctx) })
}

// CompanyJobs ofertas propias de la empresa.
func (v *ViewCache) CompanyJobs(ctx context.Context, svc *company.Service, reload bool) (*company.JobsBoard, error) {
	return mount(v, &v.companyJobs, reload, func() (*company.JobsBoard, error) { return svc.LoadJobs(ctx) })
}

// Users gestión de cuentas del admin.
func (v *ViewCache) Users(ctx context.Context, svc *admin.Service, reload bool) (*admin.UsersBoard, error) {
	return mount(v, &v.users, reload, func() (*admin.UsersBoard, error) { return svc.LoadUsers(ctx) })
}

// Candidates candidatos montados para el filtro jobID.
func (v *ViewCache) Candidates(ctx context.Context, svc *company.Service, jobID string, reload bool) (*company.CandidatesBoard, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.syncOwnerLocked()
	if board, ok := v.candidates[jobID]; ok && !reload {
		return board, nil
	}
	board, err := svc.LoadCandidates(ctx, jobID)
	if err != nil {
		return nil, err
	}
	v.candidates[jobID] = board
	return board, nil
}

// DropCandidates descarta los candidatos montados (p. ej. tras eliminar una oferta).
func (v *ViewCache) DropCandidates() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.candidates = make(map[string]*company.CandidatesBoard)
}
