// Package admin casos de uso del panel de administración: métricas, usuarios,
// ofertas y reporte de colocación.
package admin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/placement-portal/internal/application/notify"
	"github.com/jhoicas/placement-portal/internal/application/ports"
	"github.com/jhoicas/placement-portal/internal/domain"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
	"github.com/jhoicas/placement-portal/internal/domain/lifecycle"
	"github.com/jhoicas/placement-portal/internal/domain/search"
	"github.com/jhoicas/placement-portal/pkg/logger"
)

// Mensajes visibles.
const (
	MsgUserDeleted      = "User deleted successfully"
	MsgUserDeleteFailed = "Failed to delete user"
	MsgUserStatusFailed = "Failed to update status"
	MsgJobDeleted       = "Job deleted successfully"
	MsgJobDeleteFailed  = "Failed to delete job"
	MsgReportGenerated  = "Placement report generated successfully!"
	MsgReportFailed     = "Failed to generate report: "
)

// Deps puertos y renderers del panel.
type Deps struct {
	Admin     ports.AdminAPI
	Jobs      ports.JobsAPI
	Renderers map[string]ports.ReportRenderer
	Notify    notify.Publisher
	Logger    *logger.Logger
	Now       func() time.Time
}

// Service casos de uso de administración.
type Service struct {
	admin     ports.AdminAPI
	jobs      ports.JobsAPI
	renderers map[string]ports.ReportRenderer
	notify    notify.Publisher
	log       *logger.Logger
	now       func() time.Time
}

// NewService construye el servicio.
func NewService(d Deps) *Service {
	s := &Service{admin: d.Admin, jobs: d.Jobs, renderers: d.Renderers, notify: d.Notify, log: d.Logger, now: d.Now}
	if s.notify == nil {
		s.notify = notify.Discard
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// ─── Métricas ─────────────────────────────────────────────────────────────────

// Overview métricas de la plataforma más los indicadores derivados.
type Overview struct {
	Stats                  entity.AdminStats `json:"stats"`
	PlacementRate          int64             `json:"placementRate"`          // porcentaje redondeado
	ApplicationsPerStudent string            `json:"applicationsPerStudent"` // un decimal, "0" sin estudiantes
	JobsPerCompany         string            `json:"jobsPerCompany"`         // un decimal, "0" sin empresas
}

// Derive calcula los indicadores; un denominador cero produce 0.
func Derive(st entity.AdminStats) Overview {
	o := Overview{Stats: st, ApplicationsPerStudent: "0", JobsPerCompany: "0"}
	if st.TotalStudents > 0 {
		students := decimal.NewFromInt(int64(st.TotalStudents))
		o.PlacementRate = decimal.NewFromInt(int64(st.PlacedStudents)).
			Mul(decimal.NewFromInt(100)).
			DivRound(students, 8).
			Round(0).
			IntPart()
		o.ApplicationsPerStudent = decimal.NewFromInt(int64(st.TotalApplications)).DivRound(students, 8).StringFixed(1)
	}
	if st.TotalCompanies > 0 {
		o.JobsPerCompany = decimal.NewFromInt(int64(st.TotalJobs)).
			DivRound(decimal.NewFromInt(int64(st.TotalCompanies)), 8).
			StringFixed(1)
	}
	return o
}

// Overview carga las métricas de la plataforma.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	st, err := s.admin.Stats(ctx)
	if err != nil {
		return nil, err
	}
	o := Derive(*st)
	return &o, nil
}

// ─── Usuarios ─────────────────────────────────────────────────────────────────

// UserRow cuenta con su nombre visible y acciones disponibles.
type UserRow struct {
	Account   entity.Account            `json:"account"`
	Name      string                    `json:"name"`
	Actions   []lifecycle.AccountAction `json:"actions"`
	Deletable bool                      `json:"deletable"`
}

// UsersBoard gestión de usuarios montada; los cambios se parchean en sitio sin recargar.
type UsersBoard struct {
	svc      *Service
	mu       sync.Mutex
	accounts []entity.Account
}

// LoadUsers carga todas las cuentas.
func (s *Service) LoadUsers(ctx context.Context) (*UsersBoard, error) {
	accounts, err := s.admin.Users(ctx)
	if err != nil {
		return nil, err
	}
	return &UsersBoard{svc: s, accounts: accounts}, nil
}

// Filter cuentas de la pestaña tab que coinciden con term (nombre o email).
func (b *UsersBoard) Filter(tab search.RoleTab, term string) []UserRow {
	b.mu.Lock()
	defer b.mu.Unlock()
	matched := search.Users(b.accounts, tab, term)
	out := make([]UserRow, 0, len(matched))
	for _, a := range matched {
		out = append(out, UserRow{
			Account:   a,
			Name:      a.DisplayName(),
			Actions:   lifecycle.AccountActions(a),
			Deletable: lifecycle.CanDelete(a),
		})
	}
	return out
}

// Account copia de la cuenta id.
func (b *UsersBoard) Account(id string) (entity.Account, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.indexLocked(id); i >= 0 {
		return b.accounts[i], true
	}
	return entity.Account{}, false
}

// SetStatus aplica una acción de moderación ofrecida y parchea la cuenta en sitio.
func (b *UsersBoard) SetStatus(ctx context.Context, id string, target entity.AccountStatus) (*entity.Account, error) {
	b.mu.Lock()
	i := b.indexLocked(id)
	if i < 0 {
		b.mu.Unlock()
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
	}
	acc := b.accounts[i]
	b.mu.Unlock()

	if !lifecycle.OffersAccount(acc, target) {
		if acc.IsAdmin() {
			return nil, fmt.Errorf("%w: %s", domain.ErrProtectedAccount, id)
		}
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, acc.Status, target)
	}
	if err := b.svc.admin.UpdateUserStatus(ctx, id, target); err != nil {
		notify.Failure(b.svc.notify, err, MsgUserStatusFailed)
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if i = b.indexLocked(id); i < 0 {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
	}
	b.accounts[i].Status = target
	b.svc.notify.Success(fmt.Sprintf("User status updated to %s", target))
	b.svc.log.Info().Str("user_id", id).Str("status", string(target)).Msg("estado de cuenta actualizado")
	out := b.accounts[i]
	return &out, nil
}

// Delete elimina una cuenta no admin y la quita del listado.
func (b *UsersBoard) Delete(ctx context.Context, id string) error {
	acc, ok := b.Account(id)
	if !ok {
		return fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
	}
	if !lifecycle.CanDelete(acc) {
		return fmt.Errorf("%w: %s", domain.ErrProtectedAccount, id)
	}
	if err := b.svc.admin.DeleteUser(ctx, id); err != nil {
		notify.Failure(b.svc.notify, err, MsgUserDeleteFailed)
		return err
	}
	b.mu.Lock()
	if i := b.indexLocked(id); i >= 0 {
		b.accounts = append(b.accounts[:i], b.accounts[i+1:]...)
	}
	b.mu.Unlock()
	b.svc.notify.Success(MsgUserDeleted)
	return nil
}

func (b *UsersBoard) indexLocked(id string) int {
	for i := range b.accounts {
		if b.accounts[i].ID == id {
			return i
		}
	}
	return -1
}

// ─── Ofertas ──────────────────────────────────────────────────────────────────

// AllJobs todas las ofertas, sin filtrar por estado.
func (s *Service) AllJobs(ctx context.Context) ([]entity.Job, error) {
	return s.jobs.List(ctx)
}

// DeleteJob elimina cualquier oferta (y sus postulaciones en el backend).
func (s *Service) DeleteJob(ctx context.Context, id string) error {
	if err := s.jobs.Delete(ctx, id); err != nil {
		notify.Failure(s.notify, err, MsgJobDeleteFailed)
		return err
	}
	s.notify.Success(MsgJobDeleted)
	return nil
}
