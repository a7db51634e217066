// Package company casos de uso de las páginas de empresa: dashboard, publicar oferta,
// mis ofertas y candidatos.
package company

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/placement-portal/internal/application/dto"
	"github.com/jhoicas/placement-portal/internal/application/notify"
	"github.com/jhoicas/placement-portal/internal/application/ports"
	"github.com/jhoicas/placement-portal/internal/domain"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
	"github.com/jhoicas/placement-portal/internal/domain/lifecycle"
	"github.com/jhoicas/placement-portal/pkg/logger"
)

// Mensajes visibles.
const (
	MsgJobPosted        = "Job Posted Successfully!"
	MsgPostFailed       = "Failed to post job"
	MsgJobDeleted       = "Job deleted successfully"
	MsgJobDeleteFailed  = "Failed to delete job"
	MsgJobStatusFailed  = "Failed to update status"
	MsgAppStatusFailed  = "Failed to update application status"
	MsgCandidatesFailed = "Failed to load applications"
)

// Service casos de uso de empresa.
type Service struct {
	jobs      ports.JobsAPI
	apps      ports.ApplicationsAPI
	analytics ports.AnalyticsAPI
	notify    notify.Publisher
	log       *logger.Logger
}

// NewService construye el servicio. pub y log pueden ser nil.
func NewService(jobs ports.JobsAPI, apps ports.ApplicationsAPI, analytics ports.AnalyticsAPI, pub notify.Publisher, log *logger.Logger) *Service {
	if pub == nil {
		pub = notify.Discard
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{jobs: jobs, apps: apps, analytics: analytics, notify: pub, log: log}
}

// Dashboard métricas de la empresa.
func (s *Service) Dashboard(ctx context.Context) (*entity.CompanyStats, error) {
	return s.analytics.Company(ctx)
}

// JobForm formulario de nueva oferta.
type JobForm struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Location     string `json:"location"`
	Salary       string `json:"salary"`
}

// Validate campos obligatorios: título, descripción y requisitos.
func (f JobForm) Validate() error {
	var missing []string
	if strings.TrimSpace(f.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(f.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(f.Requirements) == "" {
		missing = append(missing, "requirements")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: campos requeridos %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

// PostJob publica la oferta; location y salary se omiten si están vacíos.
func (s *Service) PostJob(ctx context.Context, f JobForm) (*entity.Job, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	in := dto.JobInput{
		Title:        f.Title,
		Description:  f.Description,
		Requirements: f.Requirements,
		Location:     strings.TrimSpace(f.Location),
		Salary:       strings.TrimSpace(f.Salary),
	}
	job, err := s.jobs.Create(ctx, in)
	if err != nil {
		notify.Failure(s.notify, err, MsgPostFailed)
		return nil, err
	}
	s.notify.Success(MsgJobPosted)
	s.log.Info().Str("job_id", job.ID).Msg("oferta publicada")
	return job, nil
}

// JobsBoard "mis ofertas" montado; los cambios se aplican en sitio sin recargar.
type JobsBoard struct {
	svc  *Service
	mu   sync.Mutex
	jobs []entity.Job
}

// LoadJobs carga las ofertas propias (sin filtrar por estado).
func (s *Service) LoadJobs(ctx context.Context) (*JobsBoard, error) {
	jobs, err := s.jobs.Mine(ctx)
	if err != nil {
		return nil, err
	}
	return &JobsBoard{svc: s, jobs: jobs}, nil
}

// Jobs copia del listado actual.
func (b *JobsBoard) Jobs() []entity.Job {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]entity.Job(nil), b.jobs...)
}

// SetStatus envía la oferta completa con el nuevo estado y parchea la copia local.
func (b *JobsBoard) SetStatus(ctx context.Context, jobID string, status entity.JobStatus) (*entity.Job, error) {
	if status != entity.JobOpen && status != entity.JobClosed {
		return nil, fmt.Errorf("%w: estado de oferta %q", domain.ErrInvalidInput, status)
	}
	b.mu.Lock()
	idx := b.indexLocked(jobID)
	if idx < 0 {
		b.mu.Unlock()
		return nil, fmt.Errorf("%w: oferta %s", domain.ErrNotFound, jobID)
	}
	in := dto.JobInputFrom(b.jobs[idx])
	b.mu.Unlock()

	in.Status = status
	if _, err := b.svc.jobs.Update(ctx, jobID, in); err != nil {
		notify.Failure(b.svc.notify, err, MsgJobStatusFailed)
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if idx = b.indexLocked(jobID); idx < 0 {
		return nil, fmt.Errorf("%w: oferta %s", domain.ErrNotFound, jobID)
	}
	b.jobs[idx].Status = status
	b.svc.notify.Success(fmt.Sprintf("Job status updated to %s", status))
	out := b.jobs[idx]
	return &out, nil
}

// Toggle alterna OPEN/CLOSED.
func (b *JobsBoard) Toggle(ctx context.Context, jobID string) (*entity.Job, error) {
	b.mu.Lock()
	idx := b.indexLocked(jobID)
	var next entity.JobStatus = entity.JobClosed
	if idx >= 0 && b.jobs[idx].Status != entity.JobOpen {
		next = entity.JobOpen
	}
	b.mu.Unlock()
	return b.SetStatus(ctx, jobID, next)
}

// Delete elimina la oferta y la quita del listado.
func (b *JobsBoard) Delete(ctx context.Context, jobID string) error {
	if err := b.svc.jobs.Delete(ctx, jobID); err != nil {
		notify.Failure(b.svc.notify, err, MsgJobDeleteFailed)
		return err
	}
	b.mu.Lock()
	if idx := b.indexLocked(jobID); idx >= 0 {
		b.jobs = append(b.jobs[:idx], b.jobs[idx+1:]...)
	}
	b.mu.Unlock()
	b.svc.notify.Success(MsgJobDeleted)
	return nil
}

func (b *JobsBoard) indexLocked(jobID string) int {
	for i := range b.jobs {
		if b.jobs[i].ID == jobID {
			return i
		}
	}
	return -1
}

// Candidate postulación con las acciones disponibles para su estado.
type Candidate struct {
	Application entity.Application `json:"application"`
	Name        string             `json:"name"`
	Actions     []lifecycle.Action `json:"actions"`
}

// CandidatesBoard candidatos montados, con parche optimista tras cada cambio de estado.
type CandidatesBoard struct {
	svc      *Service
	mu       sync.Mutex
	apps     []entity.Application
	updating map[string]struct{}
}

// LoadCandidates todas las postulaciones a ofertas de la empresa. Con jobID != "" solo las de esa oferta.
func (s *Service) LoadCandidates(ctx context.Context, jobID string) (*CandidatesBoard, error) {
	var (
		apps []entity.Application
		err  error
	)
	if jobID != "" {
		apps, err = s.apps.ForJob(ctx, jobID)
	} else {
		apps, err = s.apps.CompanyAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return &CandidatesBoard{svc: s, apps: apps, updating: make(map[string]struct{})}, nil
}

// Candidates listado con acciones.
func (b *CandidatesBoard) Candidates() []Candidate {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Candidate, 0, len(b.apps))
	for _, a := range b.apps {
		c := Candidate{Application: a, Name: a.CandidateName(), Actions: lifecycle.CompanyActions(a.Status)}
		if _, busy := b.updating[a.ID]; busy {
			c.Actions = nil
		}
		out = append(out, c)
	}
	return out
}

// Actions acciones ofrecidas para la postulación id.
func (b *CandidatesBoard) Actions(id string) []lifecycle.Action {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, a := range b.apps {
		if a.ID == id {
			return lifecycle.CompanyActions(a.Status)
		}
	}
	return nil
}

// UpdateStatus dispara una acción ofrecida. Un destino sin control en la UI se rechaza localmente.
func (b *CandidatesBoard) UpdateStatus(ctx context.Context, id string, target entity.ApplicationStatus) (*entity.Application, error) {
	b.mu.Lock()
	idx := b.indexLocked(id)
	if idx < 0 {
		b.mu.Unlock()
		return nil, fmt.Errorf("%w: postulación %s", domain.ErrNotFound, id)
	}
	current := b.apps[idx].Status
	if !lifecycle.Offers(current, target) {
		b.mu.Unlock()
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current, target)
	}
	if _, busy := b.updating[id]; busy {
		b.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", domain.ErrRequestInFlight, id)
	}
	b.updating[id] = struct{}{}
	b.mu.Unlock()

	_, err := b.svc.apps.UpdateStatus(ctx, id, target)

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.updating, id)
	if err != nil {
		notify.Failure(b.svc.notify, err, MsgAppStatusFailed)
		return nil, err
	}
	if idx = b.indexLocked(id); idx < 0 {
		return nil, fmt.Errorf("%w: postulación %s", domain.ErrNotFound, id)
	}
	b.apps[idx].Status = target
	b.svc.notify.Success(fmt.Sprintf("Application %s successfully!", strings.ToLower(string(target))))
	b.svc.log.Info().Str("application_id", id).Str("status", string(target)).Msg("estado de postulación actualizado")
	out := b.apps[idx]
	return &out, nil
}

func (b *CandidatesBoard) indexLocked(id string) int {
	for i := range b.apps {
		if b.apps[i].ID == id {
			return i
		}
	}
	return -1
}
