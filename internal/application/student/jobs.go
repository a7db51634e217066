package student

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/placement-portal/internal/application/notify"
	"github.com/jhoicas/placement-portal/internal/domain"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
	"github.com/jhoicas/placement-portal/internal/domain/search"
)

// Etiquetas del botón de postulación.
const (
	LabelApply    = "Apply Now"
	LabelApplying = "Applying..."
	LabelApplied  = "Applied"
)

// ButtonState estado del botón de una oferta.
type ButtonState struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

// JobCard oferta visible con su botón.
type JobCard struct {
	Job    entity.Job  `json:"job"`
	Button ButtonState `json:"button"`
}

// JobsView listado de ofertas montado: catálogo, conjunto de postuladas y petición en curso.
type JobsView struct {
	svc      *Service
	mu       sync.Mutex
	jobs     []entity.Job
	applied  map[string]struct{}
	applying map[string]struct{}
}

// LoadJobs carga ofertas y postulaciones propias en paralelo y espera a ambas.
func (s *Service) LoadJobs(ctx context.Context) (*JobsView, error) {
	var (
		jobs []entity.Job
		apps []entity.Application
		g    errgroup.Group
	)
	g.Go(func() error {
		var err error
		jobs, err = s.jobs.List(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		apps, err = s.apps.Mine(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Warn().Err(err).Msg("carga de ofertas fallida")
		return nil, err
	}

	applied := make(map[string]struct{}, len(apps))
	for _, a := range apps {
		applied[a.JobID] = struct{}{}
	}
	return &JobsView{svc: s, jobs: jobs, applied: applied, applying: make(map[string]struct{})}, nil
}

// Visible ofertas OPEN que coinciden con term, con el estado de su botón.
func (v *JobsView) Visible(term string) []JobCard {
	v.mu.Lock()
	defer v.mu.Unlock()
	jobs := search.StudentJobs(v.jobs, term)
	out := make([]JobCard, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, JobCard{Job: j, Button: v.buttonLocked(j.ID)})
	}
	return out
}

// Button estado del botón de la oferta jobID.
func (v *JobsView) Button(jobID string) ButtonState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.buttonLocked(jobID)
}

func (v *JobsView) buttonLocked(jobID string) ButtonState {
	if _, ok := v.applying[jobID]; ok {
		return ButtonState{Label: LabelApplying, Disabled: true}
	}
	if _, ok := v.applied[jobID]; ok {
		return ButtonState{Label: LabelApplied, Disabled: true}
	}
	return ButtonState{Label: LabelApply}
}

// HasApplied indica si jobID está en el conjunto de postuladas.
func (v *JobsView) HasApplied(jobID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.applied[jobID]
	return ok
}

// Apply postula a jobID. Si ya figura como postulada, o hay una petición en curso,
// se rechaza localmente sin enviar nada.
func (v *JobsView) Apply(ctx context.Context, jobID string) error {
	v.mu.Lock()
	if _, ok := v.applied[jobID]; ok {
		v.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrAlreadyApplied, jobID)
	}
	if _, ok := v.applying[jobID]; ok {
		v.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrRequestInFlight, jobID)
	}
	job, known := v.findLocked(jobID)
	if known && !job.IsOpen() {
		v.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrJobNotOpen, jobID)
	}
	v.applying[jobID] = struct{}{}
	v.mu.Unlock()

	_, err := v.svc.apps.Apply(ctx, jobID)

	v.mu.Lock()
	delete(v.applying, jobID)
	if err == nil {
		v.applied[jobID] = struct{}{}
	}
	v.mu.Unlock()

	if err != nil {
		notify.Failure(v.svc.notify, err, MsgApplyFailed)
		v.svc.log.Info().Err(err).Str("job_id", jobID).Msg("postulación rechazada")
		return err
	}
	v.svc.notify.Success(MsgApplied)
	v.svc.log.Info().Str("job_id", jobID).Msg("postulación enviada")
	return nil
}

func (v *JobsView) findLocked(jobID string) (entity.Job, bool) {
	for _, j := range v.jobs {
		if j.ID == jobID {
			return j, true
		}
	}
	return entity.Job{}, false
}
