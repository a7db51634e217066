package sandbox

import (
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/placement-portal/internal/application/dto"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
)

// ListJobs todas las ofertas, más recientes primero.
func (b *Backend) ListJobs() []entity.Job {
	b.st.mu.RLock()
	defer b.st.mu.RUnlock()
	return b.st.jobsWhere(func(*entity.Job) bool { return true })
}

// CompanyJobs ofertas de una empresa.
func (b *Backend) CompanyJobs(companyID string) []entity.Job {
	b.st.mu.RLock()
	defer b.st.mu.RUnlock()
	return b.st.jobsWhere(func(j *entity.Job) bool { return j.CompanyID == companyID })
}

// GetJob una oferta por ID.
func (b *Backend) GetJob(id string) (*entity.Job, error) {
	b.st.mu.RLock()
	defer b.st.mu.RUnlock()
	j, ok := b.st.jobs[id]
	if !ok {
		return nil, notFound("Job not found")
	}
	out := b.st.jobView(j)
	return &out, nil
}

// CreateJob publica una oferta OPEN de la empresa.
func (b *Backend) CreateJob(companyID string, in dto.JobInput) (*entity.Job, error) {
	if err := validateJob(in); err != nil {
		return nil, err
	}
	j := &entity.Job{
		ID:           uuid.New().String(),
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		Requirements: strings.TrimSpace(in.Requirements),
		Location:     strings.TrimSpace(in.Location),
		Salary:       strings.TrimSpace(in.Salary),
		Status:       entity.JobOpen,
		CreatedAt:    b.now(),
		CompanyID:    companyID,
	}
	b.st.mu.Lock()
	defer b.st.mu.Unlock()
	b.st.jobs[j.ID] = j
	out := b.st.jobView(j)
	return &out, nil
}

// UpdateJob reemplaza la oferta; solo la empresa dueña o un admin.
func (b *Backend) UpdateJob(actor Actor, id string, in dto.JobInput) (*entity.Job, error) {
	if err := validateJob(in); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.JobOpen
	}
	if status != entity.JobOpen && status != entity.JobClosed {
		return nil, badRequest("Invalid job status")
	}

	b.st.mu.Lock()
	defer b.st.mu.Unlock()
	j, err := b.ownedJob(actor, id)
	if err != nil {
		return nil, err
	}
	j.Title = strings.TrimSpace(in.Title)
	j.Description = strings.TrimSpace(in.Description)
	j.Requirements = strings.TrimSpace(in.Requirements)
	j.Location = strings.TrimSpace(in.Location)
	j.Salary = strings.TrimSpace(in.Salary)
	j.Status = status
	out := b.st.jobView(j)
	return &out, nil
}

// DeleteJob elimina la oferta y sus postulaciones.
func (b *Backend) DeleteJob(actor Actor, id string) error {
	b.st.mu.Lock()
	defer b.st.mu.Unlock()
	if _, err := b.ownedJob(actor, id); err != nil {
		return err
	}
	b.st.deleteJob(id)
	return nil
}

// ownedJob requiere lock de escritura tomado.
func (b *Backend) ownedJob(actor Actor, id string) (*entity.Job, error) {
	j, ok := b.st.jobs[id]
	if !ok {
		return nil, notFound("Job not found")
	}
	if actor.Role != RoleAdmin && j.CompanyID != actor.UserID {
		return nil, forbidden("You can only manage your own jobs")
	}
	return j, nil
}

func (s *store) deleteJob(id string) {
	delete(s.jobs, id)
	for appID, a := range s.apps {
		if a.JobID == id {
			delete(s.apps, appID)
		}
	}
}

func validateJob(in dto.JobInput) error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(in.Requirements) == "" {
		missing = append(missing, "requirements")
	}
	if len(missing) > 0 {
		return badRequest("Missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}
