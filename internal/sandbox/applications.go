package sandbox

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/placement-portal/internal/domain/entity"
	"github.com/jhoicas/placement-portal/internal/domain/lifecycle"
)

// Actor identidad autenticada de la petición.
type Actor struct {
	UserID string
	Email  string
	Role   string
}

// Apply crea la postulación APPLIED; una por par estudiante/oferta y solo a ofertas OPEN.
func (b *Backend) Apply(studentID, jobID string) (*entity.Application, error) {
	if jobID == "" {
		return nil, badRequest("jobId is required")
	}
	b.st.mu.Lock()
	defer b.st.mu.Unlock()
	j, ok := b.st.jobs[jobID]
	if !ok {
		return nil, notFound("Job not found")
	}
	if !j.IsOpen() {
		return nil, badRequest("This job is no longer accepting applications")
	}
	for _, a := range b.st.apps {
		if a.JobID == jobID && a.StudentID == studentID {
			return nil, badRequest("You have already applied to this job")
		}
	}
	a := &entity.Application{
		ID:        uuid.New().String(),
		JobID:     jobID,
		StudentID: studentID,
		Status:    lifecycle.Initial,
		AppliedAt: b.now(),
	}
	b.st.apps[a.ID] = a
	out := b.st.appView(a)
	return &out, nil
}

// StudentApplications postulaciones del estudiante.
func (b *Backend) StudentApplications(studentID string) []entity.Application {
	b.st.mu.RLock()
	defer b.st.mu.RUnlock()
	return b.st.appsWhere(func(a *entity.Application) bool { return a.StudentID == studentID })
}

// CompanyApplications postulaciones a cualquier oferta de la empresa.
func (b *Backend) CompanyApplications(companyID string) []entity.Application {
	b.st.mu.RLock()
	defer b.st.mu.RUnlock()
	return b.st.appsWhere(func(a *entity.Application) bool {
		j, ok := b.st.jobs[a.JobID]
		return ok && j.CompanyID == companyID
	})
}

// JobApplications postulaciones de una oferta; la empresa solo ve las suyas.
func (b *Backend) JobApplications(actor Actor, jobID string) ([]entity.Application, error) {
	b.st.mu.RLock()
	defer b.st.mu.RUnlock()
	j, ok := b.st.jobs[jobID]
	if !ok {
		return nil, notFound("Job not found")
	}
	if actor.Role != RoleAdmin && j.CompanyID != actor.UserID {
		return nil, forbidden("You can only view applications for your own jobs")
	}
	return b.st.appsWhere(func(a *entity.Application) bool { return a.JobID == jobID }), nil
}

// UpdateApplicationStatus aplica una arista legal del ciclo de vida.
func (b *Backend) UpdateApplicationStatus(actor Actor, id string, target entity.ApplicationStatus) (*entity.Application, error) {
	if !lifecycle.IsKnown(target) {
		return nil, badRequest("Invalid status")
	}
	b.st.mu.Lock()
	defer b.st.mu.Unlock()
	a, ok := b.st.apps[id]
	if !ok {
		return nil, notFound("Application not found")
	}
	j, ok := b.st.jobs[a.JobID]
	if !ok || (actor.Role != RoleAdmin && j.CompanyID != actor.UserID) {
		return nil, forbidden("You can only manage applications for your own jobs")
	}
	if !lifecycle.CanTransition(a.Status, target) {
		return nil, badRequest(fmt.Sprintf("Cannot change status from %s to %s", a.Status, target))
	}
	a.Status = target
	out := b.st.appView(a)
	return &out, nil
}
