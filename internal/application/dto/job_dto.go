package dto

import "github.com/jhoicas/placement-portal/internal/domain/entity"

// JobInput cuerpo de POST /jobs y PUT /jobs/:id. Location y Salary se omiten si están vacíos.
type JobInput struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Requirements string           `json:"requirements"`
	Location     string           `json:"location,omitempty"`
	Salary       string           `json:"salary,omitempty"`
	Status       entity.JobStatus `json:"status,omitempty"`
}

// JobInputFrom copia editable de una oferta existente (el PUT envía la oferta completa).
func JobInputFrom(j entity.Job) JobInput {
	return JobInput{
		Title:        j.Title,
		Description:  j.Description,
		Requirements: j.Requirements,
		Location:     j.Location,
		Salary:       j.Salary,
		Status:       j.Status,
	}
}

// ApplyRequest cuerpo de POST /applications/apply.
type ApplyRequest struct {
	JobID string `json:"jobId"`
}

// ProfileUpdate cuerpo de PUT /students/profile.
type ProfileUpdate struct {
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Phone          string   `json:"phone"`
	Location       string   `json:"location"`
	About          string   `json:"about"`
	University     string   `json:"university"`
	GraduationYear string   `json:"graduationYear"`
	Skills         []string `json:"skills"`
}

// UploadResponse salida de POST /upload/resume.
type UploadResponse struct {
	Message   string `json:"message,omitempty"`
	ResumeURL string `json:"resumeUrl"`
}
