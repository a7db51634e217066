package entity

import "time"

// ApplicationStatus estado de una postulación; las transiciones viven en domain/lifecycle.
type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "APPLIED"
	StatusShortlisted ApplicationStatus = "SHORTLISTED"
	StatusHired       ApplicationStatus = "HIRED"
	StatusRejected    ApplicationStatus = "REJECTED"
)

// Application postulación de un estudiante a una oferta (una por par estudiante/oferta).
type Application struct {
	ID        string            `json:"id"`
	JobID     string            `json:"jobId"`
	StudentID string            `json:"studentId"`
	Status    ApplicationStatus `json:"status"`
	AppliedAt time.Time         `json:"appliedAt"`
	Job       *JobSummary       `json:"job,omitempty"`
	Student   *StudentSummary   `json:"student,omitempty"`
}

// JobSummary oferta embebida en la postulación.
type JobSummary struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Company     *CompanySummary `json:"company,omitempty"`
}

// StudentSummary candidato embebido en la postulación (vista de empresa).
type StudentSummary struct {
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	ResumeURL string     `json:"resumeUrl,omitempty"`
	User      *UserEmail `json:"user,omitempty"`
}

// UserEmail email del usuario asociado a un perfil.
type UserEmail struct {
	Email string `json:"email"`
}

// CandidateName nombre completo del candidato.
func (a Application) CandidateName() string {
	if a.Student == nil {
		return ""
	}
	return a.Student.FirstName + " " + a.Student.LastName
}
