package entity

import "time"

// JobStatus ciclo abierto/cerrado de una oferta.
type JobStatus string

const (
	JobOpen   JobStatus = "OPEN"
	JobClosed JobStatus = "CLOSED"
)

// CompanySummary datos de la empresa embebidos en ofertas y cuentas.
type CompanySummary struct {
	CompanyName string `json:"companyName"`
}

// Job oferta publicada por una empresa. Solo la empresa dueña o un admin la modifican.
type Job struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Requirements string          `json:"requirements"`
	Location     string          `json:"location,omitempty"`
	Salary       string          `json:"salary,omitempty"`
	Status       JobStatus       `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	CompanyID    string          `json:"companyId"`
	Company      *CompanySummary `json:"company,omitempty"`
}

// CompanyName nombre de la empresa dueña, vacío si el backend no lo incluyó.
func (j Job) CompanyName() string {
	if j.Company == nil {
		return ""
	}
	return j.Company.CompanyName
}

// IsOpen solo las ofertas OPEN admiten postulaciones.
func (j Job) IsOpen() bool {
	return j.Status == JobOpen
}
