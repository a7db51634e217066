package entity

import "time"

// PlacementRow fila del reporte de colocación del panel de administración.
type PlacementRow struct {
	StudentName  string            `json:"studentName"`
	StudentEmail string            `json:"studentEmail"`
	CompanyName  string            `json:"companyName"`
	JobTitle     string            `json:"jobTitle"`
	Status       ApplicationStatus `json:"status"`
	AppliedAt    time.Time         `json:"appliedAt"`
}

// AdminStats totales de la plataforma.
type AdminStats struct {
	TotalStudents     int `json:"totalStudents"`
	TotalCompanies    int `json:"totalCompanies"`
	TotalJobs         int `json:"totalJobs"`
	TotalApplications int `json:"totalApplications"`
	PlacedStudents    int `json:"placedStudents"`
}

// StudentStats tarjetas del dashboard de estudiante.
type StudentStats struct {
	TotalApplied       int           `json:"totalApplied"`
	HiredCount         int           `json:"hiredCount"`
	ShortlistedCount   int           `json:"shortlistedCount"`
	RejectedCount      int           `json:"rejectedCount"`
	RecentApplications []Application `json:"recentApplications"`
}

// CompanyStats tarjetas del dashboard de empresa.
type CompanyStats struct {
	TotalJobs          int           `json:"totalJobs"`
	OpenJobs           int           `json:"openJobs"`
	TotalApps          int           `json:"totalApps"`
	HiredCount         int           `json:"hiredCount"`
	ShortlistedCount   int           `json:"shortlistedCount"`
	RecentApplications []Application `json:"recentApplications"`
}
