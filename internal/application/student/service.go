// Package student casos de uso de las páginas del estudiante: dashboard, ofertas,
// postulaciones y perfil con currículum.
package student

import (
	"context"

	"github.com/jhoicas/placement-portal/internal/application/notify"
	"github.com/jhoicas/placement-portal/internal/application/ports"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
	"github.com/jhoicas/placement-portal/pkg/config"
	"github.com/jhoicas/placement-portal/pkg/logger"
)

// Mensajes visibles.
const (
	MsgApplied           = "Application submitted successfully!"
	MsgApplyFailed       = "Failed to apply for job"
	MsgProfileSaved      = "Profile saved successfully!"
	MsgProfileFailed     = "Failed to save profile"
	MsgResumeUploaded    = "Resume uploaded successfully!"
	MsgResumeFailed      = "Failed to upload resume"
	MsgResumeNotPDF      = "Please upload a PDF file"
	MsgResumeTooLarge    = "File size should be less than 5MB"
	MsgJobsLoadFailed    = "Failed to load jobs"
	MsgProfileLoadFailed = "Failed to load profile"
)

// Deps puertos que usa el servicio.
type Deps struct {
	Jobs         ports.JobsAPI
	Applications ports.ApplicationsAPI
	Students     ports.StudentsAPI
	Analytics    ports.AnalyticsAPI
	Notify       notify.Publisher
	Logger       *logger.Logger
	// MediaURL resuelve rutas de medios del backend; nil deja la ruta tal cual.
	MediaURL func(string) string
	// ResumeMaxBytes límite de la subida; 0 = 5 MiB.
	ResumeMaxBytes int64
}

// Service casos de uso del estudiante.
type Service struct {
	jobs      ports.JobsAPI
	apps      ports.ApplicationsAPI
	students  ports.StudentsAPI
	analytics ports.AnalyticsAPI
	notify    notify.Publisher
	log       *logger.Logger
	media     func(string) string
	maxResume int64
}

// NewService construye el servicio.
func NewService(d Deps) *Service {
	s := &Service{
		jobs:      d.Jobs,
		apps:      d.Applications,
		students:  d.Students,
		analytics: d.Analytics,
		notify:    d.Notify,
		log:       d.Logger,
		media:     d.MediaURL,
		maxResume: d.ResumeMaxBytes,
	}
	if s.notify == nil {
		s.notify = notify.Discard
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.media == nil {
		s.media = func(p string) string { return p }
	}
	if s.maxResume <= 0 {
		s.maxResume = config.DefaultResumeMaxBytes
	}
	return s
}

// Dashboard métricas del estudiante.
func (s *Service) Dashboard(ctx context.Context) (*entity.StudentStats, error) {
	return s.analytics.Student(ctx)
}

// Applications postulaciones propias.
func (s *Service) Applications(ctx context.Context) ([]entity.Application, error) {
	return s.apps.Mine(ctx)
}
