package ports

import (
	"context"
	"time"

	"github.com/jhoicas/placement-portal/internal/application/dto"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
)

// Puertos de salida hacia el backend REST. El adaptador concreto vive en
// infrastructure/apiclient; los casos de uso solo conocen estos contratos.

// Claves del almacenamiento durable.
const (
	KeyUser  = "user"
	KeyToken = "token"
	KeyRole  = "role"
)

// KeyValue almacenamiento durable (equivalente a localStorage del navegador).
type KeyValue interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// AuthAPI registro y login. Logout elimina token y rol del almacenamiento.
type AuthAPI interface {
	Register(ctx context.Context, in dto.RegisterRequest) error
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
	Logout(ctx context.Context) error
}

// JobsAPI ofertas.
type JobsAPI interface {
	List(ctx context.Context) ([]entity.Job, error)
	Mine(ctx context.Context) ([]entity.Job, error)
	Get(ctx context.Context, id string) (*entity.Job, error)
	Create(ctx context.Context, in dto.JobInput) (*entity.Job, error)
	Update(ctx context.Context, id string, in dto.JobInput) (*entity.Job, error)
	Delete(ctx context.Context, id string) error
}

// ApplicationsAPI postulaciones.
type ApplicationsAPI interface {
	Apply(ctx context.Context, jobID string) (*entity.Application, error)
	Mine(ctx context.Context) ([]entity.Application, error)
	CompanyAll(ctx context.Context) ([]entity.Application, error)
	ForJob(ctx context.Context, jobID string) ([]entity.Application, error)
	UpdateStatus(ctx context.Context, id string, status entity.ApplicationStatus) (*entity.Application, error)
}

// StudentsAPI perfil y currículum del estudiante.
type StudentsAPI interface {
	Profile(ctx context.Context) (*entity.StudentProfile, error)
	UpdateProfile(ctx context.Context, in dto.ProfileUpdate) (*entity.StudentProfile, error)
	UploadResume(ctx context.Context, filename string, content []byte) (*dto.UploadResponse, error)
}

// AdminAPI administración de la plataforma.
type AdminAPI interface {
	Stats(ctx context.Context) (*entity.AdminStats, error)
	Users(ctx context.Context) ([]entity.Account, error)
	UpdateUserStatus(ctx context.Context, id string, status entity.AccountStatus) error
	DeleteUser(ctx context.Context, id string) error
	PlacementReport(ctx context.Context) ([]entity.PlacementRow, error)
}

// AnalyticsAPI métricas por rol.
type AnalyticsAPI interface {
	Platform(ctx context.Context) (*entity.AdminStats, error)
	Student(ctx context.Context) (*entity.StudentStats, error)
	Company(ctx context.Context) (*entity.CompanyStats, error)
}

// ReportRenderer serializa el reporte de colocación en un formato descargable.
type ReportRenderer interface {
	Format() string
	ContentType() string
	Render(rows []entity.PlacementRow, generatedAt time.Time) ([]byte, error)
}
