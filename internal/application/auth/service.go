// Package auth casos de uso de autenticación del lado del portal: login, registro y logout.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/placement-portal/internal/application/dto"
	"github.com/jhoicas/placement-portal/internal/application/notify"
	"github.com/jhoicas/placement-portal/internal/application/ports"
	"github.com/jhoicas/placement-portal/internal/application/session"
	"github.com/jhoicas/placement-portal/internal/domain"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
	"github.com/jhoicas/placement-portal/pkg/logger"
)

// Mensajes visibles.
const (
	MsgLoginFailed     = "Login failed. Please check your credentials."
	MsgRegisterFailed  = "Registration failed. Please try again."
	MsgPendingApproval = "Registration successful! Your account is pending admin approval."
)

// Service orquesta la API de auth y el store de sesión.
type Service struct {
	api     ports.AuthAPI
	session *session.Store
	notify  notify.Publisher
	log     *logger.Logger
}

// NewService construye el servicio. pub y log pueden ser nil.
func NewService(api ports.AuthAPI, store *session.Store, pub notify.Publisher, log *logger.Logger) *Service {
	if pub == nil {
		pub = notify.Discard
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{api: api, session: store, notify: pub, log: log}
}

// LoginResult identidad normalizada y dashboard de destino.
type LoginResult struct {
	Identity entity.Identity `json:"user"`
	Redirect string          `json:"redirect"`
}

// Login autentica contra el backend y abre la sesión local.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	res, err := s.api.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, withFallback(err, MsgLoginFailed)
	}
	id, err := s.session.Login(ctx, res.User, res.Token)
	if err != nil {
		return nil, err
	}
	role, err := id.RoleKind()
	if err != nil {
		return nil, err
	}
	return &LoginResult{Identity: id, Redirect: domain.DashboardPath(role)}, nil
}

// RegisterInput formulario de registro. Name es el nombre completo (estudiante) o la razón social (empresa).
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// RegisterResult resultado del registro. Las empresas quedan pendientes de aprobación y no inician sesión.
type RegisterResult struct {
	PendingApproval bool         `json:"pendingApproval"`
	Message         string       `json:"message,omitempty"`
	Login           *LoginResult `json:"login,omitempty"`
}

// Register crea la cuenta. Estudiante: divide el nombre e inicia sesión automáticamente.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	if in.Role == nil {
		return nil, fmt.Errorf("%w: role requerido", domain.ErrInvalidInput)
	}
	req := BuildRegisterRequest(in)
	if err := s.api.Register(ctx, req); err != nil {
		return nil, withFallback(err, MsgRegisterFailed)
	}

	pending := domain.MatchRole(in.Role,
		func(domain.Student) bool { return false },
		func(domain.Company) bool { return true },
		func(domain.Admin) bool { return false },
	)
	if pending {
		s.notify.Success(MsgPendingApproval)
		return &RegisterResult{PendingApproval: true, Message: MsgPendingApproval}, nil
	}
	login, err := s.Login(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	return &RegisterResult{Login: login}, nil
}

// BuildRegisterRequest arma el cuerpo de POST /auth/register según el rol.
func BuildRegisterRequest(in RegisterInput) dto.RegisterRequest {
	req := dto.RegisterRequest{
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
		Role:     domain.WireName(in.Role),
	}
	domain.MatchRole(in.Role,
		func(domain.Student) struct{} {
			req.FirstName, req.LastName = SplitName(in.Name)
			return struct{}{}
		},
		func(domain.Company) struct{} {
			req.CompanyName = in.Name
			return struct{}{}
		},
		func(domain.Admin) struct{} { return struct{}{} },
	)
	return req
}

// SplitName primera palabra como nombre y el resto como apellido; con una sola palabra se usa en ambos.
func SplitName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return full, full
	case 1:
		return parts[0], parts[0]
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// Logout cierra la sesión local y borra token y rol.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.session.Logout(ctx); err != nil {
		return err
	}
	return s.api.Logout(ctx)
}

// fallbackError conserva la causa pero sustituye un mensaje vacío.
type fallbackError struct {
	msg string
	err error
}

func (e *fallbackError) Error() string { return e.msg }
func (e *fallbackError) Unwrap() error { return e.err }

func withFallback(err error, fallback string) error {
	if strings.TrimSpace(err.Error()) != "" {
		return err
	}
	return &fallbackError{msg: fallback, err: err}
}
