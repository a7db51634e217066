package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/placement-portal/internal/domain"
)

// Identity perfil normalizado del usuario autenticado. Lo crea la respuesta de
// login/registro y lo posee en exclusiva el store de sesión.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"` // minúsculas tras Login: student | company | admin
	AvatarURL   string `json:"avatar,omitempty"`
}

// RoleKind devuelve la variante tipada del rol.
func (i Identity) RoleKind() (domain.Role, error) {
	return domain.ParseRole(i.Role)
}

// AccountStatus estado administrativo de una cuenta.
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountBlocked  AccountStatus = "BLOCKED"
	AccountPending  AccountStatus = "PENDING"
	AccountRejected AccountStatus = "REJECTED"
)

// Account cuenta de usuario tal como la ve el panel de administración.
type Account struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	Role           string          `json:"role"` // STUDENT | COMPANY | ADMIN
	Status         AccountStatus   `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
	StudentProfile *StudentName    `json:"studentProfile,omitempty"`
	CompanyProfile *CompanySummary `json:"companyProfile,omitempty"`
}

// StudentName nombre y apellido del estudiante.
type StudentName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// IsAdmin las cuentas admin nunca se bloquean ni se eliminan desde el cliente.
func (a Account) IsAdmin() bool {
	return strings.EqualFold(a.Role, "ADMIN")
}

// DisplayName nombre visible según el rol: estudiante "Nombre Apellido", empresa su razón social.
func (a Account) DisplayName() string {
	switch strings.ToUpper(a.Role) {
	case "STUDENT":
		if a.StudentProfile != nil {
			return a.StudentProfile.FirstName + " " + a.StudentProfile.LastName
		}
	case "COMPANY":
		if a.CompanyProfile != nil {
			return a.CompanyProfile.CompanyName
		}
	}
	return "Admin User"
}
