package dto

import "github.com/jhoicas/placement-portal/internal/domain/entity"

// RegisterRequest entrada de POST /auth/register. Role en mayúsculas.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
}

// LoginRequest entrada de POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida de login: usuario + token bearer.
type LoginResponse struct {
	User  entity.Identity `json:"user"`
	Token string          `json:"token"`
}

// StatusUpdate cuerpo de PUT /applications/:id/status y PUT /admin/users/:id/status.
type StatusUpdate struct {
	Status string `json:"status"`
}
