package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/placement-portal/internal/application/dto"
	"github.com/jhoicas/placement-portal/internal/application/ports"
)

var _ ports.AuthAPI = (*AuthClient)(nil)

// AuthClient endpoints /auth.
type AuthClient struct{ c *Client }

// Register POST /auth/register.
func (a *AuthClient) Register(ctx context.Context, in dto.RegisterRequest) error {
	return a.c.doJSON(ctx, http.MethodPost, "/auth/register", in, nil)
}

// Login POST /auth/login. Si hay token lo guarda junto con el rol.
func (a *AuthClient) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := a.c.doJSON(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	if out.Token != "" {
		if err := a.c.store.Set(ctx, ports.KeyToken, out.Token); err != nil {
			return nil, fmt.Errorf("guardar token: %w", err)
		}
		if err := a.c.store.Set(ctx, ports.KeyRole, out.User.Role); err != nil {
			return nil, fmt.Errorf("guardar rol: %w", err)
		}
	}
	return &out, nil
}

// Logout elimina token y rol. No hay endpoint de logout en el backend.
func (a *AuthClient) Logout(ctx context.Context) error {
	if err := a.c.store.Delete(ctx, ports.KeyToken); err != nil {
		return fmt.Errorf("borrar token: %w", err)
	}
	if err := a.c.store.Delete(ctx, ports.KeyRole); err != nil {
		return fmt.Errorf("borrar rol: %w", err)
	}
	return nil
}
