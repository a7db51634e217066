package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/placement-portal/internal/application/auth"
	"github.com/jhoicas/placement-portal/internal/application/guard"
	"github.com/jhoicas/placement-portal/internal/application/notify"
	"github.com/jhoicas/placement-portal/internal/application/session"
	"github.com/jhoicas/placement-portal/internal/domain"
	"github.com/jhoicas/placement-portal/internal/domain/entity"
)

// AuthHandler sesión local: login, registro, logout y estado.
type AuthHandler struct {
	svc      *auth.Service
	session  *session.Store
	notifier *notify.Notifier
	views    *ViewCache
}

// NewAuthHandler construye el handler de sesión.
func NewAuthHandler(svc *auth.Service, store *session.Store, n *notify.Notifier, views *ViewCache) *AuthHandler {
	return &AuthHandler{svc: svc, session: store, notifier: n, views: views}
}

// LoginRequest formulario de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest formulario de registro; Name es el nombre completo o la razón social.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SessionInfo estado de la sesión con su menú.
type SessionInfo struct {
	Authenticated bool             `json:"authenticated"`
	User          *entity.Identity `json:"user,omitempty"`
	Dashboard     string           `json:"dashboard"`
	Nav           []guard.NavItem  `json:"nav"`
}

// Session godoc
// @Summary      Estado de la sesión local
// @Tags         session
// @Produce      json
// @Success      200  {object}  SessionInfo
// @Router       /session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	info := SessionInfo{Dashboard: guard.Home, Nav: []guard.NavItem{}}
	if id, ok := h.session.Current(); ok {
		info.Authenticated = true
		info.User = &id
		if role := h.session.Role(); role != nil {
			info.Dashboard = domain.DashboardPath(role)
			info.Nav = guard.NavItems(role)
		}
	}
	return c.JSON(info)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  LoginRequest  true  "email, password"
// @Success      200   {object}  auth.LoginResult
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		return writeError(c, err)
	}
	h.views.Reset()
	return c.JSON(out)
}

// Register godoc
// @Summary      Registrar estudiante o empresa
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  RegisterRequest  true  "name, email, password, role"
// @Success      201   {object}  auth.RegisterResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Register(c.UserContext(), auth.RegisterInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     role,
	})
	if err != nil {
		return writeError(c, err)
	}
	if out.Login != nil {
		h.views.Reset()
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         session
// @Produce      json
// @Success      200  {object}  SessionInfo
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.svc.Logout(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	h.views.Reset()
	return h.Session(c)
}

// Notifications godoc
// @Summary      Últimas notificaciones
// @Tags         session
// @Produce      json
// @Success      200  {array}  notify.Notification
// @Router       /notifications [get]
func (h *AuthHandler) Notifications(c *fiber.Ctx) error {
	return c.JSON(h.notifier.Recent())
}
