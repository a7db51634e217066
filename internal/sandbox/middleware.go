package sandbox

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/placement-portal/internal/application/dto"
	"github.com/jhoicas/placement-portal/pkg/jwt"
)

// Locals keys para la identidad del token en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// AuthMiddleware valida el Bearer Token JWT y carga user_id, email y role en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return reject(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return reject(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "Expected format: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return reject(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Empty token")
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return reject(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireRole autoriza solo los roles indicados (sin distinguir mayúsculas).
// Token sin rol -> 401 MISSING_ROLE; rol ajeno -> 403 FORBIDDEN.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return reject(c, fiber.StatusUnauthorized, "MISSING_ROLE", "Token has no role")
		}
		for _, r := range roles {
			if strings.EqualFold(r, role) {
				return c.Next()
			}
		}
		return reject(c, fiber.StatusForbidden, "FORBIDDEN", "Access denied")
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetRole devuelve el rol del token tal como viene (STUDENT, COMPANY, ADMIN).
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetActor identidad completa de la petición.
func GetActor(c *fiber.Ctx) Actor {
	return Actor{
		UserID: GetUserID(c),
		Email:  localString(c, LocalEmail),
		Role:   strings.ToUpper(GetRole(c)),
	}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

func reject(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.APIError{Error: msg, Code: code})
}
