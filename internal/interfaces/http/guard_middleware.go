package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/placement-portal/internal/application/guard"
	"github.com/jhoicas/placement-portal/internal/application/session"
)

// GuardMiddleware evalúa el guard de rutas en cada petición; si redirige responde 302.
func GuardMiddleware(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := guard.Evaluate(c.Path(), store.Role())
		if d.Outcome == guard.Redirected {
			return c.Redirect(d.Target, fiber.StatusFound)
		}
		return c.Next()
	}
}
