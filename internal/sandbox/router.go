package sandbox

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Router registra las rutas del contrato REST bajo /api y los currículums en /uploads.
func Router(app *fiber.App, b *Backend) {
	h := NewHandler(b)

	app.Get(UploadsPrefix+":name", h.Upload)

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.Register)
	authGroup.Post("/login", h.Login)

	// Rutas protegidas (requieren Bearer Token de una cuenta activa)
	protected := api.Group("/", AuthMiddleware(b.Secret()), h.activeAccount)
	student := RequireRole(RoleStudent)
	company := RequireRole(RoleCompany)
	admin := RequireRole(RoleAdmin)

	jobs := protected.Group("/jobs")
	jobs.Get("/", h.ListJobs)
	jobs.Get("/my-jobs", company, h.MyJobs)
	jobs.Get("/:id", h.GetJob)
	jobs.Post("/", company, h.CreateJob)
	jobs.Put("/:id", RequireRole(RoleCompany, RoleAdmin), h.UpdateJob)
	jobs.Delete("/:id", RequireRole(RoleCompany, RoleAdmin), h.DeleteJob)

	apps := protected.Group("/applications")
	apps.Post("/apply", student, h.Apply)
	apps.Get("/my-applications", student, h.MyApplications)
	apps.Get("/company/all", company, h.CompanyApplications)
	apps.Get("/job/:id", RequireRole(RoleCompany, RoleAdmin), h.JobApplications)
	apps.Put("/:id/status", RequireRole(RoleCompany, RoleAdmin), h.UpdateApplicationStatus)

	students := protected.Group("/students", student)
	students.Get("/profile", h.Profile)
	students.Put("/profile", h.UpdateProfile)

	protected.Post("/upload/resume", student, h.UploadResume)

	adminGroup := protected.Group("/admin", admin)
	adminGroup.Get("/stats", h.AdminStats)
	adminGroup.Get("/users", h.Users)
	adminGroup.Put("/users/:id/status", h.UpdateUserStatus)
	adminGroup.Delete("/users/:id", h.DeleteUser)
	adminGroup.Get("/reports/placement", h.PlacementReport)

	analytics := protected.Group("/analytics")
	analytics.Get("/stats", admin, h.PlatformAnalytics)
	analytics.Get("/student", student, h.StudentAnalytics)
	analytics.Get("/company", company, h.CompanyAnalytics)
}

// NewApp app Fiber lista para servir el sandbox. El límite de cuerpo deja pasar el
// currículum máximo más el sobrecosto multipart.
func NewApp(b *Backend) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "placement-sandbox",
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		IdleTimeout:           60 * time.Second,
		BodyLimit:             int(b.opts.ResumeMaxBytes) + 1024*1024,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	Router(app, b)
	return app
}
