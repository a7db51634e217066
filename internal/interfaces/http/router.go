package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/placement-portal/internal/application/admin"
	"github.com/jhoicas/placement-portal/internal/application/auth"
	"github.com/jhoicas/placement-portal/internal/application/company"
	"github.com/jhoicas/placement-portal/internal/application/notify"
	"github.com/jhoicas/placement-portal/internal/application/session"
	"github.com/jhoicas/placement-portal/internal/application/student"
	"github.com/jhoicas/placement-portal/pkg/config"
	"github.com/jhoicas/placement-portal/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session        *session.Store
	Notifier       *notify.Notifier
	Auth           *auth.Service
	Student        *student.Service
	Company        *company.Service
	Admin          *admin.Service
	ResumeMaxBytes int64
	Logger         *logger.Logger
}

// Router registra el árbol de rutas del portal. Todas pasan por el guard.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.ResumeMaxBytes <= 0 {
		deps.ResumeMaxBytes = config.DefaultResumeMaxBytes
	}
	app.Use(GuardMiddleware(deps.Session))
	views := NewViewCache(deps.Session)

	// Público
	authHandler := NewAuthHandler(deps.Auth, deps.Session, deps.Notifier, views)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/", authHandler.Session)
	app.Get("/session", authHandler.Session)
	app.Get("/notifications", authHandler.Notifications)
	app.Post("/login", authHandler.Login)
	app.Post("/register", authHandler.Register)
	app.Post("/logout", authHandler.Logout)

	// Estudiante
	st := app.Group("/student")
	studentHandler := NewStudentHandler(deps.Student, views, deps.ResumeMaxBytes)
	st.Get("/dashboard", studentHandler.Dashboard)
	st.Get("/jobs", studentHandler.Jobs)
	st.Post("/jobs/:id/apply", studentHandler.Apply)
	st.Get("/applications", studentHandler.Applications)
	st.Get("/profile", studentHandler.Profile)
	st.Put("/profile", studentHandler.SaveProfile)
	st.Post("/profile/resume", studentHandler.UploadResume)

	// Empresa
	co := app.Group("/company")
	companyHandler := NewCompanyHandler(deps.Company, views)
	co.Get("/dashboard", companyHandler.Dashboard)
	co.Post("/post-job", companyHandler.PostJob)
	co.Get("/jobs", companyHandler.Jobs)
	co.Put("/jobs/:id/status", companyHandler.SetJobStatus)
	co.Delete("/jobs/:id", companyHandler.DeleteJob)
	co.Get("/candidates", companyHandler.Candidates)
	co.Put("/candidates/:id/status", companyHandler.UpdateCandidate)

	// Administración
	ad := app.Group("/admin")
	adminHandler := NewAdminHandler(deps.Admin, views)
	ad.Get("/dashboard", adminHandler.Dashboard)
	ad.Get("/users", adminHandler.Users)
	ad.Put("/users/:id/status", adminHandler.SetUserStatus)
	ad.Delete("/users/:id", adminHandler.DeleteUser)
	ad.Get("/jobs", adminHandler.Jobs)
	ad.Delete("/jobs/:id", adminHandler.DeleteJob)
	ad.Get("/stats", adminHandler.Report)
	ad.Get("/stats/export", adminHandler.Export)
}

// NewApp app Fiber del portal con recover, timeouts y el límite de cuerpo del currículum.
func NewApp(deps RouterDeps) *fiber.App {
	maxResume := deps.ResumeMaxBytes
	if maxResume <= 0 {
		maxResume = config.DefaultResumeMaxBytes
	}
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	var pub notify.Publisher = notify.Discard
	if deps.Notifier != nil {
		pub = deps.Notifier
	}
	app := fiber.New(fiber.Config{
		AppName:               "placement-portal",
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           60 * time.Second,
		BodyLimit:             int(maxResume) + 1024*1024,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(pub, log),
	})
	app.Use(recover.New())
	Router(app, deps)
	return app
}
