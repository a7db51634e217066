package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/placement-portal/internal/sandbox"
	"github.com/jhoicas/placement-portal/pkg/config"
	"github.com/jhoicas/placement-portal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("addr", cfg.Sandbox.Addr()).
		Msg("iniciando sandbox")

	backend := sandbox.NewBackend(sandbox.Options{
		JWT:            cfg.JWT,
		UploadsDir:     cfg.Sandbox.UploadsDir,
		ResumeMaxBytes: cfg.Resume.MaxBytes,
		Logger:         log.Component("sandbox"),
	})
	if cfg.Sandbox.SeedDemo {
		if err := backend.SeedDemo(); err != nil {
			log.Fatal().Err(err).Msg("datos de demostración")
		}
		log.Info().
			Str("student", sandbox.DemoStudentEmail).
			Str("company", sandbox.DemoCompanyEmail).
			Str("admin", sandbox.DemoAdminEmail).
			Msg("cuentas demo listas")
	}

	app := sandbox.NewApp(backend)
	app.Use(recover.New())
	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Placement Sandbox API",
	}))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "placement-sandbox"})
	})

	go func() {
		if err := app.Listen(cfg.Sandbox.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("señal de apagado recibida, cerrando sandbox...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	log.Info().Msg("sandbox detenido")
}
