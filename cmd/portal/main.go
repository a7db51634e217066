package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	apphttp "github.com/jhoicas/placement-portal/internal/interfaces/http"
	"github.com/jhoicas/placement-portal/internal/portal"
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
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando portal")

	ctx := context.Background()
	p, err := portal.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar portal")
	}
	defer func() {
		if err := p.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar almacenamiento")
		}
	}()
	if id, ok := p.Session.Current(); ok {
		log.Info().Str("email", id.Email).Str("role", id.Role).Msg("sesión restaurada")
	}

	app := apphttp.NewApp(p.RouterDeps(log.Component("http")))

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	log.Info().Msg("portal detenido")
}
