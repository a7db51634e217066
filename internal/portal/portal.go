// Package portal arma el grafo de dependencias del cliente: almacenamiento, sesión,
// gateway REST, notificaciones y casos de uso por rol. Lo comparten cmd/portal y cmd/portalctl.
package portal

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/placement-portal/internal/application/admin"
	"github.com/jhoicas/placement-portal/internal/application/auth"
	"github.com/jhoicas/placement-portal/internal/application/company"
	"github.com/jhoicas/placement-portal/internal/application/notify"
	"github.com/jhoicas/placement-portal/internal/application/session"
	"github.com/jhoicas/placement-portal/internal/application/student"
	"github.com/jhoicas/placement-portal/internal/infrastructure/apiclient"
	"github.com/jhoicas/placement-portal/internal/infrastructure/report"
	"github.com/jhoicas/placement-portal/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/placement-portal/internal/interfaces/http"
	"github.com/jhoicas/placement-portal/pkg/config"
	"github.com/jhoicas/placement-portal/pkg/logger"
)

// Portal contexto de sesión con sus casos de uso. Close libera todo en orden inverso.
type Portal struct {
	Storage  storage.Storage
	Session  *session.Store
	Notifier *notify.Notifier
	Client   *apiclient.Client

	Auth    *auth.Service
	Student *student.Service
	Company *company.Service
	Admin   *admin.Service

	cfg       *config.Config
	stopSinks []func()
}

// Build abre el almacenamiento, restaura la sesión y construye los servicios.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Portal, error) {
	kv, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("abrir almacenamiento: %w", err)
	}
	store, err := session.Create(ctx, kv, session.Options{Logger: log})
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("restaurar sesión: %w", err)
	}
	client, err := apiclient.New(apiclient.Options{
		BaseURL:    cfg.API.BaseURL,
		BackendURL: cfg.API.BackendURL,
		Store:      kv,
		Logger:     log.Component("apiclient"),
	})
	if err != nil {
		store.Dispose()
		_ = kv.Close()
		return nil, err
	}

	n := notify.New()
	p := &Portal{Storage: kv, Session: store, Notifier: n, Client: client, cfg: cfg}
	p.AddSink(func(ev notify.Notification) {
		e := log.Info()
		if ev.Kind == notify.KindError {
			e = log.Warn()
		}
		e.Str("kind", string(ev.Kind)).Msg(ev.Message)
	})

	p.Auth = auth.NewService(client.Auth, store, n, log.Component("auth"))
	p.Student = student.NewService(student.Deps{
		Jobs:           client.Jobs,
		Applications:   client.Applications,
		Students:       client.Students,
		Analytics:      client.Analytics,
		Notify:         n,
		Logger:         log.Component("student"),
		MediaURL:       client.MediaURL,
		ResumeMaxBytes: cfg.Resume.MaxBytes,
	})
	p.Company = company.NewService(client.Jobs, client.Applications, client.Analytics, n, log.Component("company"))
	p.Admin = admin.NewService(admin.Deps{
		Admin:     client.Admin,
		Jobs:      client.Jobs,
		Renderers: report.NewRegistry(time.Local),
		Notify:    n,
		Logger:    log.Component("admin"),
	})
	return p, nil
}

// AddSink consume las notificaciones en una goroutine propia hasta Close.
func (p *Portal) AddSink(fn func(notify.Notification)) {
	ch, cancel := p.Notifier.Subscribe(16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range ch {
			fn(ev)
		}
	}()
	p.stopSinks = append(p.stopSinks, func() {
		cancel()
		<-done
	})
}

// RouterDeps dependencias del servidor HTTP local.
func (p *Portal) RouterDeps(log *logger.Logger) apphttp.RouterDeps {
	return apphttp.RouterDeps{
		Session:        p.Session,
		Notifier:       p.Notifier,
		Auth:           p.Auth,
		Student:        p.Student,
		Company:        p.Company,
		Admin:          p.Admin,
		ResumeMaxBytes: p.cfg.Resume.MaxBytes,
		Logger:         log,
	}
}

// Close detiene los sinks, descarta la sesión y cierra el almacenamiento.
func (p *Portal) Close() error {
	for _, stop := range p.stopSinks {
		stop()
	}
	p.Session.Dispose()
	return p.Storage.Close()
}
