package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/km-arc/formguard/framework/config"
	"github.com/km-arc/formguard/framework/container"
	"github.com/km-arc/formguard/framework/forms"
	"github.com/km-arc/formguard/framework/logger"
	"github.com/km-arc/formguard/framework/providers"
	"github.com/km-arc/formguard/framework/routing"
	"github.com/km-arc/formguard/framework/validation"
)

// Application is the top-level application container.
// It embeds the Container and ProviderRegistry so user code can
// call app.Bind(), app.Singleton(), app.Register() directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// New loads the configuration and registers the framework providers.
func New(envFiles ...string) (*Application, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg), nil
}

// NewWithConfig registers the framework providers around an already loaded
// configuration.
func NewWithConfig(cfg *config.Config, opts ...logger.Option) *Application {
	c := container.New()
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}

	registry.Register(&providers.ConfigServiceProvider{Config: cfg})
	registry.Register(&providers.LoggerServiceProvider{Options: opts})
	registry.Register(&providers.ValidationServiceProvider{})
	registry.Register(&providers.FormsServiceProvider{})
	registry.Register(&providers.RoutingServiceProvider{})

	c.AfterResolving(func(abstract string, _ any) {
		if abstract == "logger" {
			return
		}
		app.Logger().Debug("service resolved", slog.String("abstract", abstract))
	})

	return app
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers, then loads the form schemas
// of the configured schema directory.
func (a *Application) Boot() error {
	a.Providers.Boot()

	if dir := a.Config().Forms.SchemaDir; dir != "" {
		if err := a.LoadForms(os.DirFS(dir), "*.yaml"); err != nil {
			return fmt.Errorf("load schemas from %s: %w", dir, err)
		}
	}
	return nil
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.Resolve[*config.Config](a.Container, "config")
}

// Logger resolves the application *slog.Logger.
func (a *Application) Logger() *slog.Logger {
	return container.Resolve[*slog.Logger](a.Container, "logger")
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.Resolve[*routing.Router](a.Container, "router")
}

// Forms resolves the *forms.Manager from the container.
func (a *Application) Forms() *forms.Manager {
	return container.Resolve[*forms.Manager](a.Container, "forms")
}

// Rules resolves the rule registry forms are compiled against.
func (a *Application) Rules() *validation.Registry {
	return container.Resolve[*validation.Registry](a.Container, "validation.rules")
}

// LoadForms registers every schema file of fsys matching pattern.
func (a *Application) LoadForms(fsys fs.FS, pattern string) error {
	return a.Forms().Load(fsys, pattern)
}

// Run boots the application (if needed) and serves HTTP until ctx is
// cancelled or the process receives SIGINT or SIGTERM, then shuts down
// gracefully within the configured timeout.
func (a *Application) Run(ctx context.Context) error {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := a.Config()
	log := a.Logger()
	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: a.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started",
			slog.String("addr", srv.Addr),
			slog.Any("forms", a.Forms().Forms()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", slog.Duration("timeout", cfg.App.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Config().IsProduction() }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
