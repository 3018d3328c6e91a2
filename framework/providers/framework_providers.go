package providers

import (
	"log/slog"
	"net/http"

	"github.com/km-arc/formguard/framework/config"
	"github.com/km-arc/formguard/framework/container"
	"github.com/km-arc/formguard/framework/forms"
	gohttp "github.com/km-arc/formguard/framework/http"
	"github.com/km-arc/formguard/framework/logger"
	"github.com/km-arc/formguard/framework/routing"
	"github.com/km-arc/formguard/framework/validation"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the loaded configuration.
//
// Bound abstracts:
//   - "config"  → *config.Config
type ConfigServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	app.Instance("config", p.Config)
}

// ── LoggerServiceProvider ─────────────────────────────────────────────────────

// LoggerServiceProvider builds the application logger from the "log" config
// section and installs it as the slog default on boot.
//
// Bound abstracts:
//   - "logger"  → *slog.Logger
type LoggerServiceProvider struct {
	container.BaseProvider
	// Options are applied after the configured ones (tests pass WithOutput).
	Options []logger.Option
}

func (p *LoggerServiceProvider) Register(app *container.Container) {
	app.Singleton("logger", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		opts := []logger.Option{
			logger.WithLevel(logger.ParseLevel(cfg.Log.Level)),
			logger.WithFormat(logger.Format(cfg.Log.Format)),
			logger.WithAttr(slog.String("app", cfg.App.Name), slog.String("env", cfg.App.Env)),
		}
		return logger.New(append(opts, p.Options...)...)
	})
}

func (p *LoggerServiceProvider) Boot(app *container.Container) {
	logger.SetAsDefault(container.Resolve[*slog.Logger](app, "logger"))
}

// ── ValidationServiceProvider ─────────────────────────────────────────────────

// ValidationServiceProvider exposes the rule registry. It is deferred: the
// registry is bound the first time something resolves it.
//
// Bound abstracts:
//   - "validation.rules"  → *validation.Registry
type ValidationServiceProvider struct {
	container.BaseProvider
	// Registry replaces the process-wide default registry when set.
	Registry *validation.Registry
}

func (p *ValidationServiceProvider) Register(app *container.Container) {
	app.Singleton("validation.rules", func(c *container.Container) any {
		if p.Registry != nil {
			return p.Registry
		}
		return validation.DefaultRegistry()
	})
}

func (p *ValidationServiceProvider) IsDeferred() bool   { return true }
func (p *ValidationServiceProvider) Provides() []string { return []string{"validation.rules"} }

// ── FormsServiceProvider ──────────────────────────────────────────────────────

// FormsServiceProvider registers the form manager and its HTTP handler.
//
// Bound abstracts:
//   - "forms.manager" (alias "forms") → *forms.Manager
//   - "forms.handler"                  → *forms.Handler (transient)
//
// Configuration read from "config":
//   - forms.events, forms.max_sessions, forms.max_body
type FormsServiceProvider struct {
	container.BaseProvider
}

func (p *FormsServiceProvider) Register(app *container.Container) {
	app.Singleton("forms.manager", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		return forms.NewManager(
			container.Resolve[*validation.Registry](c, "validation.rules"),
			container.Resolve[*slog.Logger](c, "logger").With(slog.String("component", "forms")),
			forms.WithMaxSessions(cfg.Forms.MaxSessions),
			forms.WithDefaultEvents(cfg.Forms.Events),
		)
	})
	app.Alias("forms.manager", "forms")

	app.Bind("forms.handler", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		return forms.NewHandler(
			container.Resolve[*forms.Manager](c, "forms"),
			container.Resolve[*slog.Logger](c, "logger"),
			forms.WithMaxBody(cfg.Forms.MaxBody),
		)
	})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router and mounts the forms
// routes on boot.
//
// Bound abstracts:
//   - "router"  → *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", func(c *container.Container) any {
		return routing.New(container.Resolve[*slog.Logger](c, "logger"))
	})
}

func (p *RoutingServiceProvider) Boot(app *container.Container) {
	router := container.Resolve[*routing.Router](app, "router")

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		gohttp.NewResponse(w).NotFound()
	})
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		gohttp.NewResponse(w).Success(map[string]any{"status": "ok"})
	})

	container.Resolve[*forms.Handler](app, "forms.handler").Routes(router)
}
