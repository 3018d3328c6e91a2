package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/km-arc/formguard/framework/validation"
)

var (
	ErrParsingConfig = errors.New("config: failed to parse environment")
	ErrInvalidConfig = errors.New("config: invalid value")
)

// Config is the central typed configuration struct.
type Config struct {
	App   AppConfig   `envPrefix:"APP_"`
	Log   LogConfig   `envPrefix:"LOG_"`
	Forms FormsConfig `envPrefix:"FORMS_"`
}

type AppConfig struct {
	Name            string        `env:"NAME" envDefault:"FormGuard"`
	Env             string        `env:"ENV" envDefault:"local"` // local | production | testing
	Debug           bool          `env:"DEBUG" envDefault:"true"`
	URL             string        `env:"URL" envDefault:"http://localhost"`
	Port            string        `env:"PORT" envDefault:"8000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`  // debug | info | warn | error
	Format string `env:"FORMAT" envDefault:"text"` // text | json
}

type FormsConfig struct {
	// Events is the events mode of schemas that do not choose one.
	Events      validation.EventsMode `env:"EVENTS" envDefault:"all"`
	MaxSessions int                   `env:"MAX_SESSIONS" envDefault:"10000"`

	// MaxBody caps request bodies under /forms, in bytes. Zero disables it.
	MaxBody int64 `env:"MAX_BODY" envDefault:"65536"`

	// SchemaDir holds *.yaml form schemas loaded at boot. Empty disables it.
	SchemaDir string `env:"SCHEMA_DIR"`
}

// Load reads .env (if present) and populates a Config from environment variables.
// Variables already set in the environment win over the file.
//
//	cfg, err := config.Load()
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	mode, err := validation.ParseEventsMode(string(c.Forms.Events))
	if err != nil {
		return fmt.Errorf("%w: FORMS_EVENTS: %w", ErrInvalidConfig, err)
	}
	c.Forms.Events = mode

	if c.Forms.MaxSessions < 0 {
		return fmt.Errorf("%w: FORMS_MAX_SESSIONS must not be negative", ErrInvalidConfig)
	}
	if c.Forms.MaxBody < 0 {
		return fmt.Errorf("%w: FORMS_MAX_BODY must not be negative", ErrInvalidConfig)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: LOG_FORMAT %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.App.Env == "production" }
