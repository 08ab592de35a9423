package app

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port      int    `env:"PORT"       envDefault:"8080"`
	Env       string `env:"ENV"        envDefault:"dev"`  // dev, staging, prod
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"` // debug, info, warn, error
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // json, text

	StoreDriver  string `env:"INTAKE_STORE_DRIVER"  envDefault:"sqlite"`
	DatabaseFile string `env:"INTAKE_DATABASE_FILE" envDefault:"intake.db"`
	DatabaseURL  string `env:"INTAKE_DATABASE_URL"` // Required for the postgres driver

	PepperFile      string        `env:"INTAKE_PEPPER_FILE"      envDefault:"pepper"`
	SessionKeyFile  string        `env:"INTAKE_SESSION_KEY_FILE" envDefault:"session.key"`
	SessionTTL      time.Duration `env:"INTAKE_SESSION_TTL"      envDefault:"12h"`
	Issuer          string        `env:"INTAKE_ISSUER"           envDefault:"intake"`
	BaseURL         string        `env:"INTAKE_BASE_URL"         envDefault:"http://localhost:8080"`
	ConfirmationTTL time.Duration `env:"INTAKE_CONFIRMATION_TTL" envDefault:"24h"`
	SecureCookies   bool          `env:"INTAKE_SECURE_COOKIES"   envDefault:"false"`

	BannerDuration  time.Duration `env:"INTAKE_BANNER_DURATION"   envDefault:"5s"`
	WorkflowIdleTTL time.Duration `env:"INTAKE_WORKFLOW_IDLE_TTL" envDefault:"30m"`

	// Without a key, emails are written to the log instead of sent.
	ResendAPIKey  string `env:"RESEND_API_KEY"`
	ResendBaseURL string `env:"INTAKE_RESEND_BASE_URL"`
	EmailFrom     string `env:"INTAKE_EMAIL_FROM" envDefault:"onboarding@resend.dev"`

	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration that cannot start a server.
func (c Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	switch c.StoreDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("INTAKE_DATABASE_FILE is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("INTAKE_DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("INTAKE_STORE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.StoreDriver))
	}

	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("INTAKE_BASE_URL: %w", err))
	}
	if c.ResendBaseURL != "" {
		if _, err := url.ParseRequestURI(c.ResendBaseURL); err != nil {
			errs = append(errs, fmt.Errorf("INTAKE_RESEND_BASE_URL: %w", err))
		}
	}
	if c.Env == "prod" && c.ResendAPIKey == "" {
		errs = append(errs, errors.New("RESEND_API_KEY is required in prod"))
	}

	for name, d := range map[string]time.Duration{
		"INTAKE_SESSION_TTL":       c.SessionTTL,
		"INTAKE_CONFIRMATION_TTL":  c.ConfirmationTTL,
		"INTAKE_BANNER_DURATION":   c.BannerDuration,
		"INTAKE_WORKFLOW_IDLE_TTL": c.WorkflowIdleTTL,
		"SHUTDOWN_GRACE_PERIOD":    c.ShutdownGracePeriod,
		"HOUSEKEEPING_INTERVAL":    c.HousekeepingInterval,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}

	return errors.Join(errs...)
}
