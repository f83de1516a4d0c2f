package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries all runtime settings, parsed from the environment after an
// optional .env file is loaded.
type Config struct {
	Addr       string `env:"ATTENDCI_ADDR" envDefault:":8080"`
	Env        string `env:"ATTENDCI_ENV" envDefault:"development"`
	UploadsDir string `env:"ATTENDCI_UPLOADS_DIR" envDefault:"uploads"`

	Database DatabaseConfig `envPrefix:"ATTENDCI_DB_"`
	Email    EmailConfig    `envPrefix:"ATTENDCI_RESEND_"`
	Log      LogConfig      `envPrefix:"ATTENDCI_LOG_"`

	// AllowedOrigins is the CORS whitelist the SPA calls from.
	AllowedOrigins []string `env:"ATTENDCI_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// Admin seed credentials, applied only when no account exists yet.
	AdminUsername string `env:"ATTENDCI_ADMIN_USERNAME" envDefault:"admin"`
	AdminEmail    string `env:"ATTENDCI_ADMIN_EMAIL" envDefault:"admin@attendci.local"`
	AdminPassword string `env:"ATTENDCI_ADMIN_PASSWORD" envDefault:"change-me-now"`

	// RateLimitPerSecond is the per-IP request budget.
	RateLimitPerSecond int `env:"ATTENDCI_RATE_LIMIT" envDefault:"10"`
}

// DatabaseConfig selects the driver and DSN. The sqlite driver exists for
// local development and tests; deployments run MySQL.
type DatabaseConfig struct {
	Driver string `env:"DRIVER" envDefault:"mysql"`
	DSN    string `env:"DSN" envDefault:"root:@tcp(localhost:3306)/attendci"`
}

// EmailConfig configures the Resend sender. An empty key selects the noop
// sender.
type EmailConfig struct {
	APIKey  string `env:"KEY"`
	From    string `env:"FROM" envDefault:"attendci <noreply@attendci.local>"`
	ReplyTo string `env:"REPLY_TO"`
}

// LogConfig controls structured log output.
type LogConfig struct {
	Level string `env:"LEVEL" envDefault:"info"`
	// Dir enables rotated file output when set; empty logs to stderr only.
	Dir string `env:"DIR"`
}

// Load reads .env (if present) and parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
