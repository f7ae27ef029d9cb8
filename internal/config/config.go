package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
)

// defaultJWTSecret is only acceptable in dev; Load refuses it when ENV=prod.
const defaultJWTSecret = "supersecretkey"

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Env is "dev" (default) or "prod". When "prod", JWT_SECRET must be set and not the default.
	Env string `env:"ENV" envDefault:"dev"`

	DBHost string `env:"DB_HOST" envDefault:"localhost"`
	DBPort string `env:"DB_PORT" envDefault:"5432"`
	DBName string `env:"DB_NAME" envDefault:"assetdb"`
	DBUser string `env:"DB_USER" envDefault:"assetuser"`
	DBPass string `env:"DB_PASS" envDefault:"assetpass"`

	// DBMaxOpenConns is the maximum number of open connections to the database.
	DBMaxOpenConns int `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	// DBMaxIdleConns is the maximum number of idle connections.
	DBMaxIdleConns int `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`

	JWTSecret string `env:"JWT_SECRET" envDefault:"supersecretkey"`

	// JWTExpireHours is the token lifetime in hours.
	JWTExpireHours int `env:"JWT_EXPIRE_HOURS" envDefault:"24"`

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	// When empty, the API listens with plain HTTP.
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// CORSAllowedOrigins is a comma-separated list of origins allowed for CORS
	// (e.g. https://app.example.com,http://localhost:3000). When empty, no CORS
	// headers are sent (same-origin only).
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`

	// WarrantyReportEnabled toggles the background warranty-expiry report job.
	WarrantyReportEnabled bool `env:"WARRANTY_REPORT_ENABLED" envDefault:"true"`
	// WarrantyReportCron is the job's schedule in cron syntax.
	WarrantyReportCron string `env:"WARRANTY_REPORT_CRON" envDefault:"0 8 * * *"`
	// WarrantyReportDays is how far ahead the report looks for expiring warranties.
	WarrantyReportDays int `env:"WARRANTY_REPORT_DAYS" envDefault:"30"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Env == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return Config{}, fmt.Errorf("JWT_SECRET must be set to a non-default value when ENV=prod")
	}
	return cfg, nil
}

// DSN returns the lib/pq key=value connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPass,
	)
}

// DatabaseURL returns the postgres:// URL form of the DSN, used by the migration runner.
func (c Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		url.QueryEscape(c.DBUser), url.QueryEscape(c.DBPass), c.DBHost, c.DBPort, c.DBName,
	)
}
