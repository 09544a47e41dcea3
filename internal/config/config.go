// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultCORSOrigins is used when CORS_ORIGINS is not set: the Next.js and
// Vite dev servers.
const DefaultCORSOrigins = "http://localhost:3000,http://localhost:5173"

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// JWTSecret signs and verifies bearer tokens. Required.
	JWTSecret string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// Env is "development" or "production". Validation details are only
	// returned to clients in development. Defaults to "production".
	Env string

	// AppURL is the public base URL of the web app, used for email deep links.
	AppURL string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Entries may be exact origins, "*", or single-wildcard subdomain
	// patterns such as "https://*.example.com".
	CORSOrigins []string

	// MigrateOnStart applies pending goose migrations before serving.
	MigrateOnStart bool

	SMTP SMTPConfig
}

// SMTPConfig describes the relay used for transactional email.
// An empty Host means email is not configured; sends then fail with a
// configuration error instead of at startup.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// IsDevelopment reports whether the server runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set or are malformed.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Env:         getEnv("APP_ENV", "production"),
		AppURL:      strings.TrimRight(getEnv("APP_URL", "http://localhost:3000"), "/"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", DefaultCORSOrigins)),
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", "no-reply@tripshare.local"),
		},
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil || port <= 0 {
		return Config{}, fmt.Errorf("SMTP_PORT must be a positive integer, got %q", os.Getenv("SMTP_PORT"))
	}
	cfg.SMTP.Port = port

	migrate, err := strconv.ParseBool(getEnv("MIGRATE_ON_START", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("MIGRATE_ON_START must be a boolean, got %q", os.Getenv("MIGRATE_ON_START"))
	}
	cfg.MigrateOnStart = migrate

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
