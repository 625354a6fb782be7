// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Session backend identifiers. See internal/session for the implementations.
const (
	SessionBackendPostgres = "postgres"
	SessionBackendRedis    = "redis"
	SessionBackendMemory   = "memory"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 5000, matching the original deploy).
	Port int

	// AllowedOrigins is the static CORS allow-list for the browser frontend.
	// Comma-separated in the CORS_ORIGINS env var. Never falls back to "*".
	AllowedOrigins []string

	// Database holds PostgreSQL connection settings.
	Database DatabaseConfig

	// Redis holds Redis connection settings (only used when the session
	// backend is "redis").
	Redis RedisConfig

	// Session holds session store settings.
	Session SessionConfig

	// Admin holds the seeded administrator credentials. Users are provisioned
	// out-of-band; there is no public registration endpoint.
	Admin AdminConfig
}

// DatabaseConfig holds PostgreSQL connection parameters. Individual fields
// (Host, User, Password, Name) are read from separate env vars so container
// orchestrators can manage each independently. If DATABASE_URL is set, it
// takes precedence over the individual fields.
type DatabaseConfig struct {
	// Host is the PostgreSQL address in host:port format (default: "localhost:5432").
	// If no port is specified, 5432 is appended automatically.
	Host string

	// User is the PostgreSQL username (default: "etiquetas").
	User string

	// Password is the PostgreSQL password (default: "etiquetas").
	Password string

	// Name is the database name (default: "etiquetas").
	Name string

	// dsnOverride is set when DATABASE_URL is provided, bypassing individual fields.
	dsnOverride string

	// MaxOpenConns is the maximum number of open connections in the pool.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections in the pool.
	MaxIdleConns int

	// ConnMaxLifetime is how long a connection can be reused.
	ConnMaxLifetime time.Duration
}

// DSN returns the PostgreSQL connection URL. If DATABASE_URL was set, it is
// returned as-is. Otherwise the URL is built from the individual
// Host/User/Password/Name fields with proper escaping for special characters
// in passwords.
func (d DatabaseConfig) DSN() string {
	if d.dsnOverride != "" {
		return d.dsnOverride
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   ensurePort(d.Host, "5432"),
		Path:   "/" + d.Name,
	}
	q := url.Values{}
	q.Set("sslmode", "disable")
	u.RawQuery = q.Encode()
	return u.String()
}

// ensurePort appends the default port if the host string doesn't include one.
// Allows users to set DB_HOST=mydb (gets :5432) or DB_HOST=mydb:5433 (as-is).
func ensurePort(host, defaultPort string) string {
	_, _, err := net.SplitHostPort(host)
	if err != nil {
		return net.JoinHostPort(host, defaultPort)
	}
	return host
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string
}

// SessionConfig holds session store settings.
type SessionConfig struct {
	// Backend selects the session store implementation: "postgres",
	// "redis", or "memory". Memory is dev-only and refused in production.
	Backend string

	// TTL is how long sessions last before expiring.
	TTL time.Duration
}

// AdminConfig holds the credentials for the seeded administrator account.
type AdminConfig struct {
	Email    string
	Password string
}

// Load reads configuration from environment variables with sensible defaults.
// Returns an error if required variables are missing or invalid for the
// selected environment.
func Load() (*Config, error) {
	cfg := &Config{
		Env:            getEnv("ENV", "development"),
		Port:           getEnvInt("PORT", 5000),
		AllowedOrigins: splitOrigins(getEnv("CORS_ORIGINS", "")),

		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost:5432"),
			User:            getEnv("DB_USER", "etiquetas"),
			Password:        getEnv("DB_PASSWORD", "etiquetas"),
			Name:            getEnv("DB_NAME", "etiquetas"),
			dsnOverride:     getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},

		Session: SessionConfig{
			Backend: getEnv("SESSION_BACKEND", ""),
			TTL:     getEnvDuration("SESSION_TTL", 24*time.Hour),
		},

		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
	}

	// The Vite dev server origin is a development-only default. Production
	// must name its origins explicitly, so an unset CORS_ORIGINS stays
	// empty there and trips the validation below.
	if len(cfg.AllowedOrigins) == 0 && cfg.IsDevelopment() {
		cfg.AllowedOrigins = []string{"http://localhost:5173"}
	}

	// Default the session backend per environment: durable in production,
	// in-memory for local development.
	if cfg.Session.Backend == "" {
		if cfg.IsDevelopment() {
			cfg.Session.Backend = SessionBackendMemory
		} else {
			cfg.Session.Backend = SessionBackendPostgres
		}
	}

	switch cfg.Session.Backend {
	case SessionBackendPostgres, SessionBackendRedis, SessionBackendMemory:
	default:
		return nil, fmt.Errorf("invalid SESSION_BACKEND %q: must be postgres, redis, or memory", cfg.Session.Backend)
	}

	// Validate production-only requirements. Case-insensitive check catches
	// common variants like "Production", "prod", etc.
	if cfg.IsProduction() {
		if cfg.Session.Backend == SessionBackendMemory {
			return nil, fmt.Errorf("SESSION_BACKEND=memory is not allowed in production: sessions would be lost on restart and not shared across instances")
		}
		if len(cfg.AllowedOrigins) == 0 {
			return nil, fmt.Errorf("CORS_ORIGINS is required in production")
		}
		for _, o := range cfg.AllowedOrigins {
			if o == "*" {
				return nil, fmt.Errorf("CORS_ORIGINS must not contain %q in production", "*")
			}
		}
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Env)
	return env == "production" || env == "prod"
}

// splitOrigins parses a comma-separated origin list, trimming whitespace and
// dropping empty entries.
func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "24h") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
