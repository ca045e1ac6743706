package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	MailProviderLog = "log"
	MailProviderSES = "ses"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Env                 string        // Environment (development, staging, production) (default: development)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	BasePath            string        // Optional: prefix for every API route, e.g. /api
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabasePath   string // SQLite database file (default: ./data/auth.db)
	DatabaseURL    string // Postgres DSN, required for the postgres driver

	MailProvider      string  // log or ses (default: log)
	MailFrom          string  // Sender address
	MailRatePerSecond float64 // Outbound send rate (default: 10)
	MailBurst         int     // Outbound send burst (default: 10)
	AWSRegion         string  // SES region (default: us-east-1)

	CORSAllowedOrigins     []string // default: *
	AdminEmails            []string // Ensured to hold the admin role at startup
	TodoWriteRequiresAdmin bool     // default: true

	OTPTTL     time.Duration // default: 10m
	SessionTTL time.Duration // default: 30 days
}

func LoadConfig() Config {
	return Config{
		Env:                 getEnvOrDefault("ENV", "development"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		BasePath:            strings.TrimSuffix(os.Getenv("API_BASE_PATH"), "/"),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		DatabaseDriver: strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", DriverSQLite)),
		DatabasePath:   getEnvOrDefault("DATABASE_PATH", "./data/auth.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),

		MailProvider:      strings.ToLower(getEnvOrDefault("MAIL_PROVIDER", MailProviderLog)),
		MailFrom:          getEnvOrDefault("MAIL_FROM", "DabotCentral <onboarding@dabotcentral.local>"),
		MailRatePerSecond: getEnvFloatOrDefault("MAIL_RATE_PER_SECOND", 10),
		MailBurst:         getEnvIntOrDefault("MAIL_BURST", 10),
		AWSRegion:         getEnvOrDefault("AWS_REGION", "us-east-1"),

		CORSAllowedOrigins:     getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
		AdminEmails:            getEnvListOrDefault("ADMIN_EMAILS", nil),
		TodoWriteRequiresAdmin: getEnvBoolOrDefault("TODO_WRITE_REQUIRES_ADMIN", true),

		OTPTTL:     getEnvDurationOrDefault("OTP_TTL", 10*time.Minute),
		SessionTTL: getEnvDurationOrDefault("SESSION_TTL", 30*24*time.Hour),
	}
}

// Validate reports settings the application cannot start with.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for the postgres driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown DATABASE_DRIVER %q", ErrInvalidConfig, c.DatabaseDriver)
	}

	switch c.MailProvider {
	case MailProviderLog, MailProviderSES:
	default:
		return fmt.Errorf("%w: unknown MAIL_PROVIDER %q", ErrInvalidConfig, c.MailProvider)
	}

	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("%w: API_BASE_PATH must start with /", ErrInvalidConfig)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

// getEnvListOrDefault splits a comma-separated value, dropping empty items.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil && minutes > 0 {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
