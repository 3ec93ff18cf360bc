package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/Rahul-Chotaliya/tradehub/internal/costbasis"
	"github.com/Rahul-Chotaliya/tradehub/internal/logger"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Auth      AuthConfig
	Ledger    LedgerConfig
	Reconcile ReconcileConfig
	Log       LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// AuthConfig holds token settings. Secret is a base64 fernet key; when empty a key is
// generated at startup and tokens do not survive a restart.
type AuthConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// LedgerConfig holds cost basis settings.
type LedgerConfig struct {
	OversellPolicy costbasis.Policy
}

// ReconcileConfig holds the background reconcile job settings. An empty Schedule
// disables the job.
type ReconcileConfig struct {
	Schedule    string
	Concurrency int
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format logger.Format
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8000"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/tradehub.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Auth: AuthConfig{
			Secret: os.Getenv("AUTH_SECRET"),
		},
		Reconcile: ReconcileConfig{
			Schedule: os.Getenv("RECONCILE_SCHEDULE"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: logger.Format(getEnv("LOG_FORMAT", string(logger.FormatJSON))),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "720h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %q", os.Getenv("TOKEN_TTL"))
	}
	config.Auth.TokenTTL = ttl

	policy, err := costbasis.ParsePolicy(os.Getenv("OVERSELL_POLICY"))
	if err != nil {
		return nil, fmt.Errorf("invalid OVERSELL_POLICY: %w", err)
	}
	config.Ledger.OversellPolicy = policy

	concurrency, err := strconv.Atoi(getEnv("RECONCILE_CONCURRENCY", "4"))
	if err != nil || concurrency < 1 {
		return nil, fmt.Errorf("invalid RECONCILE_CONCURRENCY: %q", os.Getenv("RECONCILE_CONCURRENCY"))
	}
	config.Reconcile.Concurrency = concurrency

	if config.Reconcile.Schedule != "" {
		if _, err := cron.ParseStandard(config.Reconcile.Schedule); err != nil {
			return nil, fmt.Errorf("invalid RECONCILE_SCHEDULE: %w", err)
		}
	}

	if config.Log.Format != logger.FormatJSON && config.Log.Format != logger.FormatConsole {
		return nil, fmt.Errorf("invalid LOG_FORMAT: %q", config.Log.Format)
	}

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
