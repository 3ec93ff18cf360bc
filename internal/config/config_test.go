package config

import (
	"testing"
	"time"

	"github.com/Rahul-Chotaliya/tradehub/internal/costbasis"
	"github.com/Rahul-Chotaliya/tradehub/internal/logger"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		for _, key := range []string{
			"SERVER_PORT", "SERVER_HOST", "DB_PATH", "CORS_ALLOWED_ORIGINS", "AUTH_SECRET",
			"TOKEN_TTL", "OVERSELL_POLICY", "RECONCILE_SCHEDULE", "RECONCILE_CONCURRENCY",
			"LOG_LEVEL", "LOG_FORMAT",
		} {
			t.Setenv(key, "")
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}

		if cfg.Server.Addr != "localhost:8000" {
			t.Errorf("Expected addr localhost:8000, got %s", cfg.Server.Addr)
		}
		if cfg.Auth.TokenTTL != 720*time.Hour {
			t.Errorf("Expected token TTL 720h, got %s", cfg.Auth.TokenTTL)
		}
		if cfg.Ledger.OversellPolicy != costbasis.PolicyReject {
			t.Errorf("Expected reject policy, got %s", cfg.Ledger.OversellPolicy)
		}
		if cfg.Reconcile.Concurrency != 4 {
			t.Errorf("Expected concurrency 4, got %d", cfg.Reconcile.Concurrency)
		}
		if cfg.Log.Format != logger.FormatJSON {
			t.Errorf("Expected json log format, got %s", cfg.Log.Format)
		}
		if len(cfg.CORS.AllowedOrigins) != 2 {
			t.Errorf("Expected 2 default origins, got %v", cfg.CORS.AllowedOrigins)
		}
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9000")
		t.Setenv("OVERSELL_POLICY", "allow")
		t.Setenv("RECONCILE_SCHEDULE", "@every 1h")
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
		t.Setenv("TOKEN_TTL", "2h")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}

		if cfg.Server.Port != "9000" {
			t.Errorf("Expected port 9000, got %s", cfg.Server.Port)
		}
		if cfg.Ledger.OversellPolicy != costbasis.PolicyAllowNegative {
			t.Errorf("Expected allow policy, got %s", cfg.Ledger.OversellPolicy)
		}
		if cfg.Reconcile.Schedule != "@every 1h" {
			t.Errorf("Expected schedule to be kept, got %q", cfg.Reconcile.Schedule)
		}
		if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
			t.Errorf("Unexpected origins %v", cfg.CORS.AllowedOrigins)
		}
		if cfg.Auth.TokenTTL != 2*time.Hour {
			t.Errorf("Expected token TTL 2h, got %s", cfg.Auth.TokenTTL)
		}
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		cases := map[string]string{
			"OVERSELL_POLICY":       "fifo",
			"TOKEN_TTL":             "forever",
			"RECONCILE_CONCURRENCY": "0",
			"RECONCILE_SCHEDULE":    "every now and then",
			"LOG_FORMAT":            "xml",
		}

		for key, value := range cases {
			t.Run(key, func(t *testing.T) {
				t.Setenv(key, value)

				if _, err := Load(); err == nil {
					t.Errorf("Expected error for %s=%q", key, value)
				}
			})
		}
	})
}
