package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "DB_PATH", "REFRESH_INTERVAL", "HTTP_PORT", "FLUENT_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	if cfg.DBDriver != DriverSQLite {
		t.Errorf("DBDriver: got %q, want %q", cfg.DBDriver, DriverSQLite)
	}
	if cfg.RefreshInterval != 600*time.Second {
		t.Errorf("RefreshInterval: got %v, want 600s", cfg.RefreshInterval)
	}
	if cfg.HTTPPort != "8000" {
		t.Errorf("HTTPPort: got %q, want 8000", cfg.HTTPPort)
	}
	if cfg.FluentEnabled {
		t.Error("FluentEnabled should default to false")
	}
	if cfg.DSN() != cfg.DBPath {
		t.Errorf("sqlite DSN: got %q, want %q", cfg.DSN(), cfg.DBPath)
	}
}

func TestRefreshIntervalParsing(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"90s", 90 * time.Second},
		{"15m", 15 * time.Minute},
		{"120", 120 * time.Second},
		{"soon", 600 * time.Second},
		{"-5s", 600 * time.Second},
	}

	for _, tt := range tests {
		t.Setenv("REFRESH_INTERVAL", tt.raw)
		if got := FromEnv().RefreshInterval; got != tt.want {
			t.Errorf("REFRESH_INTERVAL=%q: got %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestPostgresDSN(t *testing.T) {
	for _, key := range []string{"POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_SSLMODE"} {
		t.Setenv(key, "")
	}
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_DB", "homes")

	cfg := FromEnv()
	want := "host=db port=5432 user=listings password=listings dbname=homes sslmode=disable"
	if cfg.DSN() != want {
		t.Errorf("DSN: got %q, want %q", cfg.DSN(), want)
	}
}
