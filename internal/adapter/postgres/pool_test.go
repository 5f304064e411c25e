package postgres

import (
	"testing"
	"time"

	"github.com/ren-lyn/midterm-lab3/internal/config"
)

func TestPoolConfig(t *testing.T) {
	t.Parallel()

	cfg, err := poolConfig(config.DatabaseConfig{
		DSN:             "postgres://u:p@localhost:5432/users?sslmode=disable",
		MaxConns:        8,
		MinConns:        2,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
		ConnectTimeout:  3 * time.Second,
	})
	if err != nil {
		t.Fatalf("poolConfig() unexpected error: %v", err)
	}

	if cfg.MaxConns != 8 || cfg.MinConns != 2 {
		t.Errorf("conns = %d..%d, want 2..8", cfg.MinConns, cfg.MaxConns)
	}
	if cfg.MaxConnLifetime != time.Hour || cfg.MaxConnIdleTime != time.Minute {
		t.Errorf("lifetimes = %s/%s", cfg.MaxConnLifetime, cfg.MaxConnIdleTime)
	}
	if cfg.ConnConfig.ConnectTimeout != 3*time.Second {
		t.Errorf("connect timeout = %s, want 3s", cfg.ConnConfig.ConnectTimeout)
	}
	if got := cfg.ConnConfig.RuntimeParams["application_name"]; got != applicationName {
		t.Errorf("application_name = %q, want %q", got, applicationName)
	}
}

func TestPoolConfig_KeepsDSNApplicationName(t *testing.T) {
	t.Parallel()

	cfg, err := poolConfig(config.DatabaseConfig{
		DSN:      "postgres://u:p@localhost:5432/users?application_name=reports",
		MaxConns: 1,
	})
	if err != nil {
		t.Fatalf("poolConfig() unexpected error: %v", err)
	}
	if got := cfg.ConnConfig.RuntimeParams["application_name"]; got != "reports" {
		t.Errorf("application_name = %q, want reports", got)
	}
}

func TestPoolConfig_BadDSN(t *testing.T) {
	t.Parallel()

	if _, err := poolConfig(config.DatabaseConfig{DSN: "postgres://u:p@localhost:notaport/db"}); err == nil {
		t.Fatal("expected error for malformed DSN")
	}
}
