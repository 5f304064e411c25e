package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

// chdirTemp moves the test into an empty directory so the ./config.yaml
// fallback is absent.
func chdirTemp(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  shutdown_timeout: "5s"

store:
  driver: "file"
  data_dir: "/var/lib/users"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

log:
  level: "debug"
  format: "text"

rate_limit:
  per_minute: 120
`

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 5000, ShutdownTimeout: 10 * time.Second},
		Store:  StoreConfig{Driver: StoreDriverPostgres, DataDir: "./data"},
		Database: DatabaseConfig{
			DSN:      "postgres://u:p@localhost:5432/testdb",
			MaxConns: 25,
			MinConns: 5,
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("server.write_timeout = %v, want 30s (default)", cfg.Server.WriteTimeout)
	}
	if cfg.Store.Driver != StoreDriverFile || cfg.Store.DataDir != "/var/lib/users" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if !cfg.RateLimit.Enabled() || cfg.RateLimit.PerMinute != 120 {
		t.Errorf("rate_limit = %+v", cfg.RateLimit)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("server.port = %d, want 5000 (default)", cfg.Server.Port)
	}
	if cfg.Store.Driver != StoreDriverPostgres {
		t.Errorf("store.driver = %q, want postgres (default)", cfg.Store.Driver)
	}
	if cfg.Database.DSN == "" {
		t.Error("database.dsn should have a default")
	}
	if !cfg.Database.AutoMigrate {
		t.Error("database.auto_migrate should default to true")
	}
	if cfg.RateLimit.Enabled() {
		t.Error("rate limiting should be disabled by default")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "7000")
	t.Setenv("DATABASE_URL", "postgres://app@db:5432/users")
	t.Setenv("STORE_DRIVER", "Memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("server.port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Database.DSN != "postgres://app@db:5432/users" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Store.Driver != StoreDriverMemory {
		t.Errorf("store.driver = %q, want normalized %q", cfg.Store.Driver, StoreDriverMemory)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "shutdown timeout zero", mutate: func(c *Config) { c.Server.ShutdownTimeout = 0 }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "mongo" }, wantErr: true},
		{name: "postgres empty dsn", mutate: func(c *Config) { c.Database.DSN = " " }, wantErr: true},
		{name: "postgres max conns zero", mutate: func(c *Config) { c.Database.MaxConns = 0 }, wantErr: true},
		{name: "postgres min above max", mutate: func(c *Config) { c.Database.MinConns = 30 }, wantErr: true},
		{name: "postgres negative connect timeout", mutate: func(c *Config) { c.Database.ConnectTimeout = -time.Second }, wantErr: true},
		{name: "memory ignores dsn", mutate: func(c *Config) {
			c.Store.Driver = StoreDriverMemory
			c.Database.DSN = ""
		}},
		{name: "file requires data dir", mutate: func(c *Config) {
			c.Store.Driver = StoreDriverFile
			c.Store.DataDir = ""
		}, wantErr: true},
		{name: "negative rate limit", mutate: func(c *Config) { c.RateLimit.PerMinute = -1 }, wantErr: true},
		{name: "rate limit without cleanup", mutate: func(c *Config) { c.RateLimit.PerMinute = 10 }, wantErr: true},
		{name: "rate limit with cleanup", mutate: func(c *Config) {
			c.RateLimit.PerMinute = 10
			c.RateLimit.CleanupInterval = time.Minute
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 5000}
	if got := s.Addr(); got != "127.0.0.1:5000" {
		t.Errorf("Addr() = %q", got)
	}
}
