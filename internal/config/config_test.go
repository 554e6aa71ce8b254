package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

const validYAML = `
krx:
  base_url: "https://data-dbg.krx.co.kr/svc/apis"
  auth_key: "test-key"
  timeout: 10s
  response_charset: "EUC-KR"

database:
  postgres:
    host: "localhost"
    port: 5432
    name: "trade_system"
    user: "trade"
    password: "secret"
    ssl_mode: "disable"
    max_conns: 5
    min_conns: 1

sync:
  max_retries: 3
  retry_backoff: 100ms
  inter_day_delay: 250ms

server:
  port: 9090
`

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.KRX.AuthKey != "test-key" {
		t.Errorf("KRX.AuthKey = %q, want %q", cfg.KRX.AuthKey, "test-key")
	}
	if cfg.KRX.Timeout != 10*time.Second {
		t.Errorf("KRX.Timeout = %v, want 10s", cfg.KRX.Timeout)
	}
	if cfg.Database.Postgres.Name != "trade_system" {
		t.Errorf("Database.Postgres.Name = %q, want %q", cfg.Database.Postgres.Name, "trade_system")
	}
	if cfg.Sync.MaxRetries != 3 {
		t.Errorf("Sync.MaxRetries = %d, want 3", cfg.Sync.MaxRetries)
	}
	if cfg.Sync.InterDayDelay != 250*time.Millisecond {
		t.Errorf("Sync.InterDayDelay = %v, want 250ms", cfg.Sync.InterDayDelay)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_KRX_AUTH_KEY", "env-key")
	t.Setenv("TEST_DB_PASSWORD", "env-pass")

	path := writeConfigFile(t, `
krx:
  auth_key: "${TEST_KRX_AUTH_KEY}"
database:
  postgres:
    host: "localhost"
    name: "trade_system"
    user: "trade"
    password: "${TEST_DB_PASSWORD}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.KRX.AuthKey != "env-key" {
		t.Errorf("KRX.AuthKey = %q, want %q", cfg.KRX.AuthKey, "env-key")
	}
	if cfg.Database.Postgres.Password != "env-pass" {
		t.Errorf("Database.Postgres.Password = %q, want %q", cfg.Database.Postgres.Password, "env-pass")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "krx: [not: valid")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for invalid yaml")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeConfigFile(t, `
krx:
  auth_key: "test-key"
database:
  postgres:
    host: "localhost"
    name: "trade_system"
    user: "trade"
    password: "secret"
`)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults() error: %v", err)
	}

	if cfg.KRX.BaseURL != DefaultBaseURL {
		t.Errorf("KRX.BaseURL = %q, want default %q", cfg.KRX.BaseURL, DefaultBaseURL)
	}
	if cfg.KRX.Timeout != DefaultAPITimeout {
		t.Errorf("KRX.Timeout = %v, want default %v", cfg.KRX.Timeout, DefaultAPITimeout)
	}
	if cfg.KRX.ResponseCharset != DefaultResponseCharset {
		t.Errorf("KRX.ResponseCharset = %q, want default %q", cfg.KRX.ResponseCharset, DefaultResponseCharset)
	}
	if cfg.Database.Postgres.Port != DefaultDBPort {
		t.Errorf("Database.Postgres.Port = %d, want default %d", cfg.Database.Postgres.Port, DefaultDBPort)
	}
	if cfg.Database.Postgres.SSLMode != DefaultDBSSLMode {
		t.Errorf("Database.Postgres.SSLMode = %q, want default %q", cfg.Database.Postgres.SSLMode, DefaultDBSSLMode)
	}
	if cfg.Sync.MaxRetries != DefaultMaxRetries {
		t.Errorf("Sync.MaxRetries = %d, want default %d", cfg.Sync.MaxRetries, DefaultMaxRetries)
	}
	if cfg.Sync.RetryBackoff != DefaultRetryBackoff {
		t.Errorf("Sync.RetryBackoff = %v, want default %v", cfg.Sync.RetryBackoff, DefaultRetryBackoff)
	}
	if cfg.Server.Port != DefaultServerPort {
		t.Errorf("Server.Port = %d, want default %d", cfg.Server.Port, DefaultServerPort)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.KRX.AuthKey = "test-key"
		cfg.Database.Postgres.Host = "localhost"
		cfg.Database.Postgres.Name = "trade_system"
		cfg.Database.Postgres.User = "trade"
		cfg.Database.Postgres.Password = "secret"
		cfg.applyDefaults()
		return cfg
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("Validate() on valid config: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing auth key", func(c *Config) { c.KRX.AuthKey = "" }, "krx.auth_key"},
		{"missing base url", func(c *Config) { c.KRX.BaseURL = "" }, "krx.base_url"},
		{"negative timeout", func(c *Config) { c.KRX.Timeout = -time.Second }, "krx.timeout"},
		{"missing db host", func(c *Config) { c.Database.Postgres.Host = "" }, "database.postgres.host"},
		{"missing db password", func(c *Config) { c.Database.Postgres.Password = "" }, "database.postgres.password"},
		{"min conns exceeds max", func(c *Config) { c.Database.Postgres.MinConns = 20 }, "min_conns"},
		{"negative retries", func(c *Config) { c.Sync.MaxRetries = -1 }, "sync.max_retries"},
		{"negative backoff", func(c *Config) { c.Sync.RetryBackoff = -time.Millisecond }, "sync.retry_backoff"},
		{"negative inter day delay", func(c *Config) { c.Sync.InterDayDelay = -time.Millisecond }, "sync.inter_day_delay"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
