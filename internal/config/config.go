package config

import "time"

// Config is the root configuration for the KRX sync service.
type Config struct {
	KRX      KRXConfig      `yaml:"krx"`
	Database DatabaseConfig `yaml:"database"`
	Sync     SyncConfig     `yaml:"sync"`
	Server   ServerConfig   `yaml:"server"`
}

// KRXConfig holds KRX Open API settings.
type KRXConfig struct {
	BaseURL         string        `yaml:"base_url"`
	AuthKey         string        `yaml:"auth_key"` // sent as the AUTH_KEY header
	Timeout         time.Duration `yaml:"timeout"`
	ResponseCharset string        `yaml:"response_charset"` // fallback decode charset, e.g. "EUC-KR" or "MS949"
}

// DatabaseConfig holds the PostgreSQL connection.
type DatabaseConfig struct {
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// SyncConfig holds orchestration settings.
type SyncConfig struct {
	MaxRetries    int           `yaml:"max_retries"`     // retries after the first attempt
	RetryBackoff  time.Duration `yaml:"retry_backoff"`   // base backoff, doubled per attempt
	InterDayDelay time.Duration `yaml:"inter_day_delay"` // default pause between range days
}

// ServerConfig holds the HTTP edge settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}
