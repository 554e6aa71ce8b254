package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL         = "https://data-dbg.krx.co.kr/svc/apis"
	DefaultAPITimeout      = 30 * time.Second
	DefaultResponseCharset = "EUC-KR"
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 10
	DefaultMinConns        = 2
	DefaultMaxRetries      = 2
	DefaultRetryBackoff    = 300 * time.Millisecond
	DefaultInterDayDelay   = 0 * time.Millisecond
	DefaultServerPort      = 8080
)

func (c *Config) applyDefaults() {
	// KRX API defaults
	if c.KRX.BaseURL == "" {
		c.KRX.BaseURL = DefaultBaseURL
	}
	if c.KRX.Timeout == 0 {
		c.KRX.Timeout = DefaultAPITimeout
	}
	if c.KRX.ResponseCharset == "" {
		c.KRX.ResponseCharset = DefaultResponseCharset
	}

	// Database defaults
	applyDBDefaults(&c.Database.Postgres)

	// Sync defaults
	if c.Sync.MaxRetries == 0 {
		c.Sync.MaxRetries = DefaultMaxRetries
	}
	if c.Sync.RetryBackoff == 0 {
		c.Sync.RetryBackoff = DefaultRetryBackoff
	}

	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
