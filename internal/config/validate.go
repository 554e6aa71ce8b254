package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.KRX.BaseURL == "" {
		return errors.New("krx.base_url is required")
	}
	if c.KRX.AuthKey == "" {
		return errors.New("krx.auth_key is required")
	}
	if c.KRX.Timeout < 0 {
		return errors.New("krx.timeout must be >= 0")
	}

	if err := c.Database.Postgres.validate("database.postgres"); err != nil {
		return err
	}

	if c.Sync.MaxRetries < 0 {
		return errors.New("sync.max_retries must be >= 0")
	}
	if c.Sync.RetryBackoff < 0 {
		return errors.New("sync.retry_backoff must be >= 0")
	}
	if c.Sync.InterDayDelay < 0 {
		return errors.New("sync.inter_day_delay must be >= 0")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
