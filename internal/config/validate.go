package config

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if raw := strings.TrimSpace(c.Auth.SessionTTLRaw); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("auth.session_ttl: %w", err)
		}
		c.Auth.SessionTTL = ttl
	}
	if c.Auth.SessionTTL < 0 {
		return fmt.Errorf("auth.session_ttl must be >= 0 (got %s)", c.Auth.SessionTTL)
	}
	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be between %d and %d (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}
	if err := c.Auth.Bootstrap.validate(); err != nil {
		return fmt.Errorf("auth.bootstrap: %w", err)
	}

	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("store.sqlite_path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("store.driver must be one of memory, sqlite, postgres (got %q)", c.Store.Driver)
	}

	if c.RateLimit.SubmitPerMinute < 0 || c.RateLimit.LoginPerMinute < 0 {
		return fmt.Errorf("rate_limit budgets must be >= 0")
	}

	return nil
}

func (b BootstrapAdmin) validate() error {
	if !b.Enabled() {
		return nil
	}
	if !strings.Contains(b.Email, "@") {
		return fmt.Errorf("email %q is not an email address", b.Email)
	}
	if b.Password == "" && b.PasswordHash == "" {
		return fmt.Errorf("password or password_hash is required when email is set")
	}
	if b.PasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(b.PasswordHash)); err != nil {
			return fmt.Errorf("password_hash is not a bcrypt hash: %w", err)
		}
	}
	return nil
}
