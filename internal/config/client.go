package config

import (
	"fmt"
	"time"
)

// Output formats supported by the operator CLI.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ClientConfig configures the operator client (bookingctl).
type ClientConfig struct {
	APIURL         string        `yaml:"api_url"            env:"BOOKING_API_URL"            env-default:"http://localhost:8080"`
	Token          string        `yaml:"token"              env:"BOOKING_TOKEN"`
	PollInterval   time.Duration `yaml:"poll_interval"      env:"BOOKING_POLL_INTERVAL"      env-default:"2s"`
	RequestTimeout time.Duration `yaml:"request_timeout"    env:"BOOKING_REQUEST_TIMEOUT"    env-default:"5s"`
	OutOfSyncAfter int           `yaml:"out_of_sync_after"  env:"BOOKING_OUT_OF_SYNC_AFTER"  env-default:"3"`
	Format         string        `yaml:"format"             env:"BOOKING_FORMAT"             env-default:"text"`
}

// Validate checks client settings.
func (c *ClientConfig) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be > 0 (got %s)", c.PollInterval)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be > 0 (got %s)", c.RequestTimeout)
	}
	if c.OutOfSyncAfter < 1 {
		return fmt.Errorf("out_of_sync_after must be >= 1 (got %d)", c.OutOfSyncAfter)
	}
	return ValidateFormat(c.Format)
}

// ValidateFormat checks an output format name.
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("format must be one of text, json, yaml (got %q)", format)
}
