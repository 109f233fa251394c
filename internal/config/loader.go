package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	serverConfigEnv  = "CONFIG_PATH"
	serverConfigFile = "./config.yaml"

	clientConfigEnv = "BOOKINGCTL_CONFIG"
)

type validator interface {
	Validate() error
}

// Load reads the server configuration. Priority: ENV > YAML > env-default.
// The YAML file is CONFIG_PATH or ./config.yaml; only an explicit
// CONFIG_PATH has to exist.
func Load() (*Config, error) {
	var cfg Config
	if err := load(&cfg, serverConfigEnv, serverConfigFile); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadClient reads the bookingctl configuration from BOOKINGCTL_CONFIG or
// <user config dir>/bookingctl/config.yaml, then the BOOKING_* variables.
func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := load(&cfg, clientConfigEnv, defaultClientConfigFile()); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultClientConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bookingctl", "config.yaml")
}

func load(cfg validator, pathEnv, fallback string) error {
	path, explicit := os.LookupEnv(pathEnv)
	if !explicit || path == "" {
		path, explicit = fallback, false
	}

	var err error
	switch _, statErr := os.Stat(path); {
	case path != "" && statErr == nil:
		err = cleanenv.ReadConfig(path, cfg)
		if err != nil {
			err = fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		err = fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		err = cleanenv.ReadEnv(cfg)
		if err != nil {
			err = fmt.Errorf("config: read env: %w", err)
		}
	}
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: validate: %w", err)
	}
	return nil
}
