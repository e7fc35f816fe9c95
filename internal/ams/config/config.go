package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/brandonyach/amsadmin/internal/ams/model"
)

// Config carries everything one invocation needs: where the AMS instance
// lives, how to authenticate, and how the run should behave. It is passed
// explicitly into the client and pipeline rather than read from ambient
// state so tests can construct one without touching the environment.
type Config struct {
	// URL is the full instance address including the site path,
	// e.g. https://example.smartabase.com/site.
	URL      string `validate:"required,url"`
	Username string `validate:"required"`
	Password string `validate:"required"`

	RequestTimeout time.Duration
	// Interactive enables status messages and the confirmation prompt
	// before any mutation is attempted.
	Interactive bool
	// Workers bounds concurrent save calls. 1 means sequential.
	Workers int `validate:"min=1"`
	// Cache enables the in-process response cache for directory fetches.
	Cache bool
}

// Load builds a Config from the environment. Flag values already parsed by
// the CLI take precedence; pass them in and empty fields fall back to env.
func Load(url, username, password string) (*Config, error) {
	if url == "" {
		url = os.Getenv("AMS_URL")
	}
	if username == "" {
		username = os.Getenv("AMS_USERNAME")
	}
	if password == "" {
		password = os.Getenv("AMS_PASSWORD")
	}

	cfg := &Config{
		URL:            url,
		Username:       username,
		Password:       password,
		RequestTimeout: getEnvDuration("AMS_TIMEOUT", 30*time.Second),
		Interactive:    true,
		Workers:        1,
		Cache:          true,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := model.GetValidator().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		d, err := time.ParseDuration(valStr)
		if err == nil {
			return d
		}
		return fallback
	}
	return time.Duration(val) * time.Second
}
