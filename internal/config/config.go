package config

import (
	"os"
	"time"
)

const (
	envBaseURL = "CHARACLI_BASE_URL"
	envTimeout = "CHARACLI_TIMEOUT"
)

const (
	defaultBaseURL = "https://api.bothub.chat/v1"
	defaultTimeout = 30 * time.Second
)

// Config holds the runtime settings of the client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Load builds a Config from defaults overlaid with environment variables.
// Command-line flags are applied afterwards by the cmd layer, so the
// precedence is defaults -> env -> flags.
func Load() *Config {
	cfg := &Config{
		BaseURL: defaultBaseURL,
		Timeout: defaultTimeout,
	}

	if v := os.Getenv(envBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(envTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}

	return cfg
}
