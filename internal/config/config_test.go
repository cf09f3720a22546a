package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	require.Equal(t, defaultBaseURL, cfg.BaseURL)
	require.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(envBaseURL, "https://staging.example.com/v1")
	t.Setenv(envTimeout, "5s")

	cfg := Load()
	require.Equal(t, "https://staging.example.com/v1", cfg.BaseURL)
	require.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_InvalidTimeoutKeepsDefault(t *testing.T) {
	t.Setenv(envTimeout, "soon")

	cfg := Load()
	require.Equal(t, defaultTimeout, cfg.Timeout)
}
