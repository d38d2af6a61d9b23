package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Pin the environment: t.Setenv registers restoration of any
	// machine-local value, then the variable is unset so the struct
	// defaults apply.
	for _, k := range []string{
		"REGISTRY_API_URL", "REGISTRY_HTTP_TIMEOUT", "REGISTRY_DB_PATH",
		"REGISTRY_LOG_LEVEL", "REGISTRY_IDLE_TIMEOUT", "REGISTRY_WARNING_WINDOW",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, "http://localhost:3000/api", cfg.APIBaseURL)
	require.Equal(t, 15*time.Minute, cfg.IdleTimeout)
	require.Equal(t, 2*time.Minute, cfg.WarningWindow)
	require.Equal(t, "registry.db", cfg.DBPath)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("REGISTRY_API_URL", "https://registry.example.com/api")
	t.Setenv("REGISTRY_IDLE_TIMEOUT", "30s")
	t.Setenv("REGISTRY_WARNING_WINDOW", "5s")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "https://registry.example.com/api", cfg.APIBaseURL)
	require.Equal(t, 30*time.Second, cfg.IdleTimeout)
	require.Equal(t, 5*time.Second, cfg.WarningWindow)
}

func TestLoad_RejectsWarningLongerThanTimeout(t *testing.T) {
	t.Setenv("REGISTRY_IDLE_TIMEOUT", "1m")
	t.Setenv("REGISTRY_WARNING_WINDOW", "2m")

	_, err := Load(context.Background())
	require.Error(t, err)
}
