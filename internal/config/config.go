// Package config loads runtime settings from the environment.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds every runtime setting of the client.
//
// The only setting that normally needs to be provided is REGISTRY_API_URL;
// everything else has a working default. Session timing knobs exist so the
// idle-timeout behavior can be shortened in local testing.
type Config struct {
	APIBaseURL  string        `env:"REGISTRY_API_URL,    default=http://localhost:3000/api"`
	HTTPTimeout time.Duration `env:"REGISTRY_HTTP_TIMEOUT, default=10s"`
	DBPath      string        `env:"REGISTRY_DB_PATH,    default=registry.db"`
	LogLevel    string        `env:"REGISTRY_LOG_LEVEL,  default=info"`

	// IdleTimeout is the total inactivity window before the session
	// expires; WarningWindow is how long before expiry the user is warned.
	IdleTimeout   time.Duration `env:"REGISTRY_IDLE_TIMEOUT,   default=15m"`
	WarningWindow time.Duration `env:"REGISTRY_WARNING_WINDOW, default=2m"`
}

// Load reads configuration from the environment using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.WarningWindow >= cfg.IdleTimeout {
		return nil, fmt.Errorf("warning window (%s) must be shorter than idle timeout (%s)",
			cfg.WarningWindow, cfg.IdleTimeout)
	}
	return &cfg, nil
}
