// Package config loads the settings of the crm command line client.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	// APIURL is the base of the backend routes, including the /api prefix.
	APIURL string `env:"CRM_API_URL, default=http://localhost:8080/api"`
	// SessionFile holds the persisted credential token. Empty means
	// $XDG_CONFIG_HOME/crm/session.yaml (or the OS equivalent).
	SessionFile string        `env:"CRM_SESSION_FILE"`
	Timeout     time.Duration `env:"CRM_TIMEOUT, default=15s"`
	LogLevel    string        `env:"LOG_LEVEL, default=warn"`
}

// Load reads the CLI configuration from the environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads the configuration through l and fills in derived defaults.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.SessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve session file: %w", err)
		}
		cfg.SessionFile = filepath.Join(dir, "crm", "session.yaml")
	}
	return &cfg, nil
}
