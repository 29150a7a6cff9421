package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the crm-server configuration.
type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=720h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// SeedDefaults fills an empty action status catalog on startup.
	SeedDefaults bool `env:"SEED_DEFAULTS, default=true"`
	// CORSOrigins is a comma separated allow-list for browser frontends.
	CORSOrigins []string `env:"CORS_ORIGINS, default=http://localhost:3000"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=crm"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// IsProduction reports whether the server runs with ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads configuration from environment variables using go-envconfig.
// Misconfiguration is fatal.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return &cfg, nil
}
