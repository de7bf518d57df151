package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store backend selectors.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret is the process-wide signing secret. Rotating it invalidates
	// every previously issued token.
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	MinPasswordLength int      `env:"MIN_PASSWORD_LENGTH, default=8"`
	AdminEmails       []string `env:"ADMIN_EMAILS"`

	// StoreBackend selects the principal store: "memory" (default) or "mongo".
	StoreBackend string `env:"STORE_BACKEND, default=memory"`
	// PrincipalCache enables the Redis read-through cache for id lookups.
	PrincipalCache bool `env:"PRINCIPAL_CACHE, default=false"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=fieldgate"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.StoreBackend != StoreMemory && cfg.StoreBackend != StoreMongo {
		return nil, fmt.Errorf("config: unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	return &cfg, nil
}
