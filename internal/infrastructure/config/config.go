package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth     AuthConfig
	Admin    AdminConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	Audit    AuditConfig
}

type AuthConfig struct {
	TokenHeader string        `env:"TOKEN_HEADER, default=X-Token"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=48h"`
	BcryptCost  int           `env:"BCRYPT_COST,  default=10"`
}

// AdminConfig names the admin account bootstrapped at startup. Both fields
// must be set for the bootstrap to run.
type AdminConfig struct {
	Name     string `env:"ADMIN_NAME"`
	Password string `env:"ADMIN_PASSWORD"`
}

type PostgresConfig struct {
	User     string `env:"POSTGRES_USER,     default=postgres"`
	Password string `env:"POSTGRES_PASSWORD, default=postgres"`
	Database string `env:"POSTGRES_DB,       default=classifieds"`
	Host     string `env:"POSTGRES_HOST,     default=localhost"`
	Port     int    `env:"POSTGRES_PORT,     default=5432"`
	SSLMode  string `env:"POSTGRES_SSLMODE,  default=disable"`
}

// RedisConfig configures the token cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,        default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=10"`
}

// MongoConfig configures the audit store. An empty URI sends audit events to
// the log instead.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=classifieds"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.TokenHeader == "" {
		return fmt.Errorf("TOKEN_HEADER must not be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	if (c.Admin.Name == "") != (c.Admin.Password == "") {
		return fmt.Errorf("ADMIN_NAME and ADMIN_PASSWORD must be set together")
	}
	return nil
}
