package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

type AppConfig struct {
	AppName     string `env:"APP_NAME" envDefault:"portfolio-api"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	SeedOnStart bool   `env:"SEED_ON_START" envDefault:"false"`
}

type HTTPConfig struct {
	Port            string        `env:"HTTP_PORT" envDefault:"8001"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	StartupTimeout  time.Duration `env:"STARTUP_TIMEOUT" envDefault:"30s"`
}

type DatabaseConfig struct {
	Driver         string        `env:"STORE_DRIVER" envDefault:"postgres"`
	URL            string        `env:"DATABASE_URL"`
	Name           string        `env:"DB_NAME" envDefault:"portfolio"`
	SQLitePath     string        `env:"SQLITE_PATH" envDefault:"portfolio.db"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`
	PoolMaxConns   int32         `env:"DB_POOL_MAX_CONNS" envDefault:"0"`
}

// RedisConfig is optional; an empty Addr disables cross-instance fan-out.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	Channel  string `env:"REDIS_CONTACT_CHANNEL" envDefault:"portfolio:contact_messages"`
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.App.AppName = strings.TrimSpace(c.App.AppName)
	c.HTTP.Port = strings.TrimSpace(c.HTTP.Port)
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	c.Database.URL = strings.TrimSpace(c.Database.URL)
	c.Database.Name = strings.TrimSpace(c.Database.Name)
	c.Redis.Addr = strings.TrimSpace(c.Redis.Addr)

	origins := make([]string, 0, len(c.HTTP.CORSOrigins))
	for _, o := range c.HTTP.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.HTTP.CORSOrigins = origins

	var missing []string
	if c.HTTP.Port == "" {
		missing = append(missing, "HTTP_PORT")
	}

	if c.HTTP.StartupTimeout <= 0 {
		return fmt.Errorf("%w: STARTUP_TIMEOUT must be positive", errInvalidEnv)
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Database.SQLitePath) == "" {
			missing = append(missing, "SQLITE_PATH")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: STORE_DRIVER=%q", errInvalidEnv, c.Database.Driver)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	return nil
}
