package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/baechuer/account-service/internal/userdata"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type Config struct {
	// App
	Env string `env:"ENV" envDefault:"dev"` // dev / staging / prod

	// HTTP
	HTTPAddr         string        `env:"HTTP_ADDR" envDefault:":8080"`
	HTTPReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	HTTPIdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"1m"`
	CORSOrigins      []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Auth / Security
	JWTSecret  string        `env:"JWT_SECRET,required"`
	JWTIssuer  string        `env:"JWT_ISSUER" envDefault:"account-service"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	// Validation policies
	RegisterPolicy string `env:"REGISTER_POLICY" envDefault:"strict"`
	ValidatePolicy string `env:"VALIDATE_POLICY" envDefault:"lenient"`

	// Storage
	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`
	DBAddr      string `env:"DB_ADDR"`
	DBDebug     bool   `env:"DB_DEBUG" envDefault:"false"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"account.db"`

	// Cache (optional)
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	UserCacheTTL  time.Duration `env:"USER_CACHE_TTL" envDefault:"5m"`

	// Messaging (optional in dev)
	RabbitURL      string `env:"RABBIT_URL"`
	RabbitExchange string `env:"RABBIT_EXCHANGE" envDefault:"account.events"`
}

// Load reads an optional .env file, then the process environment.
// Values already set in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("missing required env var: JWT_SECRET")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}

	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if c.DBAddr == "" {
			return fmt.Errorf("missing required env var: DB_ADDR (STORE_DRIVER=postgres)")
		}
		if err := validatePostgresDSN(c.DBAddr); err != nil {
			return err
		}
	case StoreSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("missing required env var: SQLITE_PATH (STORE_DRIVER=sqlite)")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be one of memory, postgres, sqlite; got %q", c.StoreDriver)
	}

	if _, err := userdata.PolicyByName(c.RegisterPolicy); err != nil {
		return fmt.Errorf("REGISTER_POLICY: %w", err)
	}
	if _, err := userdata.PolicyByName(c.ValidatePolicy); err != nil {
		return fmt.Errorf("VALIDATE_POLICY: %w", err)
	}
	return nil
}

func validatePostgresDSN(dsn string) error {
	u, err := url.Parse(dsn)
	if err != nil {
		return fmt.Errorf("invalid DB_ADDR: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return fmt.Errorf("DB_ADDR must use the postgres:// scheme, got %q", u.Scheme)
	}
	if strings.Trim(u.Path, "/") == "" {
		return fmt.Errorf("DB_ADDR must name a database")
	}
	return nil
}
