package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=5000"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogFile   string `env:"LOG_FILE"`
	ClientURL string `env:"CLIENT_URL, default=http://localhost:3000"`

	Auth      AuthConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Analytics AnalyticsConfig
	AMQP      AMQPConfig
	Admin     AdminConfig
}

type AuthConfig struct {
	AccessSecret  string        `env:"JWT_SECRET,           required"`
	RefreshSecret string        `env:"REFRESH_TOKEN_SECRET, required"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL,     default=15m"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL,    default=168h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=expense_tracker"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type RateLimitConfig struct {
	PerMinute int `env:"RATE_LIMIT_PER_MINUTE, default=30"`
}

type AnalyticsConfig struct {
	CacheTTL    time.Duration `env:"ANALYTICS_CACHE_TTL,    default=5m"`
	RefreshSpec string        `env:"ANALYTICS_REFRESH_SPEC, default=@every 5m"`
}

// AMQPConfig enables the audit fan-out when URL is set.
type AMQPConfig struct {
	URL      string `env:"AMQP_URL"`
	Exchange string `env:"AMQP_EXCHANGE, default=audit"`
	Workers  int    `env:"AUDIT_WORKERS, default=4"`
}

// AdminConfig seeds an admin account at startup when Email is set.
type AdminConfig struct {
	Name     string `env:"ADMIN_NAME, default=Super Admin"`
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// IsDevelopment reports whether the service runs locally, which relaxes the
// Secure cookie flag and enables pretty logs.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads a .env file when present, then configuration from environment
// variables using go-envconfig. It panics on invalid configuration.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("config: failed to read .env: %v", err))
	}
	cfg, err := Process(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// Process builds a Config from lookuper and validates it.
func Process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return errors.New("JWT_SECRET and REFRESH_TOKEN_SECRET must differ")
	}
	if c.Auth.AccessTTL <= 0 || c.Auth.RefreshTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.Auth.AccessTTL >= c.Auth.RefreshTTL {
		return errors.New("ACCESS_TOKEN_TTL must be shorter than REFRESH_TOKEN_TTL")
	}
	if c.RateLimit.PerMinute <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.Admin.Email != "" && c.Admin.Password == "" {
		return errors.New("ADMIN_PASSWORD is required when ADMIN_EMAIL is set")
	}
	return nil
}
