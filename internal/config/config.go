package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds the whole application configuration, populated from env vars.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	Editor   EditorConfig
}

type AppConfig struct {
	Name        string `env:"APP_NAME" env-default:"Dashboard API"`
	Environment string `env:"APP_ENV" env-default:"development"` // development, staging, production
	Port        string `env:"APP_PORT" env-default:"8080"`
	Version     string `env:"APP_VERSION" env-default:"1.0.0"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
}

type DatabaseConfig struct {
	Host              string        `env:"DB_HOST" env-default:"localhost"`
	Port              int           `env:"DB_PORT" env-default:"5432"`
	User              string        `env:"DB_USER" env-default:"postgres"`
	Password          string        `env:"DB_PASSWORD"`
	Name              string        `env:"DB_NAME" env-default:"dashboard"`
	SSLMode           string        `env:"DB_SSLMODE" env-default:"disable"`
	MaxConns          int32         `env:"DB_MAX_CONNS" env-default:"25"`
	MinConns          int32         `env:"DB_MIN_CONNS" env-default:"5"`
	MaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" env-default:"5m"`
	MaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" env-default:"1m"`
	HealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" env-default:"1m"`
	MaxRetries        int           `env:"DB_MAX_RETRIES" env-default:"5"`
	RetryDelay        time.Duration `env:"DB_RETRY_DELAY" env-default:"1s"`
	ConnectTimeout    time.Duration `env:"DB_CONNECT_TIMEOUT" env-default:"10s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_HOST" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}

type JWTConfig struct {
	Secret            string        `env:"JWT_SECRET" env-default:"your-secret-key-change-in-production"`
	AccessTokenExpiry time.Duration `env:"JWT_ACCESS_EXPIRY" env-default:"15m"`
	BcryptCost        int           `env:"BCRYPT_COST" env-default:"12"`
}

type SMTPConfig struct {
	Host string `env:"SMTP_HOST" env-default:"localhost"`
	Port string `env:"SMTP_PORT" env-default:"1025"`
	From string `env:"SMTP_FROM" env-default:"noreply@dashboard.dev"`
}

// EditorConfig tunes the post editor behaviour.
type EditorConfig struct {
	SlugQuietPeriod time.Duration `env:"EDITOR_SLUG_QUIET_PERIOD" env-default:"1s"`
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	// Missing .env is fine: production uses real env vars.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate rejects development-only defaults in production.
func (c *Config) Validate() error {
	if c.IsProduction() {
		if c.JWT.Secret == "" || c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	if c.Editor.SlugQuietPeriod < 0 {
		return fmt.Errorf("EDITOR_SLUG_QUIET_PERIOD must not be negative")
	}

	return nil
}
