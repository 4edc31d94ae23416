package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// InsecureSessionSecret is the fallback signing key for local development.
const InsecureSessionSecret = "super secret key"

type Config struct {
	App struct {
		Name      string `envconfig:"APP_NAME" default:"Fintrack"`
		Env       string `envconfig:"APP_ENV" default:"development"`
		LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
		LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	}

	DB struct {
		URI         string `envconfig:"POSTGRES_URI"`
		Host        string `envconfig:"DB_HOST" default:"localhost"`
		Port        int    `envconfig:"DB_PORT" default:"5432"`
		User        string `envconfig:"DB_USER" default:"postgres"`
		Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
		Name        string `envconfig:"DB_NAME" default:"fintrack"`
		AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
	}

	Server struct {
		Port            int           `envconfig:"SERVER_PORT" default:"8080"`
		ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
		WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
		ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
		AllowedOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Session struct {
		SecretKey    string        `envconfig:"SESSION_SECRET_KEY" default:"super secret key"`
		TTL          time.Duration `envconfig:"SESSION_TTL" default:"24h"`
		SecureCookie bool          `envconfig:"SESSION_SECURE_COOKIE" default:"false"`
		BcryptCost   int           `envconfig:"BCRYPT_COST" default:"10"`
	}
}

// ConnectionString returns POSTGRES_URI when set, otherwise a URI built from the DB_* parts.
func (c *Config) ConnectionString() string {
	if c.DB.URI != "" {
		return c.DB.URI
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.App.Env, "development")
}

// UsesInsecureSessionSecret reports whether a non-development environment is
// still signing sessions with the fallback key.
func (c *Config) UsesInsecureSessionSecret() bool {
	return c.Session.SecretKey == InsecureSessionSecret && !c.IsDevelopment()
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
