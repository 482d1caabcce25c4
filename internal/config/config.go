// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config is built once at start-up and passed to every component
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	YouTube  YouTubeConfig
	Auth     AuthConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT" env-default:"3000"`
	Environment     string        `env:"ENVIRONMENT" env-default:"development"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" env-default:"60s"`
}

type DatabaseConfig struct {
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"PG_PORT" env-default:"5432"`
	Name     string `env:"PG_NAME" env-default:"learning_tracks"`
	User     string `env:"PG_USER" env-default:"postgres"`
	Password string `env:"PG_PASSWORD" env-default:"postgres"`
	Migrate  bool   `env:"DB_MIGRATE" env-default:"true"`
}

type YouTubeConfig struct {
	APIKey    string        `env:"YOUTUBE_API_KEY" env-required:"true"`
	BaseURL   string        `env:"YOUTUBE_API_BASE_URL" env-default:"https://www.googleapis.com/youtube/v3/videos"`
	Timeout   time.Duration `env:"YOUTUBE_API_TIMEOUT" env-default:"10s"`
	RateLimit float64       `env:"YOUTUBE_RATE_LIMIT" env-default:"5"`
	RateBurst int           `env:"YOUTUBE_RATE_BURST" env-default:"1"`
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL   time.Duration `env:"JWT_TTL" env-default:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" env-default:"12"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"text"`
}

// Load reads an optional .env file, then the environment, and validates the result.
// Variables already present in the environment take precedence over .env.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that tags cannot express
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return fmt.Errorf("server port is required")
	}
	if c.YouTube.RateLimit <= 0 {
		return fmt.Errorf("youtube rate limit must be positive, got %v", c.YouTube.RateLimit)
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}
	return nil
}

// ConnString returns DATABASE_URL when set, otherwise a URL built from the PG_* parts
func (c DatabaseConfig) ConnString() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Name,
	}
	return u.String()
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// IsDevelopment reports whether the service runs in a development environment
func (c ServerConfig) IsDevelopment() bool {
	return c.Environment == "development"
}
