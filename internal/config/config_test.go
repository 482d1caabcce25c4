package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "test-key")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load("testdata/does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.RequestTimeout)
	assert.True(t, cfg.Server.IsDevelopment())
	assert.True(t, cfg.Database.Migrate)
	assert.Equal(t, "https://www.googleapis.com/youtube/v3/videos", cfg.YouTube.BaseURL)
	assert.Equal(t, 5.0, cfg.YouTube.RateLimit)
	assert.Equal(t, 1, cfg.YouTube.RateBurst)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, key := range []string{"YOUTUBE_API_KEY", "JWT_SECRET"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	_, err := Load("testdata/does-not-exist.env")
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "8081")
	t.Setenv("YOUTUBE_RATE_LIMIT", "2.5")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load("testdata/does-not-exist.env")
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, 2.5, cfg.YouTube.RateLimit)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:  ServerConfig{Port: "3000"},
			YouTube: YouTubeConfig{RateLimit: 5},
			Auth:    AuthConfig{BcryptCost: 12},
			Log:     LogConfig{Format: "text"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Server.Port = " " }},
		{"zero rate", func(c *Config) { c.YouTube.RateLimit = 0 }},
		{"cost too low", func(c *Config) { c.Auth.BcryptCost = 1 }},
		{"cost too high", func(c *Config) { c.Auth.BcryptCost = 99 }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	base := valid()
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConnString(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5433, Name: "tracks", User: "app", Password: "p@ss"}
	assert.Equal(t, "postgres://app:p%40ss@db:5433/tracks", db.ConnString())

	db.URL = "postgres://override/x"
	assert.Equal(t, "postgres://override/x", db.ConnString())
}
