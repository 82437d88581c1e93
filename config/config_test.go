package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into an empty directory so no config.yaml or .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Database.Type)
	assert.Equal(t, "http://localhost:8080", cfg.App.BaseURL)
	assert.Equal(t, 6, cfg.App.CodeLength)
	assert.Equal(t, 8, cfg.App.FallbackCodeLength)
	assert.Equal(t, 10, cfg.App.MaxAttempts)
	assert.False(t, cfg.App.VerifyFallback)
	assert.Equal(t, 4, cfg.Clicks.Workers)
	assert.Equal(t, 1024, cfg.Clicks.QueueSize)
	assert.Equal(t, 5*time.Second, cfg.Clicks.Timeout)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "/api/metrics", cfg.Metrics.Path)
}

func TestLoad_ConfigFileAndEnv(t *testing.T) {
	dir := chdirTemp(t)

	yaml := []byte(`
database:
  type: sqlite
  sqlite:
    path: /tmp/test.db
app:
  base_url: https://sho.rt
clicks:
  workers: 2
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("CLICKS_WORKERS", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "/tmp/test.db", cfg.GetDatabaseURL())
	assert.Equal(t, "https://sho.rt", cfg.App.BaseURL)
	assert.Equal(t, 8, cfg.Clicks.Workers)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_BASE_URL=https://from.env\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("APP_BASE_URL") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://from.env", cfg.App.BaseURL)
}

func TestLoad_InvalidDatabaseType(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DATABASE_TYPE", "mongo")

	_, err := Load()
	assert.ErrorContains(t, err, "unsupported database type")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Database: DatabaseConfig{Type: "memory"},
			App:      AppConfig{CodeLength: 6, FallbackCodeLength: 8, MaxAttempts: 10},
			Clicks:   ClicksConfig{Workers: 1, QueueSize: 10},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "fallback disabled", mutate: func(c *Config) { c.App.FallbackCodeLength = 0 }},
		{name: "postgres without url", mutate: func(c *Config) { c.Database.Type = "postgres" }, wantErr: "postgres.url"},
		{name: "zero code length", mutate: func(c *Config) { c.App.CodeLength = 0 }, wantErr: "code_length"},
		{name: "zero attempts", mutate: func(c *Config) { c.App.MaxAttempts = 0 }, wantErr: "max_attempts"},
		{name: "short fallback", mutate: func(c *Config) { c.App.FallbackCodeLength = 4 }, wantErr: "fallback_code_length"},
		{name: "no workers", mutate: func(c *Config) { c.Clicks.Workers = 0 }, wantErr: "clicks.workers"},
		{name: "negative queue", mutate: func(c *Config) { c.Clicks.QueueSize = -1 }, wantErr: "clicks.queue_size"},
		{name: "nested metrics path", mutate: func(c *Config) { c.Metrics = MetricsConfig{Enabled: true, Path: "/ops/metrics"} }},
		{name: "single segment metrics path", mutate: func(c *Config) { c.Metrics = MetricsConfig{Enabled: true, Path: "/metrics"} }, wantErr: "metrics.path"},
		{name: "relative metrics path", mutate: func(c *Config) { c.Metrics = MetricsConfig{Enabled: true, Path: "api/metrics"} }, wantErr: "metrics.path"},
		{name: "trailing slash metrics path", mutate: func(c *Config) { c.Metrics = MetricsConfig{Enabled: true, Path: "/metrics/"} }, wantErr: "metrics.path"},
		{name: "metrics disabled ignores path", mutate: func(c *Config) { c.Metrics = MetricsConfig{Path: "/metrics"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		SQLite:   SQLiteConfig{Path: "./links.db"},
		Postgres: PostgresConfig{URL: "postgres://localhost/links"},
	}}

	cfg.Database.Type = "sqlite"
	assert.Equal(t, "./links.db", cfg.GetDatabaseURL())

	cfg.Database.Type = "postgres"
	assert.Equal(t, "postgres://localhost/links", cfg.GetDatabaseURL())

	cfg.Database.Type = "memory"
	assert.Empty(t, cfg.GetDatabaseURL())
}
