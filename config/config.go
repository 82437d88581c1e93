package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	App      AppConfig      `mapstructure:"app"`
	Clicks   ClicksConfig   `mapstructure:"clicks"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  string `mapstructure:"read_timeout"`
	WriteTimeout string `mapstructure:"write_timeout"`
	IdleTimeout  string `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Type         string         `mapstructure:"type"` // memory, sqlite, postgres
	MaxOpenConns int            `mapstructure:"max_open_conns"`
	MaxIdleConns int            `mapstructure:"max_idle_conns"`
	SQLite       SQLiteConfig   `mapstructure:"sqlite"`
	Postgres     PostgresConfig `mapstructure:"postgres"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type PostgresConfig struct {
	URL string `mapstructure:"url"`
}

type AppConfig struct {
	BaseURL            string `mapstructure:"base_url"`
	CodeLength         int    `mapstructure:"code_length"`
	FallbackCodeLength int    `mapstructure:"fallback_code_length"`
	MaxAttempts        int    `mapstructure:"max_attempts"`
	VerifyFallback     bool   `mapstructure:"verify_fallback"`
}

// ClicksConfig sizes the background click counter queue.
type ClicksConfig struct {
	Workers   int           `mapstructure:"workers"`
	QueueSize int           `mapstructure:"queue_size"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json, text
}

type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Path           string `mapstructure:"path"`
	Namespace      string `mapstructure:"namespace"`
	Subsystem      string `mapstructure:"subsystem"`
	CollectRuntime bool   `mapstructure:"collect_runtime"`
}

func Load() (*Config, error) {
	// A missing .env is the normal case outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/linkshortener/")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")

	v.SetDefault("database.type", "memory")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.sqlite.path", "./data/links.db")
	v.SetDefault("database.postgres.url", "")

	v.SetDefault("app.base_url", "http://localhost:8080")
	v.SetDefault("app.code_length", 6)
	v.SetDefault("app.fallback_code_length", 8)
	v.SetDefault("app.max_attempts", 10)
	v.SetDefault("app.verify_fallback", false)

	v.SetDefault("clicks.workers", 4)
	v.SetDefault("clicks.queue_size", 1024)
	v.SetDefault("clicks.timeout", "5s")

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/api/metrics")
	v.SetDefault("metrics.namespace", "linkshortener")
	v.SetDefault("metrics.subsystem", "")
	v.SetDefault("metrics.collect_runtime", true)
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Type {
	case "memory", "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}

	if c.Database.Type == "postgres" && c.Database.Postgres.URL == "" {
		return errors.New("database.postgres.url is required for postgres")
	}
	if c.App.CodeLength <= 0 {
		return fmt.Errorf("app.code_length must be positive, got %d", c.App.CodeLength)
	}
	if c.App.MaxAttempts <= 0 {
		return fmt.Errorf("app.max_attempts must be positive, got %d", c.App.MaxAttempts)
	}
	if c.App.FallbackCodeLength != 0 && c.App.FallbackCodeLength < c.App.CodeLength {
		return fmt.Errorf("app.fallback_code_length (%d) must not be shorter than app.code_length (%d)",
			c.App.FallbackCodeLength, c.App.CodeLength)
	}
	if c.Clicks.Workers <= 0 {
		return fmt.Errorf("clicks.workers must be positive, got %d", c.Clicks.Workers)
	}
	if c.Metrics.Enabled && !isMultiSegmentPath(c.Metrics.Path) {
		return fmt.Errorf("metrics.path %q must be an absolute path with at least two segments so it cannot shadow a short code", c.Metrics.Path)
	}
	if c.Clicks.QueueSize < 0 {
		return fmt.Errorf("clicks.queue_size must not be negative, got %d", c.Clicks.QueueSize)
	}

	return nil
}

// isMultiSegmentPath reports whether p looks like /a/b. Single-segment
// paths share the namespace of short codes.
func isMultiSegmentPath(p string) bool {
	if !strings.HasPrefix(p, "/") {
		return false
	}
	first, rest, found := strings.Cut(strings.TrimPrefix(p, "/"), "/")
	return found && first != "" && strings.Trim(rest, "/") != ""
}

func (c *Config) GetDatabaseURL() string {
	switch c.Database.Type {
	case "sqlite":
		return c.Database.SQLite.Path
	case "postgres":
		return c.Database.Postgres.URL
	default:
		return ""
	}
}
