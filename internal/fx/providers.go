package fx

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/sp3dr4/linkshortener/config"
	"github.com/sp3dr4/linkshortener/internal/application"
	"github.com/sp3dr4/linkshortener/internal/clicks"
	"github.com/sp3dr4/linkshortener/internal/domain"
	cacheImpl "github.com/sp3dr4/linkshortener/internal/infrastructure/cache"
	"github.com/sp3dr4/linkshortener/internal/infrastructure/database"
	memoryRepo "github.com/sp3dr4/linkshortener/internal/infrastructure/memory"
	postgresRepo "github.com/sp3dr4/linkshortener/internal/infrastructure/postgres"
	redisCache "github.com/sp3dr4/linkshortener/internal/infrastructure/redis"
	sqliteRepo "github.com/sp3dr4/linkshortener/internal/infrastructure/sqlite"
	"github.com/sp3dr4/linkshortener/internal/pkg/logging"
	"github.com/sp3dr4/linkshortener/internal/pkg/metrics"
	"github.com/sp3dr4/linkshortener/internal/shortcode"
)

// ProvideLogger creates and configures the application logger
func ProvideLogger(cfg *config.Config) *slog.Logger {
	return logging.New(cfg.Logging, os.Stdout)
}

// ProvideRepository creates the appropriate repository based on configuration
func ProvideRepository(cfg *config.Config, logger *slog.Logger) (domain.LinkRepository, error) {
	opts := database.Options{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	}

	switch cfg.Database.Type {
	case "memory":
		logger.Info("Using in-memory repository")
		return memoryRepo.NewLinkRepository(), nil

	case "sqlite":
		path := cfg.GetDatabaseURL()
		logger.Info("Using SQLite repository", "path", path)

		db, err := database.Open(database.DriverSQLite, path, opts)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db, database.DriverSQLite, logger); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return sqliteRepo.NewLinkRepository(db, logger), nil

	case "postgres":
		logger.Info("Using PostgreSQL repository")

		db, err := database.Open(database.DriverPostgres, cfg.GetDatabaseURL(), opts)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db, database.DriverPostgres, logger); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return postgresRepo.NewLinkRepository(db, logger), nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}
}

// ProvideMetricsRegistry returns a Prometheus registry, or a no-op one when
// metrics are disabled.
func ProvideMetricsRegistry(cfg *config.Config, logger *slog.Logger) (metrics.Registry, error) {
	if !cfg.Metrics.Enabled {
		logger.Info("Metrics disabled")
		return metrics.NewNoOpRegistry(), nil
	}
	registry, err := metrics.NewPrometheusRegistry(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics registry: %w", err)
	}
	return registry, nil
}

// ProvideRedisClient returns nil when the lookup cache is disabled.
func ProvideRedisClient(cfg *config.Config, logger *slog.Logger) *redis.Client {
	if !cfg.Cache.Enabled {
		return nil
	}
	logger.Info("Using Redis lookup cache", "addr", cfg.Cache.Redis.Addr, "db", cfg.Cache.Redis.DB)
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})
}

func ProvideCache(client *redis.Client, logger *slog.Logger) domain.Cache {
	if client == nil {
		return cacheImpl.NewNoOpCache()
	}
	return redisCache.NewRedisCache(client, logger)
}

func ProvideAllocator(cfg *config.Config, repo domain.LinkRepository, registry metrics.Registry, logger *slog.Logger) *shortcode.Allocator {
	policy := shortcode.Policy{
		Length:         cfg.App.CodeLength,
		MaxAttempts:    cfg.App.MaxAttempts,
		FallbackLength: cfg.App.FallbackCodeLength,
		VerifyFallback: cfg.App.VerifyFallback,
	}
	return shortcode.NewAllocator(repo, shortcode.NewRandomGenerator(), policy, registry, logger)
}

func ProvideClickRecorder(cfg *config.Config, repo domain.LinkRepository, registry metrics.Registry, logger *slog.Logger) *clicks.Recorder {
	return clicks.NewRecorder(repo, clicks.Options{
		Workers:   cfg.Clicks.Workers,
		QueueSize: cfg.Clicks.QueueSize,
		Timeout:   cfg.Clicks.Timeout,
	}, registry, logger)
}

// ServiceParams holds the dependencies of the link service
type ServiceParams struct {
	fx.In

	Config     *config.Config
	Repository domain.LinkRepository
	Allocator  *shortcode.Allocator
	Recorder   *clicks.Recorder
	Cache      domain.Cache
	Metrics    metrics.Registry
	Logger     *slog.Logger
}

func ProvideLinkService(params ServiceParams) *application.LinkService {
	opts := application.Options{BaseURL: params.Config.App.BaseURL}
	if params.Config.Cache.Enabled {
		opts.CacheTTL = params.Config.Cache.TTL
	}
	return application.NewLinkService(
		params.Repository,
		params.Allocator,
		params.Recorder,
		params.Cache,
		opts,
		params.Metrics,
		params.Logger,
	)
}

// RepositoryParams holds the parameters needed for repository lifecycle management
type RepositoryParams struct {
	fx.In

	Repository domain.LinkRepository
	Logger     *slog.Logger
}

// RegisterRepositoryHooks registers repository lifecycle hooks with FX
func RegisterRepositoryHooks(lc fx.Lifecycle, params RepositoryParams) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := params.Repository.Close(); err != nil {
				params.Logger.Error("Failed to close repository resources", "error", err)
				return err
			}
			params.Logger.Info("Repository resources closed successfully")
			return nil
		},
	})
}

// CacheParams holds the parameters needed for cache lifecycle management
type CacheParams struct {
	fx.In

	Client *redis.Client `optional:"true"`
	Cache  domain.Cache
	Logger *slog.Logger
}

// RegisterCacheHooks pings the cache on start and closes the client on stop.
// An unreachable cache is not fatal since lookups fall back to the store.
func RegisterCacheHooks(lc fx.Lifecycle, params CacheParams) {
	if params.Client == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := params.Cache.Ping(ctx); err != nil {
				params.Logger.Warn("Lookup cache unreachable, continuing without it", "error", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := params.Client.Close(); err != nil {
				params.Logger.Error("Failed to close redis client", "error", err)
				return err
			}
			return nil
		},
	})
}

// RecorderParams holds the parameters needed for click recorder lifecycle management
type RecorderParams struct {
	fx.In

	Recorder *clicks.Recorder
	Logger   *slog.Logger
}

// RegisterClickRecorderHooks starts the click workers and drains them on
// stop. Clicks still queued when the stop deadline passes are lost.
func RegisterClickRecorderHooks(lc fx.Lifecycle, params RecorderParams) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			params.Recorder.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := params.Recorder.Stop(ctx); err != nil {
				params.Logger.Warn("Click recorder stopped before draining", "error", err)
				return nil
			}
			params.Logger.Info("Click recorder drained")
			return nil
		},
	})
}
