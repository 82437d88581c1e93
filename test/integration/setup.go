//go:build integration

package integration

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	postgresContainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	redisContainer "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sp3dr4/linkshortener/internal/application"
	"github.com/sp3dr4/linkshortener/internal/clicks"
	"github.com/sp3dr4/linkshortener/internal/domain"
	cacheImpl "github.com/sp3dr4/linkshortener/internal/infrastructure/cache"
	"github.com/sp3dr4/linkshortener/internal/infrastructure/database"
	postgresRepo "github.com/sp3dr4/linkshortener/internal/infrastructure/postgres"
	redisCache "github.com/sp3dr4/linkshortener/internal/infrastructure/redis"
	"github.com/sp3dr4/linkshortener/internal/pkg/logging"
	"github.com/sp3dr4/linkshortener/internal/pkg/metrics"
	"github.com/sp3dr4/linkshortener/internal/shortcode"
)

const testBaseURL = "http://localhost:8080"

var (
	sharedPostgres *postgresContainer.PostgresContainer
	sharedDB       *sqlx.DB
	postgresOnce   sync.Once

	sharedRedis *redisContainer.RedisContainer
	sharedCache *redis.Client
	redisOnce   sync.Once

	cleanupOnce sync.Once
)

// TestEnvironment holds the test setup
type TestEnvironment struct {
	DB         *sqlx.DB
	Repository *postgresRepo.LinkRepository
	Recorder   *clicks.Recorder
	Service    *application.LinkService
}

// SetupTestEnvironment starts a shared PostgreSQL container, runs the
// embedded migrations and returns a LinkService over a clean table. A
// non-nil cache enables the lookup cache.
func SetupTestEnvironment(t *testing.T, cache domain.Cache) *TestEnvironment {
	t.Helper()
	logger := logging.Discard()

	postgresOnce.Do(func() {
		ctx := context.Background()

		container, err := postgresContainer.Run(ctx,
			"postgres:16-alpine",
			postgresContainer.WithDatabase("links_test"),
			postgresContainer.WithUsername("test"),
			postgresContainer.WithPassword("test"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			t.Fatalf("failed to start postgres container: %v", err)
		}
		sharedPostgres = container

		connStr, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			t.Fatalf("failed to get connection string: %v", err)
		}

		db, err := database.Open(database.DriverPostgres, connStr, database.Options{MaxOpenConns: 20})
		if err != nil {
			t.Fatalf("failed to connect to database: %v", err)
		}
		sharedDB = db

		if err := database.Migrate(db, database.DriverPostgres, logger); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	})
	if sharedDB == nil {
		t.Fatal("postgres container unavailable")
	}

	cleanDatabase(t, sharedDB)

	registry := metrics.NewNoOpRegistry()
	repo := postgresRepo.NewLinkRepository(sharedDB, logger)

	recorder := clicks.NewRecorder(repo, clicks.Options{Workers: 2, QueueSize: 64}, registry, logger)
	recorder.Start()
	t.Cleanup(func() { _ = recorder.Stop(context.Background()) })

	opts := application.Options{BaseURL: testBaseURL}
	if cache == nil {
		cache = cacheImpl.NewNoOpCache()
	} else {
		opts.CacheTTL = time.Minute
	}

	allocator := shortcode.NewAllocator(repo, shortcode.NewRandomGenerator(), shortcode.DefaultPolicy(), registry, logger)
	service := application.NewLinkService(repo, allocator, recorder, cache, opts, registry, logger)

	return &TestEnvironment{
		DB:         sharedDB,
		Repository: repo,
		Recorder:   recorder,
		Service:    service,
	}
}

// SetupRedis starts a shared Redis container and returns a flushed client.
func SetupRedis(t *testing.T) *redis.Client {
	t.Helper()

	redisOnce.Do(func() {
		ctx := context.Background()

		container, err := redisContainer.Run(ctx, "redis:7-alpine")
		if err != nil {
			t.Fatalf("failed to start redis container: %v", err)
		}
		sharedRedis = container

		uri, err := container.ConnectionString(ctx)
		if err != nil {
			t.Fatalf("failed to get redis connection string: %v", err)
		}

		opts, err := redis.ParseURL(uri)
		if err != nil {
			t.Fatalf("failed to parse redis url: %v", err)
		}
		sharedCache = redis.NewClient(opts)
	})
	if sharedCache == nil {
		t.Fatal("redis container unavailable")
	}

	if err := sharedCache.FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("failed to flush redis: %v", err)
	}
	return sharedCache
}

// NewRedisCache wraps the shared client in the lookup cache adapter.
func NewRedisCache(t *testing.T) *redisCache.RedisCache {
	return redisCache.NewRedisCache(SetupRedis(t), logging.Discard())
}

// CleanupSharedResources should be called once at the end of all tests
func CleanupSharedResources() {
	cleanupOnce.Do(func() {
		ctx := context.Background()
		if sharedDB != nil {
			_ = sharedDB.Close()
		}
		if sharedPostgres != nil {
			_ = sharedPostgres.Terminate(ctx)
		}
		if sharedCache != nil {
			_ = sharedCache.Close()
		}
		if sharedRedis != nil {
			_ = sharedRedis.Terminate(ctx)
		}
	})
}

// cleanDatabase truncates the links table to ensure test isolation
func cleanDatabase(t *testing.T, db *sqlx.DB) {
	if _, err := db.Exec("TRUNCATE TABLE links RESTART IDENTITY"); err != nil {
		t.Fatalf("failed to clean database: %v", err)
	}
}

// TestMain handles setup and teardown for the entire test suite
func TestMain(m *testing.M) {
	code := m.Run()

	CleanupSharedResources()

	os.Exit(code)
}
