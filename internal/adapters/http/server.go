package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpswagger "github.com/swaggo/http-swagger"

	"github.com/sp3dr4/linkshortener/config"
	"github.com/sp3dr4/linkshortener/internal/pkg/metrics"
)

func NewRouter(handlers *Handlers, logger *slog.Logger, cfg *config.Config, metricsRegistry metrics.Registry) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(logger))
	r.Use(metrics.PrometheusMiddleware(metricsRegistry, cfg.Metrics.Path))
	r.Use(middleware.Recoverer)

	// Every GET route other than the redirect spans two segments, so any
	// single-segment path is left to /{shortCode}. A chi subrouter on /api
	// would also claim /api itself, hence the flat registration.
	r.Get("/api/health", handlers.HandleHealth)
	r.Get("/api/ready", handlers.HandleReady)

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, metricsRegistry.GetHandler())
	}

	r.Get("/swagger/*", httpswagger.Handler(httpswagger.URL("/swagger/doc.json")))

	r.Post("/shorten", handlers.HandleShorten)

	r.Get("/api/links", handlers.HandleListLinks)
	r.Get("/api/links/{shortCode}", handlers.HandleGetLink)
	r.Delete("/api/links/{shortCode}", handlers.HandleDeleteLink)
	r.Get("/api/stats", handlers.HandleStats)

	r.Get("/{shortCode}", handlers.HandleRedirect)
	r.Head("/{shortCode}", handlers.HandleRedirect)

	return r
}
