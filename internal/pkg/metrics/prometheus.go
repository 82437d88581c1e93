package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sp3dr4/linkshortener/config"
)

// PrometheusRegistry implements the Registry interface using Prometheus metrics
type PrometheusRegistry struct {
	registry *prometheus.Registry
	config   config.MetricsConfig

	// HTTP Metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business Metrics
	linksCreatedTotal    prometheus.Counter
	linksDeletedTotal    prometheus.Counter
	redirectsTotal       prometheus.Counter
	codeCollisionsTotal  prometheus.Counter
	fallbackCodesTotal   prometheus.Counter
	clickIncrementsTotal *prometheus.CounterVec
	clicksDroppedTotal   prometheus.Counter
	cacheLookupsTotal    *prometheus.CounterVec
}

// NewPrometheusRegistry creates a new Prometheus metrics registry
func NewPrometheusRegistry(cfg config.MetricsConfig) (Registry, error) {
	registry := prometheus.NewRegistry()

	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      name,
			Help:      help,
		})
	}

	p := &PrometheusRegistry{
		registry: registry,
		config:   cfg,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{LabelMethod, LabelPath, LabelStatusCode},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{LabelMethod, LabelPath, LabelStatusCode},
		),
		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests currently being processed",
			},
		),
		linksCreatedTotal:   counter("links_created_total", "Total number of links created"),
		linksDeletedTotal:   counter("links_deleted_total", "Total number of links deleted"),
		redirectsTotal:      counter("redirects_total", "Total number of resolved redirects"),
		codeCollisionsTotal: counter("code_collisions_total", "Generated short codes that already existed"),
		fallbackCodesTotal:  counter("fallback_codes_total", "Short codes issued with the fallback length"),
		clickIncrementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "click_increments_total",
				Help:      "Click counter updates by outcome",
			},
			[]string{LabelStatus},
		),
		clicksDroppedTotal: counter("clicks_dropped_total", "Click counter updates dropped because the queue was full or closed"),
		cacheLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_lookups_total",
				Help:      "Redirect cache lookups by outcome",
			},
			[]string{LabelCacheStatus},
		),
	}

	metricsCollectors := []prometheus.Collector{
		p.httpRequestsTotal,
		p.httpRequestDuration,
		p.httpRequestsInFlight,
		p.linksCreatedTotal,
		p.linksDeletedTotal,
		p.redirectsTotal,
		p.codeCollisionsTotal,
		p.fallbackCodesTotal,
		p.clickIncrementsTotal,
		p.clicksDroppedTotal,
		p.cacheLookupsTotal,
	}

	for _, collector := range metricsCollectors {
		if err := registry.Register(collector); err != nil {
			return nil, err
		}
	}

	// Register Go runtime metrics if enabled
	if cfg.CollectRuntime {
		registry.MustRegister(collectors.NewGoCollector())
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	return p, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration
func (p *PrometheusRegistry) RecordHTTPRequest(method, path, statusCode string, duration float64) {
	labels := prometheus.Labels{
		LabelMethod:     method,
		LabelPath:       path,
		LabelStatusCode: statusCode,
	}
	p.httpRequestsTotal.With(labels).Inc()
	p.httpRequestDuration.With(labels).Observe(duration)
}

func (p *PrometheusRegistry) IncHTTPRequestsInFlight() {
	p.httpRequestsInFlight.Inc()
}

func (p *PrometheusRegistry) DecHTTPRequestsInFlight() {
	p.httpRequestsInFlight.Dec()
}

func (p *PrometheusRegistry) IncLinksCreated() {
	p.linksCreatedTotal.Inc()
}

func (p *PrometheusRegistry) IncLinksDeleted() {
	p.linksDeletedTotal.Inc()
}

func (p *PrometheusRegistry) IncRedirects() {
	p.redirectsTotal.Inc()
}

func (p *PrometheusRegistry) IncCodeCollisions() {
	p.codeCollisionsTotal.Inc()
}

func (p *PrometheusRegistry) IncFallbackCodes() {
	p.fallbackCodesTotal.Inc()
}

// RecordClickIncrement counts a finished click update, labelled StatusSuccess or StatusFailure
func (p *PrometheusRegistry) RecordClickIncrement(status string) {
	p.clickIncrementsTotal.With(prometheus.Labels{LabelStatus: status}).Inc()
}

func (p *PrometheusRegistry) IncClicksDropped() {
	p.clicksDroppedTotal.Inc()
}

func (p *PrometheusRegistry) RecordCacheLookup(cacheStatus string) {
	p.cacheLookupsTotal.With(prometheus.Labels{LabelCacheStatus: cacheStatus}).Inc()
}

// GetRegistry returns the underlying Prometheus registry
func (p *PrometheusRegistry) GetRegistry() *prometheus.Registry {
	return p.registry
}

// GetHandler returns an HTTP handler for the metrics endpoint
func (p *PrometheusRegistry) GetHandler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
