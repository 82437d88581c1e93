package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp3dr4/linkshortener/config"
)

func testConfig() config.MetricsConfig {
	return config.MetricsConfig{
		Enabled:   true,
		Path:      MetricsPath,
		Namespace: "test",
		Subsystem: "links",
	}
}

func TestNewPrometheusRegistry(t *testing.T) {
	tests := []struct {
		name   string
		config config.MetricsConfig
	}{
		{
			name: "with runtime collectors",
			config: config.MetricsConfig{
				Enabled:        true,
				Path:           MetricsPath,
				Namespace:      "linkshortener",
				Subsystem:      "core",
				CollectRuntime: true,
			},
		},
		{
			name:   "minimal config",
			config: testConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, err := NewPrometheusRegistry(tt.config)
			require.NoError(t, err)
			assert.NotNil(t, registry.GetRegistry())
			assert.NotNil(t, registry.GetHandler())
		})
	}
}

func TestPrometheusRegistry_BusinessMetrics(t *testing.T) {
	registry, err := NewPrometheusRegistry(testConfig())
	require.NoError(t, err)
	p := registry.(*PrometheusRegistry)

	registry.IncLinksCreated()
	registry.IncLinksCreated()
	registry.IncLinksDeleted()
	registry.IncRedirects()
	registry.IncCodeCollisions()
	registry.IncFallbackCodes()
	registry.RecordClickIncrement(StatusSuccess)
	registry.RecordClickIncrement(StatusSuccess)
	registry.RecordClickIncrement(StatusFailure)
	registry.IncClicksDropped()
	registry.RecordCacheLookup(CacheHit)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.linksCreatedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.linksDeletedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.redirectsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.codeCollisionsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.fallbackCodesTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.clickIncrementsTotal.WithLabelValues(StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.clickIncrementsTotal.WithLabelValues(StatusFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.clicksDroppedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.cacheLookupsTotal.WithLabelValues(CacheHit)))
}

func TestPrometheusMiddleware(t *testing.T) {
	registry, err := NewPrometheusRegistry(testConfig())
	require.NoError(t, err)
	p := registry.(*PrometheusRegistry)

	r := chi.NewRouter()
	r.Use(PrometheusMiddleware(registry, MetricsPath))
	r.Get("/{shortCode}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMovedPermanently)
	})
	r.Handle(MetricsPath, registry.GetHandler())

	for _, code := range []string{"/abc123", "/xyz789"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, code, nil))
		assert.Equal(t, http.StatusMovedPermanently, rr.Code)
	}

	count := testutil.ToFloat64(p.httpRequestsTotal.WithLabelValues(http.MethodGet, "/{shortCode}", "301"))
	assert.Equal(t, 2.0, count)
	assert.Equal(t, 0.0, testutil.ToFloat64(p.httpRequestsInFlight))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, MetricsPath, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "test_links_http_requests_total"))
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"":                  "/",
		"/":                 "/",
		"/api/health":       "/api/health",
		"/api/metrics":      "/api/metrics",
		"/health":           "/{shortCode}",
		"/shorten":          "/shorten",
		"/api/links":        "/api/links",
		"/api/links/abc":    "/api/links/{shortCode}",
		"/api/stats":        "/api/stats",
		"/swagger/doc.json": "/swagger/*",
		"/abc123":           "/{shortCode}",
		"/a/b/c":            "other",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizePath(in), in)
	}
}

func TestNoOpRegistry(t *testing.T) {
	registry := NewNoOpRegistry()

	assert.NotPanics(t, func() {
		registry.RecordHTTPRequest("GET", "/test", "200", 0.1)
		registry.IncHTTPRequestsInFlight()
		registry.DecHTTPRequestsInFlight()
		registry.IncLinksCreated()
		registry.IncLinksDeleted()
		registry.IncRedirects()
		registry.IncCodeCollisions()
		registry.IncFallbackCodes()
		registry.RecordClickIncrement(StatusFailure)
		registry.IncClicksDropped()
		registry.RecordCacheLookup(CacheMiss)
	})
	assert.Nil(t, registry.GetRegistry())
	assert.Nil(t, registry.GetHandler())
}
