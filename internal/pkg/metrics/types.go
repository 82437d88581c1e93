package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the observability collaborator handed to core components.
type Registry interface {
	// HTTP Metrics
	RecordHTTPRequest(method, path, statusCode string, duration float64)
	IncHTTPRequestsInFlight()
	DecHTTPRequestsInFlight()

	// Business Metrics
	IncLinksCreated()
	IncLinksDeleted()
	IncRedirects()
	IncCodeCollisions()
	IncFallbackCodes()
	RecordClickIncrement(status string)
	IncClicksDropped()
	RecordCacheLookup(cacheStatus string)

	// Prometheus-specific methods
	GetRegistry() *prometheus.Registry
	GetHandler() http.Handler
}

// NoOpRegistry provides a no-op implementation for when metrics are disabled
type NoOpRegistry struct{}

func NewNoOpRegistry() Registry {
	return &NoOpRegistry{}
}

func (n *NoOpRegistry) RecordHTTPRequest(method, path, statusCode string, duration float64) {}
func (n *NoOpRegistry) IncHTTPRequestsInFlight()                                            {}
func (n *NoOpRegistry) DecHTTPRequestsInFlight()                                            {}
func (n *NoOpRegistry) IncLinksCreated()                                                    {}
func (n *NoOpRegistry) IncLinksDeleted()                                                    {}
func (n *NoOpRegistry) IncRedirects()                                                       {}
func (n *NoOpRegistry) IncCodeCollisions()                                                  {}
func (n *NoOpRegistry) IncFallbackCodes()                                                   {}
func (n *NoOpRegistry) RecordClickIncrement(status string)                                  {}
func (n *NoOpRegistry) IncClicksDropped()                                                   {}
func (n *NoOpRegistry) RecordCacheLookup(cacheStatus string)                                {}
func (n *NoOpRegistry) GetRegistry() *prometheus.Registry                                   { return nil }
func (n *NoOpRegistry) GetHandler() http.Handler                                            { return nil }

// Common label names as constants
const (
	LabelMethod      = "method"
	LabelPath        = "path"
	LabelStatusCode  = "status_code"
	LabelStatus      = "status"
	LabelCacheStatus = "cache_status"
)

// Label values
const (
	StatusSuccess = "success"
	StatusFailure = "failure"

	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)
