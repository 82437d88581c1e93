package metrics

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// GetRoutePath extracts the route pattern from the request context
// so that metrics are grouped by route rather than by short code.
func GetRoutePath(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}

	return NormalizePath(r.URL.Path)
}

// NormalizePath maps raw paths onto the router's patterns to bound label cardinality.
func NormalizePath(path string) string {
	if path == "" || path == "/" {
		return "/"
	}

	switch {
	case path == "/shorten", path == "/api/links", path == "/api/stats":
		return path
	case path == "/api/health", path == "/api/ready", path == MetricsPath:
		return path
	case strings.HasPrefix(path, "/api/links/"):
		return "/api/links/{shortCode}"
	case strings.HasPrefix(path, "/swagger"):
		return "/swagger/*"
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 1 && segments[0] != "" {
		return "/{shortCode}"
	}

	return "other"
}

// FormatStatusCode converts an integer status code to string
func FormatStatusCode(statusCode int) string {
	return strconv.Itoa(statusCode)
}
