package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp3dr4/linkshortener/config"
	httpAdapter "github.com/sp3dr4/linkshortener/internal/adapters/http"
	"github.com/sp3dr4/linkshortener/internal/application"
	"github.com/sp3dr4/linkshortener/internal/infrastructure/memory"
	"github.com/sp3dr4/linkshortener/internal/pkg/logging"
	"github.com/sp3dr4/linkshortener/internal/pkg/metrics"
	"github.com/sp3dr4/linkshortener/internal/shortcode"
)

type noopClicks struct{}

func (noopClicks) Record(string) bool { return true }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo := memory.NewLinkRepository()
	registry := metrics.NewNoOpRegistry()
	logger := logging.Discard()

	allocator := shortcode.NewAllocator(repo, shortcode.NewRandomGenerator(), shortcode.DefaultPolicy(), registry, logger)
	service := application.NewLinkService(repo, allocator, noopClicks{}, nil,
		application.Options{BaseURL: "http://sho.rt"}, registry, logger)
	router := httpAdapter.NewRouter(httpAdapter.NewHandlers(service, logger), logger, &config.Config{}, registry)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")

	assert.Equal(t, "http://localhost:8080", client.serverURL)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestClient_RoundTrip(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL)
	ctx := context.Background()

	created, err := client.Shorten(ctx, "https://example.com", "mine")
	require.NoError(t, err)
	assert.Equal(t, "mine", created.ShortCode)
	assert.Equal(t, "http://sho.rt/mine", created.ShortURL)

	generated, err := client.Shorten(ctx, "https://example.org", "")
	require.NoError(t, err)
	assert.Len(t, generated.ShortCode, shortcode.DefaultLength)

	link, err := client.GetLink(ctx, "mine")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", link.OriginalURL)

	links, err := client.ListLinks(ctx)
	require.NoError(t, err)
	assert.Len(t, links, 2)

	stats, err := client.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalLinks)

	require.NoError(t, client.DeleteLink(ctx, "mine"))
	assert.ErrorIs(t, client.DeleteLink(ctx, "mine"), ErrNotFound)

	_, err = client.GetLink(ctx, "mine")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_APIError(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL)
	ctx := context.Background()

	_, err := client.Shorten(ctx, "https://example.com", "dupe")
	require.NoError(t, err)

	_, err = client.Shorten(ctx, "https://example.com", "dupe")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "short code already exists", apiErr.Message)

	_, err = client.Shorten(ctx, "ftp://example.com", "")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestClient_ServerErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Stats(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "server returned status 502", apiErr.Error())
}

func TestClient_SendsCustomCodeOnlyWhenSet(t *testing.T) {
	var bodies []map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"short_code":"x"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Shorten(context.Background(), "https://a.example", "")
	require.NoError(t, err)
	_, err = client.Shorten(context.Background(), "https://a.example", "abc")
	require.NoError(t, err)

	require.Len(t, bodies, 2)
	assert.NotContains(t, bodies[0], "custom_code")
	assert.Equal(t, "abc", bodies[1]["custom_code"])
}

func TestCommands(t *testing.T) {
	server := newTestServer(t)
	var out bytes.Buffer
	commands := NewCommands(NewClient(server.URL), &out)
	ctx := context.Background()

	require.NoError(t, commands.List(ctx))
	assert.Contains(t, out.String(), "No links found")

	out.Reset()
	require.NoError(t, commands.Shorten(ctx, "https://example.com/a/very/long/path/that/goes/on/and/on/for/a/while", "cli"))
	assert.Contains(t, out.String(), "Short URL:    http://sho.rt/cli")

	out.Reset()
	require.NoError(t, commands.List(ctx))
	assert.Contains(t, out.String(), "cli")
	assert.Contains(t, out.String(), "...")

	out.Reset()
	require.NoError(t, commands.Get(ctx, "cli"))
	assert.Contains(t, out.String(), "Clicks:       0")

	out.Reset()
	require.NoError(t, commands.Stats(ctx))
	assert.Contains(t, out.String(), "Total Links:  1")

	out.Reset()
	require.NoError(t, commands.Delete(ctx, "cli"))
	assert.Contains(t, out.String(), "deleted")

	out.Reset()
	require.NoError(t, commands.Get(ctx, "cli"))
	assert.Contains(t, out.String(), "Short code 'cli' not found")
}
