// Package client talks to the link shortener HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sp3dr4/linkshortener/internal/application"
	"github.com/sp3dr4/linkshortener/internal/domain"
)

// ErrNotFound is returned when the server has no link for a short code.
var ErrNotFound = errors.New("short link not found")

// APIError carries a non-success status and the server's error message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
}

// Client represents an HTTP client for the link shortener API
type Client struct {
	serverURL  string
	httpClient *http.Client
}

// NewClient creates a new link shortener client
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Shorten creates a short link. An empty customCode asks the server to
// generate one.
func (c *Client) Shorten(ctx context.Context, originalURL, customCode string) (*application.ShortenResponse, error) {
	reqBody := application.ShortenRequest{URL: originalURL}
	if customCode != "" {
		reqBody.CustomCode = &customCode
	}

	var result application.ShortenResponse
	if err := c.do(ctx, http.MethodPost, "/shorten", reqBody, http.StatusCreated, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetLink retrieves one link with its click count
func (c *Client) GetLink(ctx context.Context, shortCode string) (*domain.Link, error) {
	var link domain.Link
	if err := c.do(ctx, http.MethodGet, "/api/links/"+shortCode, nil, http.StatusOK, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

// ListLinks retrieves all links, newest first
func (c *Client) ListLinks(ctx context.Context) ([]*domain.Link, error) {
	var links []*domain.Link
	if err := c.do(ctx, http.MethodGet, "/api/links", nil, http.StatusOK, &links); err != nil {
		return nil, err
	}
	return links, nil
}

func (c *Client) Stats(ctx context.Context) (*domain.LinkStats, error) {
	var stats domain.LinkStats
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, http.StatusOK, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// DeleteLink deletes a short link
func (c *Client) DeleteLink(ctx context.Context, shortCode string) error {
	return c.do(ctx, http.MethodDelete, "/api/links/"+shortCode, nil, http.StatusNoContent, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != wantStatus {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Error
	}
	return apiErr
}
