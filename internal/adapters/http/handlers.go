package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/sp3dr4/linkshortener/internal/application"
	"github.com/sp3dr4/linkshortener/internal/domain"
	"github.com/sp3dr4/linkshortener/internal/pkg/logging"
)

// LinkService is the part of the application layer the handlers drive.
type LinkService interface {
	Shorten(ctx context.Context, req application.ShortenRequest) (*application.ShortenResponse, error)
	Resolve(ctx context.Context, shortCode string) (string, error)
	GetLink(ctx context.Context, shortCode string) (*domain.Link, error)
	ListLinks(ctx context.Context) ([]*domain.Link, error)
	Stats(ctx context.Context) (*domain.LinkStats, error)
	DeleteLink(ctx context.Context, shortCode string) error
	Ready(ctx context.Context) error
}

type Handlers struct {
	service  LinkService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandlers(service LinkService, logger *slog.Logger) *Handlers {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	return &Handlers{
		service:  service,
		validate: validate,
		logger:   logger,
	}
}

// shortenRequest mirrors application.ShortenRequest with input constraints.
type shortenRequest struct {
	URL        string  `json:"url" validate:"required"`
	CustomCode *string `json:"custom_code"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error" example:"short code already exists"`
}

// ReadyResponse represents a successful readiness check.
type ReadyResponse struct {
	Status    string `json:"status" example:"ready"`
	Timestamp string `json:"timestamp" example:"2024-01-31T12:00:00Z"`
}

// HandleHealth handles the health check endpoint.
//
//	@Summary		Health check endpoint
//	@Description	Check if the service is running
//	@Tags			health
//	@Produce		plain
//	@Success		200	{string}	string	"OK"
//	@Router			/api/health [get]
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

// HandleReady handles the readiness check endpoint.
//
//	@Summary		Readiness check endpoint
//	@Description	Check if the service is ready to serve requests (includes store connectivity)
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	ReadyResponse	"Service is ready"
//	@Failure		503	{object}	ErrorResponse	"Service is not ready"
//	@Router			/api/ready [get]
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Ready(ctx); err != nil {
		h.log(r).Error("Readiness check failed", "error", err)
		h.respondWithError(w, http.StatusServiceUnavailable, "service not ready: store unavailable")
		return
	}

	h.respondWithJSON(w, http.StatusOK, ReadyResponse{
		Status:    "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleShorten handles the link shortening endpoint.
//
//	@Summary		Create a short link
//	@Description	Create a short link for a URL, optionally with a custom code
//	@Tags			links
//	@Accept			json
//	@Produce		json
//	@Param			request	body		application.ShortenRequest	true	"URL to shorten"
//	@Success		201		{object}	application.ShortenResponse	"Successfully created short link"
//	@Failure		400		{object}	ErrorResponse				"Invalid URL or custom code"
//	@Failure		409		{object}	ErrorResponse				"Short code already exists"
//	@Failure		500		{object}	ErrorResponse				"Internal error"
//	@Router			/shorten [post]
func (h *Handlers) HandleShorten(w http.ResponseWriter, r *http.Request) {
	var req shortenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r).Warn("Failed to decode request", "error", err)
		h.respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			h.respondWithError(w, http.StatusBadRequest, validationMessage(validationErrors))
			return
		}
		h.respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.service.Shorten(r.Context(), application.ShortenRequest{
		URL:        req.URL,
		CustomCode: req.CustomCode,
	})
	if err != nil {
		h.handleError(w, r, err, "Failed to create short link")
		return
	}

	h.respondWithJSON(w, http.StatusCreated, response)
}

// HandleRedirect handles the redirect endpoint.
//
//	@Summary		Redirect to original URL
//	@Description	Redirect to the original URL using the short code
//	@Tags			links
//	@Param			shortCode	path	string	true	"Short code"
//	@Success		301			"Redirect to original URL"
//	@Failure		404			{object}	ErrorResponse	"Short link not found"
//	@Failure		500			{object}	ErrorResponse	"Internal error"
//	@Router			/{shortCode} [get]
func (h *Handlers) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")

	originalURL, err := h.service.Resolve(r.Context(), shortCode)
	if err != nil {
		h.handleError(w, r, err, "Failed to resolve short link")
		return
	}

	h.log(r).Debug("Redirecting", "short_code", shortCode, "original_url", originalURL)
	http.Redirect(w, r, originalURL, http.StatusMovedPermanently)
}

// HandleGetLink returns one link with its click count.
//
//	@Summary		Get a short link
//	@Tags			admin
//	@Produce		json
//	@Param			shortCode	path		string	true	"Short code"
//	@Success		200			{object}	domain.Link
//	@Failure		404			{object}	ErrorResponse	"Short link not found"
//	@Router			/api/links/{shortCode} [get]
func (h *Handlers) HandleGetLink(w http.ResponseWriter, r *http.Request) {
	link, err := h.service.GetLink(r.Context(), chi.URLParam(r, "shortCode"))
	if err != nil {
		h.handleError(w, r, err, "Failed to get short link")
		return
	}
	h.respondWithJSON(w, http.StatusOK, link)
}

// HandleListLinks lists every link, newest first.
//
//	@Summary		List short links
//	@Tags			admin
//	@Produce		json
//	@Success		200	{array}		domain.Link
//	@Failure		500	{object}	ErrorResponse	"Internal error"
//	@Router			/api/links [get]
func (h *Handlers) HandleListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.service.ListLinks(r.Context())
	if err != nil {
		h.handleError(w, r, err, "Failed to list short links")
		return
	}
	if links == nil {
		links = []*domain.Link{}
	}
	h.respondWithJSON(w, http.StatusOK, links)
}

// HandleStats reports aggregate link and click totals.
//
//	@Summary		Link statistics
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	domain.LinkStats
//	@Failure		500	{object}	ErrorResponse	"Internal error"
//	@Router			/api/stats [get]
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.handleError(w, r, err, "Failed to compute stats")
		return
	}
	h.respondWithJSON(w, http.StatusOK, stats)
}

// HandleDeleteLink removes a link.
//
//	@Summary		Delete a short link
//	@Tags			admin
//	@Param			shortCode	path	string	true	"Short code"
//	@Success		204			"Deleted"
//	@Failure		404			{object}	ErrorResponse	"Short link not found"
//	@Router			/api/links/{shortCode} [delete]
func (h *Handlers) HandleDeleteLink(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteLink(r.Context(), chi.URLParam(r, "shortCode")); err != nil {
		h.handleError(w, r, err, "Failed to delete short link")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleError maps domain errors onto statuses. Anything unclassified is
// logged in full and answered with a generic message.
func (h *Handlers) handleError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	switch {
	case domain.IsValidation(err):
		h.respondWithError(w, http.StatusBadRequest, rootMessage(err))
	case domain.IsConflict(err):
		h.respondWithError(w, http.StatusConflict, domain.ErrCodeExists.Error())
	case errors.Is(err, domain.ErrLinkNotFound):
		h.respondWithError(w, http.StatusNotFound, "short link not found")
	default:
		h.log(r).Error(logMsg, "error", err)
		h.respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handlers) log(r *http.Request) *slog.Logger {
	return logging.FromContext(r.Context(), h.logger)
}

func (h *Handlers) respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func (h *Handlers) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, ErrorResponse{Error: message})
}

// rootMessage returns the sentinel message of a validation error, dropping
// any wrapping context.
func rootMessage(err error) string {
	for _, sentinel := range []error{domain.ErrInvalidURL, domain.ErrCodeLength, domain.ErrCodeNotAlphanumeric} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func validationMessage(validationErrors validator.ValidationErrors) string {
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return strings.Join(messages, "; ")
}

// jsonFieldName makes validator report fields by their JSON name.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}
