// Package httpapi provides the REST HTTP adapter for the calendar surfaces.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/evanschultz/moncal/internal/adapters/server/common"
)

// Handler serves the versioned API subrouter mounted under `/api/v1`.
type Handler struct {
	calendar common.CalendarReader
}

// APIError represents one structured API failure response.
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Hint    string         `json:"hint,omitempty"`
	Context map[string]any `json:"context,omitempty"`
}

// ErrorEnvelope wraps one structured API error.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// NewHandler constructs one HTTP API adapter over a calendar reader.
func NewHandler(calendar common.CalendarReader) *Handler {
	return &Handler{calendar: calendar}
}

// ServeHTTP routes one versioned API request to the matching handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var serve func(http.ResponseWriter, *http.Request)
	switch normalizePath(r.URL.Path) {
	case "month":
		serve = h.handleMonth
	case "day":
		serve = h.handleDay
	case "agenda":
		serve = h.handleAgenda
	default:
		writeJSONError(w, http.StatusNotFound, APIError{
			Code:    "not_found",
			Message: "endpoint not found",
		})
		return
	}
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	if h.calendar == nil {
		writeJSONError(w, http.StatusServiceUnavailable, APIError{
			Code:    "service_unavailable",
			Message: "calendar service is not configured",
		})
		return
	}
	serve(w, r)
}

// handleMonth serves GET `/month?year=&month=`.
func (h *Handler) handleMonth(w http.ResponseWriter, r *http.Request) {
	req, err := common.MonthRequestFromQuery(r.URL.Query(), h.calendar.Now())
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	state, err := h.calendar.Month(r.Context(), req)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// handleDay serves GET `/day?year=&month=&day=`.
func (h *Handler) handleDay(w http.ResponseWriter, r *http.Request) {
	req, err := common.DayRequestFromQuery(r.URL.Query(), h.calendar.Now())
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	detail, err := h.calendar.Day(r.Context(), req)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// handleAgenda serves GET `/agenda?year=&month=` as markdown.
func (h *Handler) handleAgenda(w http.ResponseWriter, r *http.Request) {
	req, err := common.MonthRequestFromQuery(r.URL.Query(), h.calendar.Now())
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	md, err := h.calendar.Agenda(r.Context(), req)
	if err != nil {
		writeErrorFrom(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(md))
}

// normalizePath canonicalizes one request path for route matching.
func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	path = strings.Trim(path, "/")
	return path
}

// writeErrorFrom maps adapter errors into structured HTTP responses.
func writeErrorFrom(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeJSONError(w, http.StatusInternalServerError, APIError{
			Code:    "internal_error",
			Message: "unknown error",
		})
	case errors.Is(err, common.ErrInvalidRequest):
		writeJSONError(w, http.StatusBadRequest, APIError{
			Code:    "invalid_request",
			Message: err.Error(),
			Hint:    "month must be 1..12 and day must exist in that month",
		})
	default:
		writeJSONError(w, http.StatusInternalServerError, APIError{
			Code:    "internal_error",
			Message: err.Error(),
		})
	}
}

// writeMethodNotAllowed writes a structured 405 response with `Allow` headers.
func writeMethodNotAllowed(w http.ResponseWriter, methods ...string) {
	if len(methods) > 0 {
		w.Header().Set("Allow", strings.Join(methods, ", "))
	}
	writeJSONError(w, http.StatusMethodNotAllowed, APIError{
		Code:    "method_not_allowed",
		Message: "method not allowed",
	})
}

// writeJSONError writes one structured error envelope.
func writeJSONError(w http.ResponseWriter, statusCode int, apiErr APIError) {
	writeJSON(w, statusCode, ErrorEnvelope{Error: apiErr})
}

// writeJSON writes one JSON response envelope.
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":{"code":"encode_error","message":"%s"}}`, err.Error()), http.StatusInternalServerError)
	}
}
