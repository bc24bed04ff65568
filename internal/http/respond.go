package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"paytrack/internal/auth"
	"paytrack/internal/core"
)

// envelope is the response shape every endpoint uses:
// {success, message, data, errors}.
type envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string, fieldErrors ...string) {
	writeJSON(w, status, envelope{Success: false, Message: message, Errors: fieldErrors})
}

// respondCoreError translates the error taxonomy into statuses. The
// store and reporting layers surface errors unmodified; this is the
// single place they become user-facing.
func respondCoreError(w http.ResponseWriter, r *http.Request, err error, context string) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		respondError(w, http.StatusNotFound, context+" not found")
	case errors.Is(err, core.ErrConflict):
		respondError(w, http.StatusConflict, context+" already exists")
	case errors.Is(err, auth.ErrExpiredToken), errors.Is(err, auth.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, core.ErrUnavailable):
		slog.ErrorContext(r.Context(), "Backing store unavailable", "error", err, "url", r.URL.Path)
		respondError(w, http.StatusBadGateway, "Backing store unavailable")
	default:
		slog.ErrorContext(r.Context(), "Unhandled error", "error", err, "url", r.URL.Path)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeBody reads a JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
