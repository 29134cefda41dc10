package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/wedevbytes/nyaya/internal/interfaces"
)

// unescapePathSegment decodes one percent-encoded path segment. Bot names
// contain spaces, so they arrive escaped.
func unescapePathSegment(segment string) (string, error) {
	return url.PathUnescape(segment)
}

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a standard success JSON response.
func WriteSuccess(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": message,
	})
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// WriteProcessing writes the immediate JSON response for async operations
// that continue in the background.
func WriteProcessing(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusAccepted, map[string]string{
		"status":  "processing",
		"message": message,
	})
}

// WriteServiceError maps sentinel service errors to HTTP status codes.
// An unavailable domain is a client error: the bot exists but its
// documents have not been ingested yet. Anything unmapped surfaces as a
// generic 500.
func WriteServiceError(w http.ResponseWriter, err error) error {
	switch {
	case errors.Is(err, interfaces.ErrBotNotFound):
		return WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, interfaces.ErrDomainUnavailable), errors.Is(err, interfaces.ErrIndexNotFound):
		return WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, interfaces.ErrIngestRunning):
		return WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, interfaces.ErrGeneration), errors.Is(err, interfaces.ErrTranscription):
		return WriteError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, interfaces.ErrSessionNotFound):
		return WriteError(w, http.StatusNotFound, err.Error())
	default:
		return WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
