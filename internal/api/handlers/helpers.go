package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/mediatrack/internal/service"
)

// maxBodyBytes caps request bodies; every payload here is a small object.
const maxBodyBytes = 1 << 20

// writeJSON encodes v as JSON and writes it to the response with the given
// HTTP status code. Content-Type is always set to application/json.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; all that is left is to log.
		slog.Error("failed to encode response", "error", err)
	}
}

// writeRaw writes an already-encoded JSON document unchanged.
func writeRaw(w http.ResponseWriter, status int, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// writeError writes a JSON error response with the given HTTP status code.
// The response body is {"error": "message"}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeMessage writes {"message": "..."} for operations with no payload.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeServiceError maps a service error onto the HTTP error taxonomy.
// Unclassified errors are logged and reported as a generic 500 so store
// internals never reach the client.
func writeServiceError(w http.ResponseWriter, err error, notFound, conflict, internal string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, conflict)
	default:
		slog.Error(internal, "error", err)
		writeError(w, http.StatusInternalServerError, internal)
	}
}

// decodeJSON reads a JSON object from the request body into dst. Unknown
// fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// parseID extracts an int64 from a chi URL parameter.
func parseID(r *http.Request, param string) (int64, error) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		return 0, fmt.Errorf("missing URL parameter %q", param)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %q parameter: %w", param, err)
	}
	return id, nil
}
