package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/mediatrack/internal/tmdb"
)

// MediaProvider is the upstream metadata source. *tmdb.Client implements it.
type MediaProvider interface {
	Search(ctx context.Context, query string) (json.RawMessage, error)
	Details(ctx context.Context, mediaType string, id int64) (json.RawMessage, error)
	Credits(ctx context.Context, mediaType string, id int64) (json.RawMessage, error)
	Bundle(ctx context.Context, mediaType string, id int64) (*tmdb.Bundle, error)
}

// SearchMedia handles GET /api/search?query=. The upstream body is relayed
// as-is.
func SearchMedia(provider MediaProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := provider.Search(r.Context(), r.URL.Query().Get("query"))
		if err != nil {
			if errors.Is(err, tmdb.ErrEmptyQuery) {
				writeError(w, http.StatusBadRequest, "Query parameter is required")
				return
			}
			writeProviderError(w, err, "Failed to search media")
			return
		}
		writeRaw(w, http.StatusOK, body)
	}
}

// GetMediaDetails handles GET /api/media/{type}/{id}.
func GetMediaDetails(provider MediaProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid media ID")
			return
		}

		body, err := provider.Details(r.Context(), chi.URLParam(r, "type"), id)
		if err != nil {
			writeProviderError(w, err, "Failed to get media details")
			return
		}
		writeRaw(w, http.StatusOK, body)
	}
}

// GetMediaCredits handles GET /api/media/{type}/{id}/credits.
func GetMediaCredits(provider MediaProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid media ID")
			return
		}

		body, err := provider.Credits(r.Context(), chi.URLParam(r, "type"), id)
		if err != nil {
			writeProviderError(w, err, "Failed to get media credits")
			return
		}
		writeRaw(w, http.StatusOK, body)
	}
}

// GetMediaBundle handles GET /api/media/{type}/{id}/bundle, returning
// {"details": ..., "credits": ...} from one pair of concurrent lookups.
func GetMediaBundle(provider MediaProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid media ID")
			return
		}

		b, err := provider.Bundle(r.Context(), chi.URLParam(r, "type"), id)
		if err != nil {
			writeProviderError(w, err, "Failed to get media details")
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

// writeProviderError reports an upstream failure as a 500. The provider's
// error text never contains the API key.
func writeProviderError(w http.ResponseWriter, err error, message string) {
	slog.Error(message, "error", err)
	writeError(w, http.StatusInternalServerError, message+": "+err.Error())
}
