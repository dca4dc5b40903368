package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/mediatrack/internal/models"
	"github.com/hoanghai1803/mediatrack/internal/service"
)

// GetLibrary handles GET /api/users/{uid}/media. It returns the user's
// entries as flat records in insertion order.
func GetLibrary(library *service.LibraryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := parseID(r, "uid")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		entries, err := library.List(r.Context(), uid)
		if err != nil {
			writeServiceError(w, err, "", "", "Failed to get library")
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

// AddToLibrary handles POST /api/users/{uid}/media. Fields outside the
// accepted payload are dropped during decoding.
func AddToLibrary(library *service.LibraryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := parseID(r, "uid")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		var in models.NewLibraryEntry
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		if _, err := library.Add(r.Context(), uid, in); err != nil {
			writeServiceError(w, err, "User not found", "Media already in library", "Failed to add media")
			return
		}
		writeMessage(w, http.StatusCreated, "Media added successfully")
	}
}

// UpdateLibraryEntry handles PUT /api/users/{uid}/media/{tmdb_id}/{media_type}.
// Only status and watch_preference can change.
func UpdateLibraryEntry(library *service.LibraryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, tmdbID, mediaType, ok := parseEntryKey(w, r)
		if !ok {
			return
		}

		var patch models.LibraryPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		if err := library.Update(r.Context(), uid, tmdbID, mediaType, patch); err != nil {
			writeServiceError(w, err, "Media not found", "", "Failed to update media")
			return
		}
		writeMessage(w, http.StatusOK, "Media updated successfully")
	}
}

// DeleteLibraryEntry handles DELETE /api/users/{uid}/media/{tmdb_id}/{media_type}.
// It succeeds whether or not the entry existed.
func DeleteLibraryEntry(library *service.LibraryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, tmdbID, mediaType, ok := parseEntryKey(w, r)
		if !ok {
			return
		}

		if err := library.Remove(r.Context(), uid, tmdbID, mediaType); err != nil {
			writeServiceError(w, err, "", "", "Failed to delete media")
			return
		}
		writeMessage(w, http.StatusOK, "Media deleted successfully")
	}
}

// parseEntryKey reads the (uid, tmdb_id, media_type) path parameters,
// writing a 400 and returning ok=false if either id is malformed.
func parseEntryKey(w http.ResponseWriter, r *http.Request) (uid, tmdbID int64, mediaType string, ok bool) {
	uid, err := parseID(r, "uid")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return 0, 0, "", false
	}
	tmdbID, err = parseID(r, "tmdb_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid media ID")
		return 0, 0, "", false
	}
	return uid, tmdbID, chi.URLParam(r, "media_type"), true
}
