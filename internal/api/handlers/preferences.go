package handlers

import (
	"net/http"

	"github.com/hoanghai1803/mediatrack/internal/models"
	"github.com/hoanghai1803/mediatrack/internal/service"
)

// GetPreferences handles GET /api/users/{uid}/preferences. Users with no
// stored preferences get the defaults.
func GetPreferences(prefs *service.PreferencesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := parseID(r, "uid")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		p, err := prefs.Get(r.Context(), uid)
		if err != nil {
			writeServiceError(w, err, "", "", "Failed to get preferences")
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// UpdatePreferences handles PUT /api/users/{uid}/preferences. Omitted
// fields keep their stored values.
func UpdatePreferences(prefs *service.PreferencesService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := parseID(r, "uid")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		var upd models.PreferencesUpdate
		if err := decodeJSON(w, r, &upd); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		if err := prefs.Set(r.Context(), uid, upd); err != nil {
			writeServiceError(w, err, "User not found", "", "Failed to save preferences")
			return
		}
		writeMessage(w, http.StatusOK, "Preferences updated successfully")
	}
}
