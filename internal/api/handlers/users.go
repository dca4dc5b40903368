package handlers

import (
	"net/http"

	"github.com/hoanghai1803/mediatrack/internal/service"
)

type createUserRequest struct {
	Name string `json:"name"`
}

// ListUsers handles GET /api/users.
func ListUsers(users *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := users.List(r.Context())
		if err != nil {
			writeServiceError(w, err, "", "", "Failed to list users")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// CreateUser handles POST /api/users. It responds 400 for an empty name and
// 409 when the name is taken.
func CreateUser(users *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		u, err := users.Create(r.Context(), req.Name)
		if err != nil {
			writeServiceError(w, err, "", "User already exists", "Failed to create user")
			return
		}
		writeJSON(w, http.StatusCreated, u)
	}
}

// GetUser handles GET /api/users/{uid}.
func GetUser(users *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := parseID(r, "uid")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		u, err := users.Get(r.Context(), uid)
		if err != nil {
			writeServiceError(w, err, "User not found", "", "Failed to get user")
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}
