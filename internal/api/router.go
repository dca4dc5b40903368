package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/mediatrack/internal/api/handlers"
	"github.com/hoanghai1803/mediatrack/internal/service"
)

// Deps are the collaborators the HTTP surface is wired to.
type Deps struct {
	Users       *service.UserService
	Library     *service.LibraryService
	Preferences *service.PreferencesService
	Provider    handlers.MediaProvider
	DB          handlers.Pinger

	// ImageBaseURL is served to the frontend for building poster URLs.
	ImageBaseURL string
}

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(CORS)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", handlers.Health(d.DB))
		api.Get("/config", handlers.GetConfig(d.ImageBaseURL))

		api.Get("/users", handlers.ListUsers(d.Users))
		api.Post("/users", handlers.CreateUser(d.Users))

		api.Get("/search", handlers.SearchMedia(d.Provider))
		api.Get("/media/{type}/{id}", handlers.GetMediaDetails(d.Provider))
		api.Get("/media/{type}/{id}/credits", handlers.GetMediaCredits(d.Provider))
		api.Get("/media/{type}/{id}/bundle", handlers.GetMediaBundle(d.Provider))

		api.Route("/users/{uid}", func(u chi.Router) {
			u.Get("/", handlers.GetUser(d.Users))

			u.Get("/media", handlers.GetLibrary(d.Library))
			u.Post("/media", handlers.AddToLibrary(d.Library))
			u.Put("/media/{tmdb_id}/{media_type}", handlers.UpdateLibraryEntry(d.Library))
			u.Delete("/media/{tmdb_id}/{media_type}", handlers.DeleteLibraryEntry(d.Library))

			u.Get("/preferences", handlers.GetPreferences(d.Preferences))
			u.Put("/preferences", handlers.UpdatePreferences(d.Preferences))
		})
	})

	return r
}
