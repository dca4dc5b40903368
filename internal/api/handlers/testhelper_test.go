package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/mediatrack/internal/service"
	"github.com/hoanghai1803/mediatrack/internal/storage"
)

// newTestStore creates an in-memory SQLite store with migrations applied. It
// registers a cleanup function to close the database when the test
// completes.
func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	db, err := storage.OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	return storage.NewStore(db)
}

// seedUser registers a user through the service and returns its id.
func seedUser(t *testing.T, store *storage.Store, name string) int64 {
	t.Helper()
	u, err := service.NewUserService(store).Create(context.Background(), name)
	if err != nil {
		t.Fatalf("creating user %q: %v", name, err)
	}
	return u.ID
}

// withURLParams attaches chi route parameters to r, given as key/value
// pairs.
func withURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
