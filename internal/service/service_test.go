package service

import (
	"context"
	"testing"

	"github.com/hoanghai1803/mediatrack/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	db, err := storage.OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return storage.NewStore(db)
}

func strPtr(s string) *string { return &s }
