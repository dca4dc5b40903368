package service

import (
	"context"
	"errors"
	"testing"

	"github.com/hoanghai1803/mediatrack/internal/models"
)

func newLibraryFixture(t *testing.T) (*LibraryService, int64) {
	t.Helper()
	store := newTestStore(t)
	u, err := NewUserService(store).Create(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Create user error: %v", err)
	}
	return NewLibraryService(store), u.ID
}

func TestLibraryAdd_AppliesDefaults(t *testing.T) {
	svc, uid := newLibraryFixture(t)
	ctx := context.Background()

	e, err := svc.Add(ctx, uid, models.NewLibraryEntry{TMDBID: 42, MediaType: "movie", Title: strPtr("Foo")})
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if e.Status != models.DefaultStatus {
		t.Errorf("Status = %q, want %q", e.Status, models.DefaultStatus)
	}
	if e.WatchPreference != models.DefaultWatchPreference {
		t.Errorf("WatchPreference = %q, want %q", e.WatchPreference, models.DefaultWatchPreference)
	}
	if e.VoteAverage != 0 || e.Runtime != 0 || e.Seasons != 0 {
		t.Errorf("numeric defaults = %v/%d/%d, want zeros", e.VoteAverage, e.Runtime, e.Seasons)
	}
	if e.AddedAt.IsZero() {
		t.Error("AddedAt not set")
	}
}

func TestLibraryAdd_EmptyStatusDefaults(t *testing.T) {
	svc, uid := newLibraryFixture(t)

	e, err := svc.Add(context.Background(), uid, models.NewLibraryEntry{
		TMDBID: 1, MediaType: "tv", Status: strPtr(""), WatchPreference: strPtr("sub"),
	})
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if e.Status != models.DefaultStatus {
		t.Errorf("Status = %q, want %q", e.Status, models.DefaultStatus)
	}
	if e.WatchPreference != "sub" {
		t.Errorf("WatchPreference = %q, want sub", e.WatchPreference)
	}
}

func TestLibraryAdd_Validation(t *testing.T) {
	svc, uid := newLibraryFixture(t)

	tests := []struct {
		name string
		in   models.NewLibraryEntry
	}{
		{"missing tmdb id", models.NewLibraryEntry{MediaType: "movie"}},
		{"negative tmdb id", models.NewLibraryEntry{TMDBID: -3, MediaType: "movie"}},
		{"missing media type", models.NewLibraryEntry{TMDBID: 42}},
		{"blank media type", models.NewLibraryEntry{TMDBID: 42, MediaType: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(context.Background(), uid, tt.in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Add error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestLibraryAdd_Duplicate(t *testing.T) {
	svc, uid := newLibraryFixture(t)
	ctx := context.Background()

	in := models.NewLibraryEntry{TMDBID: 42, MediaType: "movie", Title: strPtr("Foo")}
	if _, err := svc.Add(ctx, uid, in); err != nil {
		t.Fatalf("first Add error: %v", err)
	}
	in.Title = strPtr("Bar")
	if _, err := svc.Add(ctx, uid, in); !errors.Is(err, ErrConflict) {
		t.Fatalf("second Add error = %v, want ErrConflict", err)
	}

	entries, err := svc.List(ctx, uid)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(entries) != 1 || *entries[0].Title != "Foo" {
		t.Errorf("entries = %+v, want the original Foo only", entries)
	}
}

func TestLibraryList_EmptyIsNotNil(t *testing.T) {
	svc, uid := newLibraryFixture(t)

	entries, err := svc.List(context.Background(), uid)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if entries == nil {
		t.Error("List returned nil, want empty slice")
	}
}

func TestLibraryUpdate(t *testing.T) {
	svc, uid := newLibraryFixture(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, uid, models.NewLibraryEntry{TMDBID: 42, MediaType: "movie", Title: strPtr("Foo")}); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	if err := svc.Update(ctx, uid, 42, "movie", models.LibraryPatch{Status: strPtr("watching")}); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	entries, _ := svc.List(ctx, uid)
	if entries[0].Status != "watching" {
		t.Errorf("Status = %q, want watching", entries[0].Status)
	}
	if entries[0].WatchPreference != models.DefaultWatchPreference {
		t.Errorf("WatchPreference changed to %q", entries[0].WatchPreference)
	}
}

func TestLibraryUpdate_EmptyPatch(t *testing.T) {
	svc, uid := newLibraryFixture(t)
	ctx := context.Background()

	if err := svc.Update(ctx, uid, 42, "movie", models.LibraryPatch{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing, empty patch) error = %v, want ErrNotFound", err)
	}

	if _, err := svc.Add(ctx, uid, models.NewLibraryEntry{TMDBID: 42, MediaType: "movie"}); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if err := svc.Update(ctx, uid, 42, "movie", models.LibraryPatch{}); err != nil {
		t.Errorf("Update(existing, empty patch) error = %v, want nil", err)
	}

	entries, _ := svc.List(ctx, uid)
	if entries[0].UpdatedAt != nil {
		t.Error("empty patch should not touch updated_at")
	}
}

func TestLibraryRemove_Idempotent(t *testing.T) {
	svc, uid := newLibraryFixture(t)
	ctx := context.Background()

	if err := svc.Remove(ctx, uid, 999, "tv"); err != nil {
		t.Errorf("Remove(missing) error = %v, want nil", err)
	}
}
