package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hoanghai1803/mediatrack/internal/models"
)

// LibraryStore is the persistence used by LibraryService.
type LibraryStore interface {
	AddLibraryEntry(ctx context.Context, e *models.LibraryEntry) error
	ListLibrary(ctx context.Context, userID int64) ([]models.LibraryEntry, error)
	GetLibraryEntry(ctx context.Context, userID, tmdbID int64, mediaType string) (*models.LibraryEntry, error)
	UpdateLibraryEntry(ctx context.Context, userID, tmdbID int64, mediaType string, patch models.LibraryPatch) error
	DeleteLibraryEntry(ctx context.Context, userID, tmdbID int64, mediaType string) error
}

// LibraryService manages a user's saved media.
type LibraryService struct {
	store LibraryStore
}

// NewLibraryService creates a LibraryService.
func NewLibraryService(store LibraryStore) *LibraryService {
	return &LibraryService{store: store}
}

// Add saves an item to the user's library. Missing optional fields take
// their defaults. The entry key must be complete: a positive TMDB id and a
// non-empty media type.
func (s *LibraryService) Add(ctx context.Context, userID int64, in models.NewLibraryEntry) (*models.LibraryEntry, error) {
	if in.TMDBID <= 0 {
		return nil, fmt.Errorf("%w: tmdb_id must be a positive integer", ErrInvalidInput)
	}
	mediaType := strings.TrimSpace(in.MediaType)
	if mediaType == "" {
		return nil, fmt.Errorf("%w: media_type is required", ErrInvalidInput)
	}

	e := &models.LibraryEntry{
		TMDBID:          in.TMDBID,
		UserID:          userID,
		MediaType:       mediaType,
		Title:           in.Title,
		PosterPath:      in.PosterPath,
		Overview:        in.Overview,
		ReleaseDate:     in.ReleaseDate,
		VoteAverage:     valueOr(in.VoteAverage, 0),
		Runtime:         valueOr(in.Runtime, 0),
		Seasons:         valueOr(in.Seasons, 0),
		Status:          nonEmptyOr(in.Status, models.DefaultStatus),
		WatchPreference: nonEmptyOr(in.WatchPreference, models.DefaultWatchPreference),
	}

	if err := s.store.AddLibraryEntry(ctx, e); err != nil {
		return nil, err
	}

	slog.Info("library entry added", "user_id", userID, "tmdb_id", e.TMDBID, "media_type", e.MediaType)
	return e, nil
}

// List returns the user's entries in the order they were added. The result
// is never nil.
func (s *LibraryService) List(ctx context.Context, userID int64) ([]models.LibraryEntry, error) {
	entries, err := s.store.ListLibrary(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.LibraryEntry{}
	}
	return entries, nil
}

// Update applies a partial patch of status and watch preference. Fields not
// in the patch keep their stored values. An empty patch only checks that
// the entry exists.
func (s *LibraryService) Update(ctx context.Context, userID, tmdbID int64, mediaType string, patch models.LibraryPatch) error {
	if patch.IsEmpty() {
		_, err := s.store.GetLibraryEntry(ctx, userID, tmdbID, mediaType)
		return err
	}
	return s.store.UpdateLibraryEntry(ctx, userID, tmdbID, mediaType, patch)
}

// Remove deletes an entry. Removing an entry that is not there succeeds.
func (s *LibraryService) Remove(ctx context.Context, userID, tmdbID int64, mediaType string) error {
	return s.store.DeleteLibraryEntry(ctx, userID, tmdbID, mediaType)
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func nonEmptyOr(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}
