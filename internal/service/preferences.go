package service

import (
	"context"

	"github.com/hoanghai1803/mediatrack/internal/models"
)

// PreferencesStore is the persistence used by PreferencesService.
type PreferencesStore interface {
	GetPreferences(ctx context.Context, userID int64) (models.Preferences, error)
	SetPreferences(ctx context.Context, userID int64, upd models.PreferencesUpdate) error
}

// PreferencesService reads and writes per-user display settings.
type PreferencesService struct {
	store PreferencesStore
}

func NewPreferencesService(store PreferencesStore) *PreferencesService {
	return &PreferencesService{store: store}
}

// Get returns the user's preferences, defaulted when none are stored.
func (s *PreferencesService) Get(ctx context.Context, userID int64) (models.Preferences, error) {
	return s.store.GetPreferences(ctx, userID)
}

// Set upserts the user's preferences. Values are stored as given.
func (s *PreferencesService) Set(ctx context.Context, userID int64, upd models.PreferencesUpdate) error {
	return s.store.SetPreferences(ctx, userID, upd)
}
