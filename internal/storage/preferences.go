package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hoanghai1803/mediatrack/internal/models"
)

// GetPreferences returns the stored preferences for a user. Users without a
// row (including unknown ids) get models.DefaultPreferences; nothing is
// written on read.
func (s *Store) GetPreferences(ctx context.Context, userID int64) (models.Preferences, error) {
	var prefs models.Preferences
	err := s.db.QueryRowContext(ctx,
		`SELECT card_size, default_watch_preference
		 FROM user_preferences WHERE user_id = ?`, userID,
	).Scan(&prefs.CardSize, &prefs.DefaultWatchPreference)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DefaultPreferences(), nil
		}
		return models.Preferences{}, fmt.Errorf("getting preferences for user %d: %w", userID, err)
	}
	return prefs, nil
}

// SetPreferences upserts a user's preferences in a single statement, so two
// concurrent first writes cannot both insert. Nil fields keep the stored
// value, or the default when the row is new. Values are not validated.
// Returns ErrNotFound if the user does not exist.
func (s *Store) SetPreferences(ctx context.Context, userID int64, upd models.PreferencesUpdate) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_preferences (user_id, card_size, default_watch_preference)
		 VALUES (?1, COALESCE(?2, ?4), COALESCE(?3, ?5))
		 ON CONFLICT(user_id) DO UPDATE SET
			card_size                = COALESCE(?2, card_size),
			default_watch_preference = COALESCE(?3, default_watch_preference)`,
		userID, nullable(upd.CardSize), nullable(upd.DefaultWatchPreference),
		models.DefaultCardSize, models.DefaultDefaultWatchPreference,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("setting preferences for user %d: %w", userID, err)
	}
	return nil
}

// nullable converts an optional string into a bind argument; nil binds NULL.
func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
