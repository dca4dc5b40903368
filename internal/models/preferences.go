package models

// Default display preferences, applied when a user has no stored row and
// when a partial update creates the row.
const (
	DefaultCardSize               = "medium"
	DefaultDefaultWatchPreference = "all"
)

// Preferences holds a user's display settings. Values are free-form strings;
// the frontend decides what they mean.
type Preferences struct {
	CardSize               string `json:"card_size"`
	DefaultWatchPreference string `json:"default_watch_preference"`
}

// DefaultPreferences returns the settings reported for users without a
// stored preferences row.
func DefaultPreferences() Preferences {
	return Preferences{
		CardSize:               DefaultCardSize,
		DefaultWatchPreference: DefaultDefaultWatchPreference,
	}
}

// PreferencesUpdate is a partial preferences write. Nil fields keep their
// current value.
type PreferencesUpdate struct {
	CardSize               *string `json:"card_size"`
	DefaultWatchPreference *string `json:"default_watch_preference"`
}
