package models

import "time"

// Media types accepted by the upstream provider. The store treats the value
// as an opaque part of the entry key.
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

// Defaults applied to optional fields when an entry is added.
const (
	DefaultStatus          = "to-watch"
	DefaultWatchPreference = "all"
)

// LibraryEntry is one media item saved to a user's library. It is keyed by
// (TMDBID, UserID, MediaType) and serialises as a single flat record with
// the provider id exposed as "id".
type LibraryEntry struct {
	TMDBID          int64      `json:"id"`
	UserID          int64      `json:"-"`
	MediaType       string     `json:"media_type"`
	Title           *string    `json:"title"`
	PosterPath      *string    `json:"poster_path"`
	VoteAverage     float64    `json:"vote_average"`
	Overview        *string    `json:"overview"`
	ReleaseDate     *string    `json:"release_date"`
	Runtime         int        `json:"runtime"`
	Seasons         int        `json:"seasons"`
	Status          string     `json:"status"`
	WatchPreference string     `json:"watch_preference"`
	AddedAt         time.Time  `json:"added_date"`
	UpdatedAt       *time.Time `json:"updated_date,omitempty"`
}

// NewLibraryEntry is the client payload for adding an item. Only these
// fields are kept; anything else in the request body is discarded by
// decoding. Pointer fields distinguish "absent" from zero values.
type NewLibraryEntry struct {
	TMDBID          int64    `json:"tmdb_id"`
	MediaType       string   `json:"media_type"`
	Title           *string  `json:"title"`
	PosterPath      *string  `json:"poster_path"`
	VoteAverage     *float64 `json:"vote_average"`
	Overview        *string  `json:"overview"`
	ReleaseDate     *string  `json:"release_date"`
	Runtime         *int     `json:"runtime"`
	Seasons         *int     `json:"seasons"`
	Status          *string  `json:"status"`
	WatchPreference *string  `json:"watch_preference"`
}

// LibraryPatch carries the only mutable fields of an entry. Nil fields are
// left untouched.
type LibraryPatch struct {
	Status          *string `json:"status"`
	WatchPreference *string `json:"watch_preference"`
}

// IsEmpty reports whether the patch changes nothing.
func (p LibraryPatch) IsEmpty() bool {
	return p.Status == nil && p.WatchPreference == nil
}
