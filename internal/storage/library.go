package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hoanghai1803/mediatrack/internal/models"
)

const libraryColumns = `tmdb_id, user_id, media_type, title, poster_path, vote_average,
	overview, release_date, runtime, seasons, status, watch_preference,
	added_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLibraryEntry(row rowScanner) (models.LibraryEntry, error) {
	var (
		e           models.LibraryEntry
		title       sql.NullString
		posterPath  sql.NullString
		overview    sql.NullString
		releaseDate sql.NullString
		addedAt     string
		updatedAt   sql.NullString
	)
	if err := row.Scan(
		&e.TMDBID, &e.UserID, &e.MediaType, &title, &posterPath, &e.VoteAverage,
		&overview, &releaseDate, &e.Runtime, &e.Seasons, &e.Status, &e.WatchPreference,
		&addedAt, &updatedAt,
	); err != nil {
		return models.LibraryEntry{}, err
	}

	e.Title = nullStringToPtr(title)
	e.PosterPath = nullStringToPtr(posterPath)
	e.Overview = nullStringToPtr(overview)
	e.ReleaseDate = nullStringToPtr(releaseDate)
	e.AddedAt = parseTime(addedAt)
	e.UpdatedAt = parseTimePtr(updatedAt)
	return e, nil
}

// AddLibraryEntry inserts a new entry and fills in its server-assigned
// AddedAt. A second insert for the same (tmdb id, user, media type) fails
// with ErrConflict and leaves the first row untouched; an unknown user fails
// with ErrNotFound.
func (s *Store) AddLibraryEntry(ctx context.Context, e *models.LibraryEntry) error {
	var addedAt string
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO library_entries
			(tmdb_id, user_id, media_type, title, poster_path, vote_average,
			 overview, release_date, runtime, seasons, status, watch_preference)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 RETURNING added_at`,
		e.TMDBID, e.UserID, e.MediaType,
		nullable(e.Title), nullable(e.PosterPath), e.VoteAverage,
		nullable(e.Overview), nullable(e.ReleaseDate), e.Runtime, e.Seasons,
		e.Status, e.WatchPreference,
	).Scan(&addedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s %d for user %d: %w", e.MediaType, e.TMDBID, e.UserID, ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("user %d: %w", e.UserID, ErrNotFound)
		}
		return fmt.Errorf("adding library entry: %w", err)
	}
	e.AddedAt = parseTime(addedAt)
	return nil
}

// ListLibrary returns a user's entries in insertion order. Unknown users
// have an empty library.
func (s *Store) ListLibrary(ctx context.Context, userID int64) ([]models.LibraryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+libraryColumns+`
		 FROM library_entries
		 WHERE user_id = ?
		 ORDER BY added_at ASC, rowid ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying library: %w", err)
	}
	defer rows.Close()

	var entries []models.LibraryEntry
	for rows.Next() {
		e, err := scanLibraryEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning library row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating library rows: %w", err)
	}
	return entries, nil
}

// GetLibraryEntry returns one entry by its composite key, or ErrNotFound.
func (s *Store) GetLibraryEntry(ctx context.Context, userID, tmdbID int64, mediaType string) (*models.LibraryEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+libraryColumns+`
		 FROM library_entries
		 WHERE user_id = ? AND tmdb_id = ? AND media_type = ?`,
		userID, tmdbID, mediaType,
	)
	e, err := scanLibraryEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting library entry: %w", err)
	}
	return &e, nil
}

// UpdateLibraryEntry merges the non-nil patch fields into an existing entry.
// Every other column is left as it was. Returns ErrNotFound when no entry
// matches the key.
func (s *Store) UpdateLibraryEntry(ctx context.Context, userID, tmdbID int64, mediaType string, patch models.LibraryPatch) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE library_entries SET
			status           = COALESCE(?, status),
			watch_preference = COALESCE(?, watch_preference),
			updated_at       = strftime('%Y-%m-%d %H:%M:%f', 'now')
		 WHERE user_id = ? AND tmdb_id = ? AND media_type = ?`,
		nullable(patch.Status), nullable(patch.WatchPreference),
		userID, tmdbID, mediaType,
	)
	if err != nil {
		return fmt.Errorf("updating library entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteLibraryEntry removes an entry. Deleting an entry that does not exist
// is not an error.
func (s *Store) DeleteLibraryEntry(ctx context.Context, userID, tmdbID int64, mediaType string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM library_entries
		 WHERE user_id = ? AND tmdb_id = ? AND media_type = ?`,
		userID, tmdbID, mediaType,
	); err != nil {
		return fmt.Errorf("deleting library entry: %w", err)
	}
	return nil
}

func nullStringToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
