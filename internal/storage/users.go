package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hoanghai1803/mediatrack/internal/models"
)

// CreateUser registers a user and their default preferences in one
// transaction. The name is trimmed; an empty name fails with ErrInvalidInput
// and an exact (case-sensitive) duplicate with ErrConflict.
func (s *Store) CreateUser(ctx context.Context, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	user := &models.User{Name: name}
	var createdAt string
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (name) VALUES (?) RETURNING id, created_at`,
		name,
	).Scan(&user.ID, &createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user %q: %w", name, ErrConflict)
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	user.CreatedAt = parseTime(createdAt)

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO user_preferences (user_id, card_size, default_watch_preference)
		 VALUES (?, ?, ?)`,
		user.ID, models.DefaultCardSize, models.DefaultDefaultWatchPreference,
	); err != nil {
		return nil, fmt.Errorf("inserting default preferences: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing user: %w", err)
	}
	return user, nil
}

// ListUsers returns every user ordered by name (byte order, so "Bob" sorts
// before "alice").
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM users ORDER BY name, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var (
			u         models.User
			createdAt string
		)
		if err := rows.Scan(&u.ID, &u.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		u.CreatedAt = parseTime(createdAt)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}
	return users, nil
}

// GetUser returns a single user by id, or ErrNotFound.
func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var (
		u         models.User
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}
