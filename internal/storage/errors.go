package storage

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write would violate a uniqueness rule.
	ErrConflict = errors.New("already exists")

	// ErrInvalidInput is returned when a write is rejected before reaching
	// the database.
	ErrInvalidInput = errors.New("invalid input")
)

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
