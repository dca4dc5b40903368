// Package service holds the use-case logic between the HTTP handlers and the
// store: payload normalisation, defaults and validation.
package service

import "github.com/hoanghai1803/mediatrack/internal/storage"

// Errors surfaced by the services. They are the store's sentinels, so
// callers can match either with errors.Is.
var (
	ErrNotFound     = storage.ErrNotFound
	ErrConflict     = storage.ErrConflict
	ErrInvalidInput = storage.ErrInvalidInput
)
