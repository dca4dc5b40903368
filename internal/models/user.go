package models

import "time"

// User is a named profile that owns a library and display preferences.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
}
