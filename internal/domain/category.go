package domain

import "github.com/google/uuid"

// Category is immutable reference data seeded outside the API.
type Category struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
	Slug string    `json:"slug" db:"slug"`
}
