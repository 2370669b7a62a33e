package model

import "github.com/google/uuid"

// Category is a named competitive classification bucket.
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CategoryRef references a category by its display name.
type CategoryRef struct {
	Name string `json:"name" validate:"required,max=10"`
}
