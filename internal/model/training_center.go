package model

import "github.com/google/uuid"

// TrainingCenter is a named facility athletes train at.
type TrainingCenter struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
	Owner   string    `json:"owner"`
}

// TrainingCenterRef references a training center by its display name.
type TrainingCenterRef struct {
	Name string `json:"name" validate:"required,max=20"`
}
