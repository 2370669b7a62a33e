package handler

import (
	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/validation"
	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=10"`
}

func (r *CreateCategoryRequest) Validate() error {
	return validation.Check(r)
}

type CreateTrainingCenterRequest struct {
	Name    string `json:"name" validate:"required,max=20"`
	Address string `json:"address" validate:"required,max=60"`
	Owner   string `json:"owner" validate:"required,max=30"`
}

func (r *CreateTrainingCenterRequest) Validate() error {
	return validation.Check(r)
}

func (r *CreateTrainingCenterRequest) toModel() model.TrainingCenter {
	return model.TrainingCenter{Name: r.Name, Address: r.Address, Owner: r.Owner}
}

// IDRequest is a path identifier for categories and training centers.
type IDRequest struct {
	ID string `param:"id" json:"-"`

	id uuid.UUID
}

func (r *IDRequest) Validate() error {
	var failures []validation.CustomValidationError
	r.id, failures = validation.ParseUUID("id", r.ID)
	return validation.Check(r, failures...)
}
