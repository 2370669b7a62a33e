package handler

import (
	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateAthleteRequest struct {
	Name           string                  `json:"name" validate:"required,max=50"`
	CPF            string                  `json:"cpf" validate:"required,max=11"`
	Age            int                     `json:"age" validate:"gt=0"`
	Weight         decimal.Decimal         `json:"weight"`
	Height         decimal.Decimal         `json:"height"`
	Sex            string                  `json:"sex" validate:"required,oneof=M F"`
	Category       model.CategoryRef       `json:"category"`
	TrainingCenter model.TrainingCenterRef `json:"training_center"`
}

func (r *CreateAthleteRequest) Validate() error {
	var extra []validation.CustomValidationError
	extra = append(extra, validation.Positive("weight", r.Weight)...)
	extra = append(extra, validation.Positive("height", r.Height)...)
	return validation.Check(r, extra...)
}

func (r *CreateAthleteRequest) toModel() model.NewAthlete {
	return model.NewAthlete{
		Name:               r.Name,
		CPF:                r.CPF,
		Age:                r.Age,
		Weight:             r.Weight,
		Height:             r.Height,
		Sex:                r.Sex,
		CategoryName:       r.Category.Name,
		TrainingCenterName: r.TrainingCenter.Name,
	}
}

// AthleteIDRequest carries only the path identifier.
type AthleteIDRequest struct {
	ID string `param:"id" json:"-"`

	id uuid.UUID
}

func (r *AthleteIDRequest) Validate() error {
	var failures []validation.CustomValidationError
	r.id, failures = validation.ParseUUID("id", r.ID)
	return validation.Check(r, failures...)
}

// UpdateAthleteRequest is a sparse patch. Only name, age, weight,
// height and sex can change; any other key in the body is ignored.
type UpdateAthleteRequest struct {
	ID string `param:"id" json:"-"`

	Name   *string          `json:"name" validate:"omitempty,max=50"`
	Age    *int             `json:"age" validate:"omitempty,gt=0"`
	Weight *decimal.Decimal `json:"weight"`
	Height *decimal.Decimal `json:"height"`
	Sex    *string          `json:"sex" validate:"omitempty,oneof=M F"`

	id uuid.UUID
}

func (r *UpdateAthleteRequest) Validate() error {
	var failures, extra []validation.CustomValidationError
	r.id, failures = validation.ParseUUID("id", r.ID)
	extra = append(extra, failures...)
	extra = append(extra, validation.PositivePtr("weight", r.Weight)...)
	extra = append(extra, validation.PositivePtr("height", r.Height)...)
	return validation.Check(r, extra...)
}

func (r *UpdateAthleteRequest) toPatch() model.AthletePatch {
	return model.AthletePatch{
		Name:   r.Name,
		Age:    r.Age,
		Weight: r.Weight,
		Height: r.Height,
		Sex:    r.Sex,
	}
}

// ListRequest has no input.
type ListRequest struct{}

func (r *ListRequest) Validate() error { return nil }
