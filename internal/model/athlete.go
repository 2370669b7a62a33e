package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sex values accepted for an athlete.
const (
	SexMale   = "M"
	SexFemale = "F"
)

// Athlete is the fully resolved athlete record.
//
// CategoryID and TrainingCenterID are the foreign keys; Category and
// TrainingCenter carry the display names clients see.
type Athlete struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	CPF       string          `json:"cpf"`
	Age       int             `json:"age"`
	Weight    decimal.Decimal `json:"weight"`
	Height    decimal.Decimal `json:"height"`
	Sex       string          `json:"sex"`
	CreatedAt time.Time       `json:"created_at"`

	CategoryID       uuid.UUID `json:"-"`
	TrainingCenterID uuid.UUID `json:"-"`

	Category       CategoryRef       `json:"category"`
	TrainingCenter TrainingCenterRef `json:"training_center"`
}

// NewAthlete is a creation request once it left the transport layer:
// direct attributes plus the names of the related entities.
type NewAthlete struct {
	Name               string
	CPF                string
	Age                int
	Weight             decimal.Decimal
	Height             decimal.Decimal
	Sex                string
	CategoryName       string
	TrainingCenterName string
}

// AthletePatch is a sparse update. A nil field is absent from the
// payload and must be left untouched.
type AthletePatch struct {
	Name   *string
	Age    *int
	Weight *decimal.Decimal
	Height *decimal.Decimal
	Sex    *string
}

// IsEmpty reports whether the patch names no field at all.
func (p AthletePatch) IsEmpty() bool {
	return p.Name == nil && p.Age == nil && p.Weight == nil && p.Height == nil && p.Sex == nil
}

// Apply overwrites the fields present in p. Identity, creation time and
// foreign keys are never touched.
func (p AthletePatch) Apply(a *Athlete) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Age != nil {
		a.Age = *p.Age
	}
	if p.Weight != nil {
		a.Weight = *p.Weight
	}
	if p.Height != nil {
		a.Height = *p.Height
	}
	if p.Sex != nil {
		a.Sex = *p.Sex
	}
}
