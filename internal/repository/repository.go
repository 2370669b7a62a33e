// Package repository handles all interactions with the database.
//
// It contains the raw SQL used to fetch, persist and update workout
// data, keeping SQL away from the service layer. Services depend on
// the interfaces declared here; Postgres implements them in pg.go and
// memstore provides an in-memory double for tests.
package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/workout-api/internal/model"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

type CategoryStore interface {
	InsertCategory(ctx context.Context, c *model.Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}

type TrainingCenterStore interface {
	InsertTrainingCenter(ctx context.Context, tc *model.TrainingCenter) error
	GetTrainingCenter(ctx context.Context, id uuid.UUID) (*model.TrainingCenter, error)
	GetTrainingCenterByName(ctx context.Context, name string) (*model.TrainingCenter, error)
	ListTrainingCenters(ctx context.Context) ([]model.TrainingCenter, error)
}

// AthleteStore reads athletes with the category and training center
// names already joined in.
type AthleteStore interface {
	InsertAthlete(ctx context.Context, a *model.Athlete) error
	GetAthlete(ctx context.Context, id uuid.UUID) (*model.Athlete, error)
	ListAthletes(ctx context.Context) ([]model.Athlete, error)
	UpdateAthlete(ctx context.Context, a *model.Athlete) error
	DeleteAthlete(ctx context.Context, id uuid.UUID) error
}

// Store is every query the services need.
type Store interface {
	CategoryStore
	TrainingCenterStore
	AthleteStore
}

// UnitOfWork is a Store that can also scope work to one transaction.
//
// fn receives a Store bound to the transaction. Returning an error
// rolls everything back; returning nil commits.
type UnitOfWork interface {
	Store
	WithinTx(ctx context.Context, fn func(Store) error) error
}
