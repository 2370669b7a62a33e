package memstore

import (
	"maps"
	"slices"

	"github.com/deppfellow/workout-api/internal/model"
	"github.com/google/uuid"
)

type data struct {
	categories     map[uuid.UUID]model.Category
	categoryByName map[string]uuid.UUID
	categoryOrder  []uuid.UUID

	centers      map[uuid.UUID]model.TrainingCenter
	centerByName map[string]uuid.UUID
	centerOrder  []uuid.UUID

	athletes     map[uuid.UUID]model.Athlete
	athleteOrder []uuid.UUID
}

func newData() *data {
	return &data{
		categories:     map[uuid.UUID]model.Category{},
		categoryByName: map[string]uuid.UUID{},
		centers:        map[uuid.UUID]model.TrainingCenter{},
		centerByName:   map[string]uuid.UUID{},
		athletes:       map[uuid.UUID]model.Athlete{},
	}
}

// clone copies every table. Values are plain structs, so a shallow
// map copy is a full snapshot.
func (d *data) clone() *data {
	return &data{
		categories:     maps.Clone(d.categories),
		categoryByName: maps.Clone(d.categoryByName),
		categoryOrder:  slices.Clone(d.categoryOrder),
		centers:        maps.Clone(d.centers),
		centerByName:   maps.Clone(d.centerByName),
		centerOrder:    slices.Clone(d.centerOrder),
		athletes:       maps.Clone(d.athletes),
		athleteOrder:   slices.Clone(d.athleteOrder),
	}
}
