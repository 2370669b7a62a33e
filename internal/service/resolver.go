package service

import (
	"context"
	"errors"

	"github.com/deppfellow/workout-api/internal/errs"
	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/repository"
)

// resolve maps a display name to a persisted entity. A miss becomes a
// *errs.ValidationError of the given kind carrying the name; store
// failures are returned as is.
//
// Names are compared exactly (case-sensitive) by the store.
func resolve[T any](ctx context.Context, lookup func(context.Context, string) (*T, error), kind errs.ValidationKind, name string) (*T, error) {
	entity, err := lookup(ctx, name)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, &errs.ValidationError{Kind: kind, Name: name}
	case err != nil:
		return nil, err
	}
	return entity, nil
}

// ResolveCategory looks up a category by name.
func ResolveCategory(ctx context.Context, st repository.CategoryStore, name string) (*model.Category, error) {
	return resolve(ctx, st.GetCategoryByName, errs.CategoryNotFound, name)
}

// ResolveTrainingCenter looks up a training center by name.
func ResolveTrainingCenter(ctx context.Context, st repository.TrainingCenterStore, name string) (*model.TrainingCenter, error) {
	return resolve(ctx, st.GetTrainingCenterByName, errs.TrainingCenterNotFound, name)
}
