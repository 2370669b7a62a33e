package service

import (
	"context"
	"errors"

	"github.com/deppfellow/workout-api/internal/errs"
	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/repository"
	"github.com/google/uuid"
)

// CatalogService is the plain CRUD for categories and training centers.
//
// Insert errors are returned unwrapped so the error handler can turn a
// duplicate name into a 400.
type CatalogService struct {
	store repository.Store
	newID func() uuid.UUID
}

func NewCatalogService(store repository.Store) *CatalogService {
	return &CatalogService{store: store, newID: uuid.New}
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	c := &model.Category{ID: s.newID(), Name: name}
	if err := s.store.InsertCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	c, err := s.store.GetCategory(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &errs.NotFoundError{Entity: errs.EntityCategory, ID: id.String()}
	}
	return c, err
}

func (s *CatalogService) CreateTrainingCenter(ctx context.Context, tc model.TrainingCenter) (*model.TrainingCenter, error) {
	tc.ID = s.newID()
	if err := s.store.InsertTrainingCenter(ctx, &tc); err != nil {
		return nil, err
	}
	return &tc, nil
}

func (s *CatalogService) ListTrainingCenters(ctx context.Context) ([]model.TrainingCenter, error) {
	return s.store.ListTrainingCenters(ctx)
}

func (s *CatalogService) GetTrainingCenter(ctx context.Context, id uuid.UUID) (*model.TrainingCenter, error) {
	tc, err := s.store.GetTrainingCenter(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &errs.NotFoundError{Entity: errs.EntityTrainingCenter, ID: id.String()}
	}
	return tc, err
}
