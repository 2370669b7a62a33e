package service

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/workout-api/internal/errs"
	"github.com/deppfellow/workout-api/internal/metrics"
	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/repository"
	"github.com/deppfellow/workout-api/internal/sqlerr"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Notifier is told about every committed registration.
type Notifier interface {
	AthleteRegistered(ctx context.Context, a *model.Athlete) error
}

// AthleteService registers, mutates, reads and deletes athletes.
type AthleteService struct {
	store    repository.UnitOfWork
	notifier Notifier
	metrics  *metrics.Metrics

	now   func() time.Time
	newID func() uuid.UUID
}

func NewAthleteService(store repository.UnitOfWork, notifier Notifier, m *metrics.Metrics) *AthleteService {
	return &AthleteService{
		store:    store,
		notifier: notifier,
		metrics:  m,
		now:      time.Now,
		newID:    uuid.New,
	}
}

// Register validates the related names in a fixed order (category,
// then training center), builds the athlete and inserts it once.
//
// The returned record is the one that was inserted, not a re-read.
func (s *AthleteService) Register(ctx context.Context, in model.NewAthlete) (*model.Athlete, error) {
	var athlete *model.Athlete

	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		category, err := ResolveCategory(ctx, st, in.CategoryName)
		if err != nil {
			return err
		}

		center, err := ResolveTrainingCenter(ctx, st, in.TrainingCenterName)
		if err != nil {
			return err
		}

		a := &model.Athlete{
			ID:               s.newID(),
			Name:             in.Name,
			CPF:              in.CPF,
			Age:              in.Age,
			Weight:           in.Weight,
			Height:           in.Height,
			Sex:              in.Sex,
			CreatedAt:        s.now().UTC().Truncate(time.Microsecond),
			CategoryID:       category.ID,
			TrainingCenterID: center.ID,
			Category:         model.CategoryRef{Name: category.Name},
			TrainingCenter:   model.TrainingCenterRef{Name: center.Name},
		}

		if err := st.InsertAthlete(ctx, a); err != nil {
			return err
		}

		athlete = a
		return nil
	})
	if err != nil {
		s.metrics.Registration(registrationOutcome(err))
		return nil, sqlerr.Persistence(errs.EntityAthlete, "insert", err)
	}

	s.metrics.Registration(metrics.OutcomeCreated)

	log := zerolog.Ctx(ctx)
	log.Info().
		Str("athlete_id", athlete.ID.String()).
		Str("category", athlete.Category.Name).
		Str("training_center", athlete.TrainingCenter.Name).
		Msg("athlete registered")

	if s.notifier != nil {
		if err := s.notifier.AthleteRegistered(ctx, athlete); err != nil {
			log.Warn().Err(err).
				Str("athlete_id", athlete.ID.String()).
				Msg("registration notification failed")
		}
	}

	return athlete, nil
}

func registrationOutcome(err error) string {
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		if validationErr.Kind == errs.CategoryNotFound {
			return metrics.OutcomeCategoryMissing
		}
		return metrics.OutcomeCenterMissing
	}
	return metrics.OutcomePersistenceFailed
}

// Update applies patch to the athlete with the given id and returns the
// record as stored afterwards.
func (s *AthleteService) Update(ctx context.Context, id uuid.UUID, patch model.AthletePatch) (*model.Athlete, error) {
	var updated *model.Athlete

	err := s.store.WithinTx(ctx, func(st repository.Store) error {
		current, err := st.GetAthlete(ctx, id)
		if err != nil {
			return athleteNotFound(err, id)
		}

		patch.Apply(current)

		if err := st.UpdateAthlete(ctx, current); err != nil {
			return athleteNotFound(err, id)
		}

		updated, err = st.GetAthlete(ctx, id)
		return athleteNotFound(err, id)
	})
	if err != nil {
		return nil, sqlerr.Persistence(errs.EntityAthlete, "update", err)
	}

	return updated, nil
}

// Get returns one athlete.
func (s *AthleteService) Get(ctx context.Context, id uuid.UUID) (*model.Athlete, error) {
	a, err := s.store.GetAthlete(ctx, id)
	if err != nil {
		return nil, athleteNotFound(err, id)
	}
	return a, nil
}

// List returns every athlete, unfiltered.
func (s *AthleteService) List(ctx context.Context) ([]model.Athlete, error) {
	return s.store.ListAthletes(ctx)
}

// Delete removes an athlete unconditionally.
func (s *AthleteService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.DeleteAthlete(ctx, id)
	if err != nil {
		return sqlerr.Persistence(errs.EntityAthlete, "delete", athleteNotFound(err, id))
	}
	return nil
}

func athleteNotFound(err error, id uuid.UUID) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &errs.NotFoundError{Entity: errs.EntityAthlete, ID: id.String()}
	}
	return err
}
