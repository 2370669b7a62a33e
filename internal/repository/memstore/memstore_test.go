package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/workout-api/internal/model"
	"github.com/deppfellow/workout-api/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ repository.UnitOfWork = (*Store)(nil)

func seed(t *testing.T, s *Store) (model.Category, model.TrainingCenter) {
	t.Helper()
	ctx := context.Background()

	c := model.Category{ID: uuid.New(), Name: "Scale"}
	tc := model.TrainingCenter{ID: uuid.New(), Name: "CT King", Address: "Rua X, 10", Owner: "Marcos"}
	require.NoError(t, s.InsertCategory(ctx, &c))
	require.NoError(t, s.InsertTrainingCenter(ctx, &tc))
	return c, tc
}

func TestStore_UniqueNames(t *testing.T) {
	s := New()
	seed(t, s)

	err := s.InsertCategory(context.Background(), &model.Category{ID: uuid.New(), Name: "Scale"})

	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "23505", pgErr.Code)
	assert.Equal(t, "categories_name_key", pgErr.ConstraintName)
}

func TestStore_WithinTxRollsBack(t *testing.T) {
	s := New()
	c, tc := seed(t, s)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(st repository.Store) error {
		a := &model.Athlete{ID: uuid.New(), Name: "Joe", CategoryID: c.ID, TrainingCenterID: tc.ID}
		require.NoError(t, st.InsertAthlete(ctx, a))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Zero(t, s.AthleteCount())
}

func TestStore_AthleteJoinsNames(t *testing.T) {
	s := New()
	c, tc := seed(t, s)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, s.InsertAthlete(ctx, &model.Athlete{ID: id, Name: "Joe", CategoryID: c.ID, TrainingCenterID: tc.ID}))

	got, err := s.GetAthlete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Scale", got.Category.Name)
	assert.Equal(t, "CT King", got.TrainingCenter.Name)

	require.NoError(t, s.DeleteAthlete(ctx, id))
	assert.ErrorIs(t, s.DeleteAthlete(ctx, id), repository.ErrNotFound)
}

func TestStore_FailOn(t *testing.T) {
	s := New()
	boom := errors.New("boom")
	s.FailOn(OpListAthletes, boom)

	_, err := s.ListAthletes(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, s.Calls(OpListAthletes))

	s.FailOn(OpListAthletes, nil)
	_, err = s.ListAthletes(context.Background())
	assert.NoError(t, err)
}
