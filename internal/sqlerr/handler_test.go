package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/workout-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	t.Run("unique violation on category name", func(t *testing.T) {
		err := fmt.Errorf("insert category: %w", &pgconn.PgError{
			Code:           "23505",
			Severity:       "ERROR",
			TableName:      "categories",
			ConstraintName: "categories_name_key",
		})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, HandleError(err), &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "CATEGORY_ALREADY_EXISTS", httpErr.Code)
		assert.Equal(t, "A Category with this name already exists", httpErr.Message)
	})

	t.Run("foreign key violation", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23503", TableName: "athletes", ColumnName: "training_center_id"}

		var httpErr *errs.HTTPError
		require.ErrorAs(t, HandleError(err), &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "ATHLETE_NOT_FOUND", httpErr.Code)
		assert.Equal(t, "The referenced Training Center does not exist", httpErr.Message)
	})

	t.Run("not null violation carries a field error", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23502", TableName: "training_centers", ColumnName: "owner"}

		var httpErr *errs.HTTPError
		require.ErrorAs(t, HandleError(err), &httpErr)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "owner", httpErr.Errors[0].Field)
		assert.Equal(t, "TRAINING_CENTER_REQUIRED", httpErr.Code)
	})

	t.Run("no rows", func(t *testing.T) {
		var httpErr *errs.HTTPError
		require.ErrorAs(t, HandleError(pgx.ErrNoRows), &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})

	t.Run("unknown error is generic", func(t *testing.T) {
		var httpErr *errs.HTTPError
		require.ErrorAs(t, HandleError(errors.New("secret internals")), &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.NotContains(t, httpErr.Message, "secret")
	})

	t.Run("http errors pass through", func(t *testing.T) {
		in := errs.NewNotFoundError("nope", true, nil)
		assert.Same(t, in, HandleError(in))
	})
}

func TestPersistence(t *testing.T) {
	t.Run("classifies constraint violations", func(t *testing.T) {
		err := Persistence(errs.EntityAthlete, "insert", &pgconn.PgError{Code: "23505"})

		var persistenceErr *errs.PersistenceError
		require.ErrorAs(t, err, &persistenceErr)
		assert.Equal(t, errs.ReasonConstraint, persistenceErr.Reason)
		assert.Equal(t, errs.EntityAthlete, persistenceErr.Entity)
	})

	t.Run("classifies transient failures", func(t *testing.T) {
		err := Persistence(errs.EntityAthlete, "insert", context.DeadlineExceeded)

		var persistenceErr *errs.PersistenceError
		require.ErrorAs(t, err, &persistenceErr)
		assert.Equal(t, errs.ReasonUnavailable, persistenceErr.Reason)
	})

	t.Run("keeps domain errors", func(t *testing.T) {
		in := &errs.ValidationError{Kind: errs.CategoryNotFound, Name: "Scale"}
		assert.Same(t, in, Persistence(errs.EntityAthlete, "insert", in))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Persistence(errs.EntityAthlete, "insert", nil))
	})
}

func TestSingularize(t *testing.T) {
	assert.Equal(t, "category", singularize("categories"))
	assert.Equal(t, "training_center", singularize("training_centers"))
	assert.Equal(t, "athlete", singularize("athletes"))
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, ConnectionFailure, MapCode("08006"))
	assert.Equal(t, Other, MapCode("42P01"))
}
