package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Entity names used in domain errors and their derived codes.
const (
	EntityAthlete        = "athlete"
	EntityCategory       = "category"
	EntityTrainingCenter = "training center"
)

// ValidationKind names which related entity could not be resolved by name.
type ValidationKind string

const (
	CategoryNotFound       ValidationKind = "CATEGORY_NOT_FOUND"
	TrainingCenterNotFound ValidationKind = "TRAINING_CENTER_NOT_FOUND"
)

// ValidationError reports a user-correctable reference to a related entity
// that does not exist. Name is the offending input, verbatim.
type ValidationError struct {
	Kind ValidationKind
	Name string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case CategoryNotFound:
		return fmt.Sprintf("Category '%s' not found.", e.Name)
	case TrainingCenterNotFound:
		return fmt.Sprintf("Training center '%s' not found.", e.Name)
	default:
		return fmt.Sprintf("'%s' not found.", e.Name)
	}
}

// NotFoundError reports an unknown identifier.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found.", capitalize(e.Entity), e.ID)
}

// PersistenceReason classifies a store failure. It only feeds logs and
// metrics; clients always see the same generic message.
type PersistenceReason string

const (
	ReasonConstraint  PersistenceReason = "constraint"
	ReasonUnavailable PersistenceReason = "unavailable"
	ReasonUnknown     PersistenceReason = "unknown"
)

// PersistenceError wraps any store-level failure raised while writing.
type PersistenceError struct {
	Entity string
	Op     string
	Reason PersistenceReason
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Reason, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// FromDomain translates a domain error into the HTTPError sent to clients.
// ok is false when err is not a domain error.
func FromDomain(err error) (httpErr *HTTPError, ok bool) {
	var (
		validationErr  *ValidationError
		notFoundErr    *NotFoundError
		persistenceErr *PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		code := string(validationErr.Kind)
		return NewBadRequestError(validationErr.Error(), true, &code, nil, nil), true

	case errors.As(err, &notFoundErr):
		code := MakeUpperCaseWithUnderscores(notFoundErr.Entity) + "_NOT_FOUND"
		return NewNotFoundError(notFoundErr.Error(), true, &code), true

	case errors.As(err, &persistenceErr):
		return &HTTPError{
			Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
			Message:  fmt.Sprintf("Failed to save %s to the database.", persistenceErr.Entity),
			Status:   http.StatusInternalServerError,
			Override: true,
		}, true
	}

	return nil, false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
