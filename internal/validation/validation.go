// Package validation binds and validates request payloads.
//
// Struct tags are checked with go-playground/validator; rules that tags
// cannot express are reported as CustomValidationErrors. Either way the
// client receives a 400 with one entry per offending field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/workout-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payloads.
type Validatable interface {
	Validate() error
}

// CustomValidationError is one field-level failure.
type CustomValidationError struct {
	Field   string
	Message string
}

type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON (or path param) name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "param"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name == "-" {
				continue
			}
			if name != "" {
				return name
			}
		}
		return strings.ToLower(f.Name)
	})
	return v
}

// Check runs the validator tags on v and appends extra failures.
// It returns nil, CustomValidationErrors, or a non-validation error
// (for instance when v is not a struct).
func Check(v any, extra ...CustomValidationError) error {
	var out CustomValidationErrors

	if err := validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			out = append(out, CustomValidationError{
				Field:   fieldPath(fe),
				Message: tagMessage(fe),
			})
		}
	}

	out = append(out, extra...)
	if len(out) == 0 {
		return nil
	}
	return out
}

// BindAndValidate binds path params and the JSON body into payload,
// then validates it. Both failures become a 400 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindMessage(err), false, nil, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		message, fieldErrors := extractValidationError(err)
		return errs.NewBadRequestError(message, true, nil, fieldErrors, nil)
	}

	return nil
}

func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return "Invalid request payload"
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var custom CustomValidationErrors
	if !errors.As(err, &custom) {
		return err.Error(), nil
	}

	fieldErrors := make([]errs.FieldError, 0, len(custom))
	for _, ce := range custom {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: ce.Field,
			Error: ce.Message,
		})
	}
	return "Validation failed", fieldErrors
}

// fieldPath drops the root struct name: "CreateAthleteRequest.category.name" -> "category.name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	case "email":
		return "must be a valid email address"

	case "uuid":
		return "must be a valid UUID"

	case "dive":
		return "some items are invalid"
	}

	if fe.Param() != "" {
		return fmt.Sprintf("%s:%s", fe.Tag(), fe.Param())
	}
	return fe.Tag()
}
