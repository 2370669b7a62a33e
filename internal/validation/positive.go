package validation

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Positive reports a failure for field unless d > 0.
func Positive(field string, d decimal.Decimal) []CustomValidationError {
	if d.IsPositive() {
		return nil
	}
	return []CustomValidationError{{Field: field, Message: "must be greater than 0"}}
}

// PositivePtr is Positive for optional fields; nil passes.
func PositivePtr(field string, d *decimal.Decimal) []CustomValidationError {
	if d == nil {
		return nil
	}
	return Positive(field, *d)
}

// ParseUUID parses a path identifier. Malformed ids are a field failure.
func ParseUUID(field, raw string) (uuid.UUID, []CustomValidationError) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, []CustomValidationError{{Field: field, Message: "must be a valid UUID"}}
	}
	return id, nil
}
