package binder

import (
	"github.com/go-playground/validator/v10"
	"github.com/shishobooks/catalog/pkg/validation"
)

// iso8601Validator accepts the ISO 8601 dates and date-times that date and
// datetime-local inputs submit. Pair it with `omitempty` for optional fields.
func iso8601Validator(fl validator.FieldLevel) bool {
	_, ok := validation.ParseISO8601(fl.Field().String())
	return ok
}
