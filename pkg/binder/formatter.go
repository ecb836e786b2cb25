package binder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

const (
	alphanum = "alphanum"
	iso8601  = "iso8601"
	mx       = "max"
	mn       = "min"
	ne       = "ne"
	oneof    = "oneof"
	required = "required"
)

func formatSchemaConversionError(err schema.ConversionError) string {
	return fmt.Sprintf("%q should be of type %s", err.Key, err.Type)
}

// formatValidationError builds a message for rules whose field doesn't carry
// its own message.
func formatValidationError(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case alphanum:
		return fmt.Sprintf("%q has non-alphanumeric characters", field)
	case iso8601:
		return fmt.Sprintf("%q should be a date in the format of YYYY-MM-DD", field)
	case mx:
		//exhaustive:ignore
		switch err.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return fmt.Sprintf("%q must be less than or equal to %s", field, err.Param())
		case reflect.Slice:
			return fmt.Sprintf("%q length must be less than or equal to %s %s", field, err.Param(), plural("element", err.Param()))
		default:
			return fmt.Sprintf("%q length must be less than or equal to %s %s", field, err.Param(), plural("character", err.Param()))
		}
	case mn:
		//exhaustive:ignore
		switch err.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return fmt.Sprintf("%q must be greater than or equal to %s", field, err.Param())
		case reflect.Slice:
			return fmt.Sprintf("%q length must be greater than or equal to %s %s", field, err.Param(), plural("element", err.Param()))
		default:
			return fmt.Sprintf("%q length must be greater than or equal to %s %s", field, err.Param(), plural("character", err.Param()))
		}
	case ne:
		return fmt.Sprintf("%q can't be %q", field, err.Param())
	case oneof:
		valids := []string{}
		for _, p := range strings.Fields(err.Param()) {
			valids = append(valids, fmt.Sprintf("%q", p))
		}
		return fmt.Sprintf("%q must be one of the following: %s", field, strings.Join(valids, ", "))
	case required:
		return fmt.Sprintf("%q is required", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}

func plural(resource, count string) string {
	if count != "1" {
		return resource + "s"
	}
	return resource
}
