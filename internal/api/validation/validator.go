// Package validation checks decoded request bodies and reports failures as
// problem field errors keyed by their JSON names.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/blaisecz/flare-tracker/pkg/problem"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// IANA names only; the empty string is left to "required".
	validate.RegisterValidation("timezone", func(fl validator.FieldLevel) bool {
		tz := fl.Field().String()
		if tz == "" || strings.EqualFold(tz, "local") {
			return false
		}
		_, err := time.LoadLocation(tz)
		return err == nil
	})

	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
}

// Validate validates a struct and returns field errors, or nil when it is valid.
func Validate(s any) []problem.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []problem.FieldError{{Field: "body", Message: err.Error()}}
	}

	fieldErrors := make([]problem.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrors = append(fieldErrors, problem.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return fieldErrors
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return boundMessage(fe, "at least")
	case "max":
		return boundMessage(fe, "at most")
	case "oneof":
		return "must be one of: " + fe.Param()
	case "timezone":
		return "must be a valid IANA timezone such as Europe/Berlin"
	default:
		return "is invalid"
	}
}

// boundMessage words min/max by kind: lists count items, text counts characters.
func boundMessage(fe validator.FieldError, bound string) string {
	switch fe.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return "must contain " + bound + " " + fe.Param() + " items"
	case reflect.String:
		return "must be " + bound + " " + fe.Param() + " characters long"
	default:
		return "must be " + bound + " " + fe.Param()
	}
}
