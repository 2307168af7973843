package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const firstReleaseYear = 1888

var usernameRgx = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names
	validator.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	validator.RegisterValidation("release_year", validateReleaseYear)
	validator.RegisterValidation("username", validateUsername)
	validator.RegisterValidation("notblank", validators.NotBlank)

	return validator
}

// validateReleaseYear accepts years from the first film up to a few years
// ahead, so that announced movies can be catalogued.
func validateReleaseYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()

	return year >= firstReleaseYear && year <= int64(time.Now().Year()+5)
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernameRgx.MatchString(fl.Field().String())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		switch err.Kind() {
		case reflect.Slice:
			return fmt.Sprintf("must contain at least %s items", err.Param())
		case reflect.Int, reflect.Int32, reflect.Int64:
			return fmt.Sprintf("must be at least %s", err.Param())
		}
		return fmt.Sprintf("must be at least %s characters long", err.Param())
	case "max":
		switch err.Kind() {
		case reflect.Slice:
			return fmt.Sprintf("must contain at most %s items", err.Param())
		case reflect.Int, reflect.Int32, reflect.Int64:
			return fmt.Sprintf("must be at most %s", err.Param())
		}
		return fmt.Sprintf("must be at most %s characters long", err.Param())
	case "notblank":
		return "must not be blank"
	case "release_year":
		return fmt.Sprintf("must be a year between %d and %d", firstReleaseYear, time.Now().Year()+5)
	case "username":
		return "must contain only letters, digits, underscores, dots and hyphens"
	default:
		return "is invalid"
	}
}
