package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/go-playground/validator/v10"
)

var flightNumberRe = regexp.MustCompile(`^[A-Z0-9]{2,10}$`)

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("flight_number", validateFlightNumber)
	v.RegisterValidation("clock_time", validateClockTime)
	v.RegisterValidation("stop_name", validateStopName)

	return &CustomValidator{validator: v}
}

// Validate checks struct tags and reports the first violation as a
// domain validation error.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domain.NewValidationError("%s", err.Error())
	}
	return domain.NewValidationError("%s", describe(fieldErrs[0]))
}

func describe(fe validator.FieldError) string {
	field := toSnake(fe.StructField())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "flight_number":
		return field + " must be 2-10 uppercase letters or digits"
	case "clock_time":
		return field + " must be in HH:MM:SS format"
	case "stop_name":
		return "each stop must be 1-100 characters"
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s must contain at least %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Sprintf("%s is invalid", field)
}

func validateFlightNumber(fl validator.FieldLevel) bool {
	return ValidFlightNumber(fl.Field().String())
}

func validateClockTime(fl validator.FieldLevel) bool {
	_, err := NormalizeClock(fl.Field().String())
	return err == nil
}

func validateStopName(fl validator.FieldLevel) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(fl.Field().String()))
	return n >= 1 && n <= 100
}

func ValidFlightNumber(s string) bool {
	return flightNumberRe.MatchString(s)
}

// NormalizeClock accepts HH:MM or HH:MM:SS and returns HH:MM:SS.
func NormalizeClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.TimeOnly, "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.TimeOnly), nil
		}
	}
	return "", domain.NewValidationError("invalid time %q, expected HH:MM:SS", s)
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
