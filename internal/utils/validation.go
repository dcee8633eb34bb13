package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/volunteerhub/volunteerhub-backend/internal/apperrors"
)

var zipcodePattern = regexp.MustCompile(`^\d{5,9}$`)

// Validate is the shared validator instance with domain-specific rules
// registered.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("zipcode", func(fl validator.FieldLevel) bool {
		return zipcodePattern.MatchString(fl.Field().String())
	})
	return v
}

// CheckStruct validates a request struct and returns a ValidationError
// carrying a message for every violated field, not just the first.
func CheckStruct(req interface{}) error {
	err := Validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fieldName(fe)
		fields[name] = messageFor(name, fe)
	}
	return apperrors.NewValidationError(fields)
}

func fieldName(fe validator.FieldError) string {
	// StructNamespace looks like "ProfileUpdateRequest.FullName" (or
	// "...Availability[2]" inside a slice); drop the struct prefix and any
	// index, then lower the first letter to match the JSON field.
	parts := strings.Split(fe.StructNamespace(), ".")
	name := parts[len(parts)-1]
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func messageFor(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", name)
	case "email":
		return "Valid email is required."
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("At least %s %s entry is required.", fe.Param(), name)
		}
		return fmt.Sprintf("%s must be at least %s characters.", name, fe.Param())
	case "zipcode":
		return "ZIP code is required and must be 5-9 digits."
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", name, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s entries must use the YYYY-MM-DD format.", name)
	default:
		return fmt.Sprintf("%s is invalid.", name)
	}
}
