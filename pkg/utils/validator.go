package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the struct tags and returns a field -> message map,
// nil when the value is valid.
func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = fieldErrorMessage(err)
		}
	}

	return errors
}

// fieldErrorMessage maps the tags the request DTOs use to client-facing
// messages. The datetime tag covers both play dates (2006-01-02) and slot
// labels (15:04).
func fieldErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must have at least %s", err.Param())
	case "max":
		return fmt.Sprintf("Must have at most %s", err.Param())
	case "uuid4":
		return "Must be a valid UUID"
	case "datetime":
		return fmt.Sprintf("Must match the %s format", err.Param())
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// FormatValidationErrors flattens the field map into one message for error
// wrapping.
func FormatValidationErrors(errors map[string]string) string {
	var msgs []string
	for field, msg := range errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}
