package handlers

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// isValidationError reports whether err came from the ozzo validators, so
// handlers can answer 400 instead of 500.
func isValidationError(err error) bool {
	var fieldErrors validation.Errors
	if errors.As(err, &fieldErrors) {
		return true
	}
	var fieldError validation.ErrorObject
	return errors.As(err, &fieldError)
}
