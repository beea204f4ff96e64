package domain

import (
	"errors"
	"strings"
)

var ErrValidation = errors.New("validation failed")
var ErrPersistence = errors.New("persistence failure")
var ErrNotification = errors.New("notification failure")

// ValidationError lists the required appointment fields that were missing or blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "Missing required fields"
	}
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

// Is lets callers match any ValidationError with errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
