package services

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when an id does not match any record.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned when a status change is not allowed
	// from the current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyExists is returned when a record would duplicate another one.
	ErrAlreadyExists = errors.New("already exists")
)

// FieldError is one failed check on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every failed check of an input. A non-empty value
// is returned as the error of the operation, which is then not performed.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// Err returns v as an error, or nil when nothing failed.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsValidation reports whether err carries validation failures.
func IsValidation(err error) bool {
	var v ValidationErrors
	return errors.As(err, &v)
}
