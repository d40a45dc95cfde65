package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrQuizNotFound indicates the requested quiz does not exist.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuizExists indicates a create collided with an existing quiz ID.
	ErrQuizExists = errors.New("quiz already exists")
)

// FieldError ties a validation message to the input field that violated it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError accumulates every structural violation found in an input,
// so a caller can fix a definition in one round trip.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a violation against a field.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Addf records a violation with a formatted message.
func (e *ValidationError) Addf(field, format string, args ...any) {
	e.Add(field, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any violation was recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
