package domain

import "strings"

// FieldError describes a single structural violation: which field, where
// it was found (body, query, params), and the human-readable messages.
type FieldError struct {
	Field    string   `json:"field"`
	Location string   `json:"location"`
	Messages []string `json:"messages"`
}

// ValidationError aggregates the field violations found at the request
// boundary. It maps to HTTP 400.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+strings.Join(f.Messages, ", "))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError from one or more field
// violations.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}
