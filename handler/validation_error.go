package handler

import (
	"net/url"
	"slices"
	"strings"
)

// ValidationError collects per-field messages for rejected input.
// The error handler answers it with 400 Bad Request.
type ValidationError url.Values

// NewValidationError creates an empty validation error.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Error lists the first message of every field, ordered by field name.
func (e ValidationError) Error() string {
	msg := e.Message()
	if msg == "" {
		return "validation failed"
	}
	return "validation failed: " + msg
}

// Message joins every field message as "field: message" pairs ordered by
// field name. It is what clients are shown.
func (e ValidationError) Message() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	var parts []string
	for _, field := range fields {
		for _, msg := range e[field] {
			parts = append(parts, field+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}

// Add adds an error message for a field.
func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Get returns the first error message for a field.
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

// Has checks if a field has any errors.
func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

// IsEmpty returns true if there are no validation errors.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}

// Err returns e as an error, or nil when it is empty.
func (e ValidationError) Err() error {
	if e.IsEmpty() {
		return nil
	}
	return e
}
