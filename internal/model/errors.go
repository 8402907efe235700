package model

import "strings"

// ValidationError holds a list of field-level validation errors.
// It covers every caller-fixable failure in the engine: bad input shape,
// self-references, duplicate edges, cycles, and the traversal limit.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Context returns the field errors as a map, for structured error envelopes.
func (e *ValidationError) Context() map[string]string {
	ctx := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		ctx[fe.Field] = fe.Message
	}
	return ctx
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// NotFoundError reports that one or more identified resources do not exist.
type NotFoundError struct {
	Resource string   // "todo" or "relationship"
	IDs      []string // the ids that failed to resolve
}

// Error names the resource and every missing id.
func (e *NotFoundError) Error() string {
	return e.Resource + " not found: " + strings.Join(e.IDs, ", ")
}
