// Package errors provides sentinel errors and structured error details for kickstart.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates invalid user input (template name, project name, flags).
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a template, binary, or file was not found.
	ErrNotFound = errors.New("not found")

	// ErrProbe indicates an environment probe that must succeed could not complete.
	ErrProbe = errors.New("probe failed")

	// ErrGeneration indicates the render or unpack collaborator failed.
	ErrGeneration = errors.New("generation failed")
)

// DetailError captures structured error information for terminal display.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file or directory path involved (optional).
	Location string

	// Field is the offending flag or option name (optional).
	Field string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, field, hint string) error {
	return &DetailError{
		Type:    "validation failed",
		Message: message,
		Field:   field,
		Hint:    hint,
		Cause:   ErrValidation,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewProbeError creates an error for a probe whose failure aborts the run.
func NewProbeError(message string, cause error, hint string) error {
	return &DetailError{
		Type:    "environment probe failed",
		Message: message,
		Context: map[string]string{"Cause": cause.Error()},
		Hint:    hint,
		Cause:   fmt.Errorf("%w: %w", ErrProbe, cause),
	}
}

// NewGenerationError creates an error for a failed render or unpack.
func NewGenerationError(message, location string, cause error) error {
	return &DetailError{
		Type:     "project generation failed",
		Message:  message,
		Location: location,
		Context:  map[string]string{"Cause": cause.Error()},
		Cause:    fmt.Errorf("%w: %w", ErrGeneration, cause),
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
