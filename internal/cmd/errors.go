package cmd

import (
	"errors"

	oerrors "github.com/kickstartjs/kickstart/internal/errors"
	"github.com/kickstartjs/kickstart/internal/runner"
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed is set when the command already reported the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for ExitError first
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Check for sentinel errors
	switch {
	case errors.Is(err, oerrors.ErrValidation):
		return ExitValidationError
	case errors.Is(err, oerrors.ErrProbe):
		return ExitProbeFailed
	case errors.Is(err, oerrors.ErrGeneration):
		return ExitGenerationFailed
	case errors.Is(err, oerrors.ErrNotFound):
		return ExitNotFound
	}

	var cmdErr *runner.CommandError
	if errors.As(err, &cmdErr) && cmdErr.NotFound {
		return ExitNotFound
	}

	return ExitGeneralError
}
