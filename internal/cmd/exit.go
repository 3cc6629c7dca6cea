// Package cmd provides command implementations for the kickstart CLI.
package cmd

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid flags, names, or configuration.
	ExitValidationError = 2

	// ExitNotFound indicates a template, file, or binary was not found.
	ExitNotFound = 5

	// ExitProbeFailed indicates the package manager version could not be determined.
	ExitProbeFailed = 7

	// ExitGenerationFailed indicates rendering or unpacking the template failed.
	ExitGenerationFailed = 8
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitNotFound:
		return "Not Found"
	case ExitProbeFailed:
		return "Probe Failed"
	case ExitGenerationFailed:
		return "Generation Failed"
	default:
		return "Unknown"
	}
}
