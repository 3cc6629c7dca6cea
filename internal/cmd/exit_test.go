package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeName(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{ExitSuccess, "Success"},
		{ExitGeneralError, "General Error"},
		{ExitValidationError, "Validation Error"},
		{ExitNotFound, "Not Found"},
		{ExitProbeFailed, "Probe Failed"},
		{ExitGenerationFailed, "Generation Failed"},
		{42, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeName(tt.code))
		})
	}
}

func TestExitCodesAreDistinct(t *testing.T) {
	codes := []int{ExitSuccess, ExitGeneralError, ExitValidationError, ExitNotFound, ExitProbeFailed, ExitGenerationFailed}
	seen := make(map[int]bool)
	for _, c := range codes {
		assert.False(t, seen[c], "duplicate exit code %d", c)
		seen[c] = true
	}
}
