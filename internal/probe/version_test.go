package probe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/kickstartjs/kickstart/internal/errors"
	"github.com/kickstartjs/kickstart/internal/pkgmgr"
	"github.com/kickstartjs/kickstart/internal/runner/runnertest"
)

func TestPackageManagerMajorVersion(t *testing.T) {
	rec := runnertest.NewRecorder().
		On("pnpm --version", runnertest.Response{Stdout: "7.33.6\n"})

	major, err := PackageManagerMajorVersion(context.Background(), rec, pkgmgr.PNPM)
	require.NoError(t, err)
	assert.Equal(t, 7, major)
	assert.Equal(t, []string{"pnpm --version"}, rec.CommandLines())
}

func TestPackageManagerMajorVersion_ExecutionFailureIsFatal(t *testing.T) {
	rec := runnertest.NewRecorder().Fail("yarn --version", "yarn: command not found")

	_, err := PackageManagerMajorVersion(context.Background(), rec, pkgmgr.Yarn)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrProbe))
	assert.Contains(t, err.Error(), "yarn")
}

func TestPackageManagerMajorVersion_UnparsableOutput(t *testing.T) {
	rec := runnertest.NewRecorder().
		On("npm --version", runnertest.Response{Stdout: "garbage"})

	_, err := PackageManagerMajorVersion(context.Background(), rec, pkgmgr.NPM)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrProbe))
}
