package probe

import (
	"context"

	oerrors "github.com/kickstartjs/kickstart/internal/errors"
	"github.com/kickstartjs/kickstart/internal/pkgmgr"
	"github.com/kickstartjs/kickstart/internal/runner"
)

// PackageManagerMajorVersion runs `<pm> --version` and returns the major version.
// Unlike the other probes, failure is returned as an ErrProbe error.
func PackageManagerMajorVersion(ctx context.Context, r runner.Runner, pm pkgmgr.Name) (int, error) {
	out, err := r.Output(ctx, "", pm.String(), pm.VersionArgs()...)
	if err != nil {
		return 0, oerrors.NewProbeError(
			"could not determine the "+pm.String()+" version",
			err,
			"Make sure "+pm.String()+" is installed and on your PATH, or choose another package manager with --package-manager.",
		)
	}

	major, err := pkgmgr.ParseMajor(out)
	if err != nil {
		return 0, oerrors.NewProbeError(
			"could not parse the "+pm.String()+" version",
			err,
			"Run `"+runner.String(pm.String(), pm.VersionArgs()...)+"` and check its output.",
		)
	}
	return major, nil
}
