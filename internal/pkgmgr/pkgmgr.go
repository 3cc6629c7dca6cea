// Package pkgmgr describes the supported JavaScript package managers and the
// per-version behaviors kickstart must compensate for.
package pkgmgr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Name identifies a package manager.
type Name string

const (
	// NPM is the npm CLI bundled with Node.js.
	NPM Name = "npm"

	// PNPM is the default package manager.
	PNPM Name = "pnpm"

	// Yarn is Yarn classic or berry.
	Yarn Name = "yarn"
)

// Default is the package manager used when none is chosen.
const Default = PNPM

const (
	// StrictPeerMajor is the pnpm major version that fails installs on
	// unmet peer dependencies unless strict-peer-dependencies is disabled.
	StrictPeerMajor = 7

	// LowestDirectMajor is the pnpm major version whose default
	// resolution-mode installs the lowest matching direct dependency versions.
	LowestDirectMajor = 8
)

// StrictPeerConfig is the .npmrc line that silences strict peer dependency failures.
const StrictPeerConfig = "strict-peer-dependencies=false"

// All returns every supported package manager in display order.
func All() []Name {
	return []Name{PNPM, NPM, Yarn}
}

// Names returns every supported package manager as strings.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, n := range all {
		names[i] = string(n)
	}
	return names
}

// Parse converts a string to a Name. The empty string yields Default.
func Parse(s string) (Name, error) {
	switch Name(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return Default, nil
	case NPM:
		return NPM, nil
	case PNPM:
		return PNPM, nil
	case Yarn:
		return Yarn, nil
	default:
		return "", fmt.Errorf("unknown package manager %q; valid package managers: %s", s, strings.Join(Names(), ", "))
	}
}

// Valid reports whether n is a supported package manager.
func (n Name) Valid() bool {
	switch n {
	case NPM, PNPM, Yarn:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (n Name) String() string {
	return string(n)
}

// VersionArgs returns the arguments that print the package manager version.
func (n Name) VersionArgs() []string {
	return []string{"--version"}
}

// RegistryArgs returns the arguments that print the configured registry URL.
func (n Name) RegistryArgs() []string {
	return []string{"config", "get", "registry"}
}

// InstallArgs returns the arguments for a plain dependency install.
func (n Name) InstallArgs() []string {
	return []string{"install"}
}

// UpgradeLatestArgs returns the arguments that upgrade every dependency to
// its latest version.
func (n Name) UpgradeLatestArgs() []string {
	switch n {
	case NPM:
		return []string{"update"}
	case Yarn:
		return []string{"upgrade", "--latest"}
	default:
		return []string{"up", "--latest"}
	}
}

// RunScript returns the command line a user types to run a package.json script.
func (n Name) RunScript(script string) string {
	if n == NPM {
		return "npm run " + script
	}
	return string(n) + " " + script
}

// NeedsStrictPeerConfig reports whether the version refuses unmet peers by default.
func (n Name) NeedsStrictPeerConfig(major int) bool {
	return n == PNPM && major == StrictPeerMajor
}

// InstallsLowestDirect reports whether a plain install would pin the lowest
// matching versions of direct dependencies.
func (n Name) InstallsLowestDirect(major int) bool {
	return n == PNPM && major == LowestDirectMajor
}

// ParseMajor extracts the major version from `<pm> --version` output such as
// "8.15.4", "v1.22.19", or "4.0.0-rc.45".
func ParseMajor(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if line, _, ok := strings.Cut(raw, "\n"); ok {
		raw = strings.TrimSpace(line)
	}
	if raw == "" {
		return 0, fmt.Errorf("empty version output")
	}

	if v, err := semver.NewVersion(raw); err == nil {
		return int(v.Major()), nil
	}

	// Fall back to the leading dot-separated component for non-semver output.
	head, _, _ := strings.Cut(strings.TrimPrefix(raw, "v"), ".")
	major, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", raw, err)
	}
	return major, nil
}
