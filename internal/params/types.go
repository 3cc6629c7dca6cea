// Package params turns raw user choices and probe results into the immutable
// parameters that drive project generation and reconciliation.
package params

import (
	"github.com/kickstartjs/kickstart/internal/pkgmgr"
	"github.com/kickstartjs/kickstart/internal/probe"
)

// RawChoices are the user's answers as collected by flags or prompts.
// Empty strings mean "not chosen".
type RawChoices struct {
	// Target is the directory to create the project in.
	Target string

	// ProjectName overrides the package name (defaults to the target's base name).
	ProjectName string

	// Template is an internal template identifier.
	Template string

	// From is an external template package reference; when set it wins over Template.
	From string

	// PackageManager is one of pkgmgr.Names().
	PackageManager string

	// Registry is "default", "mirror", "custom", or an explicit URL.
	Registry string

	// PluginName is required by plugin templates.
	PluginName string

	Author string
	Email  string

	// UseDefaults ignores interactive-style answers and takes Defaults instead.
	UseDefaults bool
	SkipGit     bool
	SkipInstall bool

	// Force allows rendering into a non-empty directory.
	Force bool

	// Defaults is the caller-supplied default bundle (config file values).
	Defaults Defaults
}

// Defaults holds fallback values for unanswered choices.
type Defaults struct {
	Template       string
	PackageManager string
	Registry       string
	Author         string
	Email          string
}

// Registry selections accepted in RawChoices.Registry.
const (
	RegistryChoiceDefault = "default"
	RegistryChoiceMirror  = "mirror"
	RegistryChoiceCustom  = "custom"
)

// ProbeResults are the environment facts Resolve depends on.
type ProbeResults struct {
	// WorkspaceRoot is set when the target sits inside a workspace.
	WorkspaceRoot string
	InWorkspace   bool

	// PackageManagerMajor is the major version of the selected package manager.
	PackageManagerMajor int

	// CustomRegistry is the detected non-standard registry, if any.
	CustomRegistry string
	HasCustom      bool

	// Identity is the git author identity used when none was chosen.
	Identity probe.Identity
}

// GenerationParameters is fully resolved: every field has a concrete value.
type GenerationParameters struct {
	Source      Source
	Target      string
	ProjectName string

	PackageManager      pkgmgr.Name
	PackageManagerMajor int

	Registry     string
	RegistryKind probe.RegistryKind

	Author string
	Email  string

	GitInit       bool
	HooksRetained bool
	Install       bool

	// NpmrcExtra is an additional .npmrc line, empty when none is needed.
	NpmrcExtra string

	PluginName string
	Force      bool
}
