package templates

// Template represents a project template with its metadata.
type Template struct {
	// Name is the template identifier (app, library, plugin).
	Name string `yaml:"name"`

	// Description explains the template's purpose.
	Description string `yaml:"description"`

	// UseCase describes when to use this template.
	UseCase string `yaml:"useCase"`

	// Default indicates the template used when none is chosen.
	Default bool `yaml:"default"`

	// RequiresPlugin indicates the template needs TemplateData.PluginName.
	RequiresPlugin bool `yaml:"requiresPlugin"`

	// Files maps rendered paths to short descriptions for display.
	Files map[string]string `yaml:"files"`
}

// TemplateData holds the data passed to template rendering.
type TemplateData struct {
	// ProjectName is the npm package name.
	ProjectName string

	// Version is the initial package version.
	Version string

	Author string
	Email  string

	// PackageManager is the package manager binary name.
	PackageManager string

	// Registry is the registry URL written to .npmrc.
	Registry string

	// NpmrcExtra is an extra .npmrc line; empty when not needed.
	NpmrcExtra string

	// PluginName is used by plugin templates.
	PluginName string

	// Hooks enables git-hooks tooling in the manifest.
	Hooks bool
}

// RenderRequest configures a render.
type RenderRequest struct {
	// TemplateID is the template to use.
	TemplateID string

	// TargetDir is the directory to generate the project in.
	TargetDir string

	// Force allows writing into a non-empty directory.
	Force bool

	Data TemplateData
}

// RenderResult contains the result of a render.
type RenderResult struct {
	// Files is the list of files created, relative to TargetDir.
	Files []string

	// Template is the template that was used.
	Template Template

	// TargetDir is the directory where files were created.
	TargetDir string
}

// DefaultVersion is the initial version written to package.json.
const DefaultVersion = "0.1.0"
