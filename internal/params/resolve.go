package params

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	oerrors "github.com/kickstartjs/kickstart/internal/errors"
	"github.com/kickstartjs/kickstart/internal/pkgmgr"
	"github.com/kickstartjs/kickstart/internal/probe"
	"github.com/kickstartjs/kickstart/internal/templates"
)

// Resolve combines raw choices with probe results. It never prompts and never
// touches the environment; probes must already have run.
func Resolve(raw RawChoices, probes ProbeResults) (GenerationParameters, error) {
	return NewBuilder(raw).
		Source().
		Target().
		PackageManager(probes.PackageManagerMajor).
		Registry(probes).
		Author(probes.Identity).
		Git(probes.InWorkspace).
		Build()
}

// SelectSource decides between an internal and an external template.
func SelectSource(raw RawChoices) Source {
	if ref := strings.TrimSpace(raw.From); ref != "" {
		return ExternalSource{Ref: ref}
	}
	id := firstNonEmpty(strings.TrimSpace(raw.Template), raw.Defaults.Template, templates.DefaultTemplateName)
	return InternalSource{TemplateID: id}
}

// SelectPackageManager returns the package manager the run will use, so its
// version can be probed before Resolve.
func SelectPackageManager(raw RawChoices) (pkgmgr.Name, error) {
	pm, err := pkgmgr.Parse(firstNonEmpty(choice(raw, raw.PackageManager), raw.Defaults.PackageManager))
	if err != nil {
		return "", oerrors.NewValidationError(err.Error(), "package-manager",
			"Valid package managers: "+strings.Join(pkgmgr.Names(), ", "))
	}
	return pm, nil
}

// Builder stages choices into GenerationParameters. The first error sticks and
// is returned by Build.
type Builder struct {
	raw    RawChoices
	params GenerationParameters
	err    error
}

// NewBuilder starts a builder from raw choices.
func NewBuilder(raw RawChoices) *Builder {
	return &Builder{
		raw: raw,
		params: GenerationParameters{
			PluginName: strings.TrimSpace(raw.PluginName),
			Force:      raw.Force,
			Install:    !raw.SkipInstall,
		},
	}
}

// Source stages the template source.
func (b *Builder) Source() *Builder {
	if b.err != nil {
		return b
	}
	src := SelectSource(b.raw)
	if internal, ok := src.(InternalSource); ok {
		tmpl, err := templates.Get(internal.TemplateID)
		if err != nil {
			b.err = oerrors.NewValidationError(err.Error(), "template",
				"Run `kickstart templates` to list the available templates.")
			return b
		}
		if tmpl.RequiresPlugin {
			if err := templates.ValidatePluginName(b.params.PluginName); err != nil {
				b.err = oerrors.NewValidationError(err.Error(), "plugin-name",
					"The "+tmpl.Name+" template needs --plugin-name, e.g. --plugin-name svg-icons.")
				return b
			}
		}
	}
	b.params.Source = src
	return b
}

// Target stages the absolute target directory and the project name.
func (b *Builder) Target() *Builder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(b.raw.Target) == "" {
		b.err = oerrors.NewValidationError("target directory is required", "dir", "Pass the directory to create, e.g. `kickstart new my-app`.")
		return b
	}

	abs, err := filepath.Abs(b.raw.Target)
	if err != nil {
		b.err = fmt.Errorf("resolving target directory: %w", err)
		return b
	}
	b.params.Target = abs

	name := firstNonEmpty(strings.TrimSpace(b.raw.ProjectName), filepath.Base(abs))
	if err := templates.ValidatePackageName(name); err != nil {
		b.err = oerrors.NewValidationError(err.Error(), "name", "Use lowercase letters, digits, '-', '.', '_' or a @scope/name form.")
		return b
	}
	b.params.ProjectName = name
	return b
}

// PackageManager stages the package manager, its major version, and any
// version-specific .npmrc line.
func (b *Builder) PackageManager(major int) *Builder {
	if b.err != nil {
		return b
	}
	pm, err := SelectPackageManager(b.raw)
	if err != nil {
		b.err = err
		return b
	}
	b.params.PackageManager = pm
	b.params.PackageManagerMajor = major
	if pm.NeedsStrictPeerConfig(major) {
		b.params.NpmrcExtra = pkgmgr.StrictPeerConfig
	}
	return b
}

// Registry stages the registry URL.
func (b *Builder) Registry(probes ProbeResults) *Builder {
	if b.err != nil {
		return b
	}

	selection := strings.TrimSpace(firstNonEmpty(choice(b.raw, b.raw.Registry), b.raw.Defaults.Registry, RegistryChoiceDefault))
	switch strings.ToLower(selection) {
	case RegistryChoiceDefault:
		b.params.Registry, b.params.RegistryKind = probe.DefaultRegistry, probe.RegistryDefault
	case RegistryChoiceMirror:
		b.params.Registry, b.params.RegistryKind = probe.MirrorRegistry, probe.RegistryMirror
	case RegistryChoiceCustom:
		if probes.HasCustom && probes.CustomRegistry != "" {
			b.params.Registry, b.params.RegistryKind = probes.CustomRegistry, probe.RegistryCustom
		} else {
			b.params.Registry, b.params.RegistryKind = probe.DefaultRegistry, probe.RegistryDefault
		}
	default:
		if err := validateRegistryURL(selection); err != nil {
			b.err = oerrors.NewValidationError(err.Error(), "registry",
				"Use default, mirror, custom, or an http(s) registry URL.")
			return b
		}
		b.params.Registry, b.params.RegistryKind = selection, probe.Classify(selection)
	}
	return b
}

// Author stages author and email, falling back to the git identity.
func (b *Builder) Author(id probe.Identity) *Builder {
	if b.err != nil {
		return b
	}
	b.params.Author = firstNonEmpty(choice(b.raw, b.raw.Author), b.raw.Defaults.Author, id.Name)
	b.params.Email = firstNonEmpty(choice(b.raw, b.raw.Email), b.raw.Defaults.Email, id.Email)
	return b
}

// Git stages git initialization and hooks retention. Hooks tooling is not
// supported inside a workspace.
func (b *Builder) Git(inWorkspace bool) *Builder {
	if b.err != nil {
		return b
	}
	b.params.GitInit = !b.raw.SkipGit
	b.params.HooksRetained = b.params.GitInit && !inWorkspace
	return b
}

// Build returns the staged parameters or the first staging error.
func (b *Builder) Build() (GenerationParameters, error) {
	if b.err != nil {
		return GenerationParameters{}, b.err
	}
	if b.params.Source == nil {
		return GenerationParameters{}, fmt.Errorf("template source was not resolved")
	}
	if b.params.PackageManager == "" {
		return GenerationParameters{}, fmt.Errorf("package manager was not resolved")
	}
	if b.params.Registry == "" {
		return GenerationParameters{}, fmt.Errorf("registry was not resolved")
	}
	return b.params, nil
}

// choice returns v unless UseDefaults discards user answers.
func choice(raw RawChoices, v string) string {
	if raw.UseDefaults {
		return ""
	}
	return strings.TrimSpace(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// validateRegistryURL checks syntax only; reachability is not probed.
func validateRegistryURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid registry URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid registry %q: expected default, mirror, custom, or an http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid registry URL %q: missing host", raw)
	}
	return nil
}
