// Package scaffold sequences project creation: probe the environment, resolve
// parameters, generate the project, and reconcile it.
package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	oerrors "github.com/kickstartjs/kickstart/internal/errors"
	"github.com/kickstartjs/kickstart/internal/output"
	"github.com/kickstartjs/kickstart/internal/params"
	"github.com/kickstartjs/kickstart/internal/probe"
	"github.com/kickstartjs/kickstart/internal/reconcile"
	"github.com/kickstartjs/kickstart/internal/runner"
	"github.com/kickstartjs/kickstart/internal/templates"
	"github.com/kickstartjs/kickstart/internal/unpack"
)

// Renderer renders a bundled template.
type Renderer interface {
	Render(req templates.RenderRequest) (*templates.RenderResult, error)
}

// Unpacker materializes an external template into dest.
type Unpacker interface {
	Unpack(ctx context.Context, ref, dest, registry string) ([]string, error)
}

// Options configures a Scaffolder. Nil fields get production defaults.
type Options struct {
	FS       afero.Fs
	Runner   runner.Runner
	Renderer Renderer
	Unpacker Unpacker
	Logger   *log.Logger
}

// Scaffolder creates projects.
type Scaffolder struct {
	fs       afero.Fs
	runner   runner.Runner
	renderer Renderer
	unpacker Unpacker
	log      *log.Logger
}

// New creates a Scaffolder.
func New(opts Options) *Scaffolder {
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	if opts.Runner == nil {
		opts.Runner = runner.New(nil)
	}
	if opts.Renderer == nil {
		opts.Renderer = templates.NewRenderer(opts.FS)
	}
	if opts.Unpacker == nil {
		opts.Unpacker = unpack.NewNpmUnpacker(opts.FS, opts.Runner)
	}
	if opts.Logger == nil {
		opts.Logger = output.Logger()
	}

	return &Scaffolder{
		fs:       opts.FS,
		runner:   opts.Runner,
		renderer: opts.Renderer,
		unpacker: opts.Unpacker,
		log:      opts.Logger,
	}
}

// Result describes a created project.
type Result struct {
	Params  params.GenerationParameters
	Context params.ProjectContext

	// Files lists the generated files relative to the target directory,
	// before reconciliation.
	Files []string

	// Template is set for bundled templates.
	Template *templates.Template

	Report *reconcile.Report
}

// Run creates the project described by raw. Only the package manager version
// probe and generation can fail the run; reconciliation problems are reported
// in Result.Report.
func (s *Scaffolder) Run(ctx context.Context, raw params.RawChoices) (*Result, error) {
	if strings.TrimSpace(raw.Target) != "" {
		abs, err := filepath.Abs(raw.Target)
		if err != nil {
			return nil, fmt.Errorf("resolving target directory: %w", err)
		}
		raw.Target = abs
	}

	probes, err := s.probe(ctx, raw)
	if err != nil {
		return nil, err
	}

	p, err := params.Resolve(raw, probes)
	if err != nil {
		return nil, err
	}
	s.log.Debug("resolved parameters",
		"source", p.Source,
		"packageManager", fmt.Sprintf("%s@%d", p.PackageManager, p.PackageManagerMajor),
		"registry", p.Registry,
		"git", p.GitInit,
		"hooks", p.HooksRetained,
		"install", p.Install,
	)

	result := &Result{Params: p}
	if err := s.generate(ctx, p, result); err != nil {
		return nil, err
	}

	result.Context = params.NewProjectContext(p.Target, probes.WorkspaceRoot, probes.InWorkspace)
	if result.Context.InWorkspace {
		s.log.Info("detected workspace", "root", output.StyleNoun.Render(result.Context.Root))
	}

	engine := reconcile.NewEngine(s.fs, s.runner, s.log)
	result.Report = engine.Reconcile(ctx, p, result.Context)
	return result, nil
}

// probe collects the environment facts parameter resolution depends on.
// The workspace is probed once here and reused for the project context.
func (s *Scaffolder) probe(ctx context.Context, raw params.RawChoices) (params.ProbeResults, error) {
	var probes params.ProbeResults

	pm, err := params.SelectPackageManager(raw)
	if err != nil {
		return probes, err
	}

	if raw.Target != "" {
		probes.WorkspaceRoot, probes.InWorkspace = probe.WorkspaceRoot(s.fs, raw.Target)
	}

	probes.PackageManagerMajor, err = probe.PackageManagerMajorVersion(ctx, s.runner, pm)
	if err != nil {
		return probes, err
	}
	s.log.Debug("detected package manager", "name", pm, "major", probes.PackageManagerMajor)

	probes.CustomRegistry, probes.HasCustom = probe.CustomRegistry(ctx, s.runner, pm)
	probes.Identity = probe.GitIdentity(ctx, s.runner)
	return probes, nil
}

// generate dispatches once on the template source.
func (s *Scaffolder) generate(ctx context.Context, p params.GenerationParameters, result *Result) error {
	switch src := p.Source.(type) {
	case params.InternalSource:
		rendered, err := s.renderer.Render(templates.RenderRequest{
			TemplateID: src.TemplateID,
			TargetDir:  p.Target,
			Force:      p.Force,
			Data: templates.TemplateData{
				ProjectName:    p.ProjectName,
				Version:        templates.DefaultVersion,
				Author:         p.Author,
				Email:          p.Email,
				PackageManager: p.PackageManager.String(),
				Registry:       p.Registry,
				NpmrcExtra:     p.NpmrcExtra,
				PluginName:     p.PluginName,
				Hooks:          p.HooksRetained,
			},
		})
		if err != nil {
			return oerrors.NewGenerationError("rendering template "+src.TemplateID, p.Target, err)
		}
		result.Files = rendered.Files
		result.Template = &rendered.Template
		return nil

	case params.ExternalSource:
		if err := checkTargetDir(s.fs, p.Target, p.Force); err != nil {
			return oerrors.NewGenerationError("unpacking template "+src.Ref, p.Target, err)
		}
		files, err := s.unpacker.Unpack(ctx, src.Ref, p.Target, p.Registry)
		if err != nil {
			return oerrors.NewGenerationError("unpacking template "+src.Ref, p.Target, err)
		}
		result.Files = files
		return nil

	default:
		return fmt.Errorf("unsupported template source %T", p.Source)
	}
}

// checkTargetDir refuses a non-empty target unless force is set.
func checkTargetDir(fsys afero.Fs, dir string, force bool) error {
	entries, err := afero.ReadDir(fsys, dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading target directory: %w", err)
	}
	if len(entries) > 0 && !force {
		return fmt.Errorf("directory %s is not empty; use --force to overwrite existing files", dir)
	}
	return nil
}
