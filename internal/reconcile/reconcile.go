// Package reconcile brings a freshly generated project to a consistent,
// installable state.
//
// The engine applies a fixed sequence of idempotent steps: hooks removal,
// .npmrc relocation to the workspace root, git initialization, and dependency
// installation. No step aborts the run; failures are logged as warnings and
// recorded in the returned Report.
package reconcile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/kickstartjs/kickstart/internal/output"
	"github.com/kickstartjs/kickstart/internal/params"
	"github.com/kickstartjs/kickstart/internal/runner"
)

const (
	// HooksDir is the git-hooks tooling directory removed when hooks are not retained.
	HooksDir = ".husky"

	// ConfigFile is the package manager config file relocated inside workspaces.
	ConfigFile = ".npmrc"

	// GitDir marks an initialized repository.
	GitDir = ".git"
)

// Step names, in execution order.
const (
	StepHooks   = "hooks"
	StepConfig  = "npmrc"
	StepGit     = "git init"
	StepInstall = "install"
)

// Config relocation outcomes reported in StepResult.Detail.
const (
	DetailConfigMoved = "moved " + ConfigFile + " to workspace root"
	DetailConfigKept  = "kept existing workspace " + ConfigFile
)

// Status is the outcome of a single step.
type Status string

const (
	StatusApplied Status = output.StatusApplied
	StatusSkipped Status = output.StatusSkipped
	StatusWarned  Status = output.StatusWarned
)

// StepResult records what a step did.
type StepResult struct {
	Name   string
	Status Status

	// Detail is a short human-readable note, e.g. why a step was skipped.
	Detail string

	// Err is set when Status is StatusWarned.
	Err error
}

// Report collects step results in execution order.
type Report struct {
	Steps []StepResult
}

// Warnings returns the steps that degraded to a warning.
func (r *Report) Warnings() []StepResult {
	var warned []StepResult
	for _, s := range r.Steps {
		if s.Status == StatusWarned {
			warned = append(warned, s)
		}
	}
	return warned
}

// Step returns the result for name.
func (r *Report) Step(name string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepResult{}, false
}

func (r *Report) add(s StepResult) {
	r.Steps = append(r.Steps, s)
}

// Engine runs the reconciliation steps.
type Engine struct {
	fs     afero.Fs
	runner runner.Runner
	log    *log.Logger
}

// NewEngine creates an engine. A nil logger uses the global logger.
func NewEngine(fsys afero.Fs, r runner.Runner, logger *log.Logger) *Engine {
	if logger == nil {
		logger = output.Logger()
	}
	return &Engine{fs: fsys, runner: r, log: logger}
}

// Reconcile applies every step to the project described by p and pc.
// It never returns an error; inspect Report.Warnings instead.
func (e *Engine) Reconcile(ctx context.Context, p params.GenerationParameters, pc params.ProjectContext) *Report {
	report := &Report{}
	report.add(e.RemoveHooks(p, pc))
	report.add(e.RelocateConfig(pc))
	report.add(e.InitGit(ctx, p, pc))
	report.add(e.Install(ctx, p, pc))

	for _, s := range report.Steps {
		e.log.Debug(output.FormatStepLine(s.Name, string(s.Status)), "detail", s.Detail)
	}
	return report
}

// RemoveHooks deletes the hooks directory when hooks are not retained.
func (e *Engine) RemoveHooks(p params.GenerationParameters, pc params.ProjectContext) StepResult {
	if p.HooksRetained {
		return skipped(StepHooks, "hooks retained")
	}

	dir := filepath.Join(pc.Target, HooksDir)
	exists, err := afero.DirExists(e.fs, dir)
	if err != nil {
		return e.warn(StepHooks, fmt.Errorf("checking %s: %w", dir, err))
	}
	if !exists {
		return skipped(StepHooks, "no hooks directory")
	}

	if err := e.fs.RemoveAll(dir); err != nil {
		return e.warn(StepHooks, fmt.Errorf("removing %s: %w", dir, err))
	}
	e.log.Debug("removed hooks directory", "path", dir)
	return applied(StepHooks, "removed "+HooksDir)
}

// RelocateConfig moves the project's .npmrc to the workspace root. An
// existing root config is never overwritten; the local copy is always removed.
func (e *Engine) RelocateConfig(pc params.ProjectContext) StepResult {
	if !pc.InWorkspace || pc.Root == pc.Target {
		return skipped(StepConfig, "not in a workspace")
	}

	local := filepath.Join(pc.Target, ConfigFile)
	hasLocal, err := afero.Exists(e.fs, local)
	if err != nil {
		return e.warn(StepConfig, fmt.Errorf("checking %s: %w", local, err))
	}
	if !hasLocal {
		return skipped(StepConfig, "no local "+ConfigFile)
	}

	rootConfig := filepath.Join(pc.Root, ConfigFile)
	hasRoot, err := afero.Exists(e.fs, rootConfig)
	if err != nil {
		return e.warn(StepConfig, fmt.Errorf("checking %s: %w", rootConfig, err))
	}

	detail := DetailConfigKept
	if !hasRoot {
		if err := copyFile(e.fs, local, rootConfig); err != nil {
			return e.warn(StepConfig, fmt.Errorf("copying %s to workspace root: %w", ConfigFile, err))
		}
		detail = DetailConfigMoved
	}

	if err := e.fs.Remove(local); err != nil {
		return e.warn(StepConfig, fmt.Errorf("removing %s: %w", local, err))
	}
	e.log.Debug(detail, "root", pc.Root)
	return applied(StepConfig, detail)
}

// InitGit runs `git init` at the project root unless a repository exists.
func (e *Engine) InitGit(ctx context.Context, p params.GenerationParameters, pc params.ProjectContext) StepResult {
	if !p.GitInit {
		return skipped(StepGit, "disabled")
	}

	gitDir := filepath.Join(pc.Root, GitDir)
	exists, err := afero.Exists(e.fs, gitDir)
	if err != nil {
		return e.warn(StepGit, fmt.Errorf("checking %s: %w", gitDir, err))
	}
	if exists {
		return skipped(StepGit, "repository already initialized")
	}

	if _, err := e.runner.Output(ctx, pc.Root, "git", "init"); err != nil {
		return e.warn(StepGit, fmt.Errorf("initializing git repository: %w", err))
	}
	e.log.Info("initialized git repository", "path", output.StyleNoun.Render(pc.Root))
	return applied(StepGit, "initialized "+pc.Root)
}

// Install installs dependencies with the selected package manager. Package
// managers that resolve the lowest direct versions run an upgrade to latest.
func (e *Engine) Install(ctx context.Context, p params.GenerationParameters, pc params.ProjectContext) StepResult {
	lowestDirect := p.PackageManager.InstallsLowestDirect(p.PackageManagerMajor)

	if !p.Install {
		e.log.Info("skipping dependency installation")
		if lowestDirect {
			e.log.Warn(fmt.Sprintf("%s %d installs the lowest matching versions of direct dependencies; run %s to upgrade them",
				p.PackageManager, p.PackageManagerMajor,
				output.StyleAction.Render(runner.String(p.PackageManager.String(), p.PackageManager.UpgradeLatestArgs()...))))
		}
		return skipped(StepInstall, "disabled")
	}

	args := p.PackageManager.InstallArgs()
	if lowestDirect {
		args = p.PackageManager.UpgradeLatestArgs()
	}
	cmdline := runner.String(p.PackageManager.String(), args...)

	e.log.Info("installing dependencies", "command", output.StyleAction.Render(cmdline))
	if err := e.runner.Run(ctx, pc.Target, p.PackageManager.String(), args...); err != nil {
		return e.warn(StepInstall, fmt.Errorf("%w\n💡 Run '%s' in %s to retry", err, cmdline, pc.Target))
	}
	return applied(StepInstall, cmdline)
}

func (e *Engine) warn(step string, err error) StepResult {
	e.log.Warn(fmt.Sprintf("%s: %v", step, err))
	return StepResult{Name: step, Status: StatusWarned, Err: err}
}

func applied(step, detail string) StepResult {
	return StepResult{Name: step, Status: StatusApplied, Detail: detail}
}

func skipped(step, detail string) StepResult {
	return StepResult{Name: step, Status: StatusSkipped, Detail: detail}
}

func copyFile(fsys afero.Fs, src, dst string) error {
	data, err := afero.ReadFile(fsys, src)
	if err != nil {
		return err
	}
	mode := os.FileMode(0o644)
	if info, err := fsys.Stat(src); err == nil {
		mode = info.Mode().Perm()
	}
	return afero.WriteFile(fsys, dst, data, mode)
}
