package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kickstartjs/kickstart/internal/config"
	"github.com/kickstartjs/kickstart/internal/output"
	"github.com/kickstartjs/kickstart/internal/params"
	"github.com/kickstartjs/kickstart/internal/pkgmgr"
	"github.com/kickstartjs/kickstart/internal/reconcile"
	"github.com/kickstartjs/kickstart/internal/scaffold"
	"github.com/kickstartjs/kickstart/internal/templates"
)

// newScaffolder builds the production scaffolder. Replaced in tests.
var newScaffolder = func(project string) *scaffold.Scaffolder {
	return scaffold.New(scaffold.Options{Logger: output.ProjectLogger(project)})
}

// newOptions holds the flags of `kickstart new`.
type newOptions struct {
	template       string
	from           string
	name           string
	packageManager string
	registry       string
	pluginName     string
	author         string
	email          string
	yes            bool
	skipGit        bool
	skipInstall    bool
	force          bool
}

// NewNewCmd creates the new command.
func NewNewCmd() *cobra.Command {
	opts := &newOptions{}

	cmd := &cobra.Command{
		Use:   "new <dir>",
		Short: "Create a new project",
		Long: fmt.Sprintf(`Create a new JavaScript or TypeScript project.

The project is rendered from a bundled template, or unpacked from a template
published to a registry with --from. Afterwards kickstart:
  - removes git hooks tooling when git is skipped or inside a workspace
  - moves .npmrc to the workspace root inside pnpm workspaces
  - runs git init unless a repository already exists
  - installs dependencies with the selected package manager

Templates:
%s
Examples:
  # Create an app with pnpm and the public registry
  kickstart new my-app

  # Create a library with npm, skipping install
  kickstart new my-lib --template library -p npm --skip-install

  # Create a Vite plugin
  kickstart new vite-plugin-svg-icons -t plugin --plugin-name svg-icons

  # Use a template published to the registry your package manager uses
  kickstart new my-site --from @acme/template-site --registry custom

  # Take every default from the config file
  kickstart new my-app --yes`, templateHelp()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "",
		fmt.Sprintf("Bundled template to use (%s)", strings.Join(templates.Names(), ", ")))
	cmd.Flags().StringVar(&opts.from, "from", "",
		"Template package to fetch from the registry instead of a bundled template")
	cmd.Flags().StringVar(&opts.name, "name", "",
		"Package name (defaults to the directory name)")
	cmd.Flags().StringVarP(&opts.packageManager, "package-manager", "p", "",
		fmt.Sprintf("Package manager (%s) (env: KICKSTART_PACKAGE_MANAGER)", strings.Join(pkgmgr.Names(), ", ")))
	cmd.Flags().StringVar(&opts.registry, "registry", "",
		"Registry: default, mirror, custom, or a URL (env: KICKSTART_REGISTRY)")
	cmd.Flags().StringVar(&opts.pluginName, "plugin-name", "",
		"Plugin name for the plugin template, e.g. svg-icons")
	cmd.Flags().StringVar(&opts.author, "author", "",
		"package.json author (defaults to git user.name)")
	cmd.Flags().StringVar(&opts.email, "email", "",
		"package.json author email (defaults to git user.email)")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false,
		"Use configured defaults for package manager, registry, author, and email")
	cmd.Flags().BoolVar(&opts.skipGit, "skip-git", false,
		"Do not initialize a git repository")
	cmd.Flags().BoolVar(&opts.skipInstall, "skip-install", false,
		"Do not install dependencies")
	cmd.Flags().BoolVar(&opts.force, "force", false,
		"Generate into a non-empty directory")

	return cmd
}

func runNew(cmd *cobra.Command, dir string, opts *newOptions) error {
	raw, resolved := buildRawChoices(dir, opts, GetConfig())
	config.LogResolvedValues(resolved)

	project := opts.name
	if project == "" {
		project = filepath.Base(dir)
	}

	result, err := newScaffolder(project).Run(cmd.Context(), raw)
	if err != nil {
		code := ExitCodeFromError(err)
		if code == ExitProbeFailed || code == ExitGenerationFailed {
			output.Error("project not created", "target", dir, "error", err)
			return &ExitError{Err: err, Code: code, Printed: true}
		}
		return NewExitError(err, code)
	}

	output.Print(formatSummary(dir, result))
	return nil
}

// buildRawChoices maps flags to raw choices. Flags are answers; environment,
// config file, and built-in values form the default bundle.
func buildRawChoices(dir string, opts *newOptions, cfg *config.Config) (params.RawChoices, []config.ResolvedValue) {
	def := config.DefaultConfig()

	resolved := []config.ResolvedValue{
		config.Resolve(config.ResolveOptions{
			Key: "template", EnvVar: config.EnvTemplate, ConfigValue: cfg.Template, DefaultValue: def.Template,
		}),
		config.Resolve(config.ResolveOptions{
			Key: "packageManager", EnvVar: config.EnvPackageManager, ConfigValue: cfg.PackageManager, DefaultValue: def.PackageManager,
		}),
		config.Resolve(config.ResolveOptions{
			Key: "registry", EnvVar: config.EnvRegistry, ConfigValue: cfg.Registry, DefaultValue: def.Registry,
		}),
		config.Resolve(config.ResolveOptions{
			Key: "author", EnvVar: config.EnvAuthor, ConfigValue: cfg.Author,
		}),
		config.Resolve(config.ResolveOptions{
			Key: "email", EnvVar: config.EnvEmail, ConfigValue: cfg.Email,
		}),
	}

	raw := params.RawChoices{
		Target:         dir,
		ProjectName:    opts.name,
		Template:       opts.template,
		From:           opts.from,
		PackageManager: opts.packageManager,
		Registry:       opts.registry,
		PluginName:     opts.pluginName,
		Author:         opts.author,
		Email:          opts.email,
		UseDefaults:    opts.yes,
		SkipGit:        opts.skipGit || cfg.SkipGit,
		SkipInstall:    opts.skipInstall || cfg.SkipInstall,
		Force:          opts.force,
		Defaults: params.Defaults{
			Template:       resolved[0].Value,
			PackageManager: resolved[1].Value,
			Registry:       resolved[2].Value,
			Author:         resolved[3].Value,
			Email:          resolved[4].Value,
		},
	}
	return raw, resolved
}

// formatSummary renders the created file tree, step outcomes, and next steps.
func formatSummary(dir string, result *scaffold.Result) string {
	var sb strings.Builder
	p := result.Params

	sb.WriteString(output.FormatCheckmark(fmt.Sprintf("Created %s in %s",
		output.StyleNoun.Render(p.ProjectName), output.StyleNoun.Render(p.Target))))
	sb.WriteString("\n\n")

	if tree := output.RenderFileTree(filepath.Base(p.Target), summaryFiles(result)); tree != "" {
		sb.WriteString(tree)
		sb.WriteString("\n")
	}

	installed := false
	if result.Report != nil {
		for _, step := range result.Report.Steps {
			sb.WriteString(output.FormatStepLine(step.Name, string(step.Status)))
			if step.Detail != "" {
				sb.WriteString("  " + output.StyleDim.Render(step.Detail))
			}
			sb.WriteString("\n")
			if step.Name == reconcile.StepInstall && step.Status == reconcile.StatusApplied {
				installed = true
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(output.StyleSummary.Render("Next steps:"))
	sb.WriteString("\n")
	sb.WriteString(output.FormatCommand("cd " + dir))
	sb.WriteString("\n")
	if !installed {
		args := p.PackageManager.InstallArgs()
		if p.PackageManager.InstallsLowestDirect(p.PackageManagerMajor) {
			args = p.PackageManager.UpgradeLatestArgs()
		}
		sb.WriteString(output.FormatCommand(p.PackageManager.String() + " " + strings.Join(args, " ")))
		sb.WriteString("\n")
	}
	if _, ok := p.Source.(params.InternalSource); ok {
		sb.WriteString(output.FormatCommand(p.PackageManager.RunScript("dev")))
		sb.WriteString("\n")
	}

	return sb.String()
}

// summaryFiles maps generated files to tree entries, marking the ones
// reconciliation removed or moved to the workspace root.
func summaryFiles(result *scaffold.Result) map[string]output.FileEntry {
	var hooks, npmrc reconcile.StepResult
	if result.Report != nil {
		hooks, _ = result.Report.Step(reconcile.StepHooks)
		npmrc, _ = result.Report.Step(reconcile.StepConfig)
	}

	files := make(map[string]output.FileEntry, len(result.Files))
	for _, f := range result.Files {
		entry := output.FileEntry{}
		if result.Template != nil {
			entry.Description = result.Template.Files[f]
		}

		switch {
		case hooks.Status == reconcile.StatusApplied && strings.HasPrefix(f, reconcile.HooksDir+"/"):
			entry.State = output.FileRemoved
			entry.Note = "removed, git hooks not kept"
		case npmrc.Status == reconcile.StatusApplied && f == reconcile.ConfigFile:
			if npmrc.Detail == reconcile.DetailConfigMoved {
				entry.State = output.FileMoved
				entry.Note = "moved to " + result.Context.Root
			} else {
				entry.State = output.FileRemoved
				entry.Note = "removed, workspace root has one"
			}
		}
		files[f] = entry
	}
	return files
}

// templateHelp lists bundled templates for help text.
func templateHelp() string {
	var sb strings.Builder
	for _, t := range templates.List() {
		suffix := ""
		if t.Default {
			suffix = " (default)"
		}
		fmt.Fprintf(&sb, "  %-9s %s%s\n", t.Name, t.Description, suffix)
	}
	return sb.String()
}
