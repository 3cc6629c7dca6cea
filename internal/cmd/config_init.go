package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kickstartjs/kickstart/internal/config"
	oerrors "github.com/kickstartjs/kickstart/internal/errors"
	"github.com/kickstartjs/kickstart/internal/output"
)

var configInitForce bool

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the kickstart configuration.

Creates ~/.kickstart/config.yaml (or the file named by --config or
KICKSTART_CONFIG) with the built-in defaults:
  - package manager, registry, and template used by 'kickstart new'
  - author and email for package.json
  - git and install toggles

Examples:
  # Initialize configuration
  kickstart config init

  # Overwrite existing configuration
  kickstart config init --force`,
		Args: cobra.NoArgs,
		RunE: runConfigInit,
	}

	cmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: configFlag,
	})
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}

	configFile, err := config.ExpandPath(pathResult.ConfigPath)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}

	if _, err := os.Stat(configFile); err == nil && !configInitForce {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: configFile,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	// Create directories with secure permissions (0700)
	if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
		return &oerrors.DetailError{
			Type:     "config init failed",
			Message:  "could not create configuration directory",
			Location: filepath.Dir(configFile),
			Cause:    err,
		}
	}

	if err := os.WriteFile(configFile, []byte(config.DefaultConfigTemplate), 0o600); err != nil {
		return &oerrors.DetailError{
			Type:     "config init failed",
			Message:  "could not write configuration file",
			Location: configFile,
			Cause:    err,
		}
	}

	output.Println(output.FormatCheckmark("Configuration initialized at " + output.StyleNoun.Render(configFile)))
	output.Println("Validate with: kickstart config vet")

	return nil
}
