package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kickstartjs/kickstart/internal/config"
	oerrors "github.com/kickstartjs/kickstart/internal/errors"
	"github.com/kickstartjs/kickstart/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the kickstart configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is valid YAML with only known keys
  3. Values are valid (package manager, registry, template, email)

The config path is resolved using precedence:
  --config flag > KICKSTART_CONFIG env > ~/.kickstart/config.yaml

Examples:
  # Validate default configuration
  kickstart config vet

  # Validate custom config path
  kickstart config vet --config /path/to/config.yaml`,
		Args: cobra.NoArgs,
		RunE: runConfigVet,
	}

	return cmd
}

func runConfigVet(cmd *cobra.Command, args []string) error {
	pathResult, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: configFlag,
	})
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
	}

	configFile, err := config.ExpandPath(pathResult.ConfigPath)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
	}

	output.Debug("validating config",
		"path", configFile,
		"source", pathResult.Source,
	)

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return &oerrors.DetailError{
			Type:     "not found",
			Message:  "configuration file not found",
			Location: configFile,
			Hint:     "Run 'kickstart config init' to create default configuration",
			Cause:    oerrors.ErrNotFound,
		}
	}

	if err := config.ValidateFile(configFile); err != nil {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  err.Error(),
			Location: configFile,
			Hint:     "Compare with the file written by 'kickstart config init'.",
			Cause:    oerrors.ErrValidation,
		}
	}

	output.Println(output.FormatCheckmark("Configuration is valid: " + output.StyleNoun.Render(configFile)))
	return nil
}
