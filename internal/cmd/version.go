package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kickstartjs/kickstart/internal/output"
	"github.com/kickstartjs/kickstart/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show kickstart version information.

Displays the kickstart version, commit, build date, and Go version.`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	output.Println(version.Get().String())
	return nil
}
