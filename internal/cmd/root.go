package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kickstartjs/kickstart/internal/config"
	"github.com/kickstartjs/kickstart/internal/output"
)

var (
	// Global flags
	configFlag     string
	verboseFlag    bool
	timestampsFlag bool

	// Loaded during PersistentPreRunE
	loadedConfig *config.Config
	configPath   config.ResolveConfigPathResult
)

// NewRootCmd creates the root command for the kickstart CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kickstart",
		Short: "Scaffold JavaScript and TypeScript projects",
		Long: `kickstart creates JavaScript and TypeScript projects from bundled or
published templates and leaves them ready to work in: git initialized,
dependencies installed, and package manager configuration placed correctly
inside pnpm workspaces.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: KICKSTART_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewNewCmd())
	rootCmd.AddCommand(NewTemplatesCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command) error {
	resolvedPath, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: configFlag,
	})
	if err != nil {
		output.Debug("could not resolve config path", "error", err)
	}
	configPath = resolvedPath

	cfg, err := config.NewLoader().Load(configPath.ConfigPath)
	if err != nil {
		// Commands that don't need config must still work; `config vet` reports the problem
		output.Debug("config load error", "error", err)
		cfg = &config.Config{}
	}
	loadedConfig = cfg

	// Build LogConfig with precedence: flag > config > default(true)
	logCfg := output.LogConfig{
		Verbose: verboseFlag,
	}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}

	output.SetupLogging(logCfg)

	output.Debug("initializing CLI",
		"config", configPath.ConfigPath,
		"source", configPath.Source,
	)

	return nil
}

// GetConfig returns the loaded configuration without defaults applied.
func GetConfig() *config.Config {
	if loadedConfig == nil {
		return &config.Config{}
	}
	return loadedConfig
}
