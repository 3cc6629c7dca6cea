package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for kickstart configuration.
const envPrefix = "KICKSTART"

// Environment variables bound to configuration keys.
const (
	EnvConfig         = "KICKSTART_CONFIG"
	EnvPackageManager = "KICKSTART_PACKAGE_MANAGER"
	EnvRegistry       = "KICKSTART_REGISTRY"
	EnvTemplate       = "KICKSTART_TEMPLATE"
	EnvAuthor         = "KICKSTART_AUTHOR"
	EnvEmail          = "KICKSTART_EMAIL"
	EnvSkipGit        = "KICKSTART_SKIP_GIT"
	EnvSkipInstall    = "KICKSTART_SKIP_INSTALL"
	EnvLogTimestamps  = "KICKSTART_LOG_TIMESTAMPS"
)

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	// Set up environment variable bindings
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// camelCase keys do not map onto SCREAMING_SNAKE names automatically
	_ = v.BindEnv("packageManager", EnvPackageManager)
	_ = v.BindEnv("registry", EnvRegistry)
	_ = v.BindEnv("template", EnvTemplate)
	_ = v.BindEnv("author", EnvAuthor)
	_ = v.BindEnv("email", EnvEmail)
	_ = v.BindEnv("skipGit", EnvSkipGit)
	_ = v.BindEnv("skipInstall", EnvSkipInstall)
	_ = v.BindEnv("log.timestamps", EnvLogTimestamps)

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// Environment variables take precedence over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	// Expand ~ in path
	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	// A missing config file is fine: defaults and env vars still apply
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration and applies defaults.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}

	return cfg.WithDefaults(), nil
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return false, err
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
