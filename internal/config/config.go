// Package config provides configuration loading and management.
package config

import (
	"github.com/kickstartjs/kickstart/internal/pkgmgr"
	"github.com/kickstartjs/kickstart/internal/templates"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config represents the kickstart configuration.
// Loaded from ~/.kickstart/config.yaml; every field is a default for `kickstart new`.
type Config struct {
	// PackageManager is the default package manager (pnpm, npm, yarn).
	// Env: KICKSTART_PACKAGE_MANAGER
	PackageManager string `mapstructure:"packageManager" yaml:"packageManager,omitempty"`

	// Registry is default, mirror, custom, or a registry URL.
	// Env: KICKSTART_REGISTRY
	Registry string `mapstructure:"registry" yaml:"registry,omitempty"`

	// Template is the default bundled template.
	// Env: KICKSTART_TEMPLATE
	Template string `mapstructure:"template" yaml:"template,omitempty"`

	// Author and Email default the package.json author field.
	// Env: KICKSTART_AUTHOR, KICKSTART_EMAIL
	Author string `mapstructure:"author" yaml:"author,omitempty"`
	Email  string `mapstructure:"email" yaml:"email,omitempty"`

	// SkipGit and SkipInstall turn the corresponding steps off by default.
	SkipGit     bool `mapstructure:"skipGit" yaml:"skipGit,omitempty"`
	SkipInstall bool `mapstructure:"skipInstall" yaml:"skipInstall,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty"`
}

// Built-in defaults.
const (
	DefaultRegistry = "default"
)

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *Config {
	return &Config{
		PackageManager: pkgmgr.Default.String(),
		Registry:       DefaultRegistry,
		Template:       templates.DefaultTemplateName,
	}
}

// WithDefaults returns a copy with unset values filled from DefaultConfig.
func (c *Config) WithDefaults() *Config {
	out := *c
	def := DefaultConfig()
	if out.PackageManager == "" {
		out.PackageManager = def.PackageManager
	}
	if out.Registry == "" {
		out.Registry = def.Registry
	}
	if out.Template == "" {
		out.Template = def.Template
	}
	return &out
}
