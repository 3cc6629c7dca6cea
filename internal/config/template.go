package config

// DefaultConfigTemplate is written by `kickstart config init`.
const DefaultConfigTemplate = `# kickstart configuration
#
# Every value is a default for 'kickstart new' and can be overridden by a flag
# or a KICKSTART_* environment variable.

# Package manager: pnpm, npm, or yarn.
packageManager: pnpm

# Registry: default, mirror, custom (use the registry your package manager is
# configured with), or a registry URL.
registry: default

# Bundled template used when --template is not given: app, library, or plugin.
template: app

# package.json author. Defaults to git's user.name and user.email.
# author: Jane Doe
# email: jane@example.com

# Turn off git initialization or dependency installation by default.
skipGit: false
skipInstall: false

log:
  # Show timestamps in log output.
  timestamps: true
`
