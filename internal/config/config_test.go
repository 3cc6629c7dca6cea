package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "pnpm", cfg.PackageManager)
	assert.Equal(t, "default", cfg.Registry)
	assert.Equal(t, "app", cfg.Template)
	assert.Empty(t, cfg.Author)
	assert.False(t, cfg.SkipGit)
	assert.Nil(t, cfg.Log.Timestamps)
}

func TestConfigWithDefaults(t *testing.T) {
	t.Run("fills unset values", func(t *testing.T) {
		cfg := (&Config{Author: "Ada"}).WithDefaults()

		assert.Equal(t, "pnpm", cfg.PackageManager)
		assert.Equal(t, "default", cfg.Registry)
		assert.Equal(t, "app", cfg.Template)
		assert.Equal(t, "Ada", cfg.Author)
	})

	t.Run("keeps set values and does not mutate receiver", func(t *testing.T) {
		base := &Config{PackageManager: "yarn", Registry: "mirror"}
		cfg := base.WithDefaults()

		assert.Equal(t, "yarn", cfg.PackageManager)
		assert.Equal(t, "mirror", cfg.Registry)
		assert.Empty(t, base.Template)
	})
}

func TestDefaultConfigTemplate(t *testing.T) {
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate), &cfg))

	def := DefaultConfig()
	assert.Equal(t, def.PackageManager, cfg.PackageManager)
	assert.Equal(t, def.Registry, cfg.Registry)
	assert.Equal(t, def.Template, cfg.Template)
	require.NotNil(t, cfg.Log.Timestamps)
	assert.True(t, *cfg.Log.Timestamps)

	assert.NoError(t, ValidateBytes([]byte(DefaultConfigTemplate)))
}
