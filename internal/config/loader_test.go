package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		content := `
keyPrefix: ""
dateFormat: "2006-01-02"
hostingType: gitlab
require:
  - Version
  - PROJECT_LICENSES
fail: true
overwrite: none
log:
  timestamps: true
`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		cfg, err := NewLoader().Load(configFile)
		require.NoError(t, err)

		require.NotNil(t, cfg.KeyPrefix)
		assert.Equal(t, "", *cfg.KeyPrefix)
		assert.Equal(t, "2006-01-02", cfg.DateFormat)
		assert.Equal(t, "gitlab", cfg.HostingType)
		assert.Equal(t, []string{"Version", "PROJECT_LICENSES"}, cfg.Require)
		require.NotNil(t, cfg.Fail)
		assert.True(t, *cfg.Fail)
		assert.Nil(t, cfg.OnlyRequired)
		assert.Equal(t, "none", cfg.Overwrite)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.True(t, *cfg.Log.Timestamps)
	})

	t.Run("returns empty config for missing file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "nonexistent.yaml")

		cfg, err := NewLoader().Load(configFile)
		require.NoError(t, err)
		assert.Nil(t, cfg.KeyPrefix)
		assert.Empty(t, cfg.DateFormat)
	})

	t.Run("fails on malformed yaml", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("fail: [unterminated"), 0o644))

		_, err := NewLoader().Load(configFile)
		assert.Error(t, err)
	})
}

func TestConfigFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	exists, err := ConfigFileExists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, os.WriteFile(path, []byte("fail: true\n"), 0o644))
	exists, err = ConfigFileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/x/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "config.yaml"), got)

	got, err = ExpandPath("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)

	got, err = ExpandPath("~other/x")
	require.NoError(t, err)
	assert.Equal(t, "~other/x", got)
}

func TestGetConfigFile_Env(t *testing.T) {
	t.Setenv(EnvConfig, "/tmp/custom.yaml")
	got, err := GetConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", got)
}
