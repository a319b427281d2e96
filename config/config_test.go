// ABOUTME: Tests for session config loading and persistence
// ABOUTME: Covers XDG path handling, defaults, and environment overrides
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempDataHome(t *testing.T) {
	t.Helper()
	origHome := xdg.DataHome
	xdg.DataHome = t.TempDir()
	t.Cleanup(func() { xdg.DataHome = origHome })
}

func TestLoad_NotFound(t *testing.T) {
	useTempDataHome(t)
	t.Setenv(EnvBackendURL, "")

	cfg, err := Load()
	require.NoError(t, err, "Load should not error when file not found")
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultBackendURL, cfg.BackendURL, "should fall back to default backend")
}

func TestSaveAndLoad(t *testing.T) {
	useTempDataHome(t)
	t.Setenv(EnvBackendURL, "")

	original := &Config{BackendURL: "https://sim.example.com"}
	require.NoError(t, original.Save(), "Save should succeed")

	path := filepath.Join(xdg.DataHome, AppName, ConfigFileName)
	info, err := os.Stat(path)
	require.NoError(t, err, "config file should exist")
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "config file should have 0600 permissions")

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, original.BackendURL, loaded.BackendURL)
}

func TestLoad_EnvOverride(t *testing.T) {
	useTempDataHome(t)

	stored := &Config{BackendURL: "https://stored.example.com"}
	require.NoError(t, stored.Save())

	t.Setenv(EnvBackendURL, "https://override.example.com")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com", cfg.BackendURL, "env var should win over stored config")
}

func TestLoad_CorruptFile(t *testing.T) {
	useTempDataHome(t)
	t.Setenv(EnvBackendURL, "")

	dir := filepath.Join(xdg.DataHome, AppName)
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{not json"), 0600))

	cfg, err := Load()
	require.NoError(t, err, "corrupt config should fall back to defaults")
	assert.Equal(t, DefaultBackendURL, cfg.BackendURL)
}
