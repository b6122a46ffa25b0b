package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for config:
// - Defaults apply when no config file exists
// - Config file values override defaults
// - An explicit config file path is honored wherever it lives
// - An explicit config file that cannot be read is an error
// - Environment variables override the config file
// - Invalid worker counts are rejected

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"**.go"}, cfg.Paths.Include)
	assert.Greater(t, cfg.Scan.Workers, 0)
}

func TestLoad_ConfigFile(t *testing.T) {
	root := t.TempDir()
	yml := `
paths:
  include:
    - "internal/**.go"
  ignore:
    - "gen/**"
scan:
  workers: 2
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ".configdoc.yml"), []byte(yml), 0o644))

	cfg, err := Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"internal/**.go"}, cfg.Paths.Include)
	assert.Equal(t, []string{"gen/**"}, cfg.Paths.Ignore)
	assert.Equal(t, 2, cfg.Scan.Workers)
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	// The explicit file lives outside the project root and wins over the
	// project's own .configdoc.yml.
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".configdoc.yml"), []byte("scan:\n  workers: 2\n"), 0o644))

	explicit := filepath.Join(t.TempDir(), "shared.yml")
	require.NoError(t, os.WriteFile(explicit, []byte("scan:\n  workers: 5\n"), 0o644))

	cfg, err := Load(root, explicit)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Scan.Workers)
}

func TestLoad_ExplicitConfigFileMissing(t *testing.T) {
	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CONFIGDOC_SCAN_WORKERS", "3")

	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Scan.Workers)
}

func TestValidate_Workers(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Scan.Workers = 0
	assert.ErrorIs(t, Validate(cfg), ErrInvalidWorkers)
}
