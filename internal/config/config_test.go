package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/moasq/recent/internal/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxBranches, cfg.MaxBranches)
	assert.Equal(t, DefaultVisibleBranches, cfg.VisibleBranches)
	assert.Equal(t, selector.DefaultTitle, cfg.Title)
	assert.True(t, cfg.ShouldRecord())
	assert.Empty(t, cfg.Path)
	assert.NotEmpty(t, cfg.StateDir)
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, "max_branches: 50\nvisible_branches: 8\ntitle: \"Branch?\"\nrecord_history: false\n")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.MaxBranches)
	assert.Equal(t, 8, cfg.VisibleBranches)
	assert.Equal(t, "Branch?", cfg.Title)
	assert.False(t, cfg.ShouldRecord())
	assert.Equal(t, path, cfg.Path)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(writeConfig(t, "visible_branches: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxBranches, cfg.MaxBranches)
	assert.Equal(t, 3, cfg.VisibleBranches)
	assert.Equal(t, DefaultTitle, cfg.Title)
	assert.True(t, cfg.ShouldRecord())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "visible_branches: 0\n"))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = LoadFromPath(writeConfig(t, "max_branches: -4\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "max_branches: [unterminated\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestLoadHonoursEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, writeConfig(t, "max_branches: 7\n"))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxBranches)
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyOverrides(Overrides{VisibleBranches: 9, NoRecord: true}))
	assert.Equal(t, 9, cfg.VisibleBranches)
	assert.Equal(t, DefaultMaxBranches, cfg.MaxBranches)
	assert.False(t, cfg.ShouldRecord())

	assert.ErrorIs(t, cfg.ApplyOverrides(Overrides{MaxBranches: -1}), ErrInvalid)
}
