package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecoroute/internal/config"
)

// writeProjectConfig creates .ecoroute/config.yaml under dir.
func writeProjectConfig(t *testing.T, dir, content string) string {
	t.Helper()
	projectDir := filepath.Join(dir, ".ecoroute")
	require.NoError(t, os.MkdirAll(projectDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"), []byte(content), 0o600))
	return projectDir
}

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvHome, filepath.Join(t.TempDir(), "home", ".ecoroute"))
	t.Setenv(config.EnvProjectDir, "")
}

func TestResolveProjectDir_FlagOverride(t *testing.T) {
	isolateHome(t)
	flagDir := t.TempDir()

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")

	assert.Equal(t, filepath.Join(flagDir, ".ecoroute"), got)
	assert.True(t, filepath.IsAbs(got), "returned path must be absolute")
}

func TestResolveProjectDir_FlagOverridesEnv(t *testing.T) {
	isolateHome(t)
	envDir := t.TempDir()
	flagDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, envDir)

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")

	assert.Equal(t, filepath.Join(flagDir, ".ecoroute"), got)
}

func TestResolveProjectDir_EnvVarOverride(t *testing.T) {
	isolateHome(t)
	envDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, envDir)

	got := config.ResolveProjectDir(context.Background(), "", "/does/not/matter")

	assert.Equal(t, filepath.Join(envDir, ".ecoroute"), got)
}

func TestResolveProjectDir_WalkUp(t *testing.T) {
	isolateHome(t)
	root := t.TempDir()
	writeProjectConfig(t, root, "output:\n  default_format: json\n")

	subDir := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	got := config.ResolveProjectDir(context.Background(), "", subDir)

	assert.Equal(t, filepath.Join(root, ".ecoroute"), got)
}

func TestResolveProjectDir_NoProjectFallback(t *testing.T) {
	isolateHome(t)

	got := config.ResolveProjectDir(context.Background(), "", t.TempDir())

	assert.Empty(t, got, "should return empty string when no project found")
}

func TestResolveProjectDir_SkipsGlobalConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, filepath.Join(home, ".ecoroute"))
	t.Setenv(config.EnvProjectDir, "")
	writeProjectConfig(t, home, "output:\n  precision: 3\n")

	_, err := config.FindProjectDir(home)
	assert.ErrorIs(t, err, config.ErrNoProject)
}

func TestResolveProjectDir_FlagWithSuffix(t *testing.T) {
	isolateHome(t)

	got := config.ResolveProjectDir(context.Background(), "/my/project/.ecoroute", "")

	assert.Equal(t, "/my/project/.ecoroute", got)
}

func TestLoadWithProjectDir(t *testing.T) {
	isolateHome(t)

	globalPath := writeOverlay(t, `
output:
  default_format: json
  precision: 4
history:
  capacity: 80
  key: global_history
  auto_save: true
`)
	projectDir := writeProjectConfig(t, t.TempDir(), `
history:
  capacity: 10
  key: project_history
`)

	cfg, err := config.LoadWithProjectDir(context.Background(), globalPath, projectDir)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, 4, cfg.Output.Precision)
	assert.Equal(t, 10, cfg.History.Capacity)
	assert.Equal(t, "project_history", cfg.History.Key)
	assert.False(t, cfg.History.AutoSave, "overlay replaces the whole section")
	assert.Equal(t, globalPath, cfg.Path())
}

func TestLoadWithProjectDir_BadOverlayKeepsGlobal(t *testing.T) {
	isolateHome(t)

	globalPath := writeOverlay(t, "history:\n  capacity: 30\n  key: h\n")
	projectDir := writeProjectConfig(t, t.TempDir(), "history: [not, a, map\n")

	cfg, err := config.LoadWithProjectDir(context.Background(), globalPath, projectDir)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.History.Capacity)
}

func TestLoadWithProjectDir_EnvWins(t *testing.T) {
	isolateHome(t)
	t.Setenv(config.EnvHistoryCapacity, "7")

	projectDir := writeProjectConfig(t, t.TempDir(), "history:\n  capacity: 10\n  key: h\n")

	cfg, err := config.LoadWithProjectDir(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), projectDir)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.History.Capacity)
}
