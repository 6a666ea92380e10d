package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rshade/ecoroute/internal/logging"
)

// ErrNoProject is returned by FindProjectDir when no project-local
// configuration exists above the start directory.
var ErrNoProject = errors.New("no ecoroute project found")

// ResolveProjectDir determines the project-local .ecoroute directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. ECOROUTE_PROJECT_DIR env var
//  3. a walk up from startDir looking for .ecoroute/config.yaml
//
// Returns the path to $PROJECT/.ecoroute/ or empty string if no project found.
// Does NOT create the directory.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	projectRoot, err := FindProjectDir(startDir)
	if err != nil {
		if !errors.Is(err, ErrNoProject) {
			logger := logging.FromContext(ctx)
			logger.Warn().
				Str("component", "config").
				Err(err).
				Str("start_dir", startDir).
				Msg("unexpected error during project discovery")
		}
		return ""
	}

	return toAbsProjectDir(ctx, projectRoot)
}

// FindProjectDir walks up from dir and returns the first directory holding
// .ecoroute/config.yaml. The global configuration directory is skipped.
func FindProjectDir(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	globalDir, _ := GetConfigDir()

	current := absDir
	for {
		candidate := filepath.Join(current, DirName)
		if candidate != globalDir {
			if _, statErr := os.Stat(filepath.Join(candidate, ConfigFileName)); statErr == nil {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", ErrNoProject
		}
		current = parent
	}
}

// LoadWithProjectDir loads the configuration at path, shallow-merges the
// project-local config.yaml from projectDir on top when present, and applies
// environment overrides last.
func LoadWithProjectDir(ctx context.Context, path, projectDir string) (*Config, error) {
	cfg := New()
	cfg.path = path

	if err := readFile(cfg, path); err != nil {
		return nil, err
	}

	if projectDir != "" {
		overlayPath := filepath.Join(projectDir, ConfigFileName)
		if _, err := os.Stat(overlayPath); err == nil {
			merged := *cfg
			if mergeErr := ShallowMergeYAML(&merged, overlayPath); mergeErr != nil {
				logger := logging.FromContext(ctx)
				logger.Warn().
					Str("component", "config").
					Str("operation", "merge_project_config").
					Err(mergeErr).
					Str("overlay_path", overlayPath).
					Msg("failed to merge project config, using global config")
			} else {
				cfg = &merged
			}
		}
	}

	if err := ApplyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// toAbsProjectDir converts dir to an absolute path and appends ".ecoroute".
// If the path already ends with ".ecoroute", it is returned as-is (after
// resolving to an absolute path) to prevent double-append.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == DirName {
		return abs
	}

	return filepath.Join(abs, DirName)
}
