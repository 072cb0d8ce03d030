package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rshade/facedeck/internal/logging"
)

// EnvProjectDir overrides project directory discovery.
const EnvProjectDir = "FACEDECK_PROJECT_DIR"

// ResolveProjectDir determines the project-local .facedeck directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. FACEDECK_PROJECT_DIR env var
//  3. walk-up from startDir looking for an existing .facedeck directory
//
// Returns the path to $PROJECT/.facedeck/ or empty string when no project
// is found. Does NOT create the directory. Returned paths are absolute.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsConfigDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsConfigDir(ctx, envDir)
	}

	root, found := findProjectRoot(startDir)
	if !found {
		return ""
	}
	return toAbsConfigDir(ctx, root)
}

// findProjectRoot walks up from startDir until it finds a directory
// containing .facedeck, stopping at the filesystem root.
func findProjectRoot(startDir string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}

	for {
		info, statErr := os.Stat(filepath.Join(dir, configDirName))
		if statErr == nil && info.IsDir() {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// NewWithProjectDir creates a Config by loading defaults then
// shallow-merging the project-local config on top. When projectDir is empty
// or holds no config file this is identical to New().
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()

	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		// Missing project config is not an error.
		return cfg
	}

	if err := ShallowMergeYAML(cfg, overlayPath); err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using defaults")
		return New()
	}

	return cfg
}

// toAbsConfigDir converts dir to an absolute path and appends ".facedeck".
// A path already ending with ".facedeck" is returned as-is (after resolving
// to an absolute path) to prevent double-append.
func toAbsConfigDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == configDirName {
		return abs
	}
	return filepath.Join(abs, configDirName)
}
