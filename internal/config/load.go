package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rshade/facedeck/internal/logging"
	"github.com/rshade/facedeck/prep"
)

// Environment variables overriding config file values. Overrides apply
// last, after the global file and any project overlay.
const (
	EnvPageSize  = "FACEDECK_PAGE_SIZE"
	EnvMaxLevels = "FACEDECK_MAX_LEVELS"
	EnvEncode    = "FACEDECK_ENCODE"
	EnvRenderer  = "FACEDECK_RENDERER"
	EnvLogLevel  = "FACEDECK_LOG_LEVEL"
	EnvLogFormat = "FACEDECK_LOG_FORMAT"
	EnvLogFile   = "FACEDECK_LOG_FILE"
)

// LoadOptions controls where Load looks for configuration.
type LoadOptions struct {
	// ConfigPath forces the global config file location. Empty selects
	// DefaultConfigPath.
	ConfigPath string

	// ProjectDir is the project-local .facedeck directory whose config.yaml
	// overlays the global file. Empty means no project overlay.
	ProjectDir string
}

// Load assembles the effective configuration: compiled-in defaults, the
// global config file, the project overlay, then FACEDECK_* environment
// overrides, applied in that order. A missing global file is fine; a
// malformed one is an error. The result is normalized and validated.
func Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg := New()

	globalPath := opts.ConfigPath
	if globalPath == "" {
		var err error
		globalPath, err = DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(globalPath); err == nil {
		if mergeErr := ShallowMergeYAML(cfg, globalPath); mergeErr != nil {
			return nil, mergeErr
		}
	} else if opts.ConfigPath != "" {
		// An explicitly requested file must exist.
		return nil, fmt.Errorf("reading config file %s: %w", opts.ConfigPath, err)
	}

	if opts.ProjectDir != "" {
		if err := mergeProjectOverlay(cfg, opts.ProjectDir); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(ctx, cfg)

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "config").
		Str("operation", "load").
		Str("global_path", globalPath).
		Str("project_dir", opts.ProjectDir).
		Msg("configuration loaded")

	return cfg, nil
}

// mergeProjectOverlay applies the project-local config file onto cfg.
// A missing overlay file is not an error.
func mergeProjectOverlay(cfg *Config, projectDir string) error {
	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return nil
	}
	return ShallowMergeYAML(cfg, overlayPath)
}

// applyEnvOverrides mutates cfg with any FACEDECK_* values present in the
// environment. Unparsable numeric values are logged and skipped rather than
// failing the load.
func applyEnvOverrides(ctx context.Context, cfg *Config) {
	log := logging.FromContext(ctx)

	if raw := os.Getenv(EnvPageSize); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cfg.Prep.PageSize = n
		} else {
			log.Warn().Str("component", "config").Str("var", EnvPageSize).Str("value", raw).
				Msg("ignoring unparsable environment override")
		}
	}
	if raw := os.Getenv(EnvMaxLevels); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cfg.Prep.MaxLevels = n
		} else {
			log.Warn().Str("component", "config").Str("var", EnvMaxLevels).Str("value", raw).
				Msg("ignoring unparsable environment override")
		}
	}
	if raw := os.Getenv(EnvEncode); raw != "" {
		cfg.Prep.Encode = prep.EncodeOrder(raw)
	}
	if raw := os.Getenv(EnvRenderer); raw != "" {
		cfg.Render.Renderer = raw
	}
	if raw := os.Getenv(EnvLogLevel); raw != "" {
		cfg.Logging.Level = raw
	}
	if raw := os.Getenv(EnvLogFormat); raw != "" {
		cfg.Logging.Format = raw
	}
	if raw := os.Getenv(EnvLogFile); raw != "" {
		cfg.Logging.File = raw
	}
}
