// Package config loads and validates facedeck configuration: compiled-in
// defaults, the user's global config file, an optional project-local
// overlay, and FACEDECK_* environment overrides, applied in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/rshade/facedeck/dataset"
	"github.com/rshade/facedeck/internal/logging"
	"github.com/rshade/facedeck/paging"
	"github.com/rshade/facedeck/prep"
	"github.com/rshade/facedeck/render"
)

// configDirName is the directory holding facedeck configuration, both under
// the user's home and inside a project.
const configDirName = ".facedeck"

// configFileName is the config file name inside a config directory.
const configFileName = "config.yaml"

// DefaultRenderer is the renderer name used when none is configured.
const DefaultRenderer = "sketch"

// File modes for created config files and directories.
const (
	configFilePerm = 0o600
	configDirPerm  = 0o700
)

// Validation and write errors.
var (
	ErrInvalidMaxLevels   = errors.New("max_levels must be >= 2")
	ErrInvalidEncodeOrder = fmt.Errorf("encode must be %q or %q", prep.EncodeFirstSeen, prep.EncodeLexical)
	ErrBlankRenderer      = errors.New("renderer must not be blank")
	ErrInvalidLogLevel    = errors.New("unknown log level")
	ErrInvalidLogFormat   = errors.New("unknown log format")
	ErrConfigExists       = errors.New("config file already exists")
)

// Config is the full facedeck configuration.
type Config struct {
	Prep    PrepConfig    `yaml:"prep"`
	Render  RenderConfig  `yaml:"render"`
	Logging LoggingConfig `yaml:"logging"`
}

// PrepConfig configures dataset preparation and paging.
type PrepConfig struct {
	// PageSize is the number of rows per page.
	PageSize int `yaml:"page_size"`

	// Labels controls whether display labels are extracted.
	Labels bool `yaml:"labels"`

	// MaxLevels is the categorical classification threshold.
	MaxLevels int `yaml:"max_levels"`

	// Encode picks the level numbering for encoded categoricals.
	Encode prep.EncodeOrder `yaml:"encode"`
}

// RenderConfig configures rendering and the artifact cache.
type RenderConfig struct {
	Renderer        string `yaml:"renderer"`
	CacheEnabled    bool   `yaml:"cache_enabled"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// New returns the compiled-in default configuration.
func New() *Config {
	return &Config{
		Prep: PrepConfig{
			PageSize:  paging.DefaultPageSize,
			Labels:    true,
			MaxLevels: dataset.DefaultMaxLevels,
			Encode:    prep.EncodeFirstSeen,
		},
		Render: RenderConfig{
			Renderer:        DefaultRenderer,
			CacheEnabled:    true,
			CacheTTLSeconds: render.DefaultTTLSeconds,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatAuto,
		},
	}
}

// Normalize fills zero-valued fields with defaults. Overlay sections replace
// wholesale, so scalar fields omitted from an overlay arrive as zero values.
// Booleans are left alone: an omitted bool reads as an explicit false.
func (c *Config) Normalize() {
	def := New()
	if c.Prep.PageSize == 0 {
		c.Prep.PageSize = def.Prep.PageSize
	}
	if c.Prep.MaxLevels == 0 {
		c.Prep.MaxLevels = def.Prep.MaxLevels
	}
	if c.Prep.Encode == "" {
		c.Prep.Encode = def.Prep.Encode
	}
	if c.Render.Renderer == "" {
		c.Render.Renderer = def.Render.Renderer
	}
	if c.Render.CacheTTLSeconds == 0 {
		c.Render.CacheTTLSeconds = def.Render.CacheTTLSeconds
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = def.Logging.Format
	}
}

// Validate checks every section and returns the first violation.
func (c *Config) Validate() error {
	if c.Prep.PageSize < paging.MinPageSize {
		return fmt.Errorf("%w: got %d", paging.ErrInvalidPageSize, c.Prep.PageSize)
	}
	if c.Prep.MaxLevels < 2 { //nolint:mnd // A category set needs at least two levels.
		return fmt.Errorf("%w: got %d", ErrInvalidMaxLevels, c.Prep.MaxLevels)
	}
	switch c.Prep.Encode {
	case "", prep.EncodeFirstSeen, prep.EncodeLexical:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidEncodeOrder, c.Prep.Encode)
	}
	if strings.TrimSpace(c.Render.Renderer) == "" {
		return ErrBlankRenderer
	}
	if ttl := c.Render.CacheTTLSeconds; ttl < render.MinTTLSeconds || ttl > render.MaxTTLSeconds {
		return fmt.Errorf("%w: got %d", render.ErrInvalidTTL, ttl)
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", logging.FormatAuto, logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	return nil
}

// ToLoggingConfig bridges the config section to the logging package. When a
// file is configured output goes to it, otherwise to stderr.
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// DefaultConfigPath returns the global config file path under the user's
// home directory.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// configFileHeader tops every generated config file. Overlay merging
// replaces whole sections, so the header warns about partial sections; most
// scalar fields fall back to defaults when omitted, but booleans such as
// prep.labels read as false.
const configFileHeader = `# facedeck configuration.
#
# Config files merge per top-level section: when a section (prep, render,
# logging) appears in a more specific file, it replaces that whole section
# from less specific ones. Keep every field you care about in any section
# you override; an omitted boolean such as prep.labels reads as false.
`

// WriteDefault writes the default configuration to path, creating the
// parent directory. An existing file is never overwritten.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), configDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(New())
	if err != nil {
		return fmt.Errorf("marshalling default config: %w", err)
	}
	data = append([]byte(configFileHeader), data...)
	if err := os.WriteFile(path, data, configFilePerm); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
