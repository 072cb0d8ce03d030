package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML_ReplacesWholeSection(t *testing.T) {
	cfg := New()
	path := writeOverlay(t, "prep:\n  page_size: 50\n")

	require.NoError(t, ShallowMergeYAML(cfg, path))

	assert.Equal(t, 50, cfg.Prep.PageSize)
	// Sections replace wholesale: fields omitted from the overlay arrive
	// as zero values, not defaults.
	assert.Equal(t, 0, cfg.Prep.MaxLevels)
	assert.False(t, cfg.Prep.Labels)
	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultRenderer, cfg.Render.Renderer)
}

func TestShallowMergeYAML_IgnoresUnknownKeys(t *testing.T) {
	cfg := New()
	path := writeOverlay(t, "plugins:\n  foo: bar\nrender:\n  renderer: custom\n")

	require.NoError(t, ShallowMergeYAML(cfg, path))

	assert.Equal(t, "custom", cfg.Render.Renderer)
}

func TestShallowMergeYAML_EmptyFile(t *testing.T) {
	cfg := New()
	path := writeOverlay(t, "# nothing here\n")

	require.NoError(t, ShallowMergeYAML(cfg, path))
	assert.Equal(t, New(), cfg)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	t.Run("nil target", func(t *testing.T) {
		assert.Error(t, ShallowMergeYAML(nil, "whatever.yaml"))
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := New()
		assert.Error(t, ShallowMergeYAML(cfg, filepath.Join(t.TempDir(), "absent.yaml")))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		cfg := New()
		path := writeOverlay(t, "prep: [unclosed\n")
		assert.Error(t, ShallowMergeYAML(cfg, path))
	})

	t.Run("section with wrong shape", func(t *testing.T) {
		cfg := New()
		path := writeOverlay(t, "prep:\n  page_size: not-a-number\n")
		assert.Error(t, ShallowMergeYAML(cfg, path))
	})
}
