package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCmd_WritesOneFilePerPage(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "deck")

	out, err := executeCommand(t,
		"export", writeSampleCSV(t),
		"--page-size", "2",
		"--out", outDir,
		"--concurrency", "2",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "exported 3 pages to "+outDir)

	for _, name := range []string{"page-001.txt", "page-002.txt", "page-003.txt"} {
		data, readErr := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, readErr, name)
		assert.NotEmpty(t, data, name)
	}

	// Each page carries its own rows' labels.
	first, err := os.ReadFile(filepath.Join(outDir, "page-001.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(first), "setosa")
	last, err := os.ReadFile(filepath.Join(outDir, "page-003.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(last), "virginica")
}

func TestExportCmd_ReportsProgress(t *testing.T) {
	out, err := executeCommand(t,
		"export", writeSampleCSV(t),
		"--page-size", "3",
		"--out", filepath.Join(t.TempDir(), "deck"),
		"--concurrency", "1",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "rendered 1/2 pages")
	assert.Contains(t, out, "rendered 2/2 pages")
}
