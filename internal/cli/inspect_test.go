package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectCmd_Report(t *testing.T) {
	out, err := executeCommand(t, "inspect", writeSampleCSV(t), "--page-size", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "6 rows, 4 features, 3 pages of up to 2")
	assert.Contains(t, out, "species")
	assert.Contains(t, out, "categorical")
	assert.Contains(t, out, "numeric")
	assert.Contains(t, out, "labels: extracted (6 rows)")
	assert.Contains(t, out, "scale parameters")
}

func TestInspectCmd_DegenerateColumnWarning(t *testing.T) {
	csv := `name,steady,varying
a,7,1
b,7,2
c,7,3
`
	path := filepath.Join(t.TempDir(), "flat.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	out, err := executeCommand(t, "inspect", path)

	require.NoError(t, err)
	assert.Contains(t, out, "constant 7, scaled to 0")
	assert.Contains(t, out, "degenerate column(s): [steady]")
}

func TestInspectCmd_TypeOverrideForcesString(t *testing.T) {
	// Forcing a numeric column to string removes it from the feature matrix:
	// six distinct values over six rows classify as textual.
	out, err := executeCommand(t, "inspect", writeSampleCSV(t),
		"--types", "sepal_len:string")

	require.NoError(t, err)
	assert.Contains(t, out, "3 features")
	assert.Contains(t, out, "textual")
}

func TestInspectCmd_NoLabels(t *testing.T) {
	csv := `x,y
1,4
2,5
3,6
`
	path := filepath.Join(t.TempDir(), "plain.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	out, err := executeCommand(t, "inspect", path)

	require.NoError(t, err)
	assert.Contains(t, out, "labels: none")
}
