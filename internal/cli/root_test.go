package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/facedeck/internal/config"
)

// executeCommand runs the root command with args against an isolated home
// directory and returns the combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := NewRootCmd("test")
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

// writeSampleCSV writes a small iris-like dataset and returns its path.
func writeSampleCSV(t *testing.T) string {
	t.Helper()
	csv := `species,sepal_len,sepal_wid,petal_len,petal_wid
setosa,5.1,3.5,1.4,0.2
setosa,4.9,3.0,1.4,0.2
versicolor,7.0,3.2,4.7,1.4
versicolor,6.4,3.2,4.5,1.5
virginica,6.3,3.3,6.0,2.5
virginica,5.8,2.7,5.1,1.9
`
	path := filepath.Join(t.TempDir(), "iris.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))
	return path
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd("1.2.3")

	assert.Equal(t, "facedeck", root.Name())
	assert.Equal(t, "1.2.3", root.Version)

	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "view")
	assert.Contains(t, names, "pages")
	assert.Contains(t, names, "inspect")
	assert.Contains(t, names, "export")
	assert.Contains(t, names, "config")
}

func TestRootCmd_ExplicitConfigMustExist(t *testing.T) {
	_, err := executeCommand(t,
		"--config", filepath.Join(t.TempDir(), "absent.yaml"),
		"pages", writeSampleCSV(t),
	)
	assert.Error(t, err)
}

func TestRootCmd_ConfigFileApplies(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("prep:\n  page_size: 2\n  labels: true\n"), 0o600))

	out, err := executeCommand(t, "--config", cfgPath, "pages", writeSampleCSV(t))

	require.NoError(t, err)
	assert.Contains(t, out, "3 pages of up to 2")
}

func TestConfigFromContext_Default(t *testing.T) {
	cfg := configFromContext(context.Background())
	assert.Equal(t, config.New(), cfg)
}
