package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/facedeck/paging"
)

func TestPagesCmd_Layout(t *testing.T) {
	out, err := executeCommand(t, "pages", writeSampleCSV(t), "--page-size", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "6 rows in 3 pages of up to 2")
	assert.Contains(t, out, "page 1: rows 1-2 (2 rows)")
	assert.Contains(t, out, "page 3: rows 5-6 (2 rows)")
}

func TestPagesCmd_ShortLastPage(t *testing.T) {
	out, err := executeCommand(t, "pages", writeSampleCSV(t), "--page-size", "4")

	require.NoError(t, err)
	assert.Contains(t, out, "6 rows in 2 pages of up to 4")
	assert.Contains(t, out, "page 2: rows 5-6 (2 rows)")
}

func TestPagesCmd_YAMLLayout(t *testing.T) {
	out, err := executeCommand(t, "pages", writeSampleCSV(t), "--page-size", "5", "--yaml")

	require.NoError(t, err)

	var metas []paging.PageMeta
	require.NoError(t, yaml.Unmarshal([]byte(out), &metas))
	require.Len(t, metas, 2)
	assert.Equal(t, 0, metas[0].RowStart)
	assert.Equal(t, 5, metas[0].RowEnd)
	assert.True(t, metas[0].HasNext)
	assert.False(t, metas[0].HasPrevious)
	assert.Equal(t, 6, metas[1].RowEnd)
	assert.False(t, metas[1].HasNext)
}

func TestPagesCmd_RenderOnePage(t *testing.T) {
	out, err := executeCommand(t, "pages", writeSampleCSV(t), "--page-size", "2", "--page", "1")

	require.NoError(t, err)
	// The sketch renderer draws faces with labels underneath.
	assert.Contains(t, out, "setosa")
	assert.NotContains(t, out, "virginica")
}

func TestPagesCmd_AllPages(t *testing.T) {
	out, err := executeCommand(t, "pages", writeSampleCSV(t), "--page-size", "3", "--all")

	require.NoError(t, err)
	assert.Contains(t, out, "--- page 1/2 ---")
	assert.Contains(t, out, "--- page 2/2 ---")
	assert.Contains(t, out, "setosa")
	assert.Contains(t, out, "virginica")
}

func TestPagesCmd_SortBeforePaging(t *testing.T) {
	// Descending sepal length puts versicolor row 7.0 first, so page 1 of 2
	// carries versicolor instead of setosa.
	out, err := executeCommand(t, "pages", writeSampleCSV(t),
		"--page-size", "2", "--page", "1", "--sort", "sepal_len:desc")

	require.NoError(t, err)
	assert.Contains(t, out, "versicolor")
	assert.NotContains(t, out, "setosa")
}

func TestPagesCmd_BadSortExpression(t *testing.T) {
	_, err := executeCommand(t, "pages", writeSampleCSV(t), "--sort", "sepal_len:upward")
	assert.Error(t, err)
}

func TestPagesCmd_PageOutOfRange(t *testing.T) {
	_, err := executeCommand(t, "pages", writeSampleCSV(t), "--page-size", "2", "--page", "9")

	assert.ErrorIs(t, err, paging.ErrPageOutOfRange)
}

func TestPagesCmd_MissingFile(t *testing.T) {
	_, err := executeCommand(t, "pages", "no-such-file.csv")
	assert.Error(t, err)
}
