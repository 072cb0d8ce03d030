package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/facedeck/dataset"
)

const irisCSV = `name,species,sepal_length,sepal_width
iris-1,setosa,5.1,3.5
iris-2,setosa,4.9,3.0
iris-3,virginica,6.2,3.4
`

func TestReadCSV_AutoDetection(t *testing.T) {
	ds, err := ReadCSV(context.Background(), strings.NewReader(irisCSV), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Rows())
	assert.Equal(t, []string{"name", "species", "sepal_length", "sepal_width"}, ds.Names())

	col, err := ds.Column("sepal_length")
	require.NoError(t, err)
	nums, ok := col.(*dataset.NumberColumn)
	require.True(t, ok)
	assert.Equal(t, []float64{5.1, 4.9, 6.2}, nums.Values())

	col, err = ds.Column("species")
	require.NoError(t, err)
	strs, ok := col.(*dataset.StringColumn)
	require.True(t, ok)
	assert.Equal(t, []string{"setosa", "setosa", "virginica"}, strs.Values())
}

func TestReadCSV_MixedCellStaysString(t *testing.T) {
	in := "id,score\n1,9.5\n2,n/a\n3,7.0\n"

	ds, err := ReadCSV(context.Background(), strings.NewReader(in), DefaultOptions())
	require.NoError(t, err)

	col, err := ds.Column("score")
	require.NoError(t, err)
	_, ok := col.(*dataset.StringColumn)
	assert.True(t, ok, "one unparsable cell keeps the column textual")

	col, err = ds.Column("id")
	require.NoError(t, err)
	_, ok = col.(*dataset.NumberColumn)
	assert.True(t, ok)
}

func TestReadCSV_SchemaForcesString(t *testing.T) {
	in := "zip,score\n01234,9.5\n94103,8.1\n"

	ds, err := ReadCSV(context.Background(), strings.NewReader(in), Options{
		Types: map[string]ColumnType{"zip": ColumnTypeString},
	})
	require.NoError(t, err)

	col, err := ds.Column("zip")
	require.NoError(t, err)
	strs, ok := col.(*dataset.StringColumn)
	require.True(t, ok)
	assert.Equal(t, []string{"01234", "94103"}, strs.Values())
}

func TestReadCSV_DeclaredNumberRejectsBadCell(t *testing.T) {
	in := "score\n9.5\nn/a\n"

	_, err := ReadCSV(context.Background(), strings.NewReader(in), Options{
		Types: map[string]ColumnType{"score": ColumnTypeNumber},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrMalformedColumn)
	assert.Contains(t, err.Error(), `column "score" row 1`)
	assert.Contains(t, err.Error(), `"n/a"`)
}

func TestReadCSV_SchemaUnknownColumn(t *testing.T) {
	in := "a\n1\n"

	_, err := ReadCSV(context.Background(), strings.NewReader(in), Options{
		Types: map[string]ColumnType{"missing": ColumnTypeNumber},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchemaColumn)
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestReadCSV_HeaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "empty input", input: "", wantErr: ErrNoHeader},
		{name: "blank column name", input: "a,,c\n1,2,3\n", wantErr: ErrBlankHeader},
		{name: "duplicate column name", input: "a,a\n1,2\n", wantErr: dataset.ErrDuplicateColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(context.Background(), strings.NewReader(tt.input), DefaultOptions())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	ds, err := ReadCSV(context.Background(), strings.NewReader("a,b\n"), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 0, ds.Rows())
	assert.Equal(t, 2, ds.Cols())

	// Zero rows give no numeric evidence, so columns load as text.
	col, err := ds.Column("a")
	require.NoError(t, err)
	_, ok := col.(*dataset.StringColumn)
	assert.True(t, ok)
}

func TestReadCSV_RaggedRow(t *testing.T) {
	in := "a,b\n1,2\n3\n"

	_, err := ReadCSV(context.Background(), strings.NewReader(in), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading csv records")
}

func TestReadCSV_CustomComma(t *testing.T) {
	in := "name;score\nalpha;1.5\nbeta;2.5\n"

	ds, err := ReadCSV(context.Background(), strings.NewReader(in), Options{Comma: ';'})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "score"}, ds.Names())
	col, err := ds.Column("score")
	require.NoError(t, err)
	nums, ok := col.(*dataset.NumberColumn)
	require.True(t, ok)
	assert.Equal(t, []float64{1.5, 2.5}, nums.Values())
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iris.csv")
	require.NoError(t, os.WriteFile(path, []byte(irisCSV), 0o600))

	ds, err := LoadCSV(context.Background(), path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Rows())
	assert.Equal(t, 4, ds.Cols())
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(context.Background(), filepath.Join(t.TempDir(), "absent.csv"), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening csv file")
}

func TestColumnType_String(t *testing.T) {
	assert.Equal(t, "auto", ColumnTypeAuto.String())
	assert.Equal(t, "string", ColumnTypeString.String())
	assert.Equal(t, "number", ColumnTypeNumber.String())
	assert.Equal(t, "ColumnType(9)", ColumnType(9).String())
}
