package prep

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/facedeck/dataset"
)

func irisLike(t *testing.T, rows int) *dataset.Dataset {
	t.Helper()

	species := make([]string, rows)
	sl := make([]float64, rows)
	sw := make([]float64, rows)
	pl := make([]float64, rows)
	pw := make([]float64, rows)
	names := []string{"setosa", "versicolor", "virginica"}
	for i := range rows {
		species[i] = names[i%len(names)]
		sl[i] = 4.0 + float64(i%30)*0.1
		sw[i] = 2.0 + float64(i%20)*0.1
		pl[i] = 1.0 + float64(i%50)*0.1
		pw[i] = 0.1 + float64(i%25)*0.1
	}

	return dataset.MustNew(
		dataset.Strings("species", species),
		dataset.Numbers("sepal_length", sl),
		dataset.Numbers("sepal_width", sw),
		dataset.Numbers("petal_length", pl),
		dataset.Numbers("petal_width", pw),
	)
}

func TestPrepare_LabelsFoldCategoricalOut(t *testing.T) {
	ctx := context.Background()
	ds := irisLike(t, 150)

	deck, err := Prepare(ctx, ds, DefaultOptions())
	require.NoError(t, err)

	// The species column becomes the label set and stays out of the matrix.
	require.NotNil(t, deck.Labels)
	assert.Len(t, deck.Labels, 150)
	assert.Equal(t, "setosa", deck.Labels[0])
	assert.Equal(t, "versicolor", deck.Labels[1])

	assert.Equal(t, 4, deck.Matrix.Cols())
	assert.Equal(t,
		[]string{"sepal_length", "sepal_width", "petal_length", "petal_width"},
		deck.Matrix.Names())

	kind, ok := deck.Classification.Kind("species")
	require.True(t, ok)
	assert.Equal(t, dataset.KindCategorical, kind)
}

func TestPrepare_NoLabelsEncodesCategorical(t *testing.T) {
	ctx := context.Background()
	ds := irisLike(t, 9)

	deck, err := Prepare(ctx, ds, Options{Labels: false})
	require.NoError(t, err)

	assert.Nil(t, deck.Labels)
	assert.Equal(t, 5, deck.Matrix.Cols())
	assert.Equal(t, "species", deck.Matrix.Names()[0])
}

func TestPrepare_ScaledBounds(t *testing.T) {
	ctx := context.Background()
	ds := irisLike(t, 60)

	deck, err := Prepare(ctx, ds, DefaultOptions())
	require.NoError(t, err)

	for j := range deck.Matrix.Cols() {
		for _, v := range deck.Matrix.Col(j) {
			assert.GreaterOrEqual(t, v, ScaleMin-scaleTolerance)
			assert.LessOrEqual(t, v, ScaleMax+scaleTolerance)
		}
	}
}

func TestPrepare_EmptyDataset(t *testing.T) {
	ctx := context.Background()
	ds := dataset.MustNew(
		dataset.Strings("name", nil),
		dataset.Numbers("x", nil),
	)

	_, err := Prepare(ctx, ds, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)
}

func TestPrepare_MalformedColumnSurfaces(t *testing.T) {
	ctx := context.Background()
	ds := dataset.MustNew(
		dataset.Numbers("x", []float64{1, 2, math.Inf(1)}),
	)

	_, err := Prepare(ctx, ds, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrMalformedColumn)
}

func TestPrepare_MintsDistinctVersions(t *testing.T) {
	ctx := context.Background()
	ds := irisLike(t, 12)

	first, err := Prepare(ctx, ds, DefaultOptions())
	require.NoError(t, err)
	second, err := Prepare(ctx, ds, DefaultOptions())
	require.NoError(t, err)

	assert.NotEmpty(t, first.Version)
	assert.NotEmpty(t, second.Version)
	assert.NotEqual(t, first.Version, second.Version)
}

func TestPrepare_DegenerateColumnRecorded(t *testing.T) {
	ctx := context.Background()
	ds := dataset.MustNew(
		dataset.Numbers("constant", []float64{7, 7, 7}),
		dataset.Numbers("varying", []float64{1, 2, 3}),
	)

	deck, err := Prepare(ctx, ds, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"constant"}, deck.Params.DegenerateColumns())
	assert.Equal(t, []float64{0, 0, 0}, deck.Matrix.Col(0))
}
