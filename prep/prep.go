package prep

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/facedeck/dataset"
	"github.com/rshade/facedeck/internal/logging"
)

// Options controls the prepare pipeline.
type Options struct {
	// Labels requests label extraction. When true, textual and categorical
	// columns become the per-row label set and stay out of the feature
	// matrix. When false, categorical columns encode into the matrix.
	Labels bool

	// MaxLevels bounds the distinct-value count under which a string column
	// classifies as categorical. Zero selects dataset.DefaultMaxLevels.
	MaxLevels int

	// EncodeOrder picks the level numbering used when categorical columns
	// encode. Empty selects EncodeFirstSeen.
	EncodeOrder EncodeOrder
}

// DefaultOptions returns the standard pipeline options: labels on,
// first-seen encoding, default classification bound.
func DefaultOptions() Options {
	return Options{Labels: true}
}

// Deck is one fully prepared dataset version: classified, cleaned, and
// globally scaled, ready for paging. Decks are immutable; the Version ULID
// identifies this snapshot for render-artifact caching.
type Deck struct {
	// Version is a ULID minted when the deck was prepared.
	Version string

	// Classification records the role assigned to every source column.
	Classification dataset.Classification

	// Labels holds one display label per row, or nil when the source
	// dataset had no textual or categorical columns.
	Labels []string

	// Matrix is the scaled feature matrix. Values lie in
	// [ScaleMin, ScaleMax]; degenerate columns are all zero.
	Matrix *Matrix

	// Params are the global scale parameters fitted over the whole dataset.
	Params ScaleParams
}

// Rows returns the number of data rows in the deck.
func (d *Deck) Rows() int { return d.Matrix.Rows() }

// Prepare runs the full pipeline on one dataset: classify, extract labels,
// clean, fit, and scale. Scaling is fitted over the entire dataset here,
// before any paging, so page boundaries can never change a scaled value.
// An empty dataset fails with dataset.ErrEmptyDataset.
func Prepare(ctx context.Context, ds *dataset.Dataset, opts Options) (*Deck, error) {
	if ds.Rows() == 0 {
		return nil, fmt.Errorf("%w: nothing to prepare", dataset.ErrEmptyDataset)
	}

	class := dataset.Classify(ds, opts.MaxLevels)

	var labels []string
	if opts.Labels {
		var err error
		labels, err = ExtractLabels(ds, class)
		if err != nil {
			return nil, err
		}
	}

	matrix, err := Clean(ctx, ds, class, CleanOptions{
		LabelsRequested: opts.Labels,
		EncodeOrder:     opts.EncodeOrder,
	})
	if err != nil {
		return nil, err
	}

	scaler := NewScaler()
	scaled, err := scaler.FitTransform(ctx, matrix)
	if err != nil {
		return nil, err
	}
	params, err := scaler.Params()
	if err != nil {
		return nil, err
	}

	deck := &Deck{
		Version:        ulid.Make().String(),
		Classification: class,
		Labels:         labels,
		Matrix:         scaled,
		Params:         params,
	}

	logging.FromContext(ctx).Info().
		Ctx(ctx).
		Str("component", "prep").
		Str("operation", "prepare").
		Str("version", deck.Version).
		Int("rows", scaled.Rows()).
		Int("features", scaled.Cols()).
		Bool("labels", labels != nil).
		Int("degenerate_columns", len(params.DegenerateColumns())).
		Msg("prepared dataset")

	return deck, nil
}
