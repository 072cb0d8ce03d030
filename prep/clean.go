package prep

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rshade/facedeck/dataset"
	"github.com/rshade/facedeck/internal/logging"
)

// EncodeOrder selects how categorical level codes are assigned.
type EncodeOrder string

// Categorical encoding orders.
const (
	// EncodeFirstSeen numbers levels in order of first appearance.
	EncodeFirstSeen EncodeOrder = "first-seen"
	// EncodeLexical numbers levels in collation order.
	EncodeLexical EncodeOrder = "lexical"
)

// firstLevelCode is the code of the first categorical level. Zero is
// reserved for values outside the level set.
const firstLevelCode = 1

// CleanOptions controls how non-numeric columns are folded out of the
// feature matrix.
type CleanOptions struct {
	// LabelsRequested reports whether the caller extracted a label set.
	// Categorical columns fold into labels and leave the matrix when true,
	// and encode to integer codes when false.
	LabelsRequested bool

	// EncodeOrder picks the level numbering for encoded categoricals.
	// Explicit factor levels always win. Empty selects EncodeFirstSeen.
	EncodeOrder EncodeOrder
}

// Clean projects a classified dataset onto its feature matrix:
//   - numeric columns pass through unchanged,
//   - textual columns are dropped,
//   - categorical columns are dropped when labels were requested, otherwise
//     encoded as stable integer codes starting at 1 computed over the whole
//     dataset.
//
// Column order in the matrix follows dataset order minus dropped columns.
// A NaN or infinite value in a numeric column fails with ErrMalformedColumn
// naming the column and row; nothing is coerced or imputed.
func Clean(ctx context.Context, ds *dataset.Dataset, class dataset.Classification, opts CleanOptions) (*Matrix, error) {
	log := logging.FromContext(ctx)

	names := make([]string, 0, ds.Cols())
	columns := make([][]float64, 0, ds.Cols())

	for _, col := range ds.Columns() {
		kind, _ := class.Kind(col.Name())
		switch kind {
		case dataset.KindNumeric:
			num, ok := col.(*dataset.NumberColumn)
			if !ok {
				return nil, fmt.Errorf("%w: column %q classified numeric but holds text",
					dataset.ErrMalformedColumn, col.Name())
			}
			if err := checkNumeric(num); err != nil {
				return nil, err
			}
			names = append(names, col.Name())
			columns = append(columns, num.Values())

		case dataset.KindTextual:
			log.Debug().
				Ctx(ctx).
				Str("component", "prep").
				Str("operation", "clean").
				Str("column", col.Name()).
				Msg("dropping textual column")

		case dataset.KindCategorical:
			if opts.LabelsRequested {
				log.Debug().
					Ctx(ctx).
					Str("component", "prep").
					Str("operation", "clean").
					Str("column", col.Name()).
					Msg("categorical column folded into labels")
				continue
			}
			encoded, err := encodeCategorical(col, opts.EncodeOrder)
			if err != nil {
				return nil, err
			}
			log.Debug().
				Ctx(ctx).
				Str("component", "prep").
				Str("operation", "clean").
				Str("column", col.Name()).
				Str("encode_order", string(resolveEncodeOrder(opts.EncodeOrder))).
				Msg("encoded categorical column")
			names = append(names, col.Name())
			columns = append(columns, encoded)
		}
	}

	return newMatrixFromColumns(names, ds.Rows(), columns), nil
}

// checkNumeric rejects NaN and infinite values before they can poison the
// global min/max fit.
func checkNumeric(col *dataset.NumberColumn) error {
	for row, v := range col.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: column %q row %d: value %v",
				dataset.ErrMalformedColumn, col.Name(), row, v)
		}
	}
	return nil
}

// encodeCategorical maps category values to stable integer codes over the
// full column. Codes start at firstLevelCode and depend only on the level
// order, never on where a page boundary falls.
func encodeCategorical(col dataset.Column, order EncodeOrder) ([]float64, error) {
	var values, levels []string

	switch col := col.(type) {
	case *dataset.FactorColumn:
		// Factor levels are part of the column's identity and always win.
		values = col.Values()
		levels = col.Levels()
	case *dataset.StringColumn:
		values = col.Values()
		levels = stringLevels(values, order)
	default:
		return nil, fmt.Errorf("%w: column %q cannot encode", dataset.ErrMalformedColumn, col.Name())
	}

	code := make(map[string]float64, len(levels))
	for i, level := range levels {
		code[level] = float64(firstLevelCode + i)
	}

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = code[v]
	}
	return out, nil
}

func resolveEncodeOrder(order EncodeOrder) EncodeOrder {
	if order == "" {
		return EncodeFirstSeen
	}
	return order
}

func stringLevels(values []string, order EncodeOrder) []string {
	seen := make(map[string]bool, len(values))
	levels := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			levels = append(levels, v)
		}
	}

	if order == EncodeLexical {
		coll := collate.New(language.English)
		sort.SliceStable(levels, func(i, j int) bool {
			return coll.CompareString(levels[i], levels[j]) < 0
		})
	}
	return levels
}
