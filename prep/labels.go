package prep

import (
	"strings"

	"github.com/rshade/facedeck/dataset"
)

// labelSeparator joins values when several columns contribute to one label.
const labelSeparator = ", "

// ExtractLabels derives one display label per row from the textual and
// categorical columns, in dataset column order. A single source column
// contributes its values verbatim; several are joined with ", ". Factor
// columns contribute their level labels, never their codes.
//
// Returns nil when the dataset has no textual or categorical column: the
// label set is simply absent, which is not an error.
func ExtractLabels(ds *dataset.Dataset, class dataset.Classification) ([]string, error) {
	sources := class.Select(dataset.KindTextual, dataset.KindCategorical)
	if len(sources) == 0 {
		return nil, nil
	}

	values := make([][]string, len(sources))
	for i, name := range sources {
		col, err := ds.Column(name)
		if err != nil {
			return nil, err
		}
		switch col := col.(type) {
		case *dataset.StringColumn:
			values[i] = col.Values()
		case *dataset.FactorColumn:
			values[i] = col.Values()
		}
	}

	labels := make([]string, ds.Rows())
	if len(sources) == 1 {
		copy(labels, values[0])
		return labels, nil
	}

	parts := make([]string, len(sources))
	for row := range labels {
		for i := range values {
			parts[i] = values[i][row]
		}
		labels[row] = strings.Join(parts, labelSeparator)
	}
	return labels, nil
}
