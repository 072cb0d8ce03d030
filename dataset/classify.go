package dataset

// Kind is the pipeline role of a column: label source, encodable category,
// or feature value.
type Kind int

// Column role kinds.
const (
	// KindTextual marks free-form text. Textual columns feed labels and
	// never enter the feature matrix.
	KindTextual Kind = iota
	// KindCategorical marks values drawn from a small fixed set. Categorical
	// columns feed labels, or encode to integer codes when labels are not
	// requested.
	KindCategorical
	// KindNumeric marks continuous values. Numeric columns pass into the
	// feature matrix unchanged.
	KindNumeric
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindTextual:
		return "textual"
	case KindCategorical:
		return "categorical"
	case KindNumeric:
		return "numeric"
	default:
		return "unknown"
	}
}

// DefaultMaxLevels is the distinct-value bound under which a string column
// classifies as categorical rather than textual.
const DefaultMaxLevels = 12

// Classification maps each column of one dataset to its Kind, in dataset
// column order.
type Classification struct {
	order []string
	kinds map[string]Kind
}

// Classify derives the role of every column. The rule is deterministic:
//   - number columns are numeric (declared types are trusted; string content
//     is never parsed into numbers here),
//   - factor columns are categorical,
//   - string columns are categorical when their distinct-value count is at
//     most maxLevels and the values repeat (distinct < rows); otherwise they
//     are textual.
//
// maxLevels <= 0 selects DefaultMaxLevels.
func Classify(ds *Dataset, maxLevels int) Classification {
	if maxLevels <= 0 {
		maxLevels = DefaultMaxLevels
	}

	c := Classification{
		order: ds.Names(),
		kinds: make(map[string]Kind, ds.Cols()),
	}

	for _, col := range ds.Columns() {
		switch col := col.(type) {
		case *NumberColumn:
			c.kinds[col.Name()] = KindNumeric
		case *FactorColumn:
			c.kinds[col.Name()] = KindCategorical
		case *StringColumn:
			c.kinds[col.Name()] = classifyStrings(col.Values(), maxLevels)
		default:
			c.kinds[col.Name()] = KindTextual
		}
	}

	return c
}

func classifyStrings(values []string, maxLevels int) Kind {
	if len(values) == 0 {
		return KindTextual
	}

	distinct := make(map[string]bool, maxLevels+1)
	for _, v := range values {
		distinct[v] = true
		if len(distinct) > maxLevels {
			return KindTextual
		}
	}
	if len(distinct) < len(values) {
		return KindCategorical
	}
	// Every value unique: identifier-like, not a category set.
	return KindTextual
}

// Kind returns the classified role of the named column.
func (c Classification) Kind(name string) (Kind, bool) {
	k, ok := c.kinds[name]
	return k, ok
}

// Names returns the classified column names in dataset order.
func (c Classification) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Select returns the names of columns whose role matches any of the given
// kinds, in dataset order.
func (c Classification) Select(kinds ...Kind) []string {
	want := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}

	out := make([]string, 0, len(c.order))
	for _, name := range c.order {
		if want[c.kinds[name]] {
			out = append(out, name)
		}
	}
	return out
}
