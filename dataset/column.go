package dataset

import "fmt"

// Column is one named, typed column of a Dataset. Concrete implementations
// are StringColumn, NumberColumn, and FactorColumn; construct them with
// Strings, Numbers, and Factor.
type Column interface {
	// Name returns the column name.
	Name() string
	// Len returns the number of rows in the column.
	Len() int

	// reindex returns a new column with rows arranged per the permutation.
	reindex(perm []int) Column
}

// StringColumn holds free-form text values.
type StringColumn struct {
	name   string
	values []string
}

// Strings builds a string column. The input slice is copied.
func Strings(name string, values []string) *StringColumn {
	return &StringColumn{name: name, values: cloneStrings(values)}
}

// Name returns the column name.
func (c *StringColumn) Name() string { return c.name }

// Len returns the number of rows.
func (c *StringColumn) Len() int { return len(c.values) }

// Values returns the column values. The slice is shared with the column and
// must not be modified.
func (c *StringColumn) Values() []string { return c.values }

func (c *StringColumn) reindex(perm []int) Column {
	return &StringColumn{name: c.name, values: permuteStrings(c.values, perm)}
}

// NumberColumn holds float64 values.
type NumberColumn struct {
	name   string
	values []float64
}

// Numbers builds a numeric column. The input slice is copied. Values are not
// validated here; the cleaning stage rejects NaN and infinities.
func Numbers(name string, values []float64) *NumberColumn {
	out := make([]float64, len(values))
	copy(out, values)
	return &NumberColumn{name: name, values: out}
}

// Name returns the column name.
func (c *NumberColumn) Name() string { return c.name }

// Len returns the number of rows.
func (c *NumberColumn) Len() int { return len(c.values) }

// Values returns the column values. The slice is shared with the column and
// must not be modified.
func (c *NumberColumn) Values() []float64 { return c.values }

func (c *NumberColumn) reindex(perm []int) Column {
	out := make([]float64, len(perm))
	for i, p := range perm {
		out[i] = c.values[p]
	}
	return &NumberColumn{name: c.name, values: out}
}

// FactorColumn holds categorical values drawn from a fixed level set.
type FactorColumn struct {
	name   string
	values []string
	levels []string
}

// Factor builds a categorical column. When levels are given they fix the
// level order and every value must appear in them; otherwise levels are
// derived from the values in first-seen order. The input slices are copied.
func Factor(name string, values []string, levels ...string) (*FactorColumn, error) {
	col := &FactorColumn{name: name, values: cloneStrings(values)}
	if len(levels) == 0 {
		col.levels = firstSeenLevels(col.values)
		return col, nil
	}

	col.levels = cloneStrings(levels)
	known := make(map[string]bool, len(col.levels))
	for _, l := range col.levels {
		known[l] = true
	}
	for row, v := range col.values {
		if !known[v] {
			return nil, fmt.Errorf("%w: column %q row %d value %q", ErrUnknownLevel, name, row, v)
		}
	}
	return col, nil
}

// Name returns the column name.
func (c *FactorColumn) Name() string { return c.name }

// Len returns the number of rows.
func (c *FactorColumn) Len() int { return len(c.values) }

// Values returns the column values. The slice is shared with the column and
// must not be modified.
func (c *FactorColumn) Values() []string { return c.values }

// Levels returns the level set in its fixed order. The slice is shared with
// the column and must not be modified.
func (c *FactorColumn) Levels() []string { return c.levels }

func (c *FactorColumn) reindex(perm []int) Column {
	return &FactorColumn{
		name:   c.name,
		values: permuteStrings(c.values, perm),
		levels: c.levels,
	}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func permuteStrings(in []string, perm []int) []string {
	out := make([]string, len(perm))
	for i, p := range perm {
		out[i] = in[p]
	}
	return out
}

func firstSeenLevels(values []string) []string {
	seen := make(map[string]bool, len(values))
	levels := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			levels = append(levels, v)
		}
	}
	return levels
}
