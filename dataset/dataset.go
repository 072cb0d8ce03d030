package dataset

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by dataset construction, access, and downstream
// validation stages.
var (
	ErrEmptyDataset    = errors.New("dataset has no rows")
	ErrMalformedColumn = errors.New("malformed numeric column")
	ErrColumnMismatch  = errors.New("column row counts differ")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrUnknownLevel    = errors.New("value not in factor levels")
)

// Dataset is an ordered, rectangular collection of named typed columns.
// All columns share one row count. Datasets are immutable after New returns.
type Dataset struct {
	cols   []Column
	byName map[string]int
	rows   int
}

// New builds a Dataset from columns. Every column must have a distinct name
// and the same row count. A dataset with zero columns is valid and has zero
// rows.
func New(cols ...Column) (*Dataset, error) {
	ds := &Dataset{
		cols:   make([]Column, 0, len(cols)),
		byName: make(map[string]int, len(cols)),
	}

	for i, col := range cols {
		if _, dup := ds.byName[col.Name()]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, col.Name())
		}
		if i == 0 {
			ds.rows = col.Len()
		} else if col.Len() != ds.rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d",
				ErrColumnMismatch, col.Name(), col.Len(), ds.rows)
		}
		ds.byName[col.Name()] = i
		ds.cols = append(ds.cols, col)
	}

	return ds, nil
}

// MustNew builds a Dataset and panics on error. Intended for tests and
// literals whose shape is known to be valid.
func MustNew(cols ...Column) *Dataset {
	ds, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return ds
}

// Rows returns the shared row count.
func (d *Dataset) Rows() int { return d.rows }

// Cols returns the number of columns.
func (d *Dataset) Cols() int { return len(d.cols) }

// Columns returns the columns in dataset order. The returned slice is a
// copy; the columns themselves are shared.
func (d *Dataset) Columns() []Column {
	out := make([]Column, len(d.cols))
	copy(out, d.cols)
	return out
}

// Column looks up a column by name.
func (d *Dataset) Column(name string) (Column, error) {
	i, ok := d.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return d.cols[i], nil
}

// Names returns the column names in dataset order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.cols))
	for i, col := range d.cols {
		out[i] = col.Name()
	}
	return out
}
