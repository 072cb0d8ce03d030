package prep

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix shape and access errors.
var (
	ErrShapeMismatch = errors.New("matrix shape mismatch")
	ErrRangeInvalid  = errors.New("row range out of bounds")
)

// Matrix is a rectangular float64 feature matrix with named columns, backed
// by a gonum dense matrix. Unlike mat.Dense it tolerates zero rows and zero
// columns, which paging over small or empty datasets produces routinely.
type Matrix struct {
	names []string
	rows  int
	data  *mat.Dense // nil when rows*cols == 0
}

// NewMatrix builds a Matrix from row-major values. len(values) must equal
// rows*len(names).
func NewMatrix(names []string, rows int, values []float64) (*Matrix, error) {
	cols := len(names)
	if len(values) != rows*cols {
		return nil, fmt.Errorf("%w: %d values for %dx%d", ErrShapeMismatch, len(values), rows, cols)
	}

	m := &Matrix{names: cloneNames(names), rows: rows}
	if rows > 0 && cols > 0 {
		m.data = mat.NewDense(rows, cols, append([]float64(nil), values...))
	}
	return m, nil
}

// newMatrixFromColumns builds a Matrix from per-column value slices aligned
// with names. Callers guarantee equal column lengths.
func newMatrixFromColumns(names []string, rows int, columns [][]float64) *Matrix {
	m := &Matrix{names: cloneNames(names), rows: rows}
	if rows == 0 || len(names) == 0 {
		return m
	}

	m.data = mat.NewDense(rows, len(names), nil)
	for j, col := range columns {
		m.data.SetCol(j, col)
	}
	return m
}

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the column count.
func (m *Matrix) Cols() int { return len(m.names) }

// Names returns the column names in order. The slice is shared and must not
// be modified.
func (m *Matrix) Names() []string { return m.names }

// At returns the value at row i, column j. A degenerate shape has no valid
// (i, j), so every access panics the same way gonum would on a bad index.
func (m *Matrix) At(i, j int) float64 {
	if m.data == nil {
		if i < 0 || i >= m.rows {
			panic(mat.ErrRowAccess)
		}
		panic(mat.ErrColAccess)
	}
	return m.data.At(i, j)
}

// Row copies row i into a new slice. Zero-column shapes yield an empty
// slice for every valid row, which happens when all columns fold into
// labels.
func (m *Matrix) Row(i int) []float64 {
	if m.data == nil {
		if i < 0 || i >= m.rows {
			panic(mat.ErrRowAccess)
		}
		return []float64{}
	}
	return mat.Row(nil, i, m.data)
}

// Col copies column j into a new slice. Zero-row shapes yield an empty
// slice for every valid column.
func (m *Matrix) Col(j int) []float64 {
	if m.data == nil {
		if j < 0 || j >= len(m.names) {
			panic(mat.ErrColAccess)
		}
		return []float64{}
	}
	return mat.Col(nil, j, m.data)
}

// Dense exposes the backing gonum matrix for numeric callers. It is nil for
// degenerate (zero row or zero column) shapes.
func (m *Matrix) Dense() *mat.Dense { return m.data }

// Slice returns a view of rows [start, end). The view shares backing data
// with m; it is not a copy.
func (m *Matrix) Slice(start, end int) (*Matrix, error) {
	if start < 0 || end < start || end > m.rows {
		return nil, fmt.Errorf("%w: [%d, %d) of %d rows", ErrRangeInvalid, start, end, m.rows)
	}

	out := &Matrix{names: m.names, rows: end - start}
	if out.rows > 0 && len(m.names) > 0 {
		out.data = m.data.Slice(start, end, 0, len(m.names)).(*mat.Dense)
	}
	return out, nil
}

func cloneNames(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
