package prep

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/rshade/facedeck/dataset"
	"github.com/rshade/facedeck/internal/logging"
)

// Target range of scaled values.
const (
	ScaleMin = -1.0
	ScaleMax = 1.0
)

// ErrNotFitted is returned when Transform or Params is called before Fit.
var ErrNotFitted = errors.New("scaler has not been fitted")

// ColumnScale holds the fitted range of one feature column.
type ColumnScale struct {
	Name string
	Min  float64
	Max  float64

	// Degenerate marks a constant column (Min == Max). Every value in a
	// degenerate column scales to exactly zero.
	Degenerate bool
}

// ScaleParams holds the fitted ranges of every feature column. Params are
// computed once per dataset version and reused for every page; they are
// never refitted per page.
type ScaleParams struct {
	Columns []ColumnScale
}

// Column looks up the fitted range of the named column.
func (p ScaleParams) Column(name string) (ColumnScale, bool) {
	for _, c := range p.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnScale{}, false
}

// DegenerateColumns returns the names of constant columns, in matrix order.
func (p ScaleParams) DegenerateColumns() []string {
	var out []string
	for _, c := range p.Columns {
		if c.Degenerate {
			out = append(out, c.Name)
		}
	}
	return out
}

// Scaler maps feature values onto [ScaleMin, ScaleMax] using global
// per-column minima and maxima. Fit before Transform; FitTransform does
// both. The zero value is unfitted.
type Scaler struct {
	params ScaleParams
	fitted bool
}

// NewScaler returns an unfitted Scaler.
func NewScaler() *Scaler {
	return &Scaler{}
}

// Fit computes per-column minima and maxima over the entire matrix. A
// constant column is recorded as degenerate and logged as a warning. Fitting
// an empty (zero row) matrix fails with dataset.ErrEmptyDataset.
func (s *Scaler) Fit(ctx context.Context, m *Matrix) error {
	if m.Rows() == 0 {
		return fmt.Errorf("%w: cannot fit scaler", dataset.ErrEmptyDataset)
	}

	log := logging.FromContext(ctx)
	params := ScaleParams{Columns: make([]ColumnScale, m.Cols())}

	for j, name := range m.Names() {
		col := m.Col(j)
		cs := ColumnScale{
			Name: name,
			Min:  floats.Min(col),
			Max:  floats.Max(col),
		}
		if cs.Min == cs.Max {
			cs.Degenerate = true
			log.Warn().
				Ctx(ctx).
				Str("component", "prep").
				Str("operation", "fit").
				Str("column", name).
				Float64("value", cs.Min).
				Msg("constant column scales to zero")
		}
		params.Columns[j] = cs
	}

	s.params = params
	s.fitted = true
	return nil
}

// Params returns the fitted scale parameters.
func (s *Scaler) Params() (ScaleParams, error) {
	if !s.fitted {
		return ScaleParams{}, ErrNotFitted
	}
	return s.params, nil
}

// Transform maps every value of m onto [ScaleMin, ScaleMax] using the fitted
// ranges: v' = 2*(v-min)/(max-min) - 1. Degenerate columns map to zero. The
// matrix columns must match the fitted columns. Transform is idempotent on
// already-scaled data because a scaled column's range is exactly [-1, 1].
func (s *Scaler) Transform(ctx context.Context, m *Matrix) (*Matrix, error) {
	if !s.fitted {
		return nil, ErrNotFitted
	}
	if err := s.checkShape(m); err != nil {
		return nil, err
	}

	out := &Matrix{names: m.names, rows: m.rows}
	if m.rows == 0 || m.Cols() == 0 {
		return out, nil
	}

	out.data = mat.NewDense(m.rows, m.Cols(), nil)
	for j, cs := range s.params.Columns {
		scaled := make([]float64, m.rows)
		if !cs.Degenerate {
			span := cs.Max - cs.Min
			for i := range scaled {
				scaled[i] = (ScaleMax-ScaleMin)*(m.At(i, j)-cs.Min)/span + ScaleMin
			}
		}
		out.data.SetCol(j, scaled)
	}

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "prep").
		Str("operation", "transform").
		Int("rows", m.Rows()).
		Int("cols", m.Cols()).
		Msg("scaled feature matrix")

	return out, nil
}

// FitTransform fits the scaler on m and returns the scaled matrix.
func (s *Scaler) FitTransform(ctx context.Context, m *Matrix) (*Matrix, error) {
	if err := s.Fit(ctx, m); err != nil {
		return nil, err
	}
	return s.Transform(ctx, m)
}

func (s *Scaler) checkShape(m *Matrix) error {
	if m.Cols() != len(s.params.Columns) {
		return fmt.Errorf("%w: fitted %d columns, got %d",
			ErrShapeMismatch, len(s.params.Columns), m.Cols())
	}
	for j, name := range m.Names() {
		if name != s.params.Columns[j].Name {
			return fmt.Errorf("%w: column %d is %q, fitted %q",
				ErrShapeMismatch, j, name, s.params.Columns[j].Name)
		}
	}
	return nil
}
