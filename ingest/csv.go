package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rshade/facedeck/dataset"
	"github.com/rshade/facedeck/internal/logging"
)

// ColumnType declares how a CSV column is loaded.
type ColumnType int

const (
	// ColumnTypeAuto detects the type: numeric when every cell parses as a
	// float, string otherwise.
	ColumnTypeAuto ColumnType = iota
	// ColumnTypeString loads the column as free-form text.
	ColumnTypeString
	// ColumnTypeNumber loads the column as floats. An unparsable cell is an
	// error rather than a silent fallback to text.
	ColumnTypeNumber
)

// String returns the type name for logs and error messages.
func (t ColumnType) String() string {
	switch t {
	case ColumnTypeAuto:
		return "auto"
	case ColumnTypeString:
		return "string"
	case ColumnTypeNumber:
		return "number"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
}

// CSV structural errors.
var (
	ErrNoHeader          = errors.New("csv input has no header row")
	ErrBlankHeader       = errors.New("csv header has a blank column name")
	ErrSchemaColumn      = errors.New("schema references a column missing from the header")
	ErrInvalidColumnType = errors.New("invalid column type")
)

// Options configures CSV loading.
type Options struct {
	// Types overrides type detection per column name. Columns not listed are
	// detected automatically.
	Types map[string]ColumnType

	// Comma is the field separator. Zero means ','.
	Comma rune
}

// DefaultOptions returns options with automatic type detection and comma
// separation.
func DefaultOptions() Options { return Options{} }

// ReadCSV parses a header plus records from r into a typed Dataset. A column
// is numeric only when every cell parses as a float; a numeric-looking
// column with a single unparsable cell stays textual. Schema overrides in
// opts.Types force a column's type instead of detecting it.
func ReadCSV(ctx context.Context, r io.Reader, opts Options) (*dataset.Dataset, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("operation", "read_csv").
		Msg("parsing csv input")

	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	for i, name := range header {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: column %d", ErrBlankHeader, i)
		}
	}

	if err := checkSchema(header, opts.Types); err != nil {
		return nil, err
	}

	cells, err := readRecords(reader, len(header))
	if err != nil {
		log.Error().
			Ctx(ctx).
			Str("component", "ingest").
			Err(err).
			Msg("failed to read csv records")
		return nil, err
	}

	cols := make([]dataset.Column, len(header))
	numeric := 0
	for j, name := range header {
		col, buildErr := buildColumn(name, cells[j], opts.Types[name])
		if buildErr != nil {
			return nil, buildErr
		}
		if _, ok := col.(*dataset.NumberColumn); ok {
			numeric++
		}
		cols[j] = col
	}

	ds, err := dataset.New(cols...)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("operation", "read_csv").
		Int("rows", ds.Rows()).
		Int("columns", ds.Cols()).
		Int("numeric_columns", numeric).
		Msg("csv parsed")

	return ds, nil
}

// LoadCSV opens and parses a CSV file.
func LoadCSV(ctx context.Context, path string, opts Options) (*dataset.Dataset, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("operation", "load_csv").
		Str("csv_path", path).
		Msg("loading csv file")

	f, err := os.Open(path)
	if err != nil {
		log.Error().
			Ctx(ctx).
			Str("component", "ingest").
			Err(err).
			Str("csv_path", path).
			Msg("failed to open csv file")
		return nil, fmt.Errorf("opening csv file: %w", err)
	}
	defer f.Close()

	return ReadCSV(ctx, f, opts)
}

// checkSchema verifies every schema override names a header column.
func checkSchema(header []string, types map[string]ColumnType) error {
	if len(types) == 0 {
		return nil
	}
	known := make(map[string]bool, len(header))
	for _, name := range header {
		known[name] = true
	}
	for name := range types {
		if !known[name] {
			return fmt.Errorf("%w: %q", ErrSchemaColumn, name)
		}
	}
	return nil
}

// readRecords collects the remaining records column-wise. The csv reader
// enforces a consistent field count against the header.
func readRecords(reader *csv.Reader, width int) ([][]string, error) {
	cells := make([][]string, width)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return cells, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv records: %w", err)
		}
		for j, cell := range record {
			cells[j] = append(cells[j], cell)
		}
	}
}

// buildColumn types one column's cells per the declared type.
func buildColumn(name string, cells []string, declared ColumnType) (dataset.Column, error) {
	switch declared {
	case ColumnTypeString:
		return dataset.Strings(name, cells), nil
	case ColumnTypeNumber:
		values, row, ok := parseFloats(cells)
		if !ok {
			return nil, fmt.Errorf("%w: column %q row %d: cannot parse %q",
				dataset.ErrMalformedColumn, name, row, cells[row])
		}
		return dataset.Numbers(name, values), nil
	case ColumnTypeAuto:
		if values, _, ok := parseFloats(cells); ok && len(values) > 0 {
			return dataset.Numbers(name, values), nil
		}
		return dataset.Strings(name, cells), nil
	default:
		return nil, fmt.Errorf("%w: column %q declared %s", ErrInvalidColumnType, name, declared)
	}
}

// parseFloats parses every cell. On the first unparsable cell it reports
// that row and false.
func parseFloats(cells []string) ([]float64, int, bool) {
	values := make([]float64, len(cells))
	for i, cell := range cells {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, i, false
		}
		values[i] = v
	}
	return values, 0, true
}
