// Package table holds metrics tables and reads and writes them as
// tab-separated files.
//
// Cells are strings. An empty cell is null; a column is numeric when every
// non-null cell parses as a float and at least one cell is non-null.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
)

// ErrColumnMismatch indicates a row whose width differs from the header.
var ErrColumnMismatch = errors.New("table: row width does not match columns")

// Null is the value of a missing cell.
const Null = ""

// Table is an ordered set of rows sharing one header.
type Table struct {
	columns []string
	rows    [][]string
}

// New creates an empty table with the given columns.
func New(columns ...string) *Table {
	return &Table{columns: slices.Clone(columns)}
}

// Columns returns the header.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []string {
	return slices.Clone(t.rows[i])
}

// Append adds a row. The row must have one value per column.
func (t *Table) Append(values ...string) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("%w: got %d values for %d columns", ErrColumnMismatch, len(values), len(t.columns))
	}
	t.rows = append(t.rows, slices.Clone(values))
	return nil
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	return slices.Index(t.columns, name)
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	return t.Index(name) >= 0
}

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]string, bool) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, false
	}
	values := make([]string, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[idx]
	}
	return values, true
}

// Value returns the cell at row i in the named column.
func (t *Table) Value(i int, name string) string {
	idx := t.Index(name)
	if idx < 0 {
		return Null
	}
	return t.rows[i][idx]
}

// Floats returns the non-null values of the named column at the given rows
// (every row when rows is nil). Values that do not parse are skipped.
func (t *Table) Floats(name string, rows []int) []float64 {
	idx := t.Index(name)
	if idx < 0 {
		return nil
	}
	if rows == nil {
		rows = make([]int, len(t.rows))
		for i := range rows {
			rows[i] = i
		}
	}

	var out []float64
	for _, i := range rows {
		v := t.rows[i][idx]
		if v == Null {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// IsNumeric reports whether the named column holds only numbers and nulls,
// with at least one number.
func (t *Table) IsNumeric(name string) bool {
	values, ok := t.Column(name)
	if !ok {
		return false
	}

	seen := false
	for _, v := range values {
		if v == Null {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}

// NumericColumns returns the numeric columns in header order.
func (t *Table) NumericColumns() []string {
	var cols []string
	for _, c := range t.columns {
		if t.IsNumeric(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// Float formats v for a cell. NaN becomes null.
func Float(v float64) string {
	if math.IsNaN(v) {
		return Null
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Int formats n for a cell.
func Int(n int) string {
	return strconv.Itoa(n)
}

// Write encodes the table as TSV with one header row.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(t.columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(t.rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// WriteFile writes the table to dir/name, creating dir when needed and
// replacing any existing file. It returns the written path.
func (t *Table) WriteFile(dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	if err := t.Write(f); err != nil {
		_ = f.Close() // write error takes precedence
		return "", fmt.Errorf("%s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return path, nil
}

// Read decodes a TSV stream. An empty stream yields a table with no columns.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := New(header...)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if err := t.Append(record...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ReadFile reads the TSV file at path.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer func() { _ = f.Close() }()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
