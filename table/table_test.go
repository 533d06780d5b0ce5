package table

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()

	tbl := New("filename", "doctype", "connector", "cct-accuracy", "cct-%missing")
	require.NoError(t, tbl.Append("Bank Good Credit Loan.pptx", "pptx", "connector1", "0.812", "0.001"))
	require.NoError(t, tbl.Append("Performance-Audit-Discussion.pdf", "pdf", "connector1", "0.994", "0.002"))
	require.NoError(t, tbl.Append("currency.csv", "csv", Null, "0.887", Null))
	return tbl
}

func TestAppend_ColumnMismatch(t *testing.T) {
	tbl := New("a", "b")
	err := tbl.Append("1")
	assert.ErrorIs(t, err, ErrColumnMismatch)
	assert.Zero(t, tbl.Len())
}

func TestColumnAccess(t *testing.T) {
	tbl := sampleTable(t)

	assert.Equal(t, 3, tbl.Len())
	assert.True(t, tbl.HasColumn("doctype"))
	assert.False(t, tbl.HasColumn("missing"))

	values, ok := tbl.Column("connector")
	require.True(t, ok)
	assert.Equal(t, []string{"connector1", "connector1", Null}, values)

	_, ok = tbl.Column("missing")
	assert.False(t, ok)

	assert.Equal(t, "pdf", tbl.Value(1, "doctype"))
	assert.Equal(t, []float64{0.001, 0.002}, tbl.Floats("cct-%missing", nil))
	assert.Equal(t, []float64{0.887}, tbl.Floats("cct-accuracy", []int{2}))
}

func TestNumericColumns(t *testing.T) {
	tbl := sampleTable(t)
	assert.Equal(t, []string{"cct-accuracy", "cct-%missing"}, tbl.NumericColumns())

	empty := New("doctype")
	require.NoError(t, empty.Append(Null))
	assert.Empty(t, empty.NumericColumns())
}

func TestFloat(t *testing.T) {
	assert.Equal(t, "0.812", Float(0.812))
	assert.Equal(t, "1", Float(1))
	assert.Equal(t, Null, Float(math.NaN()))
	assert.Equal(t, "3", Int(3))
}

func TestWriteRead_RoundTrip(t *testing.T) {
	tbl := sampleTable(t)

	var buf bytes.Buffer
	require.NoError(t, tbl.Write(&buf))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "filename\tdoctype\tconnector\tcct-accuracy\tcct-%missing", lines[0])
	assert.Equal(t, "currency.csv\tcsv\t\t0.887\t", lines[3])

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns(), got.Columns())
	for i := 0; i < tbl.Len(); i++ {
		assert.Equal(t, tbl.Row(i), got.Row(i))
	}
}

func TestRead_Empty(t *testing.T) {
	tbl, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, tbl.Len())
	assert.Empty(t, tbl.Columns())
}

func TestRead_RaggedRows(t *testing.T) {
	_, err := Read(strings.NewReader("a\tb\n1\n"))
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "export")
	tbl := sampleTable(t)

	path, err := tbl.WriteFile(dir, "all-docs-cct.tsv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "all-docs-cct.tsv"), path)

	first, err := os.ReadFile(path)
	require.NoError(t, err)

	// rewriting into an existing directory replaces the file
	_, err = tbl.WriteFile(dir, "all-docs-cct.tsv")
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Len())
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.tsv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
