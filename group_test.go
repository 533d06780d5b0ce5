package doceval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-doceval/table"
)

func textTable(t *testing.T) *table.Table {
	t.Helper()

	tbl := table.New("filename", "doctype", "connector", "cct-accuracy", "cct-%missing")
	require.NoError(t, tbl.Append("Bank Good Credit Loan.pptx", "pptx", "connector1", "0.812", "0.001"))
	require.NoError(t, tbl.Append("Performance-Audit-Discussion.pdf", "pdf", "connector1", "0.994", "0.002"))
	require.NoError(t, tbl.Append("currency.csv", "csv", "connector2", "0.887", "0.041"))
	return tbl
}

func TestGroupTextExtractionAccuracy(t *testing.T) {
	tests := []struct {
		grouping string
		want     []string
	}{
		{GroupByDoctype, []string{"csv", "pdf", "pptx"}},
		{GroupByConnector, []string{"connector1", "connector2"}},
	}

	for _, tt := range tests {
		t.Run(tt.grouping, func(t *testing.T) {
			exportDir := t.TempDir()
			err := GroupTextExtractionAccuracy(tt.grouping, textTable(t), exportDir, WithLogger(quietLogger()))
			require.NoError(t, err)

			grouped := readReport(t, exportDir, GroupedFileName(tt.grouping))
			assert.Equal(t, []string{
				tt.grouping,
				"cct-accuracy_mean", "cct-accuracy_stdev", "cct-accuracy_count",
				"cct-%missing_mean", "cct-%missing_stdev", "cct-%missing_count",
			}, grouped.Columns())

			keys, _ := grouped.Column(tt.grouping)
			assert.Equal(t, append(tt.want, table.Null), keys)
		})
	}
}

func TestGroupTextExtractionAccuracy_Connector(t *testing.T) {
	exportDir := t.TempDir()
	require.NoError(t, GroupTextExtractionAccuracy(GroupByConnector, textTable(t), exportDir, WithLogger(quietLogger())))

	grouped := readReport(t, exportDir, "all-connector-agg-cct.tsv")
	require.Equal(t, 3, grouped.Len())
	assert.Equal(t, "0.903", grouped.Value(0, "cct-accuracy_mean"))
	assert.Equal(t, "2", grouped.Value(0, "cct-accuracy_count"))
	assert.Equal(t, "0.898", grouped.Value(2, "cct-accuracy_mean"))
	assert.Equal(t, "3", grouped.Value(2, "cct-accuracy_count"))
}

func TestGroupTextExtractionAccuracy_NumericIdentifiers(t *testing.T) {
	tbl := table.New("filename", "doctype", "connector", "cct-accuracy")
	require.NoError(t, tbl.Append("1", "pdf", "1", "0.5"))
	require.NoError(t, tbl.Append("2", "pdf", "2", "0.7"))
	require.NoError(t, tbl.Append("3", "csv", "2", "0.9"))

	tests := []struct {
		grouping string
		want     []string
	}{
		{GroupByDoctype, []string{"doctype", "cct-accuracy_mean", "cct-accuracy_stdev", "cct-accuracy_count"}},
		{GroupByConnector, []string{"connector", "cct-accuracy_mean", "cct-accuracy_stdev", "cct-accuracy_count"}},
	}

	for _, tt := range tests {
		t.Run(tt.grouping, func(t *testing.T) {
			exportDir := t.TempDir()
			require.NoError(t, GroupTextExtractionAccuracy(tt.grouping, tbl, exportDir, WithLogger(quietLogger())))

			grouped := readReport(t, exportDir, GroupedFileName(tt.grouping))
			assert.Equal(t, tt.want, grouped.Columns())
		})
	}
}

func TestGroupTextExtractionAccuracy_InvalidColumn(t *testing.T) {
	allNull := table.New("filename", "connector", "cct-accuracy")
	require.NoError(t, allNull.Append("a.pdf", table.Null, "0.5"))
	require.NoError(t, allNull.Append("b.pdf", table.Null, "0.7"))

	noColumn := table.New("filename", "cct-accuracy")
	require.NoError(t, noColumn.Append("a.pdf", "0.5"))

	tests := []struct {
		name  string
		tbl   *table.Table
		empty bool
	}{
		{"empty table", table.New("filename", "connector", "cct-accuracy"), true},
		{"nil table", nil, true},
		{"missing column", noColumn, false},
		{"all null", allNull, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exportDir := t.TempDir()
			err := GroupTextExtractionAccuracy(GroupByConnector, tt.tbl, exportDir, WithLogger(quietLogger()))
			require.ErrorIs(t, err, ErrInvalidGroupingColumn)
			if tt.empty {
				assert.ErrorIs(t, err, ErrEmptyTable)
			}

			_, statErr := os.Stat(filepath.Join(exportDir, GroupedFileName(GroupByConnector)))
			assert.ErrorIs(t, statErr, os.ErrNotExist)
		})
	}
}

func TestGroupTextExtractionAccuracy_InvalidGrouping(t *testing.T) {
	err := GroupTextExtractionAccuracy("filename", textTable(t), t.TempDir())
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.NotErrorIs(t, err, ErrInvalidGroupingColumn)
}

func TestGroupTextExtractionAccuracyFile(t *testing.T) {
	dir := t.TempDir()
	input, err := textTable(t).WriteFile(dir, TextAccuracyFile)
	require.NoError(t, err)

	exportDir := filepath.Join(dir, "grouped")
	require.NoError(t, GroupTextExtractionAccuracyFile(GroupByDoctype, input, exportDir, WithLogger(quietLogger())))

	grouped := readReport(t, exportDir, GroupedFileName(GroupByDoctype))
	assert.Equal(t, 4, grouped.Len())
}

func TestGroupTextExtractionAccuracyFile_Errors(t *testing.T) {
	dir := t.TempDir()

	err := GroupTextExtractionAccuracyFile(GroupByDoctype, filepath.Join(dir, "missing.tsv"), dir)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// an unknown grouping fails before the file is opened
	err = GroupTextExtractionAccuracyFile("page", filepath.Join(dir, "missing.tsv"), dir)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	empty := filepath.Join(dir, "empty.tsv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	err = GroupTextExtractionAccuracyFile(GroupByDoctype, empty, dir, WithLogger(quietLogger()))
	assert.ErrorIs(t, err, ErrInvalidGroupingColumn)
	assert.ErrorIs(t, err, ErrEmptyTable)
}
