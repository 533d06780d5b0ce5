package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-doceval/table"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantN   int
		mean    float64
		sample  float64
		popular float64
	}{
		{
			name:    "three values",
			values:  []float64{0.812, 0.994, 0.887},
			wantN:   3,
			mean:    0.898,
			sample:  0.091,
			popular: 0.075,
		},
		{
			name:    "two values",
			values:  []float64{1, 3},
			wantN:   2,
			mean:    2,
			sample:  1.414,
			popular: 1,
		},
		{
			name:    "four values",
			values:  []float64{0, 0, 1, 1},
			wantN:   4,
			mean:    0.5,
			sample:  0.577,
			popular: 0.5,
		},
		{
			name:    "constant values",
			values:  []float64{0.7, 0.7, 0.7},
			wantN:   3,
			mean:    0.7,
			sample:  0,
			popular: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.values)
			assert.Equal(t, tt.wantN, s.Count)
			assert.InDelta(t, tt.mean, s.Mean, 1e-9)
			assert.InDelta(t, tt.sample, s.SampleSD, 1e-9)
			assert.InDelta(t, tt.popular, s.PopulationSD, 1e-9)
		})
	}
}

func TestSummarize_Degenerate(t *testing.T) {
	empty := Summarize(nil)
	assert.Zero(t, empty.Count)
	assert.True(t, math.IsNaN(empty.Mean))
	assert.True(t, math.IsNaN(empty.SampleSD))
	assert.True(t, math.IsNaN(empty.PopulationSD))

	single := Summarize([]float64{0.5})
	assert.Equal(t, 1, single.Count)
	assert.InDelta(t, 0.5, single.Mean, 1e-9)
	assert.True(t, math.IsNaN(single.SampleSD))
	assert.InDelta(t, 0.0, single.PopulationSD, 1e-9)
}

func metricsTable(t *testing.T) *table.Table {
	t.Helper()

	tbl := table.New("filename", "doctype", "connector", "cct-accuracy", "cct-%missing")
	require.NoError(t, tbl.Append("Bank Good Credit Loan.pptx", "pptx", "connector1", "0.812", "0.001"))
	require.NoError(t, tbl.Append("Performance-Audit-Discussion.pdf", "pdf", "connector1", "0.994", "0.002"))
	require.NoError(t, tbl.Append("currency.csv", "csv", "connector2", "0.887", "0.041"))
	return tbl
}

func TestAggregate(t *testing.T) {
	agg, err := Aggregate(metricsTable(t), []string{"cct-accuracy", "cct-%missing"})
	require.NoError(t, err)

	assert.Equal(t, AggregateColumns, agg.Columns())
	require.Equal(t, 2, agg.Len())
	assert.Equal(t, []string{"cct-accuracy", "0.898", "0.091", "0.075", "3"}, agg.Row(0))
	assert.Equal(t, "cct-%missing", agg.Row(1)[0])
}

func TestAggregate_UnknownColumn(t *testing.T) {
	_, err := Aggregate(metricsTable(t), []string{"nope"})
	assert.Error(t, err)
}

func TestSummaryRow(t *testing.T) {
	sum, err := SummaryRow(metricsTable(t), []string{"cct-accuracy"})
	require.NoError(t, err)

	assert.Equal(t, []string{"cct-accuracy_mean", "cct-accuracy_stdev", "cct-accuracy_count"}, sum.Columns())
	require.Equal(t, 1, sum.Len())
	assert.Equal(t, []string{"0.898", "0.091", "3"}, sum.Row(0))
}

func TestGroupBy(t *testing.T) {
	tests := []struct {
		key        string
		wantGroups []string
	}{
		{"doctype", []string{"csv", "pdf", "pptx"}},
		{"connector", []string{"connector1", "connector2"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			grouped, err := GroupBy(metricsTable(t), tt.key, []string{"cct-accuracy", "cct-%missing"})
			require.NoError(t, err)

			require.Equal(t, len(tt.wantGroups)+1, grouped.Len())
			keys, ok := grouped.Column(tt.key)
			require.True(t, ok)
			assert.Equal(t, append(tt.wantGroups, table.Null), keys)

			// overall summary spans every row
			last := grouped.Len() - 1
			assert.Equal(t, "0.898", grouped.Value(last, "cct-accuracy_mean"))
			assert.Equal(t, "3", grouped.Value(last, "cct-accuracy_count"))
		})
	}
}

func TestGroupBy_ConnectorStats(t *testing.T) {
	grouped, err := GroupBy(metricsTable(t), "connector", []string{"cct-accuracy"})
	require.NoError(t, err)

	assert.Equal(t, []string{"connector1", "0.903", "0.129", "2"}, grouped.Row(0))
	// a single-member group has no sample deviation
	assert.Equal(t, []string{"connector2", "0.887", table.Null, "1"}, grouped.Row(1))
}

func TestGroupBy_SkipsNullKeys(t *testing.T) {
	tbl := table.New("connector", "score")
	require.NoError(t, tbl.Append("a", "1"))
	require.NoError(t, tbl.Append(table.Null, "3"))

	grouped, err := GroupBy(tbl, "connector", []string{"score"})
	require.NoError(t, err)

	require.Equal(t, 2, grouped.Len())
	assert.Equal(t, []string{"a", "1", table.Null, "1"}, grouped.Row(0))
	assert.Equal(t, []string{table.Null, "2", "1.414", "2"}, grouped.Row(1))
}
