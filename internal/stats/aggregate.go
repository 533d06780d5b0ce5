package stats

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/jamesainslie/go-doceval/table"
)

// AggregateColumns is the header of long-format aggregate reports.
var AggregateColumns = []string{"metric", "average", "sample_sd", "population_sd", "count"}

// Aggregate builds a long-format report with one row per metric column.
func Aggregate(t *table.Table, metricCols []string) (*table.Table, error) {
	if err := checkColumns(t, metricCols); err != nil {
		return nil, err
	}

	out := table.New(AggregateColumns...)
	for _, col := range metricCols {
		s := Summarize(t.Floats(col, nil))
		if err := out.Append(col, table.Float(s.Mean), table.Float(s.SampleSD), table.Float(s.PopulationSD), table.Int(s.Count)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// SummaryRow builds a one-row report holding <metric>_mean, <metric>_stdev and
// <metric>_count for every metric column.
func SummaryRow(t *table.Table, metricCols []string) (*table.Table, error) {
	if err := checkColumns(t, metricCols); err != nil {
		return nil, err
	}

	out := table.New(wideColumns(metricCols)...)
	if err := out.Append(wideValues(t, metricCols, nil)...); err != nil {
		return nil, err
	}
	return out, nil
}

// GroupBy summarises metric columns per distinct non-null value of key. Groups
// are sorted by value; a final row with a null key summarises every row.
func GroupBy(t *table.Table, key string, metricCols []string) (*table.Table, error) {
	if err := checkColumns(t, append([]string{key}, metricCols...)); err != nil {
		return nil, err
	}

	keyed := lo.Filter(lo.Range(t.Len()), func(i int, _ int) bool {
		return t.Value(i, key) != table.Null
	})
	groups := lo.GroupBy(keyed, func(i int) string {
		return t.Value(i, key)
	})
	values := lo.Keys(groups)
	sort.Strings(values)

	out := table.New(append([]string{key}, wideColumns(metricCols)...)...)
	for _, v := range values {
		row := append([]string{v}, wideValues(t, metricCols, groups[v])...)
		if err := out.Append(row...); err != nil {
			return nil, err
		}
	}

	summary := append([]string{table.Null}, wideValues(t, metricCols, nil)...)
	if err := out.Append(summary...); err != nil {
		return nil, err
	}
	return out, nil
}

func wideColumns(metricCols []string) []string {
	cols := make([]string, 0, 3*len(metricCols))
	for _, c := range metricCols {
		cols = append(cols, c+"_mean", c+"_stdev", c+"_count")
	}
	return cols
}

func wideValues(t *table.Table, metricCols []string, rows []int) []string {
	values := make([]string, 0, 3*len(metricCols))
	for _, c := range metricCols {
		s := Summarize(t.Floats(c, rows))
		values = append(values, table.Float(s.Mean), table.Float(s.SampleSD), table.Int(s.Count))
	}
	return values
}

func checkColumns(t *table.Table, cols []string) error {
	for _, c := range cols {
		if !t.HasColumn(c) {
			return fmt.Errorf("stats: unknown column %q", c)
		}
	}
	return nil
}
