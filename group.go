package doceval

import (
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/jamesainslie/go-doceval/internal/stats"
	"github.com/jamesainslie/go-doceval/table"
)

// Grouping columns accepted by the grouping aggregator.
const (
	GroupByDoctype   = "doctype"
	GroupByConnector = "connector"
)

// GroupedFileName returns the report name for text accuracy grouped by grouping.
func GroupedFileName(grouping string) string {
	return fmt.Sprintf("all-%s-agg-cct.tsv", grouping)
}

// GroupTextExtractionAccuracy summarises every numeric column of t per distinct
// value of the grouping column and writes the result, followed by an overall
// summary row, to exportDir.
//
// An empty table, a missing grouping column or one without any value yields an
// error matching ErrInvalidGroupingColumn; nothing is written then.
func GroupTextExtractionAccuracy(grouping string, t *table.Table, exportDir string, opts ...Option) error {
	cfg := newConfig(opts)
	if err := validateGrouping(grouping); err != nil {
		return err
	}
	return groupTable(grouping, t, exportDir, cfg)
}

// GroupTextExtractionAccuracyFile is GroupTextExtractionAccuracy for a table
// previously written as TSV.
func GroupTextExtractionAccuracyFile(grouping, path, exportDir string, opts ...Option) error {
	cfg := newConfig(opts)
	if err := validateGrouping(grouping); err != nil {
		return err
	}

	t, err := table.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load metrics table: %w", err)
	}
	return groupTable(grouping, t, exportDir, cfg)
}

func validateGrouping(grouping string) error {
	switch grouping {
	case GroupByDoctype, GroupByConnector:
		return nil
	default:
		return fmt.Errorf("%w: grouping %q, want %q or %q", ErrInvalidArgument, grouping, GroupByDoctype, GroupByConnector)
	}
}

func groupTable(grouping string, t *table.Table, exportDir string, cfg config) error {
	if t == nil || t.Len() == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidGroupingColumn, ErrEmptyTable)
	}
	values, ok := t.Column(grouping)
	if !ok {
		return fmt.Errorf("%w: column %q not found", ErrInvalidGroupingColumn, grouping)
	}
	if lo.EveryBy(values, func(v string) bool { return v == table.Null }) {
		return fmt.Errorf("%w: column %q has no values", ErrInvalidGroupingColumn, grouping)
	}

	// identifier columns stay out even when every value looks numeric
	metricCols := lo.Without(t.NumericColumns(), append([]string{grouping}, documentColumns...)...)
	grouped, err := stats.GroupBy(t, grouping, metricCols)
	if err != nil {
		return err
	}

	path, err := grouped.WriteFile(exportDir, GroupedFileName(grouping))
	if err != nil {
		return fmt.Errorf("write grouped report: %w", err)
	}
	cfg.logger.Info("wrote grouped report",
		slog.String("grouping", grouping),
		slog.Int("groups", grouped.Len()-1),
		slog.String("path", path))
	return nil
}
