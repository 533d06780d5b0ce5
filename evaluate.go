package doceval

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-doceval/elements"
	"github.com/jamesainslie/go-doceval/internal/corpus"
	"github.com/jamesainslie/go-doceval/internal/stats"
	"github.com/jamesainslie/go-doceval/metrics"
	"github.com/jamesainslie/go-doceval/table"
)

// Report file names written to the export directory.
const (
	TextAccuracyFile            = "all-docs-cct.tsv"
	TextAggregateFile           = "aggregate-scores-cct.tsv"
	ElementTypeFile             = "all-docs-element-type-frequency.tsv"
	ElementTypeAggregateFile    = "aggregate-scores-element-type.tsv"
	TableStructureFile          = "all-docs-table-structure-accuracy.tsv"
	TableStructureAggregateFile = "aggregate-table-structure-accuracy.tsv"
)

// precision is the number of decimal places kept in per-document scores.
const precision = 3

var documentColumns = []string{"filename", "doctype", "connector"}

var (
	textMetrics        = []string{"cct-accuracy", "cct-%missing"}
	elementTypeMetrics = []string{"element-type-accuracy"}
	tableMetrics       = []string{
		"total_tables",
		"table_level_acc",
		"element_col_level_index_acc",
		"element_row_level_index_acc",
		"element_col_level_content_acc",
		"element_row_level_content_acc",
	}
)

// scoreFunc returns the metric values of one document, formatted for a table.
type scoreFunc func(doc corpus.Document) ([]string, error)

// MeasureTextExtractionAccuracy scores the text of every prediction under
// outputDir against its plain-text gold standard under sourceDir. It writes
// per-document scores and their summary to exportDir and, with WithGrouping,
// the grouped report as well.
func MeasureTextExtractionAccuracy(ctx context.Context, outputDir, sourceDir, exportDir string, opts ...Option) error {
	cfg := newConfig(opts)
	if err := cfg.validate(); err != nil {
		return err
	}

	score := func(doc corpus.Document) ([]string, error) {
		ts, err := scoreText(
			filepath.Join(outputDir, filepath.FromSlash(doc.Prediction)),
			filepath.Join(sourceDir, filepath.FromSlash(doc.Gold)),
			cfg,
		)
		if err != nil {
			return nil, err
		}
		cfg.logger.Debug("scored text",
			slog.String("file", doc.Filename),
			slog.Float64("accuracy", ts.Accuracy),
			slog.Float64("missing", ts.PercentMissing))
		return []string{table.Float(ts.Accuracy), table.Float(ts.PercentMissing)}, nil
	}

	tbl, err := evaluate(ctx, outputDir, sourceDir, corpus.Options{
		OutputList:    cfg.outputList,
		SourceList:    cfg.sourceList,
		PredictionExt: cfg.outputType,
		GoldExt:       "txt",
	}, textMetrics, score, cfg)
	if err != nil {
		return err
	}

	agg, err := stats.Aggregate(tbl, textMetrics)
	if err != nil {
		return err
	}
	if err := writeReports(exportDir, cfg, report{TextAccuracyFile, tbl}, report{TextAggregateFile, agg}); err != nil {
		return err
	}

	if cfg.grouping != "" {
		return groupTable(cfg.grouping, tbl, exportDir, cfg)
	}
	return nil
}

// TextScore is the text accuracy of a single document.
type TextScore struct {
	Accuracy       float64
	PercentMissing float64
}

// ScoreText scores one prediction file, encoded as set by WithOutputType,
// against a plain-text gold standard.
func ScoreText(outputPath, sourcePath string, opts ...Option) (TextScore, error) {
	cfg := newConfig(opts)
	if err := cfg.validate(); err != nil {
		return TextScore{}, err
	}
	return scoreText(outputPath, sourcePath, cfg)
}

func scoreText(outputPath, sourcePath string, cfg config) (TextScore, error) {
	output, err := readPrediction(outputPath, cfg.outputType)
	if err != nil {
		return TextScore{}, err
	}
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return TextScore{}, fmt.Errorf("read gold standard: %w", err)
	}

	return TextScore{
		Accuracy:       metrics.Round(metrics.CalculateAccuracy(output, string(source), cfg.weights), precision),
		PercentMissing: metrics.CalculatePercentMissingText(output, string(source)),
	}, nil
}

// MeasureElementTypeAccuracy compares the element type frequencies of every
// prediction under outputDir with its gold element list under sourceDir.
func MeasureElementTypeAccuracy(ctx context.Context, outputDir, sourceDir, exportDir string, opts ...Option) error {
	cfg := newConfig(opts)
	if err := cfg.validate(); err != nil {
		return err
	}

	score := func(doc corpus.Document) ([]string, error) {
		output, err := elements.Load(filepath.Join(outputDir, filepath.FromSlash(doc.Prediction)))
		if err != nil {
			return nil, err
		}
		source, err := elements.Load(filepath.Join(sourceDir, filepath.FromSlash(doc.Gold)))
		if err != nil {
			return nil, err
		}

		acc := metrics.CalculateElementTypePercentMatch(
			metrics.ElementTypeFrequency(output),
			metrics.ElementTypeFrequency(source),
			cfg.depthWeight,
		)
		acc = metrics.Round(acc, precision)
		cfg.logger.Debug("scored element types", slog.String("file", doc.Filename), slog.Float64("accuracy", acc))
		return []string{table.Float(acc)}, nil
	}

	tbl, err := evaluate(ctx, outputDir, sourceDir, corpus.Options{
		OutputList:    cfg.outputList,
		SourceList:    cfg.sourceList,
		PredictionExt: "json",
		GoldExt:       "json",
	}, elementTypeMetrics, score, cfg)
	if err != nil {
		return err
	}

	agg, err := stats.Aggregate(tbl, elementTypeMetrics)
	if err != nil {
		return err
	}
	return writeReports(exportDir, cfg, report{ElementTypeFile, tbl}, report{ElementTypeAggregateFile, agg})
}

// MeasureTableStructureAccuracy compares the tables of every prediction under
// outputDir with the gold cell grids under sourceDir. Besides per-document
// scores it writes a one-row summary of every sub-metric.
func MeasureTableStructureAccuracy(ctx context.Context, outputDir, sourceDir, exportDir string, opts ...Option) error {
	cfg := newConfig(opts)
	if err := cfg.validate(); err != nil {
		return err
	}

	score := func(doc corpus.Document) ([]string, error) {
		predicted, err := elements.LoadTables(filepath.Join(outputDir, filepath.FromSlash(doc.Prediction)))
		if err != nil {
			return nil, err
		}
		gold, err := elements.LoadTables(filepath.Join(sourceDir, filepath.FromSlash(doc.Gold)))
		if err != nil {
			return nil, err
		}

		ev := metrics.EvaluateTables(predicted, gold, cfg.cutoff)
		cfg.logger.Debug("scored tables",
			slog.String("file", doc.Filename),
			slog.Int("tables", ev.TotalTables),
			slog.Float64("table_level_acc", ev.TableLevelAcc))
		return []string{
			table.Int(ev.TotalTables),
			table.Float(metrics.Round(ev.TableLevelAcc, precision)),
			table.Float(metrics.Round(ev.ColumnIndexAcc, precision)),
			table.Float(metrics.Round(ev.RowIndexAcc, precision)),
			table.Float(metrics.Round(ev.ColumnContentAcc, precision)),
			table.Float(metrics.Round(ev.RowContentAcc, precision)),
		}, nil
	}

	tbl, err := evaluate(ctx, outputDir, sourceDir, corpus.Options{
		OutputList:    cfg.outputList,
		SourceList:    cfg.sourceList,
		PredictionExt: "json",
		GoldExt:       "json",
	}, tableMetrics, score, cfg)
	if err != nil {
		return err
	}

	agg, err := stats.SummaryRow(tbl, tableMetrics)
	if err != nil {
		return err
	}
	return writeReports(exportDir, cfg, report{TableStructureFile, tbl}, report{TableStructureAggregateFile, agg})
}

// evaluate pairs the documents and scores them into a table with the document
// columns followed by metricCols.
func evaluate(ctx context.Context, outputDir, sourceDir string, opts corpus.Options, metricCols []string, score scoreFunc, cfg config) (*table.Table, error) {
	docs, err := discover(outputDir, sourceDir, opts, cfg.logger)
	if err != nil {
		return nil, err
	}

	rows, err := scoreDocuments(ctx, docs, cfg.workers, score)
	if err != nil {
		return nil, err
	}

	tbl := table.New(append(append([]string{}, documentColumns...), metricCols...)...)
	for _, row := range rows {
		if err := tbl.Append(row...); err != nil {
			return nil, err
		}
	}

	cfg.logger.Info("evaluated documents", slog.Int("count", tbl.Len()), slog.String("output_dir", outputDir))
	return tbl, nil
}

func discover(outputDir, sourceDir string, opts corpus.Options, logger *slog.Logger) ([]corpus.Document, error) {
	res, err := corpus.Pair(outputDir, sourceDir, opts)
	if err != nil {
		return nil, err
	}

	for _, s := range res.Skipped {
		logger.Warn("skipping file", slog.String("path", s.Path), slog.String("reason", s.Reason))
	}
	if len(res.Documents) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoDocuments, outputDir)
	}
	return res.Documents, nil
}

// scoreDocuments scores docs with up to workers goroutines. Row i belongs to
// docs[i] whatever the completion order.
func scoreDocuments(ctx context.Context, docs []corpus.Document, workers int, score scoreFunc) ([][]string, error) {
	rows := make([][]string, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, doc := range docs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			values, err := score(doc)
			if err != nil {
				return fmt.Errorf("%s: %w", doc.Prediction, err)
			}
			rows[i] = append([]string{doc.Filename, doc.Doctype, doc.Connector}, values...)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// readPrediction returns the text of a prediction file in the given encoding.
func readPrediction(path, outputType string) (string, error) {
	if outputType == OutputTypeTXT {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read prediction: %w", err)
		}
		return string(data), nil
	}

	els, err := elements.Load(path)
	if err != nil {
		return "", err
	}
	return elements.Text(els), nil
}

type report struct {
	name string
	tbl  *table.Table
}

func writeReports(exportDir string, cfg config, reports ...report) error {
	for _, r := range reports {
		path, err := r.tbl.WriteFile(exportDir, r.name)
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		cfg.logger.Info("wrote report", slog.String("path", path), slog.Int("rows", r.tbl.Len()))
	}
	return nil
}

func (c config) validate() error {
	switch c.outputType {
	case OutputTypeJSON, OutputTypeTXT:
	default:
		return fmt.Errorf("%w: output type %q, want %q or %q", ErrInvalidArgument, c.outputType, OutputTypeJSON, OutputTypeTXT)
	}
	if c.grouping != "" {
		if err := validateGrouping(c.grouping); err != nil {
			return err
		}
	}
	if c.workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidArgument, c.workers)
	}
	if c.cutoff < 0 || c.cutoff > 1 {
		return fmt.Errorf("%w: cutoff %v outside [0, 1]", ErrInvalidArgument, c.cutoff)
	}
	if c.depthWeight < 0 || c.depthWeight > 1 {
		return fmt.Errorf("%w: category depth weight %v outside [0, 1]", ErrInvalidArgument, c.depthWeight)
	}
	w := c.weights
	if w.Insertion < 0 || w.Deletion < 0 || w.Substitution < 0 {
		return fmt.Errorf("%w: negative edit distance weight", ErrInvalidArgument)
	}
	return nil
}
