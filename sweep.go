package doceval

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"sort"

	"github.com/samber/lo"

	"github.com/jamesainslie/go-doceval/elements"
	"github.com/jamesainslie/go-doceval/internal/corpus"
	"github.com/jamesainslie/go-doceval/internal/stats"
	"github.com/jamesainslie/go-doceval/metrics"
)

// CutoffResult holds dataset-wide cell index accuracy at one cell cutoff.
type CutoffResult struct {
	Cutoff         float64
	ColumnIndexAcc float64
	RowIndexAcc    float64
	Score          float64 // mean of ColumnIndexAcc and RowIndexAcc
}

// SweepCutoffs generates cutoffs from min up to, but excluding, max.
func SweepCutoffs(min, max, step float64) []float64 {
	if step <= 0 || max <= min {
		return nil
	}

	n := int(math.Ceil((max-min)/step - 1e-9))
	cutoffs := make([]float64, n)
	for i := range cutoffs {
		cutoffs[i] = metrics.Round(min+float64(i)*step, 6)
	}
	return cutoffs
}

// SweepTableCutoffs evaluates table structure under every cell cutoff and
// returns the results sorted by score, best first. Tables are loaded once.
func SweepTableCutoffs(ctx context.Context, outputDir, sourceDir string, cutoffs []float64, opts ...Option) ([]CutoffResult, error) {
	cfg := newConfig(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(cutoffs) == 0 {
		return nil, fmt.Errorf("%w: no cutoffs to sweep", ErrInvalidArgument)
	}
	for _, c := range cutoffs {
		if c < 0 || c > 1 {
			return nil, fmt.Errorf("%w: cutoff %v outside [0, 1]", ErrInvalidArgument, c)
		}
	}

	docs, err := discover(outputDir, sourceDir, corpus.Options{
		OutputList:    cfg.outputList,
		SourceList:    cfg.sourceList,
		PredictionExt: "json",
		GoldExt:       "json",
	}, cfg.logger)
	if err != nil {
		return nil, err
	}

	type pair struct {
		predicted, gold []elements.Table
	}
	pairs := make([]pair, len(docs))
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		predicted, err := elements.LoadTables(filepath.Join(outputDir, filepath.FromSlash(doc.Prediction)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", doc.Prediction, err)
		}
		gold, err := elements.LoadTables(filepath.Join(sourceDir, filepath.FromSlash(doc.Gold)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", doc.Gold, err)
		}
		pairs[i] = pair{predicted: predicted, gold: gold}
	}

	results := make([]CutoffResult, 0, len(cutoffs))
	for _, cutoff := range cutoffs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var cols, rows []float64
		for _, p := range pairs {
			ev := metrics.EvaluateTables(p.predicted, p.gold, cutoff)
			cols = append(cols, ev.ColumnIndexAcc)
			rows = append(rows, ev.RowIndexAcc)
		}

		r := CutoffResult{
			Cutoff:         cutoff,
			ColumnIndexAcc: meanOf(cols),
			RowIndexAcc:    meanOf(rows),
		}
		r.Score = metrics.Round((r.ColumnIndexAcc+r.RowIndexAcc)/2, precision)
		cfg.logger.Debug("swept cutoff", slog.Float64("cutoff", cutoff), slog.Float64("score", r.Score))
		results = append(results, r)
	}

	// NaN scores (no gold tables anywhere) sort last.
	sort.SliceStable(results, func(i, j int) bool {
		si, sj := results[i].Score, results[j].Score
		if math.IsNaN(sj) {
			return !math.IsNaN(si)
		}
		return si > sj
	})
	return results, nil
}

func meanOf(values []float64) float64 {
	return stats.Summarize(lo.Reject(values, func(v float64, _ int) bool {
		return math.IsNaN(v)
	})).Mean
}
