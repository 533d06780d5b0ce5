package metrics

import (
	"math"

	"github.com/jamesainslie/go-doceval/elements"
)

const (
	// DefaultCellCutoff is the minimum content similarity for two cells to match.
	DefaultCellCutoff = 0.8

	// minTableSimilarity is the minimum text similarity for a predicted table to
	// be paired with a gold table.
	minTableSimilarity = 0.3
)

// TableEvaluation holds table-structure accuracy for one document. Accuracy
// fields are NaN when the gold document has no tables.
type TableEvaluation struct {
	TotalTables      int
	TableLevelAcc    float64
	ColumnIndexAcc   float64
	RowIndexAcc      float64
	ColumnContentAcc float64
	RowContentAcc    float64
}

// EvaluateTables compares predicted tables with gold tables.
//
// Each gold table is paired with the most similar unused predicted table. A
// pair scores the mean of its text similarity and shape agreement (row count,
// column count). Cells are matched on content using cutoff; index accuracy is
// the fraction of gold cells whose match sits at the same column/row with the
// same span. Content accuracy compares row and column texts index by index.
// Unpaired gold tables score 0 on every metric.
func EvaluateTables(predicted, gold []elements.Table, cutoff float64) TableEvaluation {
	ev := TableEvaluation{TotalTables: len(gold)}
	if len(gold) == 0 {
		nan := math.NaN()
		ev.TableLevelAcc, ev.ColumnIndexAcc, ev.RowIndexAcc = nan, nan, nan
		ev.ColumnContentAcc, ev.RowContentAcc = nan, nan
		return ev
	}

	predTexts := make([]string, len(predicted))
	for i, p := range predicted {
		predTexts[i] = PrepareString(p.Text(), true)
	}

	used := make([]bool, len(predicted))
	for _, g := range gold {
		goldText := PrepareString(g.Text(), true)

		best, bestSim := -1, 0.0
		for i := range predicted {
			if used[i] {
				continue
			}
			if sim := Similarity(goldText, predTexts[i]); sim > bestSim {
				best, bestSim = i, sim
			}
		}
		if best < 0 || bestSim < minTableSimilarity {
			continue
		}
		used[best] = true
		p := predicted[best]

		ev.TableLevelAcc += (bestSim + shapeScore(p, g)) / 2
		colIdx, rowIdx := cellIndexAccuracy(p, g, cutoff)
		ev.ColumnIndexAcc += colIdx
		ev.RowIndexAcc += rowIdx
		ev.ColumnContentAcc += lineContentAccuracy(p.ColumnTexts(), g.ColumnTexts())
		ev.RowContentAcc += lineContentAccuracy(p.RowTexts(), g.RowTexts())
	}

	n := float64(len(gold))
	ev.TableLevelAcc /= n
	ev.ColumnIndexAcc /= n
	ev.RowIndexAcc /= n
	ev.ColumnContentAcc /= n
	ev.RowContentAcc /= n
	return ev
}

func shapeScore(p, g elements.Table) float64 {
	var score float64
	if p.Rows() == g.Rows() {
		score += 0.5
	}
	if p.Cols() == g.Cols() {
		score += 0.5
	}
	return score
}

// cellIndexAccuracy matches every non-empty gold cell to an unused predicted
// cell with similar content, preferring the nearest one on ties.
func cellIndexAccuracy(p, g elements.Table, cutoff float64) (col, row float64) {
	type cell struct {
		elements.Cell
		text string
	}
	prepare := func(cells []elements.Cell) []cell {
		var out []cell
		for _, c := range cells {
			if text := PrepareString(c.Content, true); text != "" {
				out = append(out, cell{Cell: c, text: text})
			}
		}
		return out
	}

	goldCells := prepare(g.Cells)
	predCells := prepare(p.Cells)
	if len(goldCells) == 0 {
		return 1, 1
	}

	used := make([]bool, len(predCells))
	var colHits, rowHits int
	for _, gc := range goldCells {
		best, bestSim, bestDist := -1, 0.0, 0
		for i, pc := range predCells {
			if used[i] {
				continue
			}
			sim := Similarity(gc.text, pc.text)
			if sim < cutoff {
				continue
			}
			dist := abs(pc.Row-gc.Row) + abs(pc.Col-gc.Col)
			if best < 0 || sim > bestSim || (sim == bestSim && dist < bestDist) {
				best, bestSim, bestDist = i, sim, dist
			}
		}
		if best < 0 {
			continue
		}
		used[best] = true

		pc := predCells[best]
		if pc.Col == gc.Col && pc.ColSpan == gc.ColSpan {
			colHits++
		}
		if pc.Row == gc.Row && pc.RowSpan == gc.RowSpan {
			rowHits++
		}
	}

	n := float64(len(goldCells))
	return float64(colHits) / n, float64(rowHits) / n
}

// lineContentAccuracy averages the similarity of gold rows (or columns) with the
// predicted ones at the same index.
func lineContentAccuracy(pred, gold []string) float64 {
	if len(gold) == 0 {
		if len(pred) == 0 {
			return 1
		}
		return 0
	}

	var sum float64
	for i, g := range gold {
		var p string
		if i < len(pred) {
			p = pred[i]
		}
		sum += Similarity(PrepareString(g, true), PrepareString(p, true))
	}
	return sum / float64(len(gold))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
