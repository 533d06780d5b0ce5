// Package stats summarises metric columns of a table: overall, per group, and as
// long-format aggregate reports.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/jamesainslie/go-doceval/metrics"
)

// precision is the number of decimal places kept in summaries.
const precision = 3

// Summary holds descriptive statistics for one metric.
type Summary struct {
	Mean         float64 // NaN when Count == 0
	SampleSD     float64 // NaN when Count < 2
	PopulationSD float64 // NaN when Count == 0
	Count        int
}

// Summarize computes the mean, sample and population standard deviation and
// count of values, rounded to 3 decimal places.
func Summarize(values []float64) Summary {
	s := Summary{
		Mean:         math.NaN(),
		SampleSD:     math.NaN(),
		PopulationSD: math.NaN(),
		Count:        len(values),
	}
	if s.Count == 0 {
		return s
	}

	mean, popSD := stat.PopMeanStdDev(values, nil)
	s.Mean = metrics.Round(mean, precision)
	s.PopulationSD = metrics.Round(popSD, precision)
	if s.Count > 1 {
		_, sampleSD := stat.MeanStdDev(values, nil)
		s.SampleSD = metrics.Round(sampleSD, precision)
	}
	return s
}
