package doceval

import (
	"log/slog"

	"github.com/jamesainslie/go-doceval/metrics"
)

// Output types accepted by WithOutputType.
const (
	OutputTypeJSON = "json"
	OutputTypeTXT  = "txt"
)

// Option configures an evaluation run.
type Option func(*config)

type config struct {
	outputType  string
	outputList  []string
	sourceList  []string
	grouping    string
	weights     metrics.Weights
	depthWeight float64
	cutoff      float64
	workers     int
	logger      *slog.Logger
}

func defaultConfig() config {
	return config{
		outputType:  OutputTypeJSON,
		weights:     metrics.DefaultWeights(),
		depthWeight: metrics.DefaultCategoryDepthWeight,
		cutoff:      metrics.DefaultCellCutoff,
		workers:     1,
		logger:      slog.Default(),
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithOutputType sets how text predictions are encoded: "json" element lists
// or "txt" plain text (default: "json").
func WithOutputType(t string) Option {
	return func(c *config) {
		c.outputType = t
	}
}

// WithOutputList restricts evaluation to these prediction files, relative to
// the output directory.
func WithOutputList(paths ...string) Option {
	return func(c *config) {
		c.outputList = append([]string{}, paths...)
	}
}

// WithSourceList restricts the eligible gold standard files, relative to the
// source directory.
func WithSourceList(paths ...string) Option {
	return func(c *config) {
		c.sourceList = append([]string{}, paths...)
	}
}

// WithGrouping also writes text accuracy grouped by "doctype" or "connector".
func WithGrouping(g string) Option {
	return func(c *config) {
		c.grouping = g
	}
}

// WithWeights sets the edit distance weights (default: metrics.DefaultWeights()).
func WithWeights(w metrics.Weights) Option {
	return func(c *config) {
		c.weights = w
	}
}

// WithCategoryDepthWeight sets the credit for element type matches at the
// wrong depth (default: 0.5).
func WithCategoryDepthWeight(w float64) Option {
	return func(c *config) {
		c.depthWeight = w
	}
}

// WithCutoff sets the cell content similarity needed for a cell match
// (default: 0.8).
func WithCutoff(cutoff float64) Option {
	return func(c *config) {
		c.cutoff = cutoff
	}
}

// WithWorkers sets how many documents are scored concurrently (default: 1).
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
