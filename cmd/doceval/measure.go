package main

import (
	"github.com/spf13/cobra"

	doceval "github.com/jamesainslie/go-doceval"
	"github.com/jamesainslie/go-doceval/metrics"
)

func (a *app) newTextCmd() *cobra.Command {
	var (
		d          dirFlags
		outputType string
		grouping   string
	)

	cmd := &cobra.Command{
		Use:   "text",
		Short: "Measure text extraction accuracy (CCT)",
		Long: `Score the text of every output file against the plain-text gold standard with
the same name and write all-docs-cct.tsv and aggregate-scores-cct.tsv.

Example:
  doceval text --output-dir unstructured_output --source-dir gold_standard_cct --grouping doctype`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := a.options(&d, doceval.WithOutputType(outputType))
			if grouping != "" {
				opts = append(opts, doceval.WithGrouping(grouping))
			}
			return doceval.MeasureTextExtractionAccuracy(cmd.Context(), d.outputDir, d.sourceDir, d.exportDir, opts...)
		},
	}

	a.bindDirFlags(cmd, &d)
	cmd.Flags().StringVar(&outputType, "output-type", a.cfg.OutputType, "output encoding: json or txt")
	cmd.Flags().StringVar(&grouping, "grouping", "", "also group the scores by doctype or connector")
	cmd.Flags().IntVar(&a.cfg.Workers, "workers", a.cfg.Workers, "documents scored concurrently")
	return cmd
}

func (a *app) newElementTypeCmd() *cobra.Command {
	var (
		d           dirFlags
		depthWeight float64
	)

	cmd := &cobra.Command{
		Use:   "element-type",
		Short: "Measure element type frequency accuracy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := a.options(&d, doceval.WithCategoryDepthWeight(depthWeight))
			return doceval.MeasureElementTypeAccuracy(cmd.Context(), d.outputDir, d.sourceDir, d.exportDir, opts...)
		},
	}

	a.bindDirFlags(cmd, &d)
	cmd.Flags().Float64Var(&depthWeight, "depth-weight", metrics.DefaultCategoryDepthWeight, "credit for a type match at the wrong category depth")
	cmd.Flags().IntVar(&a.cfg.Workers, "workers", a.cfg.Workers, "documents scored concurrently")
	return cmd
}

func (a *app) newTableStructureCmd() *cobra.Command {
	var d dirFlags

	cmd := &cobra.Command{
		Use:   "table-structure",
		Short: "Measure table structure accuracy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := a.options(&d, doceval.WithCutoff(a.cfg.Cutoff))
			return doceval.MeasureTableStructureAccuracy(cmd.Context(), d.outputDir, d.sourceDir, d.exportDir, opts...)
		},
	}

	a.bindDirFlags(cmd, &d)
	cmd.Flags().Float64Var(&a.cfg.Cutoff, "cutoff", a.cfg.Cutoff, "minimum content similarity for a cell match")
	cmd.Flags().IntVar(&a.cfg.Workers, "workers", a.cfg.Workers, "documents scored concurrently")
	return cmd
}
