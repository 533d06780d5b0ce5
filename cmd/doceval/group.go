package main

import (
	"github.com/spf13/cobra"

	doceval "github.com/jamesainslie/go-doceval"
)

func (a *app) newGroupCmd() *cobra.Command {
	var grouping, input, exportDir string

	cmd := &cobra.Command{
		Use:   "group",
		Short: "Group text accuracy scores by doctype or connector",
		Long: `Summarise a previously written all-docs-cct.tsv per document type or connector
and write all-{grouping}-agg-cct.tsv.

Exits with status 2 when the table is empty or the grouping column is missing
or blank.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return doceval.GroupTextExtractionAccuracyFile(grouping, input, exportDir, doceval.WithLogger(a.logger))
		},
	}

	cmd.Flags().StringVar(&grouping, "grouping", "", "doctype or connector")
	cmd.Flags().StringVar(&input, "input", "", "metrics table to group")
	cmd.Flags().StringVar(&exportDir, "export-dir", a.cfg.ExportDir, "directory the report is written to")
	_ = cmd.MarkFlagRequired("grouping")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
