package main

import (
	"github.com/spf13/cobra"

	doceval "github.com/jamesainslie/go-doceval"
	"github.com/jamesainslie/go-doceval/table"
)

func (a *app) newSweepCmd() *cobra.Command {
	var (
		d              dirFlags
		min, max, step float64
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare table cell index accuracy across cell cutoffs",
		Long: `Evaluate table structure at every cell cutoff from --min up to --max and
print the results as TSV, best score first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results, err := doceval.SweepTableCutoffs(cmd.Context(), d.outputDir, d.sourceDir,
				doceval.SweepCutoffs(min, max, step), a.options(&d)...)
			if err != nil {
				return err
			}

			t := table.New("cutoff", "element_col_level_index_acc", "element_row_level_index_acc", "score")
			for _, r := range results {
				if err := t.Append(
					table.Float(r.Cutoff),
					table.Float(r.ColumnIndexAcc),
					table.Float(r.RowIndexAcc),
					table.Float(r.Score),
				); err != nil {
					return err
				}
			}
			return t.Write(cmd.OutOrStdout())
		},
	}

	a.bindDirFlags(cmd, &d)
	cmd.Flags().Float64Var(&min, "min", 0.5, "first cutoff")
	cmd.Flags().Float64Var(&max, "max", 1.0, "sweep stops below this cutoff")
	cmd.Flags().Float64Var(&step, "step", 0.05, "cutoff increment")
	return cmd
}
