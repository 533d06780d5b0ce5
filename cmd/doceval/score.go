package main

import (
	"github.com/spf13/cobra"

	doceval "github.com/jamesainslie/go-doceval"
	"github.com/jamesainslie/go-doceval/table"
)

func (a *app) newScoreCmd() *cobra.Command {
	var output, gold, outputType string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score the text of one output file against its gold standard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ts, err := doceval.ScoreText(output, gold,
				doceval.WithOutputType(outputType),
				doceval.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			t := table.New("cct-accuracy", "cct-%missing")
			if err := t.Append(table.Float(ts.Accuracy), table.Float(ts.PercentMissing)); err != nil {
				return err
			}
			return t.Write(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "extraction output file")
	cmd.Flags().StringVar(&gold, "gold", "", "plain-text gold standard")
	cmd.Flags().StringVar(&outputType, "output-type", a.cfg.OutputType, "output encoding: json or txt")
	_ = cmd.MarkFlagRequired("output")
	_ = cmd.MarkFlagRequired("gold")
	return cmd
}
