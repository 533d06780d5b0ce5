package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	doceval "github.com/jamesainslie/go-doceval"
	"github.com/jamesainslie/go-doceval/internal/config"
)

// app carries state shared by the subcommands.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd(cfg *config.Config, logOut io.Writer) *cobra.Command {
	a := &app{cfg: cfg, logger: slog.Default()}

	root := &cobra.Command{
		Use:   "doceval",
		Short: "Score document extraction output against gold standards",
		Long: `doceval compares extraction output with curated gold standards and writes
per-document scores and their summaries as TSV reports.

Defaults come from DOCEVAL_* environment variables or a .env file; flags
override them.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := a.cfg.Logger(logOut)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")

	root.AddCommand(
		a.newTextCmd(),
		a.newElementTypeCmd(),
		a.newTableStructureCmd(),
		a.newGroupCmd(),
		a.newScoreCmd(),
		a.newSweepCmd(),
	)
	return root
}

// dirFlags are the directories every batch evaluation takes.
type dirFlags struct {
	outputDir  string
	sourceDir  string
	exportDir  string
	outputList []string
	sourceList []string
}

func (a *app) bindDirFlags(cmd *cobra.Command, d *dirFlags) {
	cmd.Flags().StringVar(&d.outputDir, "output-dir", "", "directory of extraction output")
	cmd.Flags().StringVar(&d.sourceDir, "source-dir", "", "directory of gold standards")
	cmd.Flags().StringVar(&d.exportDir, "export-dir", a.cfg.ExportDir, "directory reports are written to")
	cmd.Flags().StringSliceVar(&d.outputList, "output-list", nil, "only evaluate these output files, relative to --output-dir")
	cmd.Flags().StringSliceVar(&d.sourceList, "source-list", nil, "only use these gold standards, relative to --source-dir")
	_ = cmd.MarkFlagRequired("output-dir")
	_ = cmd.MarkFlagRequired("source-dir")
}

func (a *app) options(d *dirFlags, extra ...doceval.Option) []doceval.Option {
	opts := []doceval.Option{
		doceval.WithLogger(a.logger),
		doceval.WithWorkers(a.cfg.Workers),
	}
	if d.outputList != nil {
		opts = append(opts, doceval.WithOutputList(d.outputList...))
	}
	if d.sourceList != nil {
		opts = append(opts, doceval.WithSourceList(d.sourceList...))
	}
	return append(opts, extra...)
}
