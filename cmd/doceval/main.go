// Command doceval scores document extraction output against gold standards.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	doceval "github.com/jamesainslie/go-doceval"
	"github.com/jamesainslie/go-doceval/internal/config"
)

// Exit codes.
const (
	exitOK              = 0
	exitError           = 1
	exitInvalidGrouping = 2
)

// Set at build time with -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(cfg, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

// exitCode maps grouping validation failures to a distinct status so that
// pipelines can stop on them.
func exitCode(err error) int {
	if errors.Is(err, doceval.ErrInvalidGroupingColumn) {
		return exitInvalidGrouping
	}
	return exitError
}
