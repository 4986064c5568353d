package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/finbook/reconcile"
	"github.com/finbook/reconcile/renderer"
	"github.com/google/subcommands"
)

// runsCmd prints the consolidation run history.
type runsCmd struct{}

func (*runsCmd) Name() string     { return "runs" }
func (*runsCmd) Synopsis() string { return "show the consolidation run history" }
func (*runsCmd) Usage() string {
	return `rcl runs

  Prints every recorded consolidation run with its record counts,
  oldest first.

`
}
func (*runsCmd) SetFlags(f *flag.FlagSet) {}

func (c *runsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	runs, err := reconcile.NewRunLog(*runLogFile).Runs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Runs(runs))
	return subcommands.ExitSuccess
}
