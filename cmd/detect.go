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

// detectCmd holds the flags for the 'detect' subcommand.
type detectCmd struct{}

func (*detectCmd) Name() string { return "detect" }
func (*detectCmd) Synopsis() string {
	return "show the sign-convention analysis for one batch file"
}
func (*detectCmd) Usage() string {
	return `rcl detect <file>

  Classifies the file's descriptions, computes the spending/income sign
  ratios, and prints the detected convention with its confidence and the
  decision that consolidation would take. Nothing is written.

`
}

func (*detectCmd) SetFlags(*flag.FlagSet) {}

func (c *detectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	accounts, err := LoadAccounts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	batch, err := DecodeBatchFile(accounts, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	detector := reconcile.NewDetector(reconcile.DetectorConfig{})
	_, analysis, flipped := detector.Correct(batch)
	printMarkdown(renderer.BatchAnalysis(reconcile.BatchAnalysis{
		Source:   batch.Source,
		Analysis: analysis,
		Flipped:  flipped,
	}))
	return subcommands.ExitSuccess
}
