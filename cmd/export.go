package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/finbook/reconcile"
	"github.com/google/subcommands"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	input string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "re-encode the consolidated ledger as JSONL" }
func (*exportCmd) Usage() string {
	return `rcl export [-i <file>]

  Reads the consolidated ledger and writes it to stdout in the JSONL
  import/export format, one record per line.

`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Consolidated file to export. Defaults to <data-dir>/total/all_transactions.csv")
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	input := c.input
	if input == "" {
		input = filepath.Join(*dataDir, outputDirName, "all_transactions.csv")
	}
	f, err := os.Open(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open %q: %v\n", input, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	batch, err := reconcile.DecodeBatch(f, input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := reconcile.ExportRecords(os.Stdout, batch.Records); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
