package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/finbook/reconcile"
	"github.com/finbook/reconcile/renderer"
	"github.com/google/subcommands"
)

// consolidateCmd holds the flags for the 'consolidate' subcommand.
type consolidateCmd struct {
	output string
	dryRun bool
}

func (*consolidateCmd) Name() string { return "consolidate" }
func (*consolidateCmd) Synopsis() string {
	return "merge all source batches into one deduplicated ledger"
}
func (*consolidateCmd) Usage() string {
	return `rcl consolidate [-o <file>] [-n]

  Scans the data directory for source batch files (CSV, QFX/OFX), corrects
  each batch's sign convention, merges duplicates across batches, and writes
  the consolidated ledger sorted by date. Prints the consolidation report.

Usage Examples:
# Consolidate everything under ./data into ./data/total/all_transactions.csv
$ rcl consolidate

`
}

func (c *consolidateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to <data-dir>/total/all_transactions.csv")
	f.BoolVar(&c.dryRun, "n", false, "Dry run: report only, write nothing")
}

func (c *consolidateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	accounts, err := LoadAccounts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	batches, err := LoadBatches(accounts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(batches) == 0 {
		fmt.Fprintf(os.Stderr, "Warning: no batch files found under %q.\n", *dataDir)
		return subcommands.ExitSuccess
	}
	for i, b := range batches {
		batches[i] = accounts.Enrich(b)
	}

	pipeline := reconcile.NewPipeline(nil, nil)
	records, report, err := pipeline.Consolidate(batches)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: consolidation failed: %v\n", err)
		return subcommands.ExitFailure
	}

	if !c.dryRun {
		output := c.output
		if output == "" {
			output = filepath.Join(*dataDir, outputDirName, "all_transactions.csv")
		}
		if err := writeRecords(output, records); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if _, err := reconcile.NewRunLog(*runLogFile).Append(report); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record run: %v\n", err)
		}
		fmt.Printf("Wrote %d records to %s\n", len(records), output)
	}

	printMarkdown(renderer.ConsolidationReport(report))
	return subcommands.ExitSuccess
}

func writeRecords(path string, records []reconcile.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create output file %q: %w", path, err)
	}
	defer f.Close()
	if err := reconcile.EncodeRecords(f, records); err != nil {
		return fmt.Errorf("cannot write output file %q: %w", path, err)
	}
	return nil
}
