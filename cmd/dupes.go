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

// dupesCmd holds the flags for the 'dupes' subcommand.
type dupesCmd struct{}

func (*dupesCmd) Name() string     { return "dupes" }
func (*dupesCmd) Synopsis() string { return "list duplicate clusters across batches without merging" }
func (*dupesCmd) Usage() string {
	return `rcl dupes

  Shows which records across all source batches would be merged as
  duplicates, without writing anything. Useful to audit the matching before
  running consolidate.

`
}

func (*dupesCmd) SetFlags(*flag.FlagSet) {}

func (c *dupesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	// Correct signs first so signatures match the way they will during
	// consolidation.
	detector := reconcile.NewDetector(reconcile.DetectorConfig{})
	var all []reconcile.Record
	for _, b := range batches {
		corrected, _, _ := detector.Correct(b)
		all = append(all, corrected.Records...)
	}

	var dupes []reconcile.Cluster
	for _, cluster := range reconcile.NewMatcher().Cluster(all) {
		if len(cluster.Records) > 1 {
			dupes = append(dupes, cluster)
		}
	}
	printMarkdown(renderer.Clusters(dupes, *currency))
	return subcommands.ExitSuccess
}
