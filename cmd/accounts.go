package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/finbook/reconcile/renderer"
	"github.com/google/subcommands"
)

// accountsCmd lists the configured account directory.
type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list the configured account directory" }
func (*accountsCmd) Usage() string {
	return `rcl accounts

  Prints every account in the directory file with its display name,
  type and institution.

`
}
func (*accountsCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	dir, err := LoadAccounts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Accounts(dir.All()))
	return subcommands.ExitSuccess
}
