package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/finbook/reconcile/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion installs shell completion and handles completion requests.
// It returns immediately when the process was not started by a shell
// completion hook.
func completion() {
	files := predict.Files("*")
	c := &complete.Command{
		Sub: map[string]*complete.Command{
			"consolidate": {Flags: map[string]complete.Predictor{"o": files, "n": predict.Nothing}},
			"detect":      {Args: files},
			"dupes":       {},
			"export":      {Flags: map[string]complete.Predictor{"i": files}},
			"accounts":    {},
			"runs":        {},
			"help":        {},
			"flags":       {},
			"commands":    {},
		},
		Flags: map[string]complete.Predictor{
			"data-dir": predict.Dirs("*"),
			"accounts": predict.Files("*.yaml"),
			"run-log":  predict.Files("*.jsonl"),
			"currency": predict.Set{"USD", "EUR", "GBP"},
		},
	}
	c.Complete("rcl")
}
