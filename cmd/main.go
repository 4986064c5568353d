// Package cmd implements the CLI application to reconcile transaction exports.
package cmd

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/finbook/reconcile"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&consolidateCmd{}, "reconciliation")
	c.Register(&detectCmd{}, "reconciliation")
	c.Register(&dupesCmd{}, "reconciliation")
	c.Register(&exportCmd{}, "output")
	c.Register(&accountsCmd{}, "configuration")
	c.Register(&runsCmd{}, "configuration")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dataDir      *string
	accountsFile *string
	runLogFile   *string
	currency     *string
)

// Flag defaults may come from RCL_* environment variables, so a local .env
// file must be loaded before the flags are declared.
func init() {
	godotenv.Load()
	dataDir = flag.String("data-dir", envOr("RCL_DATA_DIR", "data"), "Directory scanned for source batch files")
	accountsFile = flag.String("accounts", envOr("RCL_ACCOUNTS", "accounts.yaml"), "Path to the account directory file (YAML)")
	runLogFile = flag.String("run-log", envOr("RCL_RUN_LOG", filepath.Join(".reconcile", "runs.jsonl")), "Path to the consolidation run log (JSONL)")
	currency = flag.String("currency", envOr("RCL_CURRENCY", "USD"), "Currency amounts are displayed in")
}

// envOr returns the value of the environment variable, or the fallback when
// it is unset or empty.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// outputDirName is excluded from the batch scan so a previous run's output
// is never re-ingested by accident.
const outputDirName = "total"

// LoadAccounts reads the account directory from the configured file.
// A missing file yields an empty directory.
func LoadAccounts() (*reconcile.AccountDirectory, error) {
	return reconcile.LoadAccountDirectory(*accountsFile)
}

// ScanBatchFiles finds the source batch files under the data directory,
// sorted for a deterministic batch order.
func ScanBatchFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(*dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == outputDirName {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".csv", ".qfx", ".ofx", ".json":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot scan %q: %w", *dataDir, err)
	}
	sort.Strings(files)
	return files, nil
}

// DecodeBatchFile reads one source file into a batch, dispatching on the
// file extension. QFX statements and JSON exports carry no institution of
// their own; it is taken from the parent directory name, the layout
// convention of the data directory. JSON exports additionally need a
// json_layout configured for the institution in the account directory.
func DecodeBatchFile(accounts *reconcile.AccountDirectory, path string) (reconcile.Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return reconcile.Batch{}, fmt.Errorf("cannot open %q: %w", path, err)
	}
	defer f.Close()

	institution := filepath.Base(filepath.Dir(path))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".qfx", ".ofx":
		return reconcile.DecodeQFX(f, path, institution)
	case ".json":
		layout, ok := accounts.Layout(institution)
		if !ok {
			return reconcile.Batch{}, fmt.Errorf("%s: no json_layout configured for institution %q", path, institution)
		}
		return reconcile.DecodeJSONBatch(f, path, institution, layout.Account, layout.JSONLayout)
	default:
		return reconcile.DecodeBatch(f, path)
	}
}

// LoadBatches decodes every source file found under the data directory.
func LoadBatches(accounts *reconcile.AccountDirectory) ([]reconcile.Batch, error) {
	files, err := ScanBatchFiles()
	if err != nil {
		return nil, err
	}
	batches := make([]reconcile.Batch, 0, len(files))
	for _, file := range files {
		b, err := DecodeBatchFile(accounts, file)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, nil
}
