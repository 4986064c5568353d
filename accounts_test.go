package reconcile

import (
	"strings"
	"testing"
)

const sampleAccountsYAML = `
firsttech:
  "0547":
    account_name: "Main Checking"
    account_type: debit
  "9205":
    account_name: "Rainy Day Savings"
chase:
  "9301":
    account_name: "Travel Card"
    account_type: credit
    description: "shared card"
neobank:
  json_layout:
    account: "2201"
    records: "$.data.transactions"
    date: "$.bookingDate"
    amount: "$.amount.value"
    description: "$.remittanceInformation"
    id: "$.entryReference"
    date_format: "02/01/2006"
  "2201":
    account_name: "Neo Checking"
`

func TestDecodeAccountDirectory(t *testing.T) {
	dir, err := DecodeAccountDirectory(strings.NewReader(sampleAccountsYAML))
	if err != nil {
		t.Fatalf("DecodeAccountDirectory() failed: %v", err)
	}

	cfg, ok := dir.Lookup("firsttech", "0547")
	if !ok {
		t.Fatal("Lookup(firsttech, 0547) missed")
	}
	if cfg.AccountName != "Main Checking" || cfg.AccountType != "debit" {
		t.Errorf("config = %+v", cfg)
	}

	// account_type defaults to debit when omitted.
	cfg, ok = dir.Lookup("firsttech", "9205")
	if !ok || cfg.AccountType != "debit" {
		t.Errorf("Lookup(firsttech, 9205) = %+v, %v, want debit", cfg, ok)
	}

	// Institution lookup is case-insensitive.
	if _, ok := dir.Lookup("Chase", "9301"); !ok {
		t.Error("Lookup(Chase, 9301) missed, want case-insensitive hit")
	}

	if _, ok := dir.Lookup("firsttech", "0000"); ok {
		t.Error("Lookup(firsttech, 0000) hit, want miss")
	}
}

func TestDecodeAccountDirectoryEmpty(t *testing.T) {
	dir, err := DecodeAccountDirectory(strings.NewReader(""))
	if err != nil {
		t.Fatalf("DecodeAccountDirectory() failed on empty input: %v", err)
	}
	if got := len(dir.All()); got != 0 {
		t.Errorf("empty directory has %d accounts", got)
	}
}

func TestDecodeAccountDirectoryLayout(t *testing.T) {
	dir, err := DecodeAccountDirectory(strings.NewReader(sampleAccountsYAML))
	if err != nil {
		t.Fatalf("DecodeAccountDirectory() failed: %v", err)
	}

	layout, ok := dir.Layout("neobank")
	if !ok {
		t.Fatal("Layout(neobank) missed")
	}
	if layout.Account != "2201" {
		t.Errorf("layout account = %q, want \"2201\"", layout.Account)
	}
	if layout.Records != "$.data.transactions" || layout.Amount != "$.amount.value" {
		t.Errorf("layout paths = %q %q", layout.Records, layout.Amount)
	}
	if layout.ID != "$.entryReference" || layout.DateFormat != "02/01/2006" {
		t.Errorf("layout optionals = %q %q", layout.ID, layout.DateFormat)
	}

	// Institution lookup is case-insensitive, like account lookup.
	if _, ok := dir.Layout("NeoBank"); !ok {
		t.Error("Layout(NeoBank) missed, want case-insensitive hit")
	}
	if _, ok := dir.Layout("firsttech"); ok {
		t.Error("Layout(firsttech) hit, want miss")
	}
}

func TestDecodeAccountDirectoryIncompleteLayout(t *testing.T) {
	input := "neobank:\n  json_layout:\n    account: \"2201\"\n    records: \"$.txns\"\n"
	if _, err := DecodeAccountDirectory(strings.NewReader(input)); err == nil {
		t.Fatal("DecodeAccountDirectory() accepted a json_layout without field paths")
	}
}

func TestDecodeAccountDirectoryBadType(t *testing.T) {
	input := "chase:\n  \"9301\":\n    account_type: savings\n"
	if _, err := DecodeAccountDirectory(strings.NewReader(input)); err == nil {
		t.Fatal("DecodeAccountDirectory() accepted an unknown account type")
	}
}

func TestAccountDirectoryAll(t *testing.T) {
	dir, err := DecodeAccountDirectory(strings.NewReader(sampleAccountsYAML))
	if err != nil {
		t.Fatalf("DecodeAccountDirectory() failed: %v", err)
	}
	all := dir.All()
	if len(all) != 4 {
		t.Fatalf("got %d accounts, want 4", len(all))
	}
	// Sorted by institution, then account.
	want := []string{"chase/9301", "firsttech/0547", "firsttech/9205", "neobank/2201"}
	for i, w := range want {
		got := all[i].Institution + "/" + all[i].Account
		if got != w {
			t.Errorf("All()[%d] = %s, want %s", i, got, w)
		}
	}
}

func TestEnrich(t *testing.T) {
	dir, err := DecodeAccountDirectory(strings.NewReader(sampleAccountsYAML))
	if err != nil {
		t.Fatalf("DecodeAccountDirectory() failed: %v", err)
	}

	b := Batch{Source: "in.csv", Records: []Record{
		rec("2025-01-03", -5.75, "Starbucks Coffee purchase"),
		{
			Date:        MustParseDate("2025-01-05"),
			Amount:      A(26.40),
			Description: "Paris Baguette",
			Account:     "1111",
			Institution: "unknownbank",
		},
	}}

	enriched := dir.Enrich(b)

	// Configured account: name and type from the directory.
	if got := enriched.Records[0]; got.AccountName != "Main Checking" || got.AccountType != Debit {
		t.Errorf("configured record = %q %q", got.AccountName, got.AccountType)
	}
	// Unconfigured account: id as name, debit as type.
	if got := enriched.Records[1]; got.AccountName != "1111" || got.AccountType != Debit {
		t.Errorf("unconfigured record = %q %q", got.AccountName, got.AccountType)
	}
	// The input batch is untouched.
	if b.Records[0].AccountName != "" {
		t.Error("Enrich() modified its input")
	}
}

func TestLoadAccountDirectoryMissingFile(t *testing.T) {
	dir, err := LoadAccountDirectory("does/not/exist.yaml")
	if err != nil {
		t.Fatalf("LoadAccountDirectory() failed on missing file: %v", err)
	}
	if got := len(dir.All()); got != 0 {
		t.Errorf("missing file produced %d accounts", got)
	}
}
