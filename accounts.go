package reconcile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// AccountConfig is the directory entry for one account: the human-readable
// name and the debit/credit classification applied during enrichment.
type AccountConfig struct {
	AccountName string `yaml:"account_name"`
	AccountType string `yaml:"account_type"`
	Description string `yaml:"description,omitempty"`
}

// ConfiguredAccount is one directory entry together with its key.
type ConfiguredAccount struct {
	Institution string
	Account     string
	AccountConfig
}

// InstitutionLayout describes how to read one institution's JSON exports:
// the jsonpath layout plus the account id its export files belong to.
type InstitutionLayout struct {
	Account    string `yaml:"account"`
	JSONLayout `yaml:",inline"`
}

// AccountDirectory maps (institution, account id) pairs to their
// configuration, and institutions to their JSON export layouts. It is an
// immutable value passed explicitly into the pipeline's callers; the engine
// itself never reads ambient state.
type AccountDirectory struct {
	accounts map[string]AccountConfig     // keyed by lowercase "institution/account"
	layouts  map[string]InstitutionLayout // keyed by lowercase institution
}

// NewAccountDirectory returns an empty directory. Enriching through an empty
// directory applies defaults only.
func NewAccountDirectory() *AccountDirectory {
	return &AccountDirectory{
		accounts: make(map[string]AccountConfig),
		layouts:  make(map[string]InstitutionLayout),
	}
}

func accountKey(institution, account string) string {
	return strings.ToLower(institution) + "/" + account
}

// LoadAccountDirectory reads the account directory from a YAML file shaped
// institution -> account id -> properties:
//
//	firsttech:
//	  "0547":
//	    account_name: "Main Checking"
//	    account_type: debit
//
// An institution may additionally carry a json_layout entry describing how
// to read its JSON export files:
//
//	neobank:
//	  json_layout:
//	    account: "0547"
//	    records: "$.data.transactions"
//	    date: "$.bookingDate"
//	    amount: "$.amount.value"
//	    description: "$.remittanceInformation"
//
// A missing file is not an error: enrichment degrades to defaults.
func LoadAccountDirectory(path string) (*AccountDirectory, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewAccountDirectory(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open account directory %q: %w", path, err)
	}
	defer f.Close()
	return DecodeAccountDirectory(f)
}

// DecodeAccountDirectory reads the account directory from 'r' in the YAML
// format described in LoadAccountDirectory.
func DecodeAccountDirectory(r io.Reader) (*AccountDirectory, error) {
	var raw map[string]struct {
		Layout   *InstitutionLayout       `yaml:"json_layout"`
		Accounts map[string]AccountConfig `yaml:",inline"`
	}
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return NewAccountDirectory(), nil // empty file
		}
		return nil, fmt.Errorf("invalid account directory: %w", err)
	}

	d := NewAccountDirectory()
	for institution, entry := range raw {
		if l := entry.Layout; l != nil {
			for field, value := range map[string]string{
				"account":     l.Account,
				"records":     l.Records,
				"date":        l.Date,
				"amount":      l.Amount,
				"description": l.Description,
			} {
				if value == "" {
					return nil, fmt.Errorf("institution %s: json_layout is missing %q", institution, field)
				}
			}
			d.layouts[strings.ToLower(institution)] = *l
		}
		for account, cfg := range entry.Accounts {
			switch cfg.AccountType {
			case "", string(Debit):
				cfg.AccountType = string(Debit)
			case string(Credit):
			default:
				return nil, fmt.Errorf("account %s/%s: unknown account type %q", institution, account, cfg.AccountType)
			}
			if cfg.AccountName == "" {
				cfg.AccountName = account
			}
			d.accounts[accountKey(institution, account)] = cfg
		}
	}
	return d, nil
}

// Lookup returns the configuration for an account, if any.
func (d *AccountDirectory) Lookup(institution, account string) (AccountConfig, bool) {
	cfg, ok := d.accounts[accountKey(institution, account)]
	return cfg, ok
}

// Layout returns the JSON export layout configured for an institution.
func (d *AccountDirectory) Layout(institution string) (InstitutionLayout, bool) {
	l, ok := d.layouts[strings.ToLower(institution)]
	return l, ok
}

// All returns every configured account, sorted by institution then account.
func (d *AccountDirectory) All() []ConfiguredAccount {
	all := make([]ConfiguredAccount, 0, len(d.accounts))
	for key, cfg := range d.accounts {
		institution, account, _ := strings.Cut(key, "/")
		all = append(all, ConfiguredAccount{Institution: institution, Account: account, AccountConfig: cfg})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Institution != all[j].Institution {
			return all[i].Institution < all[j].Institution
		}
		return all[i].Account < all[j].Account
	})
	return all
}

// Enrich returns a copy of the batch with account name and type filled in
// from the directory. Unconfigured accounts default to the account id as
// name and debit as type; records that already carry both fields are left
// untouched.
func (d *AccountDirectory) Enrich(b Batch) Batch {
	enriched := make([]Record, len(b.Records))
	for i, r := range b.Records {
		if cfg, ok := d.Lookup(r.Institution, r.Account); ok {
			r.AccountName = cfg.AccountName
			r.AccountType = AccountType(cfg.AccountType)
		} else {
			if r.AccountName == "" {
				r.AccountName = r.Account
			}
			if r.AccountType == "" {
				r.AccountType = Debit
			}
		}
		enriched[i] = r
	}
	return Batch{Source: b.Source, Records: enriched}
}
