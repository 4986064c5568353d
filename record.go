package reconcile

import (
	"encoding/json"
	"fmt"
)

// AccountType classifies an account as debit (checking, savings) or credit
// (card) from the account holder's point of view.
type AccountType string

const (
	Debit  AccountType = "debit"
	Credit AccountType = "credit"
)

// ParseAccountType parses a string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch s {
	case "debit":
		return Debit, nil
	case "credit":
		return Credit, nil
	default:
		return "", fmt.Errorf("unknown account type: %q", s)
	}
}

// Record is one transaction, either raw from a source batch or consolidated.
//
// TransactionID and Category are empty when the source did not carry them.
// Balance is nil when the source carries no running balance.
type Record struct {
	Date          Date
	Amount        Amount
	Description   string
	Account       string // account identifier within the institution, e.g. last 4 digits
	AccountName   string // human-readable name from the account directory
	AccountType   AccountType
	Institution   string
	TransactionID string
	Category      string
	Balance       *Amount
}

// HasBalance reports whether the record carries a running balance.
func (r Record) HasBalance() bool { return r.Balance != nil }

// Flip returns a copy of the record with the amount sign inverted. The
// running balance, when present, is institution-reported and never flipped.
func (r Record) Flip() Record {
	r.Amount = r.Amount.Neg()
	return r
}

// Equal reports whether two records carry the same data.
func (r Record) Equal(o Record) bool {
	if r.Date != o.Date || !r.Amount.Equal(o.Amount) ||
		r.Description != o.Description || r.Account != o.Account ||
		r.AccountName != o.AccountName || r.AccountType != o.AccountType ||
		r.Institution != o.Institution || r.TransactionID != o.TransactionID ||
		r.Category != o.Category {
		return false
	}
	if (r.Balance == nil) != (o.Balance == nil) {
		return false
	}
	if r.Balance != nil && !r.Balance.Equal(*o.Balance) {
		return false
	}
	return true
}

// MarshalJSON implements the json.Marshaler interface for Record, keeping a
// stable field order and omitting absent optionals.
func (r Record) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", r.Date)
	w.Append("amount", r.Amount)
	w.Append("description", r.Description)
	w.Append("account", r.Account)
	w.Optional("account_name", r.AccountName)
	w.Optional("account_type", string(r.AccountType))
	w.Append("institution", r.Institution)
	w.Optional("transaction_id", r.TransactionID)
	w.Optional("category", r.Category)
	if r.Balance != nil {
		w.Append("balance", *r.Balance)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Record.
func (r *Record) UnmarshalJSON(data []byte) error {
	var temp struct {
		Date          Date    `json:"date"`
		Amount        Amount  `json:"amount"`
		Description   string  `json:"description"`
		Account       string  `json:"account"`
		AccountName   string  `json:"account_name"`
		AccountType   string  `json:"account_type"`
		Institution   string  `json:"institution"`
		TransactionID string  `json:"transaction_id"`
		Category      string  `json:"category"`
		Balance       *Amount `json:"balance"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*r = Record{
		Date:          temp.Date,
		Amount:        temp.Amount,
		Description:   temp.Description,
		Account:       temp.Account,
		AccountName:   temp.AccountName,
		AccountType:   AccountType(temp.AccountType),
		Institution:   temp.Institution,
		TransactionID: temp.TransactionID,
		Category:      temp.Category,
		Balance:       temp.Balance,
	}
	return nil
}

// Batch is one source's worth of records, typically one file. All records in
// a batch share a single sign-convention decision: the correction is applied
// to every record or to none.
type Batch struct {
	Source  string // logical origin of the batch, typically the file name
	Records []Record
}

// Flip returns a copy of the batch with every record's amount sign inverted.
func (b Batch) Flip() Batch {
	flipped := make([]Record, len(b.Records))
	for i, r := range b.Records {
		flipped[i] = r.Flip()
	}
	return Batch{Source: b.Source, Records: flipped}
}
