package reconcile

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
)

// this file handles the tabular interchange format. It should remain human
// readable and easy to diff.

// Columns is the exact column order of the consolidated output.
var Columns = []string{
	"date", "amount", "description", "account",
	"account_name", "account_type", "institution",
	"transaction_id", "category", "balance",
}

// requiredColumns must be present in every source file. account_name and
// account_type are expected pre-enriched; the optional columns may be
// missing entirely.
var requiredColumns = []string{
	"date", "amount", "description", "account",
	"account_name", "account_type", "institution",
}

// EncodeRecords writes records to 'w' as CSV rows in the output contract:
// date formatted YYYY-MM-DD, amount with exactly two decimal places
// (negative = money out), optional fields empty when absent.
func EncodeRecords(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("cannot write header: %w", err)
	}
	for _, r := range records {
		balance := ""
		if r.Balance != nil {
			balance = r.Balance.String()
		}
		row := []string{
			r.Date.String(),
			r.Amount.String(),
			r.Description,
			r.Account,
			r.AccountName,
			string(r.AccountType),
			r.Institution,
			r.TransactionID,
			r.Category,
			balance,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeBatch reads one source file in the tabular format into a Batch.
// The header must carry all required columns; each row failure reports the
// source, line and field that caused it.
func DecodeBatch(r io.Reader, source string) (Batch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows are validated against the header, not each other

	header, err := cr.Read()
	if err == io.EOF {
		return Batch{}, fmt.Errorf("%s: file is empty or has no header", source)
	}
	if err != nil {
		return Batch{}, fmt.Errorf("%s: cannot read header: %w", source, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return Batch{}, fmt.Errorf("%s: missing required column %q", source, name)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	b := Batch{Source: source}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Batch{}, fmt.Errorf("%s: line %d: %w", source, line, err)
		}

		date, err := ParseDate(field(row, "date"))
		if err != nil {
			return Batch{}, fmt.Errorf("%s: line %d: field date: %w", source, line, err)
		}
		amount, err := ParseAmount(field(row, "amount"))
		if err != nil {
			return Batch{}, fmt.Errorf("%s: line %d: field amount: %w", source, line, err)
		}
		var balance *Amount
		if s := field(row, "balance"); s != "" {
			bal, err := ParseAmount(s)
			if err != nil {
				return Batch{}, fmt.Errorf("%s: line %d: field balance: %w", source, line, err)
			}
			balance = &bal
		}
		accountType := AccountType(field(row, "account_type"))
		if accountType == "" {
			accountType = Debit
		} else if !slices.Contains([]AccountType{Debit, Credit}, accountType) {
			return Batch{}, fmt.Errorf("%s: line %d: field account_type: unknown value %q", source, line, accountType)
		}

		b.Records = append(b.Records, Record{
			Date:          date,
			Amount:        amount,
			Description:   field(row, "description"),
			Account:       field(row, "account"),
			AccountName:   field(row, "account_name"),
			AccountType:   accountType,
			Institution:   field(row, "institution"),
			TransactionID: field(row, "transaction_id"),
			Category:      field(row, "category"),
			Balance:       balance,
		})
	}
	return b, nil
}
