package reconcile

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// JSONLayout describes where transaction fields live inside a bank's JSON
// export. Banks disagree wildly on shape, so the layout is a set of jsonpath
// expressions: Records selects the list of transaction objects, the other
// paths are evaluated against each object.
type JSONLayout struct {
	Records     string `yaml:"records"`               // e.g. "$.data.transactions"
	Date        string `yaml:"date"`                  // e.g. "$.bookingDate"
	Amount      string `yaml:"amount"`                // e.g. "$.amount.value"
	Description string `yaml:"description"`           // e.g. "$.remittanceInformation"
	ID          string `yaml:"id,omitempty"`          // optional, e.g. "$.entryReference"
	Balance     string `yaml:"balance,omitempty"`     // optional
	DateFormat  string `yaml:"date_format,omitempty"` // time layout of the date values, defaults to "2006-01-02"
}

// DecodeJSONBatch reads a semi-structured JSON bank export into a Batch
// using the given layout. Numbers are decoded exactly, never through
// float64.
func DecodeJSONBatch(r io.Reader, source, institution, account string, layout JSONLayout) (Batch, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return Batch{}, fmt.Errorf("%s: cannot parse JSON export: %w", source, err)
	}

	jval, err := jsonpath.Get(layout.Records, jobj)
	if err != nil {
		return Batch{}, fmt.Errorf("%s: records path %q: %w", source, layout.Records, err)
	}
	items, ok := jval.([]any)
	if !ok {
		return Batch{}, fmt.Errorf("%s: records path %q: not a list", source, layout.Records)
	}

	dateFormat := layout.DateFormat
	if dateFormat == "" {
		dateFormat = DateFormat
	}

	b := Batch{Source: source}
	for i, item := range items {
		dateStr, err := jsonString(item, layout.Date)
		if err != nil {
			return Batch{}, fmt.Errorf("%s: transaction %d: date: %w", source, i, err)
		}
		day, err := time.Parse(dateFormat, dateStr)
		if err != nil {
			return Batch{}, fmt.Errorf("%s: transaction %d: invalid date %q: %w", source, i, dateStr, err)
		}
		amount, err := jsonAmount(item, layout.Amount)
		if err != nil {
			return Batch{}, fmt.Errorf("%s: transaction %d: amount: %w", source, i, err)
		}
		description, err := jsonString(item, layout.Description)
		if err != nil {
			return Batch{}, fmt.Errorf("%s: transaction %d: description: %w", source, i, err)
		}

		rec := Record{
			Date:        NewDate(day.Date()),
			Amount:      amount,
			Description: description,
			Account:     account,
			Institution: institution,
		}
		if layout.ID != "" {
			if id, err := jsonString(item, layout.ID); err == nil {
				rec.TransactionID = id
			}
		}
		if layout.Balance != "" {
			if bal, err := jsonAmount(item, layout.Balance); err == nil {
				rec.Balance = &bal
			}
		}
		b.Records = append(b.Records, rec)
	}
	return b, nil
}

// jsonValue evaluates a jsonpath against one transaction object. Because
// jsonpath is never clear about whether it returns a list of one answer or a
// single answer, a one-element list collapses to its element.
func jsonValue(item any, path string) (any, error) {
	jval, err := jsonpath.Get(path, item)
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return jval, nil
}

func jsonString(item any, path string) (string, error) {
	jval, err := jsonValue(item, path)
	if err != nil {
		return "", err
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("path %q: not a string: %v", path, jval)
	}
	return s, nil
}

func jsonAmount(item any, path string) (Amount, error) {
	jval, err := jsonValue(item, path)
	if err != nil {
		return Amount{}, err
	}
	switch v := jval.(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return Amount{}, fmt.Errorf("path %q: invalid number %q: %w", path, v.String(), err)
		}
		return A(d), nil
	case string:
		return ParseAmount(v)
	default:
		return Amount{}, fmt.Errorf("path %q: not a number: %v", path, jval)
	}
}
