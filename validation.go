package reconcile

import (
	"fmt"
	"time"
)

// validateBatch checks that every record carries the required fields: date,
// amount, description, account and institution. Account name and type are
// assumed pre-enriched and are not required. The first failure aborts the
// run.
//
// A zero amount is legal but unusual, so it is returned as a warning rather
// than an error.
func validateBatch(b Batch) (warnings []string, err error) {
	currentYear := time.Now().Year()
	for i, r := range b.Records {
		switch {
		case r.Date.IsZero():
			return nil, &SchemaError{Batch: b.Source, Index: i, Field: "date"}
		case r.Description == "":
			return nil, &SchemaError{Batch: b.Source, Index: i, Field: "description"}
		case r.Account == "":
			return nil, &SchemaError{Batch: b.Source, Index: i, Field: "account"}
		case r.Institution == "":
			return nil, &SchemaError{Batch: b.Source, Index: i, Field: "institution"}
		}
		if r.Date.Year() < 1900 || r.Date.Year() > currentYear+1 {
			return nil, &DataIntegrityError{
				Batch:  b.Source,
				Index:  i,
				Reason: fmt.Sprintf("implausible date %s", r.Date),
			}
		}
		if r.Amount.IsZero() {
			warnings = append(warnings, fmt.Sprintf("batch %q: record %d has a zero amount", b.Source, i))
		}
	}
	return warnings, nil
}
