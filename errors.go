package reconcile

import (
	"fmt"
	"strings"
)

// SchemaError reports a record missing a required field. It aborts the whole
// consolidation run: there is no partial output.
type SchemaError struct {
	Batch string // source batch identity
	Index int    // position of the record within the batch
	Field string // missing field name
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("batch %q: record %d: missing required field %q", e.Batch, e.Index, e.Field)
}

// DataIntegrityError reports a value that violates an invariant after
// parsing, such as a date outside any plausible range.
type DataIntegrityError struct {
	Batch  string
	Index  int
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("batch %q: record %d: %s", e.Batch, e.Index, e.Reason)
}

// MergeConflictError reports a duplicate cluster whose members carry two or
// more distinct transaction ids. That is a likely false-positive match, and
// the run fails rather than guessing which id survives.
type MergeConflictError struct {
	Signature      string
	TransactionIDs []string
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("cluster %s: conflicting transaction ids: %s",
		e.Signature, strings.Join(e.TransactionIDs, ", "))
}
