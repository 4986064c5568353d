package reconcile

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// this file contains functions to handle the import/export format: a JSONL
// stream, one record per line, easy to merge into a database.

// ExportRecords exports records to 'w' in the import/export format.
//
// The format is a JSONL file where each line is a JSON object representing
// one record; absent optional fields are omitted from the object.
func ExportRecords(w io.Writer, records []Record) error {
	for i, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("cannot marshal record %d: %w", i, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write record format: %w", err)
		}
	}
	return nil
}

// ImportRecords imports records from 'r' in the import/export format.
func ImportRecords(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("cannot parse line for record import format: %q: %w", string(line), err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read record import format: %w", err)
	}
	return records, nil
}
