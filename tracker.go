package reconcile

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Run is one audited consolidation run: the report counts plus an identity
// and a timestamp, appended to the run log so repeated imports stay
// traceable.
type Run struct {
	ID                string    `json:"id"`
	Timestamp         time.Time `json:"timestamp"`
	SourceBatches     int       `json:"source_batches"`
	TotalInputRecords int       `json:"total_input_records"`
	DuplicatesRemoved int       `json:"duplicates_removed"`
	FinalRecordCount  int       `json:"final_record_count"`
	Warnings          []string  `json:"warnings,omitempty"`
}

// RunLog appends one JSONL row per consolidation run.
type RunLog struct {
	path string
}

// NewRunLog returns a run log persisted at the given path.
func NewRunLog(path string) *RunLog { return &RunLog{path: path} }

// Append records one run from its report and returns the persisted entry.
func (l *RunLog) Append(report *Report) (Run, error) {
	run := Run{
		ID:                uuid.NewString(),
		Timestamp:         time.Now().UTC(),
		SourceBatches:     report.SourceBatches,
		TotalInputRecords: report.TotalInputRecords,
		DuplicatesRemoved: report.DuplicatesRemoved,
		FinalRecordCount:  report.FinalRecordCount,
		Warnings:          report.Warnings,
	}

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Run{}, fmt.Errorf("cannot create run log directory: %w", err)
		}
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return Run{}, fmt.Errorf("cannot open run log %q: %w", l.path, err)
	}
	defer f.Close()

	data, err := json.Marshal(run)
	if err != nil {
		return Run{}, fmt.Errorf("cannot marshal run: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return Run{}, fmt.Errorf("cannot write run log: %w", err)
	}
	return run, nil
}

// Runs reads back every recorded run, oldest first. A missing log file
// yields an empty history.
func (l *RunLog) Runs() ([]Run, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open run log %q: %w", l.path, err)
	}
	defer f.Close()

	var runs []Run
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var run Run
		if err := json.Unmarshal(line, &run); err != nil {
			return nil, fmt.Errorf("cannot parse run log line %q: %w", string(line), err)
		}
		runs = append(runs, run)
	}
	return runs, scanner.Err()
}
