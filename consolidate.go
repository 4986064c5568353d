package reconcile

import (
	"fmt"
	"sort"
)

// Report carries the verifiable statistics of one consolidation run.
// Invariant: FinalRecordCount == TotalInputRecords - DuplicatesRemoved.
type Report struct {
	SourceBatches     int
	TotalInputRecords int
	DuplicatesRemoved int
	FinalRecordCount  int
	// Warnings are non-fatal observations: batches with an unknown sign
	// convention, zero amounts, suspiciously large duplicate clusters.
	Warnings []string
	// Analyses records the sign-convention decision per batch, in input
	// order, for auditing.
	Analyses []BatchAnalysis
}

// BatchAnalysis is the per-batch sign decision kept for the report.
type BatchAnalysis struct {
	Source   string
	Analysis Analysis
	Flipped  bool
}

// Pipeline consolidates many independent source batches into one ordered,
// deduplicated ledger. It is the only stateful orchestrator in the engine;
// detection and matching are pure functions of their inputs.
//
// The pipeline performs no disk or network I/O; persistence of the result
// belongs to the caller.
type Pipeline struct {
	detector *Detector
	matcher  *Matcher
}

// NewPipeline builds a Pipeline. A nil detector or matcher selects defaults.
func NewPipeline(d *Detector, m *Matcher) *Pipeline {
	if d == nil {
		d = NewDetector(DetectorConfig{})
	}
	if m == nil {
		m = NewMatcher()
	}
	return &Pipeline{detector: d, matcher: m}
}

// Consolidate runs the full pipeline: validate every batch, correct each
// batch's sign convention, merge duplicates across batches, and order the
// result by date ascending (stable: ties keep input order).
//
// Any validation or merge failure is fatal to the whole run; the error
// identifies the offending batch or cluster and no partial output is
// returned.
func (p *Pipeline) Consolidate(batches []Batch) ([]Record, *Report, error) {
	report := &Report{SourceBatches: len(batches)}

	// Step 1: validate, fail-fast.
	for _, b := range batches {
		warnings, err := validateBatch(b)
		if err != nil {
			return nil, nil, err
		}
		report.Warnings = append(report.Warnings, warnings...)
	}

	// Step 2: per-batch sign correction, step 3: concatenate.
	// Batches are independent here; they share no state and order among
	// them does not affect the deduplicated set.
	var all []Record
	for _, b := range batches {
		corrected, analysis, flipped := p.detector.Correct(b)
		report.Analyses = append(report.Analyses, BatchAnalysis{
			Source:   b.Source,
			Analysis: analysis,
			Flipped:  flipped,
		})
		switch analysis.Convention {
		case ConventionUnknown, ConventionMixed:
			if len(b.Records) > 0 {
				report.Warnings = append(report.Warnings, fmt.Sprintf(
					"batch %q: sign convention %s (confidence %.2f), amounts left unchanged",
					b.Source, analysis.Convention, analysis.Confidence))
			}
		}
		all = append(all, corrected.Records...)
		report.TotalInputRecords += len(corrected.Records)
	}

	// Step 4: cluster and merge.
	clusters := p.matcher.Cluster(all)
	merged := make([]Record, 0, len(clusters))
	for _, c := range clusters {
		if p.matcher.MaxClusterSize > 0 && len(c.Records) > p.matcher.MaxClusterSize {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"cluster %s: %d records merged into one; verify they are real duplicates",
				c.Signature, len(c.Records)))
		}
		rec, err := p.matcher.Merge(c)
		if err != nil {
			return nil, nil, err
		}
		merged = append(merged, rec)
	}

	// Step 5: order by date, stable.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})

	// Step 6: statistics.
	report.FinalRecordCount = len(merged)
	report.DuplicatesRemoved = report.TotalInputRecords - report.FinalRecordCount
	return merged, report, nil
}
