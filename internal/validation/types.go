// Package validation implements the parser effectiveness validation
// pipeline: tracking-token correlation, tagged event submission,
// eventual-consistency polling of the query boundary, field-extraction
// scoring, and the orchestrated run that produces a ranked report.
package validation

import (
	"time"

	"github.com/jmorascalyr/jarvis-coding/internal/taxonomy"
)

// SubmissionRecord captures one submitted synthetic event and its
// outcome. Read-only after creation.
type SubmissionRecord struct {
	Token       string
	Product     *taxonomy.Product
	Payload     any
	SubmittedAt time.Time
	OK          bool
	Status      int // HTTP status of the ingestion response, 0 if none
}

// RetrievalResult is the terminal outcome of polling for one token.
// Once Found is true, or the deadline has expired, the result never
// changes.
type RetrievalResult struct {
	Token       string
	Found       bool
	Record      map[string]any
	RetrievedAt time.Time
	Attempts    int
	Reason      string // set when Found is false
}

// Grade is the categorical rating of a parser's field extraction.
type Grade string

const (
	GradeExcellent         Grade = "excellent"
	GradeGood              Grade = "good"
	GradeFunctional        Grade = "functional"
	GradeFailing           Grade = "failing"
	GradeSubmissionFailure Grade = "submission failure"
)

// FieldScore grades a parser's extraction against the product's
// reference taxonomy. Derived purely from a RetrievalResult and the
// taxonomy; immutable.
type FieldScore struct {
	Product        string   `json:"product"`
	Parser         string   `json:"parser"`
	ExtractedCount int      `json:"extracted_count"`
	ExpectedCount  int      `json:"expected_count"`
	Extracted      []string `json:"extracted_fields,omitempty"`
	CoveragePct    float64  `json:"coverage_pct"`
	CompliancePct  float64  `json:"compliance_pct"`
	Grade          Grade    `json:"grade"`
	Reason         string   `json:"reason,omitempty"`
}

// ReportEntry is one product's line in the final report: either a
// score or an explicit failure, never both and never neither.
type ReportEntry struct {
	Product        string  `json:"product"`
	Parser         string  `json:"parser"`
	Grade          Grade   `json:"grade"`
	CoveragePct    float64 `json:"coverage_pct"`
	CompliancePct  float64 `json:"compliance_pct"`
	ExtractedCount int     `json:"extracted_count"`
	Attempts       int     `json:"attempts,omitempty"`
	Reason         string  `json:"reason,omitempty"`
}

// ValidationReport is the orchestrator's final output, ordered by
// coverage percentage descending. Never mutated after emission.
type ValidationReport struct {
	RunID      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Entries    []ReportEntry `json:"entries"`
}

// Summary aggregates the report into per-grade counts plus the
// success rate (excellent + good over total).
type Summary struct {
	Total             int     `json:"total"`
	Excellent         int     `json:"excellent"`
	Good              int     `json:"good"`
	Functional        int     `json:"functional"`
	Failing           int     `json:"failing"`
	SubmissionFailure int     `json:"submission_failure"`
	SuccessRate       float64 `json:"success_rate"`
}

// Summarize computes the per-grade counts for the report.
func (r *ValidationReport) Summarize() Summary {
	s := Summary{Total: len(r.Entries)}
	for _, e := range r.Entries {
		switch e.Grade {
		case GradeExcellent:
			s.Excellent++
		case GradeGood:
			s.Good++
		case GradeFunctional:
			s.Functional++
		case GradeFailing:
			s.Failing++
		case GradeSubmissionFailure:
			s.SubmissionFailure++
		}
	}
	if s.Total > 0 {
		s.SuccessRate = float64(s.Excellent+s.Good) * 100.0 / float64(s.Total)
	}
	return s
}
