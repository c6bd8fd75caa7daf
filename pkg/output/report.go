package output

import (
	"fmt"
	"time"

	"github.com/jmorascalyr/jarvis-coding/internal/validation"
)

// RenderReport prints the ranked validation report as a table
// followed by the per-grade summary. Grade cells carry no ANSI
// escapes; escapes would skew the column widths.
func RenderReport(report *validation.ValidationReport) {
	Info("Validation run %s (%s)", report.RunID,
		report.FinishedAt.Sub(report.StartedAt).Round(time.Second))
	fmt.Println()

	table := NewTable([]string{"PRODUCT", "PARSER", "GRADE", "COVERAGE", "COMPLIANCE", "FIELDS", "ATTEMPTS", "REASON"})
	for _, e := range report.Entries {
		table.AddRow([]string{
			e.Product,
			e.Parser,
			string(e.Grade),
			fmt.Sprintf("%.1f%%", e.CoveragePct),
			fmt.Sprintf("%.1f%%", e.CompliancePct),
			fmt.Sprintf("%d", e.ExtractedCount),
			fmt.Sprintf("%d", e.Attempts),
			e.Reason,
		})
	}
	table.Render()
	fmt.Println()

	s := report.Summarize()
	Info("Summary: %d products, %.1f%% success rate", s.Total, s.SuccessRate)
	if s.Excellent > 0 {
		Success("excellent: %d", s.Excellent)
	}
	if s.Good > 0 {
		Success("good: %d", s.Good)
	}
	if s.Functional > 0 {
		Warn("functional: %d", s.Functional)
	}
	if s.Failing > 0 {
		Error("failing: %d", s.Failing)
	}
	if s.SubmissionFailure > 0 {
		Error("submission failures: %d", s.SubmissionFailure)
	}
}
