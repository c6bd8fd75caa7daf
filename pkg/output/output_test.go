package output

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmorascalyr/jarvis-coding/internal/validation"
)

func captureStdout(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func captureStderr(f func()) string {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	f()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestSuccess(t *testing.T) {
	out := captureStdout(func() {
		Success("validated %d products", 7)
	})
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "validated 7 products")
}

func TestError_GoesToStderr(t *testing.T) {
	out := captureStderr(func() {
		Error("run aborted: %s", "boundaries unreachable")
	})
	assert.Contains(t, out, "✗")
	assert.Contains(t, out, "boundaries unreachable")
}

func TestJSON(t *testing.T) {
	out := captureStdout(func() {
		require.NoError(t, JSON(map[string]int{"total": 3}))
	})

	var decoded map[string]int
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, 3, decoded["total"])
}

func TestTable_AlignsColumns(t *testing.T) {
	out := captureStdout(func() {
		table := NewTable([]string{"PRODUCT", "GRADE"})
		table.AddRow([]string{"aws_cloudtrail", "excellent"})
		table.AddRow([]string{"okta", "good"})
		table.Render()
	})

	assert.Contains(t, out, "PRODUCT")
	assert.Contains(t, out, "aws_cloudtrail")
	// Short cells are padded to the widest cell in the column.
	assert.Contains(t, out, "okta            good")
}

func TestRenderReport(t *testing.T) {
	start := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	report := &validation.ValidationReport{
		RunID:      "run1",
		StartedAt:  start,
		FinishedAt: start.Add(90 * time.Second),
		Entries: []validation.ReportEntry{
			{Product: "okta_authentication", Parser: "okta-parser", Grade: validation.GradeGood,
				CoveragePct: 95.0, CompliancePct: 100.0, ExtractedCount: 19, Attempts: 2},
			{Product: "cisco_asa", Parser: "asa-parser", Grade: validation.GradeFailing,
				Reason: "never indexed within deadline", Attempts: 7},
		},
	}

	out := captureStdout(func() {
		RenderReport(report)
	})

	assert.Contains(t, out, "run1")
	assert.Contains(t, out, "okta_authentication")
	assert.Contains(t, out, "95.0%")
	assert.Contains(t, out, "never indexed within deadline")
	assert.Contains(t, out, "50.0% success rate")
}
