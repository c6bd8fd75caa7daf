package logging

import "log/slog"

// Common field names for consistent logging across the pipeline.
const (
	FieldProduct  = "product"
	FieldParser   = "parser"
	FieldToken    = "token"
	FieldFormat   = "format"
	FieldStatus   = "status"
	FieldAttempts = "attempts"
	FieldDuration = "duration_ms"
	FieldError    = "error"
	FieldGrade    = "grade"
	FieldCoverage = "coverage_pct"
	FieldRunID    = "run_id"
)

// Product returns a slog attribute for the product under test.
func Product(name string) slog.Attr {
	return slog.String(FieldProduct, name)
}

// Parser returns a slog attribute for the target parser identifier.
func Parser(id string) slog.Attr {
	return slog.String(FieldParser, id)
}

// Token returns a slog attribute for a tracking token.
func Token(token string) slog.Attr {
	return slog.String(FieldToken, token)
}

// Format returns a slog attribute for an event input format.
func Format(format string) slog.Attr {
	return slog.String(FieldFormat, format)
}

// Status returns a slog attribute for an HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int(FieldStatus, code)
}

// Attempts returns a slog attribute for poll attempts consumed.
func Attempts(n int) slog.Attr {
	return slog.Int(FieldAttempts, n)
}

// Duration returns a slog attribute for duration in milliseconds.
func Duration(ms int64) slog.Attr {
	return slog.Int64(FieldDuration, ms)
}

// Error returns a slog attribute for an error.
func Error(err error) slog.Attr {
	return slog.String(FieldError, err.Error())
}

// Grade returns a slog attribute for a scoring grade.
func Grade(grade string) slog.Attr {
	return slog.String(FieldGrade, grade)
}

// Coverage returns a slog attribute for a coverage percentage.
func Coverage(pct float64) slog.Attr {
	return slog.Float64(FieldCoverage, pct)
}

// RunID returns a slog attribute for a validation run identifier.
func RunID(id string) slog.Attr {
	return slog.String(FieldRunID, id)
}
