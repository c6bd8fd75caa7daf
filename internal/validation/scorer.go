package validation

import (
	"sort"

	"github.com/jmorascalyr/jarvis-coding/internal/taxonomy"
)

// Thresholds is the grade threshold table. It is configuration, not
// code: the cutoffs are surfaced so operators can inspect and tune
// them per deployment.
type Thresholds struct {
	// ExcellentCoverage is the minimum coverage percentage for the
	// excellent grade. Excellent additionally requires 100% OCSF
	// compliance and more than HighWaterFields extracted fields.
	ExcellentCoverage float64 `mapstructure:"excellent_coverage" yaml:"excellent_coverage"`
	// GoodCompliance is the minimum compliance percentage for good.
	GoodCompliance float64 `mapstructure:"good_compliance" yaml:"good_compliance"`
	// FunctionalCompliance is the minimum compliance percentage for
	// functional. Below it, the grade is failing.
	FunctionalCompliance float64 `mapstructure:"functional_compliance" yaml:"functional_compliance"`
	// HighWaterFields is the extracted-field count a parser must
	// exceed to be eligible for excellent.
	HighWaterFields int `mapstructure:"high_water_fields" yaml:"high_water_fields"`
	// SampleFields caps how many extracted field names are carried
	// into the score for reporting.
	SampleFields int `mapstructure:"sample_fields" yaml:"sample_fields"`
}

// DefaultThresholds returns the standard grade table.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ExcellentCoverage:    80,
		GoodCompliance:       60,
		FunctionalCompliance: 40,
		HighWaterFields:      20,
		SampleFields:         20,
	}
}

// Scorer grades field extraction. Score is a pure function: identical
// inputs always produce identical output.
type Scorer struct {
	thresholds Thresholds
}

// NewScorer creates a Scorer with the given threshold table.
func NewScorer(t Thresholds) *Scorer {
	return &Scorer{thresholds: t}
}

// Score grades the product's parser from a terminal retrieval result.
// A not-found result produces zero coverage and grade failing,
// annotated with the retrieval's reason.
func (s *Scorer) Score(p *taxonomy.Product, r *RetrievalResult) FieldScore {
	score := FieldScore{
		Product:       p.Name,
		Parser:        p.Parser,
		ExpectedCount: len(p.Taxonomy),
	}

	if !r.Found {
		score.Grade = GradeFailing
		score.Reason = r.Reason
		if score.Reason == "" {
			score.Reason = ReasonNeverIndexed
		}
		return score
	}

	present := fieldSet(r.Record)

	var matched []string
	mandatoryHit := 0
	for _, f := range p.Taxonomy {
		if _, ok := present[taxonomy.Normalize(f.Name)]; !ok {
			continue
		}
		matched = append(matched, f.Name)
		if f.Mandatory {
			mandatoryHit++
		}
	}

	score.ExtractedCount = len(matched)
	if len(p.Taxonomy) > 0 {
		score.CoveragePct = float64(len(matched)) * 100.0 / float64(len(p.Taxonomy))
	}
	if mc := p.Taxonomy.MandatoryCount(); mc > 0 {
		score.CompliancePct = float64(mandatoryHit) * 100.0 / float64(mc)
	} else {
		// No mandatory fields declared: nothing to violate.
		score.CompliancePct = 100
	}

	sort.Strings(matched)
	if max := s.thresholds.SampleFields; max > 0 && len(matched) > max {
		matched = matched[:max]
	}
	score.Extracted = matched

	score.Grade = s.grade(score.CoveragePct, score.CompliancePct, score.ExtractedCount)
	return score
}

// grade applies the threshold table. Total and deterministic over its
// inputs.
func (s *Scorer) grade(coverage, compliance float64, extracted int) Grade {
	t := s.thresholds
	switch {
	case compliance >= 100 && coverage >= t.ExcellentCoverage && extracted > t.HighWaterFields:
		return GradeExcellent
	case compliance >= t.GoodCompliance:
		return GradeGood
	case compliance >= t.FunctionalCompliance:
		return GradeFunctional
	default:
		return GradeFailing
	}
}

// fieldSet flattens a parsed record into a set of case-normalized
// dotted field paths. Query boundaries differ on whether nested
// objects arrive flattened; both shapes must count.
func fieldSet(record map[string]any) map[string]struct{} {
	out := make(map[string]struct{}, len(record))
	flattenInto(out, "", record)
	return out
}

func flattenInto(out map[string]struct{}, prefix string, m map[string]any) {
	for k, v := range m {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		out[taxonomy.Normalize(path)] = struct{}{}
		if nested, ok := v.(map[string]any); ok {
			flattenInto(out, path, nested)
		}
	}
}
