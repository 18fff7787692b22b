package baf

import (
	"fmt"
	"math"

	"github.com/nordgenlab/arraybaf/internal/manifest"
	"github.com/nordgenlab/arraybaf/internal/vcf"
)

// LogRFormat computes the per-sample log R ratio field. Unlike the B allele
// frequency the ratio carries no allele orientation, so probes merge by
// plain NaN-tolerant median and multi-allelic sites are fine.
type LogRFormat struct {
	ratios []float32
}

// NewLogRFormat returns a LogRFormat over one sample's per-probe log R
// ratios, indexed by manifest row.
func NewLogRFormat(ratios []float32) *LogRFormat {
	return &LogRFormat{ratios: ratios}
}

// Spec returns the header declaration for the LRR field.
func (f *LogRFormat) Spec() vcf.FormatSpec {
	return vcf.FormatSpec{
		ID:          "LRR",
		Number:      "1",
		Type:        "Float",
		Description: "Log R Ratio",
	}
}

// SampleValue merges the mapped probes' ratios.
func (f *LogRFormat) SampleValue(probes []*manifest.Record, v *vcf.Variant, sample string) (string, error) {
	vals := make([]float64, 0, len(probes))
	for _, rec := range probes {
		if rec.Index < 0 || rec.Index >= len(f.ratios) {
			return "", fmt.Errorf("probe %s: index %d out of range for %d ratios",
				rec.Name, rec.Index, len(f.ratios))
		}
		vals = append(vals, float64(f.ratios[rec.Index]))
	}

	med, err := nanMedian(vals)
	if err != nil {
		return "", fmt.Errorf("median: %w", err)
	}
	if math.IsNaN(med) {
		return vcf.MissingValue, nil
	}
	return formatFloat(med), nil
}
