// Package baf converts Illumina array probe frequencies into VCF-oriented
// per-sample format fields.
//
// A probe reports its two alleles on an arbitrary design strand, while a VCF
// record fixes REF and ALT on the plus strand. Format re-orients each
// probe's measured B allele fraction to the record's REF allele, resolving
// strand flips and indel placeholders, and merges multiple probes per site
// with a missing-tolerant median.
package baf

import (
	"fmt"
	"math"
	"strconv"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"github.com/nordgenlab/arraybaf/internal/manifest"
	"github.com/nordgenlab/arraybaf/internal/vcf"
)

// probeClass tags the three allele-resolution routes a probe can take.
type probeClass int

const (
	classStandard probeClass = iota
	classReverseStrand
	classIndel
)

// classify picks a probe's resolution route. Indel probes never go through
// strand complementing, whatever their strand says.
func classify(r *manifest.Record) probeClass {
	switch {
	case r.IsIndel():
		return classIndel
	case r.RefStrand == manifest.RefStrandMinus:
		return classReverseStrand
	default:
		return classStandard
	}
}

// Format computes the per-sample B allele frequency field from one sample's
// per-probe frequency array.
type Format struct {
	freqs  []float32
	logger *zap.Logger
}

// NewFormat returns a Format over one sample's per-probe B allele
// frequencies, indexed by manifest row.
func NewFormat(freqs []float32) *Format {
	return &Format{
		freqs:  freqs,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger used for debug output.
func (f *Format) SetLogger(logger *zap.Logger) {
	f.logger = logger
}

// Spec returns the header declaration for the BAF field.
func (f *Format) Spec() vcf.FormatSpec {
	return vcf.FormatSpec{
		ID:          "BAF",
		Number:      "1",
		Type:        "Float",
		Description: "B Allele Frequency",
	}
}

// SampleValue computes the field value for one variant. probes are the
// manifest records mapping to the variant, in manifest order. Multi-allelic
// sites are unsupported and yield the missing value without consulting any
// probe. Other failures come back as errors for the caller to log and flag;
// none of them should abort a run.
func (f *Format) SampleValue(probes []*manifest.Record, v *vcf.Variant, sample string) (string, error) {
	if v.IsMultiAllelic() {
		f.logger.Debug("multi-allelic site unsupported for b allele frequency",
			zap.String("sample", sample),
			zap.String("chrom", v.Chrom),
			zap.Int64("pos", v.Pos))
		return vcf.MissingValue, nil
	}

	oriented := make([]float64, 0, len(probes))
	for _, rec := range probes {
		if rec.Index < 0 || rec.Index >= len(f.freqs) {
			return "", fmt.Errorf("probe %s: index %d out of range for %d frequencies",
				rec.Name, rec.Index, len(f.freqs))
		}
		freq := float64(f.freqs[rec.Index])

		var allele1, allele2 string
		var err error
		switch classify(rec) {
		case classIndel:
			allele1, allele2, err = convertIndelAlleles(rec.SNP, v)
		case classReverseStrand:
			allele1, allele2, err = reverseComplementAlleles(rec.SNP)
		case classStandard:
			allele1, allele2, err = ParseSNP(rec.SNP)
		}
		if err != nil {
			return "", fmt.Errorf("probe %s: %w", rec.Name, err)
		}

		// The first probe allele is the array's A allele, so the measured
		// value is the B fraction as-is when allele1 is the reference and
		// flips when allele2 is.
		switch {
		case allele1 == v.Ref:
			oriented = append(oriented, freq)
		case allele2 == v.Ref:
			oriented = append(oriented, 1-freq)
		default:
			return "", fmt.Errorf("probe %s: allele1 %q, allele2 %q, ref %q: %w",
				rec.Name, allele1, allele2, v.Ref, ErrAlleleMismatch)
		}
	}

	med, err := nanMedian(oriented)
	if err != nil {
		return "", fmt.Errorf("median: %w", err)
	}
	if math.IsNaN(med) {
		return vcf.MissingValue, nil
	}
	return formatFloat(med), nil
}

// nanMedian is the median of the non-NaN values, or NaN when none remain.
func nanMedian(vals []float64) (float64, error) {
	kept := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return math.NaN(), nil
	}
	return stats.Median(kept)
}

// formatFloat renders a value at float32 precision, which is what GTC
// arrays store, so output strings stay short.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 32)
}
