package annotate

import (
	"github.com/nordgenlab/arraybaf/internal/manifest"
	"github.com/nordgenlab/arraybaf/internal/vcf"
)

// FormatField computes one per-sample FORMAT field from array probe data.
type FormatField interface {
	// Spec declares the field for the output header.
	Spec() vcf.FormatSpec

	// SampleValue computes the field value for one variant from the probes
	// mapping to it, in manifest order. Implementations return the missing
	// value for defined unsupported cases and an error for malformed input.
	SampleValue(probes []*manifest.Record, v *vcf.Variant, sample string) (string, error)
}

// Sample pairs a sample name with its format fields. Every sample handed to
// an Annotator must carry the same fields in the same order, since they
// share one FORMAT column declaration.
type Sample struct {
	Name   string
	Fields []FormatField
}
