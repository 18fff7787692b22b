// Package annotate drives per-variant computation of array format fields.
package annotate

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/nordgenlab/arraybaf/internal/manifest"
	"github.com/nordgenlab/arraybaf/internal/vcf"
)

// ProbeLookup defines the interface for finding the probes at a position.
type ProbeLookup interface {
	FindProbes(chrom string, pos int64, id string) []*manifest.Record
}

// Annotator fills per-sample format fields for each variant.
type Annotator struct {
	lookup  ProbeLookup
	samples []Sample
	logger  *zap.Logger
}

// NewAnnotator creates an annotator over the given probe lookup and samples.
func NewAnnotator(lookup ProbeLookup, samples []Sample) *Annotator {
	return &Annotator{
		lookup:  lookup,
		samples: samples,
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the logger for warning and info messages.
func (a *Annotator) SetLogger(l *zap.Logger) {
	a.logger = l
}

// Samples returns the annotator's samples in output column order.
func (a *Annotator) Samples() []Sample {
	return a.samples
}

// Result carries one variant's computed format values. Values is indexed
// [sample][field], both in declaration order.
type Result struct {
	Variant *vcf.Variant
	Values  [][]string
}

// Annotate computes all fields of all samples for one variant. A field
// failure is logged and flagged with the missing value; it never fails the
// variant, so a bad probe leaves the rest of the run intact.
func (a *Annotator) Annotate(v *vcf.Variant) *Result {
	probes := a.lookup.FindProbes(v.NormalizeChrom(), v.Pos, v.ID)

	res := &Result{
		Variant: v,
		Values:  make([][]string, len(a.samples)),
	}
	for si, sample := range a.samples {
		vals := make([]string, len(sample.Fields))
		for fi, field := range sample.Fields {
			val, err := field.SampleValue(probes, v, sample.Name)
			if err != nil {
				a.logger.Warn("failed to compute format field",
					zap.String("field", field.Spec().ID),
					zap.String("sample", sample.Name),
					zap.String("chrom", v.Chrom),
					zap.Int64("pos", v.Pos),
					zap.Error(err))
				val = vcf.MissingValue
			}
			vals[fi] = val
		}
		res.Values[si] = vals
	}
	return res
}

// AnnotateAll computes fields for all variants from a parser and writes
// them in input order. The parser can be any type that implements
// vcf.VariantParser.
func (a *Annotator) AnnotateAll(parser vcf.VariantParser, writer ResultWriter, workers int) error {
	if err := writer.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	items := make(chan WorkItem, 2*runtime.NumCPU())
	var parseErr error
	variantCount := 0

	go func() {
		defer close(items)
		seq := 0
		for {
			v, err := parser.Next()
			if err != nil {
				parseErr = fmt.Errorf("read variant: %w", err)
				return
			}
			if v == nil {
				return
			}
			variantCount++
			items <- WorkItem{Seq: seq, Variant: v}
			seq++
		}
	}()

	results := a.ParallelAnnotate(items, workers)

	if err := OrderedCollect(results, func(r WorkResult) error {
		if err := writer.Write(r.Res); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}

	if parseErr != nil {
		return parseErr
	}

	if variantCount == 0 {
		a.logger.Info("0 variants processed")
	}

	return writer.Flush()
}

// ResultWriter defines the interface for writing computed results.
type ResultWriter interface {
	WriteHeader() error
	Write(r *Result) error
	Flush() error
}
