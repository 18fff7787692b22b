// Package output provides result output formatters.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nordgenlab/arraybaf/internal/annotate"
	"github.com/nordgenlab/arraybaf/internal/vcf"
)

// TabWriter writes results in long tab-delimited format, one row per
// variant and sample.
type TabWriter struct {
	w           *bufio.Writer
	sampleNames []string
	columns     []string
}

// NewTabWriter creates a tab-delimited writer with one value column per
// format field.
func NewTabWriter(w io.Writer, sampleNames []string, specs []vcf.FormatSpec) *TabWriter {
	columns := []string{
		"#Uploaded_variation",
		"Location",
		"REF",
		"ALT",
		"Sample",
	}
	for _, s := range specs {
		columns = append(columns, s.ID)
	}
	return &TabWriter{
		w:           bufio.NewWriter(w),
		sampleNames: sampleNames,
		columns:     columns,
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes one row per sample for a result.
func (tw *TabWriter) Write(r *annotate.Result) error {
	v := r.Variant
	location := fmt.Sprintf("%s:%d", v.Chrom, v.Pos)

	id := v.ID
	if id == "" {
		id = "-"
	}
	alt := strings.Join(v.Alts, ",")
	if alt == "" {
		alt = "-"
	}

	for si, name := range tw.sampleNames {
		values := []string{id, location, v.Ref, alt, name}
		values = append(values, r.Values[si]...)
		if _, err := tw.w.WriteString(strings.Join(values, "\t") + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
