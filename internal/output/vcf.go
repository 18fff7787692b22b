package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/nordgenlab/arraybaf/internal/annotate"
	"github.com/nordgenlab/arraybaf/internal/vcf"
)

// VCFWriter writes results as VCF records with per-sample FORMAT fields.
type VCFWriter struct {
	w           *bufio.Writer
	headerLines []string // input VCF header lines (## and #CHROM)
	specs       []vcf.FormatSpec
	sampleNames []string
	format      string // pre-built FORMAT column, e.g. "BAF:LRR"
}

// NewVCFWriter creates a VCF output writer. headerLines is the input file's
// header; specs declare the FORMAT fields every sample carries, in column
// order.
func NewVCFWriter(w io.Writer, headerLines []string, sampleNames []string, specs []vcf.FormatSpec) *VCFWriter {
	ids := make([]string, len(specs))
	for i, s := range specs {
		ids[i] = s.ID
	}
	return &VCFWriter{
		w:           bufio.NewWriter(w),
		headerLines: headerLines,
		specs:       specs,
		sampleNames: sampleNames,
		format:      strings.Join(ids, ":"),
	}
}

// WriteHeader writes the input header with the FORMAT declarations inserted
// before #CHROM and the #CHROM line rebuilt to carry the sample columns.
// Input declarations for the same field IDs are dropped, so re-annotating a
// file cannot duplicate them.
func (vw *VCFWriter) WriteHeader() error {
	for _, line := range vw.headerLines {
		if strings.HasPrefix(line, "#CHROM") {
			for _, spec := range vw.specs {
				if _, err := vw.w.WriteString(spec.HeaderLine() + "\n"); err != nil {
					return err
				}
			}
			if _, err := vw.w.WriteString(vw.chromLine() + "\n"); err != nil {
				return err
			}
			continue
		}
		if vw.isReplacedFormatLine(line) {
			continue
		}
		if _, err := vw.w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// chromLine rebuilds the #CHROM header line with FORMAT and sample columns.
func (vw *VCFWriter) chromLine() string {
	cols := []string{"#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO"}
	if len(vw.sampleNames) > 0 {
		cols = append(cols, "FORMAT")
		cols = append(cols, vw.sampleNames...)
	}
	return strings.Join(cols, "\t")
}

// isReplacedFormatLine reports whether an input header line declares one of
// the FORMAT fields this writer emits itself.
func (vw *VCFWriter) isReplacedFormatLine(line string) bool {
	const prefix = "##FORMAT=<ID="
	if !strings.HasPrefix(line, prefix) {
		return false
	}
	rest := line[len(prefix):]
	end := strings.IndexByte(rest, ',')
	if end < 0 {
		end = strings.IndexByte(rest, '>')
	}
	if end < 0 {
		return false
	}
	id := rest[:end]
	for _, spec := range vw.specs {
		if spec.ID == id {
			return true
		}
	}
	return false
}

// Write writes one result as a VCF record. Values arrive oriented and
// reduced, so each sample contributes one colon-joined column.
func (vw *VCFWriter) Write(r *annotate.Result) error {
	v := r.Variant

	var lb strings.Builder
	lb.Grow(256)

	lb.WriteString(v.Chrom)
	lb.WriteByte('\t')
	lb.WriteString(strconv.FormatInt(v.Pos, 10))
	lb.WriteByte('\t')
	lb.WriteString(orMissing(v.ID))
	lb.WriteByte('\t')
	lb.WriteString(v.Ref)
	lb.WriteByte('\t')
	if len(v.Alts) > 0 {
		lb.WriteString(strings.Join(v.Alts, ","))
	} else {
		lb.WriteByte('.')
	}
	lb.WriteByte('\t')
	lb.WriteString(orMissing(v.Qual))
	lb.WriteByte('\t')
	lb.WriteString(orMissing(v.Filter))
	lb.WriteByte('\t')
	lb.WriteString(orMissing(v.Info))

	if len(vw.sampleNames) > 0 {
		lb.WriteByte('\t')
		lb.WriteString(vw.format)
		for _, vals := range r.Values {
			lb.WriteByte('\t')
			lb.WriteString(strings.Join(vals, ":"))
		}
	}

	lb.WriteByte('\n')
	_, err := vw.w.WriteString(lb.String())
	return err
}

// Flush flushes any buffered output.
func (vw *VCFWriter) Flush() error {
	return vw.w.Flush()
}

// orMissing substitutes the missing token for an empty field.
func orMissing(s string) string {
	if s == "" {
		return vcf.MissingValue
	}
	return s
}
