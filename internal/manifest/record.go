// Package manifest provides access to Illumina bead pool manifest probe records.
package manifest

import "strings"

// RefStrand is the reference-genome strand a probe's alleles are reported on.
type RefStrand int

const (
	RefStrandUnknown RefStrand = iota
	RefStrandPlus
	RefStrandMinus
)

// ParseRefStrand converts a manifest strand token ("+", "-") to a RefStrand.
func ParseRefStrand(s string) RefStrand {
	switch strings.TrimSpace(s) {
	case "+":
		return RefStrandPlus
	case "-":
		return RefStrandMinus
	default:
		return RefStrandUnknown
	}
}

// String returns the manifest token for the strand.
func (s RefStrand) String() string {
	switch s {
	case RefStrandPlus:
		return "+"
	case RefStrandMinus:
		return "-"
	default:
		return "U"
	}
}

// Record is one probe (locus entry) from a bead pool manifest.
// Index is the probe's row number in the manifest, which is also its
// position in the per-probe arrays of a GTC file built from the same
// bead pool.
type Record struct {
	Name      string    // locus name, e.g. "rs12345"
	SNP       string    // allele string in bracket notation, e.g. "[A/G]"
	RefStrand RefStrand // strand the SNP string is reported on
	Chrom     string    // chromosome without "chr" prefix
	Pos       int64     // 1-based mapping position (MapInfo)
	Index     int       // row index into per-probe data arrays
}

// IsIndel returns true if the probe assays an insertion/deletion, i.e. its
// SNP string carries the I/D placeholders instead of bases.
func (r *Record) IsIndel() bool {
	return strings.ContainsAny(r.SNP, "ID")
}
