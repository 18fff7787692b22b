// Package vcf provides VCF parsing and writing functionality.
package vcf

import "strings"

// Variant represents a single genomic variant from a VCF file.
// QUAL, FILTER and INFO are kept as raw strings so records can be
// written back out unchanged.
type Variant struct {
	Chrom  string   // Chromosome name (e.g., "12", "chr12")
	Pos    int64    // 1-based genomic position
	ID     string   // Variant identifier (e.g., rs ID)
	Ref    string   // Reference allele
	Alts   []string // Alternate alleles, in column order
	Qual   string   // Quality column, "." if absent
	Filter string   // Filter status (PASS or filter name)
	Info   string   // Raw INFO column
}

// Alt returns the first alternate allele, or "" if the variant has none.
func (v *Variant) Alt() string {
	if len(v.Alts) == 0 {
		return ""
	}
	return v.Alts[0]
}

// IsMultiAllelic returns true if the variant has more than one alternate allele.
func (v *Variant) IsMultiAllelic() bool {
	return len(v.Alts) > 1
}

// IsSNV returns true if the variant is a single nucleotide variant.
func (v *Variant) IsSNV() bool {
	return len(v.Ref) == 1 && len(v.Alt()) == 1
}

// IsIndel returns true if the variant is an insertion or deletion.
func (v *Variant) IsIndel() bool {
	return len(v.Alts) > 0 && len(v.Ref) != len(v.Alt())
}

// IsInsertion returns true if the variant is an insertion.
func (v *Variant) IsInsertion() bool {
	return len(v.Alt()) > len(v.Ref)
}

// IsDeletion returns true if the variant is a deletion.
func (v *Variant) IsDeletion() bool {
	return len(v.Ref) > len(v.Alt())
}

// NormalizeChrom returns the chromosome name without "chr" prefix.
func (v *Variant) NormalizeChrom() string {
	if len(v.Chrom) > 3 && strings.EqualFold(v.Chrom[:3], "chr") {
		return v.Chrom[3:]
	}
	return v.Chrom
}
