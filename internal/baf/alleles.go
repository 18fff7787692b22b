package baf

import (
	"fmt"
	"strings"

	"github.com/nordgenlab/arraybaf/internal/vcf"
)

// reverseComplement maps each allele code to its complement. The indel
// placeholders I and D have no complement and map to themselves.
var reverseComplement = map[string]string{
	"A": "T",
	"T": "A",
	"G": "C",
	"C": "G",
	"I": "I",
	"D": "D",
}

// ParseSNP splits a manifest SNP string such as "[T/C]" or "[I/D]" into its
// two allele codes. The codes sit at fixed offsets inside the brackets.
func ParseSNP(snp string) (string, string, error) {
	if len(snp) < 4 {
		return "", "", fmt.Errorf("snp string %q too short: %w", snp, ErrInvalidAlleleCode)
	}
	parts := strings.Split(snp[1:4], "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("snp string %q: %w", snp, ErrInvalidAlleleCode)
	}
	allele1, allele2 := parts[0], parts[1]
	if _, ok := reverseComplement[allele1]; !ok {
		return "", "", fmt.Errorf("allele %q in %q, expected A,T,G,C,I,D: %w", allele1, snp, ErrInvalidAlleleCode)
	}
	if _, ok := reverseComplement[allele2]; !ok {
		return "", "", fmt.Errorf("allele %q in %q, expected A,T,G,C,I,D: %w", allele2, snp, ErrInvalidAlleleCode)
	}
	return allele1, allele2, nil
}

// reverseComplementAlleles parses a SNP string and complements both codes so
// the pair reads on the plus strand instead of the probe's design strand.
func reverseComplementAlleles(snp string) (string, string, error) {
	allele1, allele2, err := ParseSNP(snp)
	if err != nil {
		return "", "", err
	}
	return reverseComplement[allele1], reverseComplement[allele2], nil
}

// convertIndelAlleles resolves the I/D placeholders of an indel probe to the
// variant's actual sequences. The shorter of ref and alt is taken as the
// deletion allele, the longer as the insertion. The returned order follows
// the probe: if its first code is I the insertion sequence comes first,
// otherwise the deletion does. Order matters downstream, where the first
// slot is compared against the reference allele.
func convertIndelAlleles(snp string, v *vcf.Variant) (string, string, error) {
	// Only the first code matters: a valid indel probe pairs I with D.
	allele1, _, err := ParseSNP(snp)
	if err != nil {
		return "", "", err
	}

	if len(v.Alts) != 1 {
		return "", "", fmt.Errorf("%d alt alleles: %w", len(v.Alts), ErrMultiAllelicIndel)
	}
	ref, alt := v.Ref, v.Alts[0]
	if len(ref) == len(alt) {
		return "", "", fmt.Errorf("ref %q and alt %q: %w", ref, alt, ErrAmbiguousIndelLength)
	}

	deletion, insertion := ref, alt
	if len(alt) < len(ref) {
		deletion, insertion = alt, ref
	}
	if allele1 == "I" {
		return insertion, deletion, nil
	}
	return deletion, insertion, nil
}
