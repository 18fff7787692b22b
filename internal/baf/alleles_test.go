package baf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordgenlab/arraybaf/internal/vcf"
)

var alleleCodes = []string{"A", "T", "G", "C", "I", "D"}

func TestParseSNP(t *testing.T) {
	tests := []struct {
		snp     string
		allele1 string
		allele2 string
	}{
		{"[A/G]", "A", "G"},
		{"[T/C]", "T", "C"},
		{"[I/D]", "I", "D"},
		{"[D/I]", "D", "I"},
	}
	for _, tt := range tests {
		a1, a2, err := ParseSNP(tt.snp)
		require.NoError(t, err, "ParseSNP(%q)", tt.snp)
		assert.Equal(t, tt.allele1, a1)
		assert.Equal(t, tt.allele2, a2)
	}
}

func TestParseSNPAllCodes(t *testing.T) {
	for _, x := range alleleCodes {
		for _, y := range alleleCodes {
			a1, a2, err := ParseSNP("[" + x + "/" + y + "]")
			require.NoError(t, err)
			assert.Equal(t, x, a1)
			assert.Equal(t, y, a2)
		}
	}
}

func TestParseSNPInvalid(t *testing.T) {
	tests := []string{
		"[X/Y]", // unknown codes
		"[N/A]",
		"[AG]x", // no separator in the allele window
		"[]",    // too short
		"",
	}
	for _, snp := range tests {
		_, _, err := ParseSNP(snp)
		require.Error(t, err, "ParseSNP(%q)", snp)
		assert.ErrorIs(t, err, ErrInvalidAlleleCode, "ParseSNP(%q)", snp)
	}
}

func TestReverseComplementAlleles(t *testing.T) {
	tests := []struct {
		snp     string
		allele1 string
		allele2 string
	}{
		{"[A/G]", "T", "C"},
		{"[T/C]", "A", "G"},
		{"[G/T]", "C", "A"},
		{"[C/A]", "G", "T"},
	}
	for _, tt := range tests {
		a1, a2, err := reverseComplementAlleles(tt.snp)
		require.NoError(t, err, "reverseComplementAlleles(%q)", tt.snp)
		assert.Equal(t, tt.allele1, a1)
		assert.Equal(t, tt.allele2, a2)
	}
}

func TestReverseComplementSelfInverse(t *testing.T) {
	for _, code := range alleleCodes {
		assert.Equal(t, code, reverseComplement[reverseComplement[code]], "code %s", code)
	}

	// The indel placeholders have no complement.
	assert.Equal(t, "I", reverseComplement["I"])
	assert.Equal(t, "D", reverseComplement["D"])
}

func TestConvertIndelAlleles(t *testing.T) {
	tests := []struct {
		name    string
		snp     string
		ref     string
		alt     string
		allele1 string
		allele2 string
	}{
		{"insertion first", "[I/D]", "A", "ATG", "ATG", "A"},
		{"deletion first", "[D/I]", "A", "ATG", "A", "ATG"},
		{"deletion variant", "[I/D]", "ATG", "A", "ATG", "A"},
		{"deletion variant, deletion first", "[D/I]", "ATG", "A", "A", "ATG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &vcf.Variant{Ref: tt.ref, Alts: []string{tt.alt}}
			a1, a2, err := convertIndelAlleles(tt.snp, v)
			require.NoError(t, err)
			assert.Equal(t, tt.allele1, a1)
			assert.Equal(t, tt.allele2, a2)
		})
	}
}

func TestConvertIndelAllelesMultiAllelic(t *testing.T) {
	v := &vcf.Variant{Ref: "A", Alts: []string{"ATG", "AT"}}
	_, _, err := convertIndelAlleles("[I/D]", v)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMultiAllelicIndel)

	// No alt allele at all is just as unresolvable.
	v = &vcf.Variant{Ref: "A"}
	_, _, err = convertIndelAlleles("[I/D]", v)
	assert.ErrorIs(t, err, ErrMultiAllelicIndel)
}

func TestConvertIndelAllelesEqualLength(t *testing.T) {
	v := &vcf.Variant{Ref: "AT", Alts: []string{"GC"}}
	_, _, err := convertIndelAlleles("[I/D]", v)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguousIndelLength)
}

func TestConvertIndelAllelesBadSNP(t *testing.T) {
	v := &vcf.Variant{Ref: "A", Alts: []string{"ATG"}}
	_, _, err := convertIndelAlleles("[X/Y]", v)
	assert.ErrorIs(t, err, ErrInvalidAlleleCode)
}
