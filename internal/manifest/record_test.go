package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRefStrand(t *testing.T) {
	tests := []struct {
		in   string
		want RefStrand
	}{
		{"+", RefStrandPlus},
		{"-", RefStrandMinus},
		{" + ", RefStrandPlus},
		{"", RefStrandUnknown},
		{"?", RefStrandUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRefStrand(tt.in), "ParseRefStrand(%q)", tt.in)
	}
}

func TestRefStrandString(t *testing.T) {
	assert.Equal(t, "+", RefStrandPlus.String())
	assert.Equal(t, "-", RefStrandMinus.String())
	assert.Equal(t, "U", RefStrandUnknown.String())
}

func TestRecordIsIndel(t *testing.T) {
	tests := []struct {
		snp  string
		want bool
	}{
		{"[A/G]", false},
		{"[T/C]", false},
		{"[I/D]", true},
		{"[D/I]", true},
	}
	for _, tt := range tests {
		r := &Record{SNP: tt.snp}
		assert.Equal(t, tt.want, r.IsIndel(), "SNP %s", tt.snp)
	}
}
