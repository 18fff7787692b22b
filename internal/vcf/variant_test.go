package vcf

import "testing"

func TestVariant_Classification(t *testing.T) {
	tests := []struct {
		name        string
		ref         string
		alts        []string
		isSNV       bool
		isIndel     bool
		isInsertion bool
		isDeletion  bool
	}{
		{"snv", "C", []string{"A"}, true, false, false, false},
		{"insertion", "C", []string{"CAG"}, false, true, true, false},
		{"deletion", "CAG", []string{"C"}, false, true, false, true},
		{"mnv", "CA", []string{"TG"}, false, false, false, false},
		{"no alt", "C", nil, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Variant{Chrom: "1", Pos: 100, Ref: tt.ref, Alts: tt.alts}
			if got := v.IsSNV(); got != tt.isSNV {
				t.Errorf("IsSNV() = %v, want %v", got, tt.isSNV)
			}
			if got := v.IsIndel(); got != tt.isIndel {
				t.Errorf("IsIndel() = %v, want %v", got, tt.isIndel)
			}
			if got := v.IsInsertion(); got != tt.isInsertion {
				t.Errorf("IsInsertion() = %v, want %v", got, tt.isInsertion)
			}
			if got := v.IsDeletion(); got != tt.isDeletion {
				t.Errorf("IsDeletion() = %v, want %v", got, tt.isDeletion)
			}
		})
	}
}

func TestVariant_MultiAllelic(t *testing.T) {
	v := &Variant{Ref: "A", Alts: []string{"C", "G"}}
	if !v.IsMultiAllelic() {
		t.Error("two alts should be multi-allelic")
	}

	v = &Variant{Ref: "A", Alts: []string{"C"}}
	if v.IsMultiAllelic() {
		t.Error("one alt should not be multi-allelic")
	}
}

func TestVariant_NormalizeChrom(t *testing.T) {
	tests := []struct {
		chrom    string
		expected string
	}{
		{"12", "12"},
		{"chr12", "12"},
		{"CHR12", "12"},
		{"chrX", "X"},
		{"chrMT", "MT"},
		{"chr", "chr"},
	}

	for _, tt := range tests {
		v := &Variant{Chrom: tt.chrom}
		if got := v.NormalizeChrom(); got != tt.expected {
			t.Errorf("NormalizeChrom(%q) = %q, want %q", tt.chrom, got, tt.expected)
		}
	}
}
