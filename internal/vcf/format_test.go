package vcf

import "testing"

func TestFormatSpec_HeaderLine(t *testing.T) {
	tests := []struct {
		spec     FormatSpec
		expected string
	}{
		{
			FormatSpec{ID: "BAF", Number: "1", Type: "Float", Description: "B Allele Frequency"},
			`##FORMAT=<ID=BAF,Number=1,Type=Float,Description="B Allele Frequency">`,
		},
		{
			FormatSpec{ID: "LRR", Number: "1", Type: "Float", Description: "Log R Ratio"},
			`##FORMAT=<ID=LRR,Number=1,Type=Float,Description="Log R Ratio">`,
		},
	}

	for _, tt := range tests {
		if got := tt.spec.HeaderLine(); got != tt.expected {
			t.Errorf("HeaderLine() = %q, want %q", got, tt.expected)
		}
	}
}
