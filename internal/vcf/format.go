// Package vcf provides VCF parsing and writing functionality.
package vcf

import "fmt"

// MissingValue is the VCF token for an absent value.
const MissingValue = "."

// FormatSpec describes a FORMAT field for the VCF header.
type FormatSpec struct {
	ID          string // e.g. "BAF"
	Number      string // cardinality, e.g. "1"
	Type        string // VCF type, e.g. "Float"
	Description string // human-readable description
}

// HeaderLine renders the ##FORMAT meta line for this field.
func (s FormatSpec) HeaderLine() string {
	return fmt.Sprintf("##FORMAT=<ID=%s,Number=%s,Type=%s,Description=\"%s\">",
		s.ID, s.Number, s.Type, s.Description)
}
