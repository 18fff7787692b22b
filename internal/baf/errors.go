package baf

import "errors"

// Allele resolution failures. The per-variant pipeline matches on these to
// log and flag the affected field without aborting the run.
var (
	// ErrInvalidAlleleCode reports an allele code outside A, T, G, C, I, D.
	ErrInvalidAlleleCode = errors.New("invalid allele code")

	// ErrMultiAllelicIndel reports indel resolution against a variant that
	// does not have exactly one alt allele.
	ErrMultiAllelicIndel = errors.New("indel with multiple alt alleles")

	// ErrAmbiguousIndelLength reports an indel whose ref and alt sequences
	// have the same length, leaving insertion and deletion
	// indistinguishable.
	ErrAmbiguousIndelLength = errors.New("ref and alt alleles have equal length")

	// ErrAlleleMismatch reports a resolved allele pair that contains the
	// variant's reference allele in neither position.
	ErrAlleleMismatch = errors.New("alleles do not match ref")
)
