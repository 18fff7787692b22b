package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nordgenlab/arraybaf/internal/annotate"
	"github.com/nordgenlab/arraybaf/internal/vcf"
)

func TestTabWriter_Header(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf, []string{"s1"}, bafSpecs())

	if err := w.WriteHeader(); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	want := "#Uploaded_variation\tLocation\tREF\tALT\tSample\tBAF\tLRR\n"
	if buf.String() != want {
		t.Errorf("header = %q, want %q", buf.String(), want)
	}
}

func TestTabWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf, []string{"NA12878", "NA24385"}, bafSpecs())

	if err := w.WriteHeader(); err != nil {
		t.Fatal(err)
	}

	r := &annotate.Result{
		Variant: &vcf.Variant{
			Chrom: "12", Pos: 25245351, ID: "rs121913529",
			Ref: "C", Alts: []string{"A"},
		},
		Values: [][]string{{"0.3", "0.1"}, {"0.7", "."}},
	}
	if err := w.Write(r); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}

	want1 := "rs121913529\t12:25245351\tC\tA\tNA12878\t0.3\t0.1"
	want2 := "rs121913529\t12:25245351\tC\tA\tNA24385\t0.7\t."
	if lines[1] != want1 {
		t.Errorf("row 1 = %q, want %q", lines[1], want1)
	}
	if lines[2] != want2 {
		t.Errorf("row 2 = %q, want %q", lines[2], want2)
	}
}

func TestTabWriter_EmptyFields(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf, []string{"s1"}, bafSpecs()[:1])

	r := &annotate.Result{
		Variant: &vcf.Variant{Chrom: "1", Pos: 100, Ref: "A"},
		Values:  [][]string{{"."}},
	}
	if err := w.Write(r); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	want := "-\t1:100\tA\t-\ts1\t.\n"
	if buf.String() != want {
		t.Errorf("row = %q, want %q", buf.String(), want)
	}
}
