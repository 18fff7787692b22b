package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nordgenlab/arraybaf/internal/gtc"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.gtc>...",
		Short: "Print GTC file metadata",
		Long: `Print the metadata of one or more GTC files: sample identity, scanner
run details, call rate and which per-probe arrays the file carries.`,
		Example: `  arraybaf info NA12878.gtc
  arraybaf info plates/*.gtc`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, path := range args {
				if i > 0 {
					fmt.Println()
				}
				if err := printGTCInfo(path); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			return nil
		},
	}
}

func printGTCInfo(path string) error {
	g, err := gtc.Open(path)
	if err != nil {
		return err
	}
	defer g.Close()

	fmt.Printf("%s\n", path)
	fmt.Printf("  %-18s %d\n", "Version:", g.Version())
	fmt.Printf("  %-18s %d\n", "SNPs:", g.NumSNPs())

	fields := []struct {
		label string
		get   func() (string, error)
	}{
		{"Sample name", g.SampleName},
		{"Sample plate", g.SamplePlate},
		{"Sample well", g.SampleWell},
		{"SNP manifest", g.SNPManifest},
		{"Cluster file", g.ClusterFile},
		{"Slide", g.SlideIdentifier},
		{"Autocall", g.AutocallVersion},
		{"Autocall date", g.AutocallDate},
		{"Imaging date", g.ImagingDate},
	}
	for _, f := range fields {
		val, err := f.get()
		if errors.Is(err, gtc.ErrNoEntry) || (err == nil && val == "") {
			continue
		}
		if err != nil {
			return err
		}
		fmt.Printf("  %-18s %s\n", f.label+":", val)
	}

	if rate, err := g.CallRate(); err == nil {
		fmt.Printf("  %-18s %.4f\n", "Call rate:", rate)
	} else if !errors.Is(err, gtc.ErrNoEntry) {
		return err
	}
	if gender, err := g.Gender(); err == nil {
		fmt.Printf("  %-18s %c\n", "Gender:", gender)
	} else if !errors.Is(err, gtc.ErrNoEntry) {
		return err
	}
	if dev, err := g.LogRDev(); err == nil {
		fmt.Printf("  %-18s %.4f\n", "LogR deviation:", dev)
	} else if !errors.Is(err, gtc.ErrNoEntry) {
		return err
	}

	fmt.Printf("  %-18s %s\n", "Genotype scores:", arrayAvailability(g.GenotypeScores))
	fmt.Printf("  %-18s %s\n", "B allele freqs:", arrayAvailability(g.BAlleleFreqs))
	fmt.Printf("  %-18s %s\n", "Log R ratios:", arrayAvailability(g.LogRRatios))

	return nil
}

// arrayAvailability describes a per-probe array without loading it into the
// caller's error path: old files legitimately lack the intensity arrays.
func arrayAvailability(get func() ([]float32, error)) string {
	vals, err := get()
	if err != nil {
		return fmt.Sprintf("unavailable (%v)", err)
	}
	return fmt.Sprintf("%d values", len(vals))
}
