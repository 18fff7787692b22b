package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nordgenlab/arraybaf/internal/annotate"
	"github.com/nordgenlab/arraybaf/internal/baf"
	"github.com/nordgenlab/arraybaf/internal/cache"
	"github.com/nordgenlab/arraybaf/internal/gtc"
	"github.com/nordgenlab/arraybaf/internal/manifest"
	"github.com/nordgenlab/arraybaf/internal/output"
	"github.com/nordgenlab/arraybaf/internal/vcf"
)

type annotateOptions struct {
	manifestPath string
	gtcPaths     []string
	inputPath    string
	outputPath   string
	format       string
	includeLRR   bool
	workers      int
}

func newAnnotateCmd() *cobra.Command {
	var (
		manifestPath string
		gtcPaths     []string
		outputPath   string
		format       string
		noLRR        bool
		workers      int
	)

	cmd := &cobra.Command{
		Use:   "annotate [flags] <input.vcf>",
		Short: "Add per-sample BAF and LRR FORMAT fields to a VCF",
		Long: `Annotate a VCF with B allele frequencies read from Illumina GTC files.

Each --gtc file becomes one sample column in the output; existing sample
columns are replaced. Probe positions come from the bead pool manifest,
given either as the Illumina CSV or as a probe cache built with
"arraybaf cache build".`,
		Example: `  arraybaf annotate --manifest GSA-24v3-0_A1.csv --gtc NA12878.gtc input.vcf
  arraybaf annotate --manifest probes.duckdb --gtc a.gtc --gtc b.gtc -o out.vcf.gz input.vcf
  cat input.vcf | arraybaf annotate --manifest probes.duckdb --gtc a.gtc -f tab -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if manifestPath == "" {
				manifestPath = viper.GetString("manifest")
			}
			if manifestPath == "" {
				return fmt.Errorf("--manifest is required (or set \"manifest\" in ~/.arraybaf.yaml)")
			}
			if !cmd.Flags().Changed("workers") && viper.IsSet("workers") {
				workers = viper.GetInt("workers")
			}
			includeLRR := !noLRR
			if !cmd.Flags().Changed("no-lrr") && viper.IsSet("formats.lrr") {
				includeLRR = viper.GetBool("formats.lrr")
			}

			return runAnnotate(annotateOptions{
				manifestPath: manifestPath,
				gtcPaths:     gtcPaths,
				inputPath:    args[0],
				outputPath:   outputPath,
				format:       format,
				includeLRR:   includeLRR,
				workers:      workers,
			})
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "bead pool manifest (.csv, .csv.gz or .duckdb)")
	cmd.Flags().StringArrayVar(&gtcPaths, "gtc", nil, "GTC file to take sample data from (repeatable)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file, .gz for gzip (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "vcf", "output format: vcf, tab")
	cmd.Flags().BoolVar(&noLRR, "no-lrr", false, "skip the LRR (Log R Ratio) FORMAT field")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (default: all CPUs)")
	cmd.MarkFlagRequired("gtc")

	return cmd
}

func runAnnotate(opts annotateOptions) error {
	records, err := loadProbes(opts.manifestPath)
	if err != nil {
		return err
	}
	lookup := manifest.NewLookup(records)
	fmt.Fprintf(os.Stderr, "Loaded %d probes from %s\n", lookup.Len(), opts.manifestPath)

	samples := make([]annotate.Sample, 0, len(opts.gtcPaths))
	for _, path := range opts.gtcPaths {
		sample, err := openSample(path, len(records), opts.includeLRR)
		if err != nil {
			return fmt.Errorf("gtc %s: %w", path, err)
		}
		samples = append(samples, sample)
	}

	parser, err := vcf.NewParser(opts.inputPath)
	if err != nil {
		return err
	}
	defer parser.Close()

	out, closeOut, err := openOutput(opts.outputPath)
	if err != nil {
		return err
	}

	sampleNames := make([]string, len(samples))
	for i, s := range samples {
		sampleNames[i] = s.Name
	}
	specs := make([]vcf.FormatSpec, len(samples[0].Fields))
	for i, f := range samples[0].Fields {
		specs[i] = f.Spec()
	}

	var writer annotate.ResultWriter
	switch opts.format {
	case "vcf":
		writer = output.NewVCFWriter(out, parser.Header(), sampleNames, specs)
	case "tab":
		writer = output.NewTabWriter(out, sampleNames, specs)
	default:
		closeOut()
		return fmt.Errorf("unknown output format %q", opts.format)
	}

	ann := annotate.NewAnnotator(lookup, samples)
	ann.SetLogger(logger)

	if err := ann.AnnotateAll(parser, writer, opts.workers); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

// loadProbes reads probe records from a manifest CSV or a probe cache,
// chosen by file extension.
func loadProbes(path string) ([]*manifest.Record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".duckdb", ".db":
		s, err := cache.Open(path)
		if err != nil {
			return nil, err
		}
		defer s.Close()

		records, err := s.LoadRecords()
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, fmt.Errorf("probe cache %s is empty, build it with: arraybaf cache build", path)
		}
		return records, nil
	default:
		return manifest.ReadCSV(path)
	}
}

// openSample reads the per-probe arrays of one GTC file into FORMAT fields.
// The file handle is released before returning; the arrays live in memory.
func openSample(path string, nProbes int, includeLRR bool) (annotate.Sample, error) {
	g, err := gtc.Open(path)
	if err != nil {
		return annotate.Sample{}, err
	}
	defer g.Close()

	name, err := g.SampleName()
	if err != nil || name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	freqs, err := g.BAlleleFreqs()
	if err != nil {
		return annotate.Sample{}, err
	}
	if len(freqs) != nProbes {
		logger.Warn("probe count mismatch between manifest and gtc",
			zap.String("sample", name),
			zap.Int("manifest_probes", nProbes),
			zap.Int("gtc_probes", len(freqs)))
	}

	bafField := baf.NewFormat(freqs)
	bafField.SetLogger(logger)
	fields := []annotate.FormatField{bafField}

	if includeLRR {
		ratios, err := g.LogRRatios()
		if err != nil {
			return annotate.Sample{}, fmt.Errorf("log R ratios unavailable (use --no-lrr to skip): %w", err)
		}
		fields = append(fields, baf.NewLogRFormat(ratios))
	}

	if rate, err := g.CallRate(); err == nil {
		fmt.Fprintf(os.Stderr, "  %s: %d probes, call rate %.4f\n", name, len(freqs), rate)
	} else {
		fmt.Fprintf(os.Stderr, "  %s: %d probes\n", name, len(freqs))
	}

	return annotate.Sample{Name: name, Fields: fields}, nil
}

// openOutput opens the output destination. The returned close function
// flushes any gzip stream and must run before the process exits.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}

	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(f)
		return gz, func() error {
			if err := gz.Close(); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		}, nil
	}
	return f, f.Close, nil
}
