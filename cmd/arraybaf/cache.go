package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nordgenlab/arraybaf/internal/cache"
	"github.com/nordgenlab/arraybaf/internal/manifest"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the DuckDB probe cache",
		Long: `Build and inspect the probe cache. The cache holds the parsed probe
records of one manifest CSV, so later annotate runs skip the CSV parse.`,
		Example: `  arraybaf cache build --manifest GSA-24v3-0_A1.csv -o probes.duckdb
  arraybaf cache info probes.duckdb`,
	}

	cmd.AddCommand(newCacheBuildCmd())
	cmd.AddCommand(newCacheInfoCmd())

	return cmd
}

func newCacheBuildCmd() *cobra.Command {
	var (
		manifestPath string
		outputPath   string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a probe cache from a manifest CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheBuild(manifestPath, outputPath)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "bead pool manifest (.csv or .csv.gz)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "cache file to create")
	cmd.MarkFlagRequired("manifest")
	cmd.MarkFlagRequired("output")

	return cmd
}

func runCacheBuild(manifestPath, outputPath string) error {
	fp, err := cache.StatFile(manifestPath)
	if err != nil {
		return fmt.Errorf("stat manifest: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Parsing %s...\n", manifestPath)
	records, err := manifest.ReadCSV(manifestPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Parsed %d probes\n", len(records))

	// Start from an empty file so a rebuild cannot leave stale pages behind.
	if _, err := os.Stat(outputPath); err == nil {
		if err := os.Remove(outputPath); err != nil {
			return fmt.Errorf("remove existing cache: %w", err)
		}
	}

	s, err := cache.Open(outputPath)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.WriteRecords(records, fp); err != nil {
		return err
	}

	if info, err := os.Stat(outputPath); err == nil {
		fmt.Fprintf(os.Stderr, "Wrote %s (%s)\n", outputPath, formatSize(info.Size()))
	} else {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", outputPath)
	}
	return nil
}

func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <cache.duckdb>",
		Short: "Show what a probe cache was built from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheInfo(args[0])
		},
	}
}

func runCacheInfo(path string) error {
	s, err := cache.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	info, err := s.Info()
	if errors.Is(err, cache.ErrNoManifest) {
		return fmt.Errorf("%s holds no manifest, build it with: arraybaf cache build", path)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", path)
	fmt.Printf("  Source:   %s\n", info.Source)
	fmt.Printf("  Size:     %s\n", formatSize(info.Size))
	fmt.Printf("  Modified: %s\n", info.ModTime.Local().Format(time.RFC3339))
	fmt.Printf("  Probes:   %d\n", info.NProbes)
	fmt.Printf("  Built:    %s\n", info.BuiltAt.Local().Format(time.RFC3339))

	// If the source manifest is still around, say whether the cache is fresh.
	if fp, err := cache.StatFile(info.Source); err == nil {
		fmt.Printf("  Fresh:    %v\n", s.Valid(fp))
	}
	return nil
}
