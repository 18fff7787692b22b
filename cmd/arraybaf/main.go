// Package main provides the arraybaf command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// logger is the process-wide logger. The root command replaces it once the
// --verbose flag is known; until then it swallows everything.
var logger = zap.NewNop()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "arraybaf",
		Short: "Compute B allele frequencies from Illumina GTC files",
		Long: `arraybaf reads per-probe allele frequencies from Illumina genotyping
array GTC files, translates them into VCF REF/ALT orientation using the
bead pool manifest, and writes them as per-sample FORMAT fields.`,
		Example: `  # One-time: convert the manifest CSV to a probe cache
  arraybaf cache build --manifest GSA-24v3-0_A1.csv -o probes.duckdb

  # Annotate a VCF with BAF and LRR fields for two samples
  arraybaf annotate --manifest probes.duckdb --gtc NA12878.gtc --gtc NA24385.gtc input.vcf`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			return initLogger(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newAnnotateCmd())
	cmd.AddCommand(newCacheCmd())
	cmd.AddCommand(newInfoCmd())
	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig loads ~/.arraybaf.yaml and ARRAYBAF_* environment overrides.
// A missing config file is not an error.
func initConfig() error {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".arraybaf")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("ARRAYBAF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// initLogger builds the console logger. The default level is warn so probe
// mismatches reach the user; --verbose lowers it to debug.
func initLogger(verbose bool) error {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	logger = l
	return nil
}
