package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/c360studio/biograph/config"
	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "biograph"
)

// rootFlags carries the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "biograph",
		Short: "Association graph builder for curated biological databases",
		Long: `Biograph ingests tabular exports from curated biological databases
(variant calls, phenotype annotations, allele-phenotype associations,
feature locations) and builds a normalized association graph linking
genes, variants, alleles, and genotypes to ontology-coded phenotypes
and diseases, with provenance and evidence.

Run 'biograph ingest' for one-shot batch processing, or
'biograph serve' for a long-running service that watches a drop
directory and consumes ingest requests from NATS JetStream.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(flags.logLevel)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(ingestCmd(flags))
	cmd.AddCommand(serveCmd(flags))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// configureLogging installs the default text logger at the requested
// level.
func configureLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// loadConfig resolves the effective configuration: an explicit --config
// file wins; otherwise the layered loader (defaults, user, project) runs.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	if flags.configPath != "" {
		cfg, err := config.LoadFromFile(flags.configPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg, nil
	}
	return config.NewLoader(slog.Default()).Load()
}
