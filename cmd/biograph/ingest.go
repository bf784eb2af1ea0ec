package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/c360studio/biograph/config"
	"github.com/c360studio/biograph/export"
	"github.com/c360studio/biograph/graph"
	"github.com/c360studio/biograph/graph/neo4jsink"
	"github.com/c360studio/biograph/graph/sqlitesink"
	"github.com/c360studio/biograph/ingest"
	"github.com/c360studio/biograph/ingest/udp"
	"github.com/c360studio/biograph/ingest/wormbase"
	"github.com/c360studio/biograph/lookup"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/spf13/cobra"
)

func ingestCmd(flags *rootFlags) *cobra.Command {
	var sinkName string

	cmd := &cobra.Command{
		Use:   "ingest [patterns...]",
		Short: "Run source files through the pipeline once",
		Long: `Ingest resolves the given glob patterns (or the configured input
patterns when none are given), routes each file to the source that
recognizes it, and runs one pipeline pass into the selected sink.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if sinkName == "" {
				sinkName = cfg.Sinks.Default
			}
			return runIngest(cmd.Context(), cfg, sinkName, args)
		},
	}

	cmd.Flags().StringVar(&sinkName, "sink", "", "Graph sink (memory, nats, sqlite, neo4j, rdf); defaults to the configured sink")

	return cmd
}

func runIngest(ctx context.Context, cfg *config.Config, sinkName string, args []string) error {
	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Inputs.Patterns
	}
	if len(patterns) == 0 {
		return fmt.Errorf("no input files: give patterns as arguments or set inputs.patterns in the config")
	}

	paths, err := ingest.ResolvePaths(patterns)
	if err != nil {
		return fmt.Errorf("resolve inputs: %w", err)
	}

	genes, coords := loadLookups(cfg)

	emitter, finish, err := openSink(ctx, cfg, sinkName)
	if err != nil {
		return fmt.Errorf("open %s sink: %w", sinkName, err)
	}

	pipeline, err := ingest.New(ingest.Config{
		Registry:    ingest.NewRegistry(wormbase.New(), udp.New()),
		Emitter:     emitter,
		Logger:      slog.Default(),
		Genes:       genes,
		Coordinates: coords,
	})
	if err != nil {
		return err
	}

	started := time.Now()
	result, err := pipeline.Run(ctx, paths)
	if err != nil {
		return err
	}
	if err := finish(ctx); err != nil {
		return err
	}

	fmt.Printf("ingested %d files in %s\n", len(result.Files), time.Since(started).Round(time.Millisecond))
	fmt.Printf("  rows read:    %d\n", result.RowsRead)
	fmt.Printf("  rows skipped: %d\n", result.RowsSkipped)
	fmt.Printf("  entities:     %d\n", result.Entities)
	fmt.Printf("  associations: %d\n", result.Associations)
	return nil
}

// loadLookups reads the optional enrichment tables; a missing or broken
// table logs a warning and loads empty.
func loadLookups(cfg *config.Config) (lookup.GeneMap, lookup.CoordinateMap) {
	var genes lookup.GeneMap
	var coords lookup.CoordinateMap

	if cfg.Lookups.Genes != "" {
		m, err := lookup.LoadGeneMap(cfg.Lookups.Genes)
		if err != nil {
			slog.Warn("failed to load gene lookup", "path", cfg.Lookups.Genes, "error", err)
		} else {
			genes = m
		}
	}
	if cfg.Lookups.Coordinates != "" {
		m, err := lookup.LoadCoordinates(cfg.Lookups.Coordinates)
		if err != nil {
			slog.Warn("failed to load coordinate lookup", "path", cfg.Lookups.Coordinates, "error", err)
		} else {
			coords = m
		}
	}
	return genes, coords
}

// finishFunc completes a sink after the run: flushing buffers, closing
// handles, or serializing collected output.
type finishFunc func(ctx context.Context) error

func noFinish(context.Context) error { return nil }

// openSink constructs the requested emitter and its completion step.
func openSink(ctx context.Context, cfg *config.Config, sinkName string) (graph.Emitter, finishFunc, error) {
	switch sinkName {
	case config.SinkMemory:
		return graph.NewMemory(), noFinish, nil

	case config.SinkSQLite:
		store, err := sqlitesink.Open(cfg.Sinks.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func(context.Context) error { return store.Close() }, nil

	case config.SinkNeo4j:
		store, err := neo4jsink.Open(ctx, neo4jsink.Config{
			URI:      cfg.Sinks.Neo4j.URI,
			Username: cfg.Sinks.Neo4j.Username,
			Password: cfg.Sinks.Neo4j.Password,
			Database: cfg.Sinks.Neo4j.Database,
		}, slog.Default())
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	case config.SinkNATS:
		nc, err := connectNATS(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return graph.NewPublisher(nc, appName), func(ctx context.Context) error {
			nc.Close(ctx)
			return nil
		}, nil

	case config.SinkRDF:
		mem := graph.NewMemory()
		return mem, func(context.Context) error {
			return writeRDF(mem, cfg.Sinks.RDF)
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown sink %q", sinkName)
	}
}

// writeRDF serializes a collected memory graph per the rdf sink settings.
func writeRDF(mem *graph.Memory, rdf config.RDFConfig) error {
	exporter := export.NewRDFExporter()
	exporter.AddGraph(mem)

	out, err := exporter.Export(export.Format(rdf.Format))
	if err != nil {
		return err
	}

	if rdf.Output == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(rdf.Output, []byte(out), 0644); err != nil {
		return fmt.Errorf("write rdf output: %w", err)
	}
	slog.Info("rdf export written", "path", rdf.Output, "format", rdf.Format)
	return nil
}

// connectNATS dials the configured server and waits for the connection.
func connectNATS(ctx context.Context, cfg *config.Config) (*natsclient.Client, error) {
	url := cfg.NATSURL()
	slog.Info("connecting to NATS", "url", url)

	client, err := natsclient.NewClient(url,
		natsclient.WithName(appName),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
		natsclient.WithHealthInterval(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}

	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("NATS connection failed: %w", err)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.WaitForConnection(connCtx); err != nil {
		return nil, fmt.Errorf("NATS connection failed: %w", err)
	}

	slog.Info("connected to NATS", "url", url)
	return client, nil
}
