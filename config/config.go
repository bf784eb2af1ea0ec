// Package config provides configuration loading and management for
// biograph. Configuration layers defaults, the user config file, and a
// project-level biograph.yaml, later layers winning field by field.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Sink names accepted by Sinks.Default and the --sink flag.
const (
	SinkMemory = "memory"
	SinkNATS   = "nats"
	SinkSQLite = "sqlite"
	SinkNeo4j  = "neo4j"
	SinkRDF    = "rdf"
)

// Config represents the complete biograph configuration.
type Config struct {
	NATS    NATSConfig   `yaml:"nats"`
	Inputs  InputConfig  `yaml:"inputs"`
	Lookups LookupConfig `yaml:"lookups"`
	Sinks   SinkConfig   `yaml:"sinks"`
	Serve   ServeConfig  `yaml:"serve"`
}

// NATSConfig configures the connection used by the nats sink and serve
// mode.
type NATSConfig struct {
	// URL is the NATS server URL. Environment variables in the value are
	// expanded at load time, and the NATS_URL environment variable takes
	// precedence over the file.
	URL string `yaml:"url"`
	// IngestStream is the JetStream stream carrying ingest requests.
	IngestStream string `yaml:"ingest_stream"`
	// GraphStream is the JetStream stream carrying graph entity payloads.
	GraphStream string `yaml:"graph_stream"`
}

// InputConfig configures where source files come from.
type InputConfig struct {
	// Patterns are doublestar globs resolved by the ingest command when no
	// explicit files are given on the command line.
	Patterns []string `yaml:"patterns"`
	// DropDir is the directory the record-ingester processor watches for
	// newly exported source tables.
	DropDir string `yaml:"drop_dir"`
}

// LookupConfig points at the optional static enrichment tables. Missing
// files load as empty tables.
type LookupConfig struct {
	// Genes is the gene symbol → identifier table path.
	Genes string `yaml:"genes"`
	// Coordinates is the gene coordinate span table path.
	Coordinates string `yaml:"coordinates"`
}

// SinkConfig selects and configures the graph emission destination.
type SinkConfig struct {
	// Default is the sink used when --sink is not given.
	Default string `yaml:"default"`
	// SQLitePath is the database file for the sqlite sink.
	SQLitePath string `yaml:"sqlite_path"`
	// Neo4j configures the neo4j sink.
	Neo4j Neo4jConfig `yaml:"neo4j"`
	// RDF configures the rdf sink.
	RDF RDFConfig `yaml:"rdf"`
}

// Neo4jConfig holds the property-graph connection settings.
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RDFConfig holds the serialization settings for the rdf sink.
type RDFConfig struct {
	// Format is one of turtle, ntriples, jsonld.
	Format string `yaml:"format"`
	// Output is the file to write; empty writes to stdout.
	Output string `yaml:"output"`
}

// ServeConfig configures the long-running service mode.
type ServeConfig struct {
	// MetricsAddr is the listen address for the Prometheus endpoint.
	MetricsAddr string `yaml:"metrics_addr"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		NATS: NATSConfig{
			URL:          "nats://localhost:4222",
			IngestStream: "INGEST",
			GraphStream:  "GRAPH",
		},
		Inputs: InputConfig{
			DropDir: ".biograph/drop",
		},
		Sinks: SinkConfig{
			Default:    SinkMemory,
			SQLitePath: ".biograph/graph.db",
			Neo4j: Neo4jConfig{
				URI:      "neo4j://localhost:7687",
				Database: "neo4j",
			},
			RDF: RDFConfig{
				Format: "turtle",
			},
		},
		Serve: ServeConfig{
			MetricsAddr: ":9090",
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	switch c.Sinks.Default {
	case SinkMemory, SinkNATS, SinkSQLite, SinkNeo4j, SinkRDF:
	default:
		return fmt.Errorf("sinks.default must be one of memory, nats, sqlite, neo4j, rdf; got %q", c.Sinks.Default)
	}
	switch c.Sinks.RDF.Format {
	case "turtle", "ntriples", "jsonld":
	default:
		return fmt.Errorf("sinks.rdf.format must be one of turtle, ntriples, jsonld; got %q", c.Sinks.RDF.Format)
	}
	if c.Sinks.Default == SinkSQLite && c.Sinks.SQLitePath == "" {
		return fmt.Errorf("sinks.sqlite_path is required for the sqlite sink")
	}
	if c.Sinks.Default == SinkNeo4j && c.Sinks.Neo4j.URI == "" {
		return fmt.Errorf("sinks.neo4j.uri is required for the neo4j sink")
	}
	return nil
}

// NATSURL resolves the effective NATS URL: the NATS_URL environment
// variable wins, then the config file value with environment variables
// expanded.
func (c *Config) NATSURL() string {
	if env := os.Getenv("NATS_URL"); env != "" {
		return env
	}
	return os.ExpandEnv(c.NATS.URL)
}

// LoadFromFile loads configuration from a YAML file, overlaying defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.IngestStream != "" {
		c.NATS.IngestStream = other.NATS.IngestStream
	}
	if other.NATS.GraphStream != "" {
		c.NATS.GraphStream = other.NATS.GraphStream
	}

	if len(other.Inputs.Patterns) > 0 {
		c.Inputs.Patterns = other.Inputs.Patterns
	}
	if other.Inputs.DropDir != "" {
		c.Inputs.DropDir = other.Inputs.DropDir
	}

	if other.Lookups.Genes != "" {
		c.Lookups.Genes = other.Lookups.Genes
	}
	if other.Lookups.Coordinates != "" {
		c.Lookups.Coordinates = other.Lookups.Coordinates
	}

	if other.Sinks.Default != "" {
		c.Sinks.Default = other.Sinks.Default
	}
	if other.Sinks.SQLitePath != "" {
		c.Sinks.SQLitePath = other.Sinks.SQLitePath
	}
	if other.Sinks.Neo4j.URI != "" {
		c.Sinks.Neo4j = other.Sinks.Neo4j
	}
	if other.Sinks.RDF.Format != "" {
		c.Sinks.RDF.Format = other.Sinks.RDF.Format
	}
	if other.Sinks.RDF.Output != "" {
		c.Sinks.RDF.Output = other.Sinks.RDF.Output
	}

	if other.Serve.MetricsAddr != "" {
		c.Serve.MetricsAddr = other.Serve.MetricsAddr
	}
}
