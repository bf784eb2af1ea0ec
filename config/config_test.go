package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.NATS.URL != "nats://localhost:4222" {
		t.Errorf("expected default NATS URL nats://localhost:4222, got %s", cfg.NATS.URL)
	}
	if cfg.Sinks.Default != SinkMemory {
		t.Errorf("expected default sink memory, got %s", cfg.Sinks.Default)
	}
	if cfg.Sinks.RDF.Format != "turtle" {
		t.Errorf("expected default rdf format turtle, got %s", cfg.Sinks.RDF.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "unknown sink",
			modify:  func(c *Config) { c.Sinks.Default = "postgres" },
			wantErr: true,
		},
		{
			name:    "unknown rdf format",
			modify:  func(c *Config) { c.Sinks.RDF.Format = "rdfxml" },
			wantErr: true,
		},
		{
			name: "sqlite sink without path",
			modify: func(c *Config) {
				c.Sinks.Default = SinkSQLite
				c.Sinks.SQLitePath = ""
			},
			wantErr: true,
		},
		{
			name: "neo4j sink without uri",
			modify: func(c *Config) {
				c.Sinks.Default = SinkNeo4j
				c.Sinks.Neo4j.URI = ""
			},
			wantErr: true,
		},
		{
			name:    "nats sink",
			modify:  func(c *Config) { c.Sinks.Default = SinkNATS },
			wantErr: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	other := &Config{}
	other.NATS.URL = "nats://remote:4222"
	other.Inputs.Patterns = []string{"exports/**/*.tsv"}
	other.Lookups.Genes = "lookups/genes.tsv"
	other.Sinks.Default = SinkSQLite
	other.Sinks.RDF.Output = "out.ttl"

	base.Merge(other)

	if base.NATS.URL != "nats://remote:4222" {
		t.Errorf("expected merged NATS URL, got %s", base.NATS.URL)
	}
	if base.NATS.IngestStream != "INGEST" {
		t.Errorf("merge should keep default ingest stream, got %s", base.NATS.IngestStream)
	}
	if len(base.Inputs.Patterns) != 1 || base.Inputs.Patterns[0] != "exports/**/*.tsv" {
		t.Errorf("expected merged input patterns, got %v", base.Inputs.Patterns)
	}
	if base.Lookups.Genes != "lookups/genes.tsv" {
		t.Errorf("expected merged gene lookup path, got %s", base.Lookups.Genes)
	}
	if base.Sinks.Default != SinkSQLite {
		t.Errorf("expected merged sink, got %s", base.Sinks.Default)
	}
	if base.Sinks.RDF.Format != "turtle" {
		t.Errorf("merge should keep default rdf format, got %s", base.Sinks.RDF.Format)
	}
	if base.Sinks.RDF.Output != "out.ttl" {
		t.Errorf("expected merged rdf output, got %s", base.Sinks.RDF.Output)
	}

	base.Merge(nil) // no-op
	if base.Sinks.Default != SinkSQLite {
		t.Error("merging nil must not change the config")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "biograph.yaml")

	cfg := DefaultConfig()
	cfg.Inputs.DropDir = "/data/drop"
	cfg.Sinks.Default = SinkRDF
	cfg.Sinks.RDF.Format = "ntriples"

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("save config: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if loaded.Inputs.DropDir != "/data/drop" {
		t.Errorf("expected drop dir /data/drop, got %s", loaded.Inputs.DropDir)
	}
	if loaded.Sinks.Default != SinkRDF {
		t.Errorf("expected rdf sink, got %s", loaded.Sinks.Default)
	}
	if loaded.Sinks.RDF.Format != "ntriples" {
		t.Errorf("expected ntriples format, got %s", loaded.Sinks.RDF.Format)
	}
	// Fields absent from the file keep their defaults.
	if loaded.NATS.GraphStream != "GRAPH" {
		t.Errorf("expected default graph stream, got %s", loaded.NATS.GraphStream)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestNATSURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NATS.URL = "nats://file:4222"

	t.Setenv("NATS_URL", "")
	os.Unsetenv("NATS_URL")
	if got := cfg.NATSURL(); got != "nats://file:4222" {
		t.Errorf("expected file URL, got %s", got)
	}

	t.Setenv("NATS_URL", "nats://env:4222")
	if got := cfg.NATSURL(); got != "nats://env:4222" {
		t.Errorf("expected env URL to win, got %s", got)
	}

	os.Unsetenv("NATS_URL")
	t.Setenv("BIOGRAPH_NATS_HOST", "expanded")
	cfg.NATS.URL = "nats://${BIOGRAPH_NATS_HOST}:4222"
	if got := cfg.NATSURL(); got != "nats://expanded:4222" {
		t.Errorf("expected expanded URL, got %s", got)
	}
}
