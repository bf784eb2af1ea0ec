package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/c360studio/biograph/config"
	"github.com/c360studio/biograph/graph"
	"github.com/c360studio/biograph/identity"
	"github.com/c360studio/biograph/vocabulary/bio"
)

func TestRootCmdWiring(t *testing.T) {
	cmd := rootCmd()

	want := map[string]bool{"ingest": false, "serve": false, "version": false}
	for _, sub := range cmd.Commands() {
		name := strings.Fields(sub.Use)[0]
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %s", name)
		}
	}

	if cmd.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
	if cmd.PersistentFlags().Lookup("log-level") == nil {
		t.Error("missing --log-level flag")
	}
}

func TestOpenSinkMemory(t *testing.T) {
	cfg := config.DefaultConfig()

	emitter, finish, err := openSink(context.Background(), cfg, config.SinkMemory)
	if err != nil {
		t.Fatalf("open memory sink: %v", err)
	}
	if _, ok := emitter.(*graph.Memory); !ok {
		t.Errorf("expected memory emitter, got %T", emitter)
	}
	if err := finish(context.Background()); err != nil {
		t.Errorf("memory finish should be a no-op: %v", err)
	}
}

func TestOpenSinkUnknown(t *testing.T) {
	cfg := config.DefaultConfig()
	if _, _, err := openSink(context.Background(), cfg, "postgres"); err == nil {
		t.Fatal("expected error for unknown sink")
	}
}

func TestOpenSinkSQLite(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Sinks.SQLitePath = filepath.Join(t.TempDir(), "graph.db")

	emitter, finish, err := openSink(context.Background(), cfg, config.SinkSQLite)
	if err != nil {
		t.Fatalf("open sqlite sink: %v", err)
	}

	err = emitter.EmitEntity(context.Background(), graph.Entity{
		Kind:  bio.KindGene,
		ID:    identity.NewNamed("WormBase:WBGene00000001"),
		Label: "aap-1",
	})
	if err != nil {
		t.Errorf("emit entity: %v", err)
	}
	if err := finish(context.Background()); err != nil {
		t.Errorf("close sqlite sink: %v", err)
	}
}

func TestWriteRDFToFile(t *testing.T) {
	mem := graph.NewMemory()
	err := mem.EmitEntity(context.Background(), graph.Entity{
		Kind:  bio.KindGene,
		ID:    identity.NewNamed("WormBase:WBGene00000001"),
		Label: "aap-1",
	})
	if err != nil {
		t.Fatalf("emit entity: %v", err)
	}

	out := filepath.Join(t.TempDir(), "graph.ttl")
	rdf := config.RDFConfig{Format: "turtle", Output: out}
	if err := writeRDF(mem, rdf); err != nil {
		t.Fatalf("write rdf: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read rdf output: %v", err)
	}
	if !strings.Contains(string(data), "WBGene00000001") {
		t.Error("expected exported entity in turtle output")
	}
}

func TestBuildServeConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Inputs.DropDir = "/data/drop"

	platformCfg, err := buildServeConfig(cfg)
	if err != nil {
		t.Fatalf("build serve config: %v", err)
	}

	if _, ok := platformCfg.Streams["INGEST"]; !ok {
		t.Error("expected INGEST stream")
	}
	if _, ok := platformCfg.Streams["GRAPH"]; !ok {
		t.Error("expected GRAPH stream")
	}

	comp, ok := platformCfg.Components["record-ingester"]
	if !ok {
		t.Fatal("expected record-ingester component config")
	}
	if !comp.Enabled {
		t.Error("record-ingester should be enabled")
	}
	if !strings.Contains(string(comp.Config), "/data/drop") {
		t.Error("component config should carry the drop dir")
	}
}
