package ingest

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/c360studio/biograph/graph"
	"github.com/c360studio/biograph/identity"
	"github.com/c360studio/biograph/lookup"
)

// Source is one registered record stream. It recognizes its export files
// by name and parses them into graph emissions.
type Source interface {
	// Name labels the source in logs, metrics, and run manifests.
	Name() string

	// Accepts reports whether the base file name belongs to this source.
	Accepts(filename string) bool

	// Parse consumes one file, emitting entities and associations through
	// the run. Row-level anomalies are skipped and counted; only I/O
	// failures return an error.
	Parse(ctx context.Context, path string, run *Run) error
}

// Registry holds the known sources in registration order.
type Registry struct {
	sources []Source
}

// NewRegistry builds a registry from the given sources.
func NewRegistry(sources ...Source) *Registry {
	return &Registry{sources: sources}
}

// Named looks a source up by name.
func (r *Registry) Named(name string) (Source, bool) {
	for _, s := range r.sources {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// ForFile routes a path to the first source accepting its base name.
func (r *Registry) ForFile(path string) (Source, bool) {
	base := filepath.Base(path)
	for _, s := range r.sources {
		if s.Accepts(base) {
			return s, true
		}
	}
	return nil, false
}

// Names lists the registered source names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for _, s := range r.sources {
		names = append(names, s.Name())
	}
	return names
}

// Recorder observes pipeline progress, labeled by source. The metrics
// package provides a Prometheus-backed implementation; batch runs use
// Counts.
type Recorder interface {
	RowRead(source string)
	RowSkipped(source string)
	EntityEmitted(source string)
	AssociationEmitted(source string)
}

// Counts is a plain Recorder summing across sources.
type Counts struct {
	Rows         int
	Skipped      int
	Entities     int
	Associations int
}

func (c *Counts) RowRead(string)            { c.Rows++ }
func (c *Counts) RowSkipped(string)         { c.Skipped++ }
func (c *Counts) EntityEmitted(string)      { c.Entities++ }
func (c *Counts) AssociationEmitted(string) { c.Associations++ }

// Run carries the shared state of one ingestion run: the identity catalog,
// lookup tables, destination emitter, and counters. Sources read the
// exported fields and emit through the Emit methods so every emission is
// counted.
type Run struct {
	Catalog     *identity.Catalog
	Logger      *slog.Logger
	Genes       lookup.GeneMap
	Coordinates lookup.CoordinateMap
	Emitter     graph.Emitter
	Recorder    Recorder

	source      string
	fileRows    int
	fileSkipped int
}

// NewRun assembles a run for direct source invocation with a fresh
// catalog and plain counters. Pipeline.Run wires its own.
func NewRun(source string, emitter graph.Emitter) *Run {
	return &Run{
		Catalog:  identity.NewCatalog(),
		Logger:   slog.Default(),
		Emitter:  emitter,
		Recorder: &Counts{},
		source:   source,
	}
}

// RowRead counts one data row of the current file.
func (r *Run) RowRead() {
	r.fileRows++
	r.Recorder.RowRead(r.source)
}

// RowSkipped counts one unusable row.
func (r *Run) RowSkipped() {
	r.fileSkipped++
	r.Recorder.RowSkipped(r.source)
}

// EmitEntity forwards to the run's emitter and counts the emission.
func (r *Run) EmitEntity(ctx context.Context, e graph.Entity) error {
	if err := r.Emitter.EmitEntity(ctx, e); err != nil {
		return err
	}
	r.Recorder.EntityEmitted(r.source)
	return nil
}

// EmitAssociation forwards to the run's emitter and counts the emission.
func (r *Run) EmitAssociation(ctx context.Context, a graph.Association) error {
	if err := r.Emitter.EmitAssociation(ctx, a); err != nil {
		return err
	}
	r.Recorder.AssociationEmitted(r.source)
	return nil
}

// ExtensionlessBase strips recognized table extensions from a file name,
// so "rnai_phenotypes.WS249.tsv.gz" matches a source accepting the
// "rnai_phenotypes" stem.
func ExtensionlessBase(filename string) string {
	base := filepath.Base(filename)
	for _, ext := range []string{".gz", ".tsv", ".csv", ".txt", ".gff3", ".gff"} {
		base = strings.TrimSuffix(base, ext)
	}
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	return base
}
