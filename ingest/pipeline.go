package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/c360studio/biograph/graph"
	"github.com/c360studio/biograph/identity"
	"github.com/c360studio/biograph/lookup"
)

// ErrNoSource reports a file no registered source accepts.
var ErrNoSource = errors.New("no source accepts file")

// Config wires a pipeline.
type Config struct {
	Registry    *Registry
	Emitter     graph.Emitter
	Logger      *slog.Logger
	Recorder    Recorder
	Genes       lookup.GeneMap
	Coordinates lookup.CoordinateMap
}

// Pipeline routes source files through their parsers into an emitter.
type Pipeline struct {
	registry    *Registry
	emitter     graph.Emitter
	logger      *slog.Logger
	recorder    Recorder
	genes       lookup.GeneMap
	coordinates lookup.CoordinateMap
}

// New builds a pipeline. Registry and Emitter are required; a nil Logger
// falls back to the default logger and a nil Recorder counts into the
// void.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Registry == nil {
		return nil, errors.New("pipeline requires a source registry")
	}
	if cfg.Emitter == nil {
		return nil, errors.New("pipeline requires an emitter")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = &Counts{}
	}
	return &Pipeline{
		registry:    cfg.Registry,
		emitter:     cfg.Emitter,
		logger:      logger,
		recorder:    recorder,
		genes:       cfg.Genes,
		coordinates: cfg.Coordinates,
	}, nil
}

// FileResult captures one parsed file for the run manifest.
type FileResult struct {
	Path   string `json:"path"`
	Source string `json:"source"`
	SHA256 string `json:"sha256"`
	Rows   int    `json:"rows"`
}

// Result summarizes one run.
type Result struct {
	Files        []FileResult
	RowsRead     int
	RowsSkipped  int
	Entities     int
	Associations int
}

// Run processes the files in sorted order under one fresh identity
// catalog, routing each to the source that accepts it. Files no source
// accepts fail the run — routing is configuration, not row data.
func (p *Pipeline) Run(ctx context.Context, paths []string) (*Result, error) {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	counts := &Counts{}
	run := &Run{
		Catalog:     identity.NewCatalog(),
		Logger:      p.logger,
		Genes:       p.genes,
		Coordinates: p.coordinates,
		Emitter:     p.emitter,
		Recorder:    tee{p.recorder, counts},
	}

	result := &Result{}
	for _, path := range sorted {
		source, ok := p.registry.ForFile(path)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoSource, path)
		}
		fr, err := p.parseFile(ctx, source, path, run)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, fr)
	}

	result.RowsRead = counts.Rows
	result.RowsSkipped = counts.Skipped
	result.Entities = counts.Entities
	result.Associations = counts.Associations
	return result, nil
}

func (p *Pipeline) parseFile(ctx context.Context, source Source, path string, run *Run) (FileResult, error) {
	digest, err := fileDigest(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("digest %s: %w", path, err)
	}

	run.source = source.Name()
	run.fileRows = 0
	run.fileSkipped = 0

	p.logger.Info("parsing source file", "source", source.Name(), "path", path)
	if err := source.Parse(ctx, path, run); err != nil {
		return FileResult{}, fmt.Errorf("parse %s: %w", path, err)
	}
	p.logger.Info("source file complete",
		"source", source.Name(),
		"path", path,
		"rows", run.fileRows,
		"skipped", run.fileSkipped)

	return FileResult{
		Path:   path,
		Source: source.Name(),
		SHA256: digest,
		Rows:   run.fileRows,
	}, nil
}

// tee fans a recorder call out to both destinations.
type tee struct {
	a, b Recorder
}

func (t tee) RowRead(source string)            { t.a.RowRead(source); t.b.RowRead(source) }
func (t tee) RowSkipped(source string)         { t.a.RowSkipped(source); t.b.RowSkipped(source) }
func (t tee) EntityEmitted(source string)      { t.a.EntityEmitted(source); t.b.EntityEmitted(source) }
func (t tee) AssociationEmitted(source string) { t.a.AssociationEmitted(source); t.b.AssociationEmitted(source) }

func fileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
