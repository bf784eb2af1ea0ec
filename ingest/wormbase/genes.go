package wormbase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/c360studio/biograph/graph"
	"github.com/c360studio/biograph/identity"
	"github.com/c360studio/biograph/ingest"
	"github.com/c360studio/biograph/vocabulary/bio"
)

// geneIDColumns is the width of the gene registry export.
const geneIDColumns = 5

// parseGeneIDs reads the gene registry: comma-separated, gzip, no header.
// Columns: 0 taxon_num, 1 gene_num, 2 symbol, 3 synonym, 4 live flag. This
// is the defining record for gene entities — labels, synonyms, liveness,
// and the species link all come from here.
func (s *Source) parseGeneIDs(ctx context.Context, path string, run *ingest.Run) error {
	t, err := ingest.OpenTable(path, ',', 0)
	if err != nil {
		return err
	}
	defer t.Close()

	line := 0
	for {
		row, err := t.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read gene registry row: %w", err)
		}
		line++
		run.RowRead()

		if len(row) < geneIDColumns {
			run.Logger.Warn("gene registry row has too few columns",
				"line", line, "columns", len(row))
			run.RowSkipped()
			continue
		}
		taxonNum, geneNum := row[0], row[1]
		symbol, synonym, live := row[2], row[3], row[4]
		if geneNum == "" {
			run.Logger.Warn("gene registry row has no gene id", "line", line)
			run.RowSkipped()
			continue
		}

		label := symbol
		if label == "" {
			label = synonym
		}
		var attrs []graph.Attribute
		if synonym != "" {
			attrs = append(attrs, graph.Attribute{Predicate: bio.EntitySynonym, Value: synonym})
		}
		if live == "Dead" {
			attrs = append(attrs, graph.Attribute{Predicate: bio.EntityDeprecated, Value: "true"})
		}

		gene := wormbaseID(geneNum)
		run.Catalog.FirstUse(gene)
		err = run.EmitEntity(ctx, graph.Entity{
			Kind:       bio.KindGene,
			ID:         gene,
			Label:      label,
			Attributes: attrs,
		})
		if err != nil {
			return err
		}
		if taxonNum == "" {
			continue
		}
		err = run.EmitAssociation(ctx, graph.Association{
			Subject:   gene,
			Predicate: bio.RelationInTaxon,
			Object:    identity.NewNamed("NCBITaxon:" + taxonNum),
		})
		if err != nil {
			return err
		}
	}
}

// geneDescColumns is the width of the functional description export.
const geneDescColumns = 8

// noDescription is the export's marker for an absent concise description.
const noDescription = "none available"

// parseGeneDescriptions reads the functional descriptions: 8-column TSV,
// gzip, `#` comments, and one column-header line. The concise description
// becomes the gene's definition; the other description columns attach as
// kind-suffixed descriptions unless empty, marked none, or redundant with
// the concise text.
func (s *Source) parseGeneDescriptions(ctx context.Context, path string, run *ingest.Run) error {
	t, err := ingest.OpenTable(path, '\t', '#')
	if err != nil {
		return err
	}
	defer t.Close()

	// Column-header line, after any leading comments.
	if _, err := t.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("read description header: %w", err)
	}

	line := 0
	for {
		row, err := t.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read description row: %w", err)
		}
		line++
		run.RowRead()

		if len(row) < geneDescColumns {
			run.Logger.Warn("description row has too few columns",
				"line", line, "columns", len(row))
			run.RowSkipped()
			continue
		}
		geneNum, concise := row[0], row[3]
		if geneNum == "" {
			run.Logger.Warn("description row has no gene id", "line", line)
			run.RowSkipped()
			continue
		}

		var attrs []graph.Attribute
		if concise != "" && concise != noDescription {
			attrs = append(attrs, graph.Attribute{Predicate: bio.EntityDefinition, Value: concise})
		}
		for _, d := range []struct {
			kind string
			text string
		}{
			{"provisional", row[4]},
			{"automated", row[6]},
			{"detailed", row[5]},
			{"gene class", row[7]},
		} {
			if d.text == "" || d.text == concise || strings.HasPrefix(d.text, "none") {
				continue
			}
			attrs = append(attrs, graph.Attribute{
				Predicate: bio.EntityDescription,
				Value:     d.text + " [" + d.kind + "]",
			})
		}
		if len(attrs) == 0 {
			continue
		}

		gene := wormbaseID(geneNum)
		run.Catalog.FirstUse(gene)
		err = run.EmitEntity(ctx, graph.Entity{
			Kind:       bio.KindGene,
			ID:         gene,
			Attributes: attrs,
		})
		if err != nil {
			return err
		}
	}
}
