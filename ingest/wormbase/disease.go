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
	"github.com/c360studio/biograph/vocabulary/obo"
)

// parseDiseaseAssociations reads the disease model export, laid out like
// the allele association file with a disease term in the object column:
// 1 gene_num, 2 symbol, 3 qualifier, 4 disease_id, 5 reference,
// 6 evidence symbol. Genes model diseases; this export writes references
// with the WB_REF: prefix only.
func (s *Source) parseDiseaseAssociations(ctx context.Context, path string, run *ingest.Run) error {
	t, err := ingest.OpenTable(path, '\t', '!')
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
			return fmt.Errorf("read disease association row: %w", err)
		}
		line++
		run.RowRead()

		if len(row) < associationColumns {
			run.Logger.Warn("association row has too few columns",
				"line", line, "columns", len(row))
			run.RowSkipped()
			continue
		}
		geneNum, symbol := row[1], row[2]
		qualifier, diseaseID := row[3], row[4]
		reference, ecoSymbol := row[5], row[6]

		if qualifier == "NOT" {
			continue
		}
		if geneNum == "" || diseaseID == "" {
			run.Logger.Warn("association row missing gene or disease", "line", line)
			run.RowSkipped()
			continue
		}

		evidence := obo.EvidenceCode(ecoSymbol)
		if evidence == "" && strings.TrimSpace(ecoSymbol) != "" {
			run.Logger.Warn("unrecognized evidence symbol",
				"line", line, "symbol", ecoSymbol)
		}

		gene := wormbaseID(geneNum)
		if run.Catalog.FirstUse(gene) {
			err := run.EmitEntity(ctx, graph.Entity{Kind: bio.KindGene, ID: gene, Label: symbol})
			if err != nil {
				return err
			}
		}

		var refs []string
		if reference != "" {
			refs = append(refs, strings.ReplaceAll(reference, "WB_REF:", "WormBase:"))
		}
		err = run.EmitAssociation(ctx, graph.Association{
			Subject:      gene,
			Predicate:    bio.RelationModelOf,
			Object:       identity.NewNamed(diseaseID),
			EvidenceCode: evidence,
			SourceRefs:   refs,
		})
		if err != nil {
			return err
		}
	}
}
