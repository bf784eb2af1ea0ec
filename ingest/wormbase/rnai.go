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

// reagentColumns is the width of the reagent screen export.
const reagentColumns = 5

// parseReagentPhenotypes reads the RNAi screen results: 0 gene_num,
// 1 gene_symbol, 2 phenotype_label (unused), 3 phenotype_id, 4 a
// space-separated list of reagent|paper tokens. Each well-formed token
// yields one association from the reagent-targeted gene to the phenotype,
// cited to the token's paper.
func (s *Source) parseReagentPhenotypes(ctx context.Context, path string, run *ingest.Run) error {
	t, err := ingest.OpenTable(path, '\t', 0)
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
			return fmt.Errorf("read reagent screen row: %w", err)
		}
		line++
		run.RowRead()

		if len(row) < reagentColumns {
			run.Logger.Warn("reagent screen row has too few columns",
				"line", line, "columns", len(row))
			run.RowSkipped()
			continue
		}
		geneNum, symbol := row[0], row[1]
		phenotypeID, reagentRefs := row[3], row[4]
		if geneNum == "" || phenotypeID == "" {
			run.Logger.Warn("reagent screen row missing gene or phenotype", "line", line)
			run.RowSkipped()
			continue
		}

		used := false
		for _, token := range strings.Split(reagentRefs, " ") {
			if token == "" {
				continue
			}
			reagentNum, refNum, ok := strings.Cut(token, "|")
			if !ok || reagentNum == "" || refNum == "" || strings.Contains(refNum, "|") {
				run.Logger.Warn("malformed reagent token",
					"line", line, "token", token)
				continue
			}

			label := symbol + "<" + reagentNum + ">"
			subject, err := s.reagentTargetedGene(ctx, run, geneNum, symbol, "WormBase:"+reagentNum, label)
			if err != nil {
				return err
			}
			err = run.EmitAssociation(ctx, graph.Association{
				Subject:      subject,
				Predicate:    bio.RelationHasPhenotype,
				Object:       identity.NewNamed(phenotypeID),
				EvidenceCode: obo.EvidenceRNAiPhenotype,
				SourceRefs:   []string{"WormBase:" + refNum},
			})
			if err != nil {
				return err
			}
			used = true
		}
		if !used {
			run.Logger.Warn("reagent screen row has no usable tokens", "line", line)
			run.RowSkipped()
		}
	}
}
