package wormbase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/c360studio/biograph/classify"
	"github.com/c360studio/biograph/graph"
	"github.com/c360studio/biograph/identity"
	"github.com/c360studio/biograph/ingest"
	"github.com/c360studio/biograph/vocabulary/bio"
	"github.com/c360studio/biograph/vocabulary/obo"
)

// associationColumns is the width of the gene-association-format exports.
const associationColumns = 17

// parseAllelePhenotypes reads the allele/phenotype association export:
// 17-column GAF, `!` comment lines. Columns used: 1 gene_num, 2 symbol,
// 3 qualifier, 4 phenotype_id, 5 reference, 6 evidence symbol, 7 with/from.
//
// The export mixes up its evidence columns: variants and reagents appear in
// the reference column and citations in with/from. Rows are repaired
// through the record classifier before the with/from pipe list is read as
// the allele set.
func (s *Source) parseAllelePhenotypes(ctx context.Context, path string, run *ingest.Run) error {
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
			return fmt.Errorf("read allele association row: %w", err)
		}
		line++
		run.RowRead()

		if len(row) < associationColumns {
			run.Logger.Warn("association row has too few columns",
				"line", line, "columns", len(row))
			run.RowSkipped()
			continue
		}
		geneNum, geneSymbol := row[1], row[2]
		qualifier, phenotypeID := row[3], row[4]
		reference, ecoSymbol, withFrom := row[5], row[6], row[7]

		if qualifier == "NOT" {
			// Negated annotations are out of scope.
			continue
		}
		if phenotypeID == "" {
			run.Logger.Warn("association row has no phenotype term", "line", line)
			run.RowSkipped()
			continue
		}

		evidence := obo.EvidenceCode(ecoSymbol)
		if evidence == "" && strings.TrimSpace(ecoSymbol) != "" {
			run.Logger.Warn("unrecognized evidence symbol",
				"line", line, "symbol", ecoSymbol)
		}

		res := classify.ResolveEvidenceSlots(reference, withFrom)
		for _, displaced := range res.Displaced {
			run.Logger.Warn("association field displaced during slot repair",
				"line", line, "value", displaced)
		}

		members := splitAlleleList(res.WithFrom)
		if len(members) == 0 {
			run.Logger.Warn("association row names no alleles", "line", line)
			run.RowSkipped()
			continue
		}

		var subject identity.Identifier
		if len(members) == 1 {
			subject, err = s.singleAlleleSubject(ctx, run, geneNum, geneSymbol, members[0])
		} else {
			subject, err = s.variationComplement(ctx, run, members)
		}
		if err != nil {
			return err
		}

		var refs []string
		if res.Reference != "" {
			refs = append(refs, refReplacer.Replace(res.Reference))
		}
		err = run.EmitAssociation(ctx, graph.Association{
			Subject:      subject,
			Predicate:    bio.RelationHasPhenotype,
			Object:       identity.NewNamed(phenotypeID),
			EvidenceCode: evidence,
			SourceRefs:   refs,
		})
		if err != nil {
			return err
		}
	}
}

// splitAlleleList breaks a pipe-delimited allele list, dropping empty
// entries so a blank column does not masquerade as one nameless allele.
func splitAlleleList(list string) []string {
	var members []string
	for _, m := range strings.Split(list, "|") {
		if m != "" {
			members = append(members, m)
		}
	}
	return members
}

// singleAlleleSubject resolves a one-entry allele list. A variation is the
// association subject directly; a targeting reagent is rewritten to the
// reagent-targeted gene it implies, since the phenotype belongs to the
// perturbed gene rather than to the reagent molecule.
func (s *Source) singleAlleleSubject(ctx context.Context, run *ingest.Run, geneNum, geneSymbol, entry string) (identity.Identifier, error) {
	alleleID := strings.ReplaceAll(entry, "WB:", "WormBase:")
	if strings.Contains(alleleID, "WBRNAi") {
		return s.reagentTargetedGene(ctx, run, geneNum, geneSymbol, alleleID, "")
	}
	subject := identity.NewNamed(alleleID)
	if run.Catalog.FirstUse(subject) {
		err := run.EmitEntity(ctx, graph.Entity{Kind: bio.KindAllele, ID: subject})
		if err != nil {
			return identity.Identifier{}, err
		}
	}
	return subject, nil
}

// variationComplement resolves a multi-allele list to its genomic
// variation complement, emitting the complement and its member links on
// first sight. Any permutation of the same member set shares one
// complement.
func (s *Source) variationComplement(ctx context.Context, run *ingest.Run, members []string) (identity.Identifier, error) {
	gvc, created := run.Catalog.GVC(members)
	if !created {
		return gvc, nil
	}
	err := run.EmitEntity(ctx, graph.Entity{Kind: bio.KindVariationComplement, ID: gvc})
	if err != nil {
		return identity.Identifier{}, err
	}

	sorted := make([]string, len(members))
	copy(sorted, members)
	sort.Strings(sorted)
	for _, m := range sorted {
		member := identity.NewNamed(strings.ReplaceAll(m, "WB:", "WormBase:"))
		if run.Catalog.FirstUse(member) {
			err := run.EmitEntity(ctx, graph.Entity{Kind: bio.KindAllele, ID: member})
			if err != nil {
				return identity.Identifier{}, err
			}
		}
		err := run.EmitAssociation(ctx, graph.Association{
			Subject:   gvc,
			Predicate: bio.RelationHasAlternatePart,
			Object:    member,
		})
		if err != nil {
			return identity.Identifier{}, err
		}
	}
	return gvc, nil
}

// reagentTargetedGene resolves the pseudo-allele for a gene perturbed by a
// targeting reagent. On first sight it emits the composite with its
// structural links plus stubs for the gene and reagent; afterwards it just
// returns the cached identifier.
func (s *Source) reagentTargetedGene(ctx context.Context, run *ingest.Run, geneNum, geneSymbol, reagentCURIE, label string) (identity.Identifier, error) {
	reagentNum := strings.TrimPrefix(reagentCURIE, "WormBase:")
	gene := wormbaseID(geneNum)
	reagent := identity.NewNamed(reagentCURIE)

	if run.Catalog.FirstUse(gene) {
		err := run.EmitEntity(ctx, graph.Entity{Kind: bio.KindGene, ID: gene, Label: geneSymbol})
		if err != nil {
			return identity.Identifier{}, err
		}
	}
	if run.Catalog.FirstUse(reagent) {
		err := run.EmitEntity(ctx, graph.Entity{Kind: bio.KindReagent, ID: reagent})
		if err != nil {
			return identity.Identifier{}, err
		}
	}

	rtg, created := run.Catalog.ReagentTargetedGene(geneNum, reagentNum)
	if !created {
		return rtg, nil
	}
	err := run.EmitEntity(ctx, graph.Entity{
		Kind:  bio.KindReagentTargetedGene,
		ID:    rtg,
		Label: label,
	})
	if err != nil {
		return identity.Identifier{}, err
	}
	links := []graph.Association{
		{Subject: rtg, Predicate: bio.RelationHasAffectedLocus, Object: gene},
		{Subject: rtg, Predicate: bio.RelationTargetedBy, Object: reagent},
		{Subject: reagent, Predicate: bio.RelationTargetsGene, Object: gene},
	}
	for _, link := range links {
		if err := run.EmitAssociation(ctx, link); err != nil {
			return identity.Identifier{}, err
		}
	}
	return rtg, nil
}
