package udp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c360studio/biograph/graph"
	"github.com/c360studio/biograph/identity"
	"github.com/c360studio/biograph/ingest"
	"github.com/c360studio/biograph/lookup"
	"github.com/c360studio/biograph/normalize"
	"github.com/c360studio/biograph/vocabulary/bio"
)

// variantColumns is the fixed width of the variant export.
const variantColumns = 23

// variantRow carries the columns the pipeline uses, by export position:
// 0 patient, 2 chromosome, 3 build, 4 position, 5 reference allele,
// 6 variant allele, 9 mutation type, 10 gene symbol, 20 dbSNP id.
type variantRow struct {
	patient      string
	chromosome   string
	build        string
	position     string
	refAllele    string
	varAllele    string
	mutationType string
	geneSymbol   string
	dbSNP        string
}

func newVariantRow(row []string) variantRow {
	return variantRow{
		patient:      row[0],
		chromosome:   row[2],
		build:        row[3],
		position:     row[4],
		refAllele:    row[5],
		varAllele:    row[6],
		mutationType: row[9],
		geneSymbol:   row[10],
		dbSNP:        row[20],
	}
}

// parseVariants accumulates rows into the run's catalog and emits the
// collected variants once the file is exhausted, so gene-of-interest unions
// are complete before any variant entity goes out.
func (s *Source) parseVariants(ctx context.Context, path string, run *ingest.Run) error {
	t, err := ingest.OpenTable(path, '\t', 0)
	if err != nil {
		return err
	}
	defer t.Close()

	// The export leads with a column-header line.
	if _, err := t.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("read variant header: %w", err)
	}

	line := 0
	for {
		row, err := t.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read variant row: %w", err)
		}
		line++
		run.RowRead()

		if len(row) < variantColumns {
			run.Logger.Warn("variant row has too few columns",
				"line", line, "columns", len(row))
			run.RowSkipped()
			continue
		}
		r := newVariantRow(row)
		if r.patient == "" {
			run.Logger.Warn("variant row has no patient id", "line", line)
			run.RowSkipped()
			continue
		}
		if err := s.recordVariant(ctx, run, r, line); err != nil {
			return err
		}
	}
	return s.emitVariants(ctx, run)
}

// recordVariant caches one row's variant and makes sure the patient's
// person and genotype entities exist.
func (s *Source) recordVariant(ctx context.Context, run *ingest.Run, r variantRow, line int) error {
	fields := identity.VariantFields{
		Chromosome:      normalize.Chromosome(r.chromosome),
		Build:           normalize.Build(r.build),
		Position:        r.position,
		ReferenceAllele: normalize.Allele(r.refAllele),
		VariantAllele:   normalize.Allele(r.varAllele),
		MutationType:    r.mutationType,
		RSID:            normalize.RSID(r.dbSNP),
	}
	v := run.Catalog.Variant(r.patient, fields, line)
	v.AddGene(r.geneSymbol)

	person := personID(r.patient)
	if run.Catalog.FirstUse(person) {
		err := run.EmitEntity(ctx, graph.Entity{
			Kind:  bio.KindPerson,
			ID:    person,
			Label: r.patient,
		})
		if err != nil {
			return err
		}
	}

	genotype, created := run.Catalog.Genotype(r.patient)
	if !created {
		return nil
	}
	err := run.EmitEntity(ctx, graph.Entity{
		Kind:  bio.KindGenotype,
		ID:    genotype,
		Label: r.patient + " genotype",
	})
	if err != nil {
		return err
	}
	return run.EmitAssociation(ctx, graph.Association{
		Subject:   person,
		Predicate: bio.RelationHasGenotype,
		Object:    genotype,
	})
}

// emitVariants walks the catalog in sorted order and emits every variant
// not yet emitted this run, with its structural links.
func (s *Source) emitVariants(ctx context.Context, run *ingest.Run) error {
	for _, subject := range run.Catalog.Subjects() {
		genotype, _ := run.Catalog.Genotype(subject)
		for _, v := range run.Catalog.SubjectVariants(subject) {
			if !v.MarkEmitted() {
				continue
			}
			if err := s.emitVariant(ctx, run, genotype, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Source) emitVariant(ctx context.Context, run *ingest.Run, genotype identity.Identifier, v *identity.Variant) error {
	// Two subjects reporting the same complete tuple share one entity;
	// each still gets its own genotype link below.
	if run.Catalog.FirstUse(v.ID()) {
		err := run.EmitEntity(ctx, graph.Entity{
			Kind:       bio.KindVariant,
			ID:         v.ID(),
			Attributes: variantAttributes(v),
		})
		if err != nil {
			return err
		}
	}

	err := run.EmitAssociation(ctx, graph.Association{
		Subject:   genotype,
		Predicate: bio.RelationHasAlternatePart,
		Object:    v.ID(),
	})
	if err != nil {
		return err
	}

	if v.Chromosome != "" {
		chr, created := run.Catalog.Chromosome(v.Chromosome, v.Build)
		if created {
			err := run.EmitEntity(ctx, graph.Entity{
				Kind:  bio.KindChromosome,
				ID:    chr.ID,
				Label: chr.Label,
			})
			if err != nil {
				return err
			}
		}
		err := run.EmitAssociation(ctx, graph.Association{
			Subject:   v.ID(),
			Predicate: bio.RelationLocatedOn,
			Object:    chr.ID,
		})
		if err != nil {
			return err
		}
	}

	if v.RSID != "" {
		err := run.EmitAssociation(ctx, graph.Association{
			Subject:   v.ID(),
			Predicate: bio.RelationSameAs,
			Object:    identity.NewNamed("dbSNP:" + v.RSID),
		})
		if err != nil {
			return err
		}
	}
	return s.emitGeneLinks(ctx, run, v)
}

// emitGeneLinks resolves the variant's genes of interest through the gene
// map and links each resolved gene. Symbols missing from the map are
// logged and dropped; the variant itself already went out.
func (s *Source) emitGeneLinks(ctx context.Context, run *ingest.Run, v *identity.Variant) error {
	for _, symbol := range v.Genes() {
		curie, ok := run.Genes[symbol]
		if !ok {
			run.Logger.Warn("gene symbol not in gene map", "symbol", symbol)
			continue
		}
		gene := identity.NewNamed(curie)
		if run.Catalog.FirstUse(gene) {
			err := run.EmitEntity(ctx, graph.Entity{
				Kind:  bio.KindGene,
				ID:    gene,
				Label: symbol,
			})
			if err != nil {
				return err
			}
		}
		err := run.EmitAssociation(ctx, graph.Association{
			Subject:   v.ID(),
			Predicate: genePredicate(run.Coordinates, v, curie),
			Object:    gene,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// genePredicate picks the variant→gene relation. The default reading of a
// gene of interest is that the variant disrupts the gene itself; when the
// coordinate table places the variant strictly outside the gene's span on
// the same build, the relation weakens to causal influence (an upstream or
// downstream regulatory change).
func genePredicate(coords lookup.CoordinateMap, v *identity.Variant, geneCURIE string) string {
	span, ok := coords[geneCURIE]
	if !ok || v.Position == "" || v.Build == "" || !strings.EqualFold(span.Build, v.Build) {
		return bio.RelationHasAffectedLocus
	}
	pos, err := strconv.ParseInt(v.Position, 10, 64)
	if err != nil {
		return bio.RelationHasAffectedLocus
	}
	if span.Contains(pos) {
		return bio.RelationHasAffectedLocus
	}
	return bio.RelationCausallyInfluences
}

func variantAttributes(v *identity.Variant) []graph.Attribute {
	fields := []struct {
		predicate string
		value     string
	}{
		{bio.VariantChromosome, v.Chromosome},
		{bio.VariantBuild, v.Build},
		{bio.VariantPosition, v.Position},
		{bio.VariantReferenceAllele, v.ReferenceAllele},
		{bio.VariantVariantAllele, v.VariantAllele},
		{bio.VariantMutationType, v.MutationType},
		{bio.VariantRSID, v.RSID},
	}
	attrs := make([]graph.Attribute, 0, len(fields))
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		attrs = append(attrs, graph.Attribute{Predicate: f.predicate, Value: f.value})
	}
	return attrs
}
