// Package wormbase ingests the model-organism database's release exports:
// the gene registry and descriptions, allele- and reagent-based phenotype
// associations, publication cross-references, genomic feature locations,
// and disease models. Alleles and genes keep their stable WormBase
// accessions; composites the exports only imply (reagent-targeted genes,
// variation complements) are synthesized through the run's identity
// catalog.
package wormbase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/c360studio/biograph/identity"
	"github.com/c360studio/biograph/ingest"
)

// SourceName labels this source in logs, metrics, and run manifests.
const SourceName = "wormbase"

// Source parses the database's release exports.
type Source struct{}

// New returns the wormbase source.
func New() *Source { return &Source{} }

// Name implements ingest.Source.
func (s *Source) Name() string { return SourceName }

// Table markers, matched as substrings of the base file name. The release
// ships species-prefixed names (c_elegans.PRJNA13758.geneIDs.txt.gz), so
// stem matching alone cannot discriminate the tables.
const (
	geneIDsTable     = "geneIDs"
	geneDescTable    = "functional_descriptions"
	allelePhenoTable = "phenotype_association"
	rnaiPhenoTable   = "rnai_phenotypes"
	pubXrefsTable    = "pub_xrefs"
	featureLocTable  = ".gff3"
	diseaseTable     = "disease_association"
)

func (s *Source) table(filename string) string {
	base := filepath.Base(filename)
	for _, marker := range []string{
		geneIDsTable,
		geneDescTable,
		allelePhenoTable,
		rnaiPhenoTable,
		pubXrefsTable,
		featureLocTable,
		diseaseTable,
	} {
		if strings.Contains(base, marker) {
			return marker
		}
	}
	return ""
}

// Accepts implements ingest.Source.
func (s *Source) Accepts(filename string) bool {
	return s.table(filename) != ""
}

// Parse implements ingest.Source, routing the file to its table reader.
func (s *Source) Parse(ctx context.Context, path string, run *ingest.Run) error {
	switch s.table(path) {
	case geneIDsTable:
		return s.parseGeneIDs(ctx, path, run)
	case geneDescTable:
		return s.parseGeneDescriptions(ctx, path, run)
	case allelePhenoTable:
		return s.parseAllelePhenotypes(ctx, path, run)
	case rnaiPhenoTable:
		return s.parseReagentPhenotypes(ctx, path, run)
	case pubXrefsTable:
		return s.parsePubXrefs(ctx, path, run)
	case featureLocTable:
		return s.parseFeatureLocations(ctx, path, run)
	case diseaseTable:
		return s.parseDiseaseAssociations(ctx, path, run)
	}
	return fmt.Errorf("wormbase: file %q matches no table", filepath.Base(path))
}

// wormbaseID is the named identifier for a bare WormBase accession number.
func wormbaseID(num string) identity.Identifier {
	return identity.NewNamed("WormBase:" + num)
}

// refReplacer canonicalizes citation prefixes. WB_REF: is listed first so
// it is not half-eaten by the shorter pattern.
var refReplacer = strings.NewReplacer("WB_REF:", "WormBase:", "WB:", "WormBase:")
