package bio_test

import (
	"testing"

	"github.com/c360studio/biograph/vocabulary/bio"
	"github.com/c360studio/semstreams/vocabulary"
)

func TestPredicatesRegistered(t *testing.T) {
	predicates := []string{
		bio.EntityLabel,
		bio.EntityClass,
		bio.EntityDefinition,
		bio.EntitySynonym,
		bio.EntityDeprecated,
		bio.VariantChromosome,
		bio.VariantReferenceAllele,
		bio.VariantRSID,
		bio.LocationStart,
		bio.LocationStrand,
		bio.RelationHasPhenotype,
		bio.RelationHasGenotype,
		bio.RelationHasAlternatePart,
		bio.RelationHasAffectedLocus,
		bio.RelationTargetedBy,
		bio.RelationModelOf,
		bio.RelationSameAs,
		bio.AssociationSubject,
		bio.AssociationPredicate,
		bio.AssociationObject,
		bio.AssociationEvidence,
		bio.AssociationSource,
	}

	for _, predicate := range predicates {
		t.Run(predicate, func(t *testing.T) {
			meta := vocabulary.GetPredicateMetadata(predicate)
			if meta == nil {
				t.Errorf("predicate %q not registered", predicate)
				return
			}
			if meta.Description == "" {
				t.Errorf("predicate %q has no description", predicate)
			}
			if meta.StandardIRI == "" {
				t.Errorf("predicate %q has no IRI mapping", predicate)
			}
		})
	}
}

func TestPredicateIRIMapCoversRelations(t *testing.T) {
	for dotted, curie := range bio.RelationCURIEMap {
		iri, ok := bio.PredicateIRIMap[dotted]
		if !ok {
			t.Errorf("relation %q missing from PredicateIRIMap", dotted)
			continue
		}
		if iri == "" {
			t.Errorf("relation %q has empty IRI", dotted)
		}
		if curie == "" {
			t.Errorf("relation %q has empty CURIE", dotted)
		}
	}
}

func TestClassMapDefaults(t *testing.T) {
	tests := []struct {
		kind bio.EntityKind
		want string
	}{
		{bio.KindGene, "SO:0000704"},
		{bio.KindVariant, "SO:0001059"},
		{bio.KindReagent, "SO:0000337"},
		{bio.KindVariationComplement, "GENO:0000009"},
		{bio.KindReagentTargetedGene, "GENO:0000504"},
		{bio.KindGenotype, "GENO:0000719"},
		{bio.KindChromosome, "SO:0000340"},
	}

	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			got, ok := bio.ClassMap[tc.kind]
			if !ok {
				t.Fatalf("kind %q not in ClassMap", tc.kind)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}

	// Features resolve a class per record, never through the default map.
	if _, ok := bio.ClassMap[bio.KindFeature]; ok {
		t.Error("KindFeature must not have a default class")
	}
}
