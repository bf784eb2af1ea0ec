package bio

import (
	"github.com/c360studio/biograph/vocabulary/obo"
	"github.com/c360studio/semstreams/vocabulary"
)

// Entity predicates carry attributes any entity record can have.
const (
	// EntityLabel is the display label of an entity.
	EntityLabel = "bio.entity.label"

	// EntityClass is the ontology class CURIE of an entity.
	EntityClass = "bio.entity.class"

	// EntityKindName is the pipeline-internal kind of an entity.
	EntityKindName = "bio.entity.kind"

	// EntityDefinition is the curated definition text of an entity.
	EntityDefinition = "bio.entity.definition"

	// EntityDescription is free description text attached to an entity.
	EntityDescription = "bio.entity.description"

	// EntitySynonym is an alternate name for an entity.
	EntitySynonym = "bio.entity.synonym"

	// EntityDeprecated marks an entity the source has retired.
	EntityDeprecated = "bio.entity.deprecated"
)

// Variant predicates carry the normalized fields of a sequence alteration.
const (
	// VariantChromosome is the normalized chromosome name (chr-prefixed).
	VariantChromosome = "bio.variant.chromosome"

	// VariantBuild is the normalized genome build label.
	VariantBuild = "bio.variant.genome_build"

	// VariantPosition is the base-pair position within the chromosome.
	VariantPosition = "bio.variant.position"

	// VariantReferenceAllele is the upper-cased reference base sequence.
	VariantReferenceAllele = "bio.variant.reference_allele"

	// VariantVariantAllele is the upper-cased variant base sequence.
	VariantVariantAllele = "bio.variant.variant_allele"

	// VariantMutationType is the source's mutation-type label, verbatim.
	VariantMutationType = "bio.variant.mutation_type"

	// VariantRSID is the dbSNP accession, reduced to its rs-digit prefix.
	VariantRSID = "bio.variant.rs_id"
)

// Location predicates place a feature on a chromosome.
const (
	// LocationStart is the feature start coordinate.
	LocationStart = "bio.location.start"

	// LocationEnd is the feature end coordinate.
	LocationEnd = "bio.location.end"

	// LocationStrand is the strand symbol (+, -, or .).
	LocationStrand = "bio.location.strand"

	// LocationBuild is the assembly build the coordinates are against.
	LocationBuild = "bio.location.genome_build"
)

// Relation predicates are the typed edges between entities. Each maps to a
// GENO or RO object property in PredicateIRIMap.
const (
	// RelationHasPhenotype links a genetic subject to a phenotype term.
	RelationHasPhenotype = "bio.relation.has_phenotype"

	// RelationHasGenotype links a subject to their intrinsic genotype.
	RelationHasGenotype = "bio.relation.has_genotype"

	// RelationHasAlternatePart links a genotype or variation complement to
	// a member sequence alteration.
	RelationHasAlternatePart = "bio.relation.has_alternate_part"

	// RelationHasAffectedLocus links a variant or reagent-targeted gene to
	// the gene it disrupts.
	RelationHasAffectedLocus = "bio.relation.has_affected_locus"

	// RelationTargetsGene links a reagent to the gene it targets.
	RelationTargetsGene = "bio.relation.targets_gene"

	// RelationTargetedBy links a reagent-targeted gene to its reagent.
	RelationTargetedBy = "bio.relation.targeted_by"

	// RelationModelOf links a gene to a disease it models.
	RelationModelOf = "bio.relation.model_of"

	// RelationCausallyInfluences links a variant to a gene it regulates
	// from outside the gene span.
	RelationCausallyInfluences = "bio.relation.causally_influences"

	// RelationInTaxon links an entity to its species term.
	RelationInTaxon = "bio.relation.in_taxon"

	// RelationSameAs links two identifiers for the same individual.
	RelationSameAs = "bio.relation.same_as"

	// RelationLocatedOn links a located entity to its chromosome.
	RelationLocatedOn = "bio.relation.located_on"
)

// Association predicates reify one association record, following the OBAN
// association model.
const (
	// AssociationSubject is the entity the association is about.
	AssociationSubject = "bio.association.subject"

	// AssociationPredicate is the relation the association asserts.
	AssociationPredicate = "bio.association.predicate"

	// AssociationObject is the ontology term the subject is linked to.
	AssociationObject = "bio.association.object"

	// AssociationEvidence is the ECO code backing the association.
	AssociationEvidence = "bio.association.evidence"

	// AssociationSource is a citation supporting the association.
	AssociationSource = "bio.association.source"
)

func init() {
	registerEntityPredicates()
	registerVariantPredicates()
	registerRelationPredicates()
	registerAssociationPredicates()
}

func registerEntityPredicates() {
	vocabulary.Register(EntityLabel,
		vocabulary.WithDescription("Display label"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI("http://www.w3.org/2000/01/rdf-schema#label"))

	vocabulary.Register(EntityClass,
		vocabulary.WithDescription("Ontology class CURIE"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"))

	vocabulary.Register(EntityKindName,
		vocabulary.WithDescription("Pipeline entity kind"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"kind"))

	vocabulary.Register(EntityDefinition,
		vocabulary.WithDescription("Curated definition text"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(obo.OBO+"IAO_0000115"))

	vocabulary.Register(EntityDescription,
		vocabulary.WithDescription("Free description text"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI("http://purl.org/dc/elements/1.1/description"))

	vocabulary.Register(EntitySynonym,
		vocabulary.WithDescription("Alternate name"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI("http://www.geneontology.org/formats/oboInOwl#hasExactSynonym"))

	vocabulary.Register(EntityDeprecated,
		vocabulary.WithDescription("Entity retired by the source"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI("http://www.w3.org/2002/07/owl#deprecated"))
}

func registerVariantPredicates() {
	vocabulary.Register(VariantChromosome,
		vocabulary.WithDescription("Normalized chromosome name"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"chromosome"))

	vocabulary.Register(VariantBuild,
		vocabulary.WithDescription("Normalized genome build"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"genome_build"))

	vocabulary.Register(VariantPosition,
		vocabulary.WithDescription("Base-pair position"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"position"))

	vocabulary.Register(VariantReferenceAllele,
		vocabulary.WithDescription("Reference base sequence"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"reference_allele"))

	vocabulary.Register(VariantVariantAllele,
		vocabulary.WithDescription("Variant base sequence"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"variant_allele"))

	vocabulary.Register(VariantMutationType,
		vocabulary.WithDescription("Source mutation-type label"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"mutation_type"))

	vocabulary.Register(VariantRSID,
		vocabulary.WithDescription("dbSNP accession"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"rs_id"))

	vocabulary.Register(LocationStart,
		vocabulary.WithDescription("Feature start coordinate"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI("http://biohackathon.org/resource/faldo#begin"))

	vocabulary.Register(LocationEnd,
		vocabulary.WithDescription("Feature end coordinate"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI("http://biohackathon.org/resource/faldo#end"))

	vocabulary.Register(LocationStrand,
		vocabulary.WithDescription("Strand symbol"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"strand"))

	vocabulary.Register(LocationBuild,
		vocabulary.WithDescription("Assembly build of the coordinates"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"location_build"))
}

func registerRelationPredicates() {
	vocabulary.Register(RelationHasPhenotype,
		vocabulary.WithDescription("Subject exhibits phenotype"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(obo.IRI(obo.HasPhenotype)))

	vocabulary.Register(RelationHasGenotype,
		vocabulary.WithDescription("Subject has intrinsic genotype"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(obo.IRI(obo.HasGenotype)))

	vocabulary.Register(RelationHasAlternatePart,
		vocabulary.WithDescription("Whole has member sequence alteration"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(obo.IRI(obo.HasAlternatePart)))

	vocabulary.Register(RelationHasAffectedLocus,
		vocabulary.WithDescription("Alteration affects gene locus"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(obo.IRI(obo.HasAffectedLocus)))

	vocabulary.Register(RelationTargetsGene,
		vocabulary.WithDescription("Reagent targets gene"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(obo.IRI(obo.TargetsInstanceOf)))

	vocabulary.Register(RelationTargetedBy,
		vocabulary.WithDescription("Targeted gene perturbed by reagent"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(obo.IRI(obo.IsTargetedBy)))

	vocabulary.Register(RelationModelOf,
		vocabulary.WithDescription("Gene models disease"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(obo.IRI(obo.ModelOf)))

	vocabulary.Register(RelationCausallyInfluences,
		vocabulary.WithDescription("Variant regulates gene from outside its span"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(obo.IRI(obo.CausallyInfluences)))

	vocabulary.Register(RelationInTaxon,
		vocabulary.WithDescription("Entity belongs to species"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(obo.IRI(obo.InTaxon)))

	vocabulary.Register(RelationSameAs,
		vocabulary.WithDescription("Identifiers denote the same individual"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI("http://www.w3.org/2002/07/owl#sameAs"))

	vocabulary.Register(RelationLocatedOn,
		vocabulary.WithDescription("Located entity sits on chromosome"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI("http://biohackathon.org/resource/faldo#reference"))
}

func registerAssociationPredicates() {
	vocabulary.Register(AssociationSubject,
		vocabulary.WithDescription("Association subject entity"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI("http://purl.org/oban/association_has_subject"))

	vocabulary.Register(AssociationPredicate,
		vocabulary.WithDescription("Relation the association asserts"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI("http://purl.org/oban/association_has_predicate"))

	vocabulary.Register(AssociationObject,
		vocabulary.WithDescription("Association object term"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI("http://purl.org/oban/association_has_object"))

	vocabulary.Register(AssociationEvidence,
		vocabulary.WithDescription("ECO code backing the association"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(obo.IRI(obo.HasEvidence)))

	vocabulary.Register(AssociationSource,
		vocabulary.WithDescription("Citation supporting the association"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI("http://purl.org/dc/elements/1.1/source"))
}
