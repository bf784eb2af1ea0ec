package bio

import "github.com/c360studio/biograph/vocabulary/obo"

// EntityKind identifies the category of a graph entity record.
type EntityKind string

// Entity kind constants.
const (
	// KindGene is a gene locus with a stable source identifier.
	KindGene EntityKind = "gene"
	// KindVariant is a sequence alteration synthesized from variant rows.
	KindVariant EntityKind = "variant"
	// KindAllele is a named sequence alteration from a curated source.
	KindAllele EntityKind = "allele"
	// KindReagent is a gene-targeting reagent.
	KindReagent EntityKind = "reagent"
	// KindVariationComplement is a set of co-occurring alleles reported in
	// one association row.
	KindVariationComplement EntityKind = "variation_complement"
	// KindReagentTargetedGene is a gene-as-perturbed-by-reagent composite.
	KindReagentTargetedGene EntityKind = "reagent_targeted_gene"
	// KindGenotype is a subject's intrinsic genotype.
	KindGenotype EntityKind = "genotype"
	// KindPerson is a patient or study subject.
	KindPerson EntityKind = "person"
	// KindChromosome is a chromosome instance within one assembly build.
	KindChromosome EntityKind = "chromosome"
	// KindPublication is a literature reference.
	KindPublication EntityKind = "publication"
	// KindFeature is a located genomic feature from a feature-location
	// export; its class varies per row.
	KindFeature EntityKind = "feature"
)

// ClassMap maps entity kinds to their default ontology classes. Kinds
// absent here (features) resolve a class per record instead.
var ClassMap = map[EntityKind]string{
	KindGene:                obo.Gene,
	KindVariant:             obo.SequenceAlteration,
	KindAllele:              obo.SequenceAlteration,
	KindReagent:             obo.RNAiReagent,
	KindVariationComplement: obo.GenomicVariationComplement,
	KindReagentTargetedGene: obo.ReagentTargetedGene,
	KindGenotype:            obo.IntrinsicGenotype,
	KindPerson:              ClassPerson,
	KindChromosome:          obo.Chromosome,
	KindPublication:         obo.JournalArticle,
}

// RelationCURIEMap maps relation predicates to the GENO/RO object
// properties they assert, for serializers that render associations in
// ontology terms.
var RelationCURIEMap = map[string]string{
	RelationHasPhenotype:       obo.HasPhenotype,
	RelationHasGenotype:        obo.HasGenotype,
	RelationHasAlternatePart:   obo.HasAlternatePart,
	RelationHasAffectedLocus:   obo.HasAffectedLocus,
	RelationTargetsGene:        obo.TargetsInstanceOf,
	RelationTargetedBy:         obo.IsTargetedBy,
	RelationModelOf:            obo.ModelOf,
	RelationCausallyInfluences: obo.CausallyInfluences,
	RelationInTaxon:            obo.InTaxon,
}

// PredicateIRIMap maps every predicate in this package to its full IRI.
// RDF export uses this table; everything upstream works in dotted form.
var PredicateIRIMap = map[string]string{
	EntityLabel:       "http://www.w3.org/2000/01/rdf-schema#label",
	EntityClass:       "http://www.w3.org/1999/02/22-rdf-syntax-ns#type",
	EntityKindName:    Namespace + "kind",
	EntityDefinition:  obo.OBO + "IAO_0000115",
	EntityDescription: "http://purl.org/dc/elements/1.1/description",
	EntitySynonym:     "http://www.geneontology.org/formats/oboInOwl#hasExactSynonym",
	EntityDeprecated:  "http://www.w3.org/2002/07/owl#deprecated",

	VariantChromosome:      Namespace + "chromosome",
	VariantBuild:           Namespace + "genome_build",
	VariantPosition:        Namespace + "position",
	VariantReferenceAllele: Namespace + "reference_allele",
	VariantVariantAllele:   Namespace + "variant_allele",
	VariantMutationType:    Namespace + "mutation_type",
	VariantRSID:            Namespace + "rs_id",

	LocationStart:  "http://biohackathon.org/resource/faldo#begin",
	LocationEnd:    "http://biohackathon.org/resource/faldo#end",
	LocationStrand: Namespace + "strand",
	LocationBuild:  Namespace + "location_build",

	RelationHasPhenotype:       obo.IRI(obo.HasPhenotype),
	RelationHasGenotype:        obo.IRI(obo.HasGenotype),
	RelationHasAlternatePart:   obo.IRI(obo.HasAlternatePart),
	RelationHasAffectedLocus:   obo.IRI(obo.HasAffectedLocus),
	RelationTargetsGene:        obo.IRI(obo.TargetsInstanceOf),
	RelationTargetedBy:         obo.IRI(obo.IsTargetedBy),
	RelationModelOf:            obo.IRI(obo.ModelOf),
	RelationCausallyInfluences: obo.IRI(obo.CausallyInfluences),
	RelationInTaxon:            obo.IRI(obo.InTaxon),
	RelationSameAs:             "http://www.w3.org/2002/07/owl#sameAs",
	RelationLocatedOn:          "http://biohackathon.org/resource/faldo#reference",

	AssociationSubject:   "http://purl.org/oban/association_has_subject",
	AssociationPredicate: "http://purl.org/oban/association_has_predicate",
	AssociationObject:    "http://purl.org/oban/association_has_object",
	AssociationEvidence:  obo.IRI(obo.HasEvidence),
	AssociationSource:    "http://purl.org/dc/elements/1.1/source",
}
