package obo

// Genotype ontology (GENO) classes.
const (
	// IntrinsicGenotype is a subject's baseline genetic background,
	// distinct from reagent-induced perturbations.
	IntrinsicGenotype = "GENO:0000719"

	// ReagentTargetedGene is the pseudo-allele representing a gene as
	// perturbed by a targeting reagent.
	ReagentTargetedGene = "GENO:0000504"

	// GenomicVariationComplement is the set of sequence alterations
	// reported together for one subject.
	GenomicVariationComplement = "GENO:0000009"
)

// Sequence ontology (SO) classes.
const (
	// Gene is the SO class for gene loci.
	Gene = "SO:0000704"

	// SequenceAlteration is the SO class for variants and alleles.
	SequenceAlteration = "SO:0001059"

	// RNAiReagent is the SO class for RNA-interference reagents.
	RNAiReagent = "SO:0000337"

	// Chromosome is the SO class for chromosome instances.
	Chromosome = "SO:0000340"
)

// Object properties linking entities (GENO and RO).
const (
	// HasGenotype links a subject to its intrinsic genotype.
	HasGenotype = "GENO:0000222"

	// HasAlternatePart links a genotype or variation complement to a
	// member sequence alteration.
	HasAlternatePart = "GENO:0000382"

	// HasAffectedLocus links a variant or targeted-gene construct to the
	// gene whose function it disrupts.
	HasAffectedLocus = "GENO:0000418"

	// TargetsInstanceOf links a reagent to the gene it targets.
	TargetsInstanceOf = "GENO:0000414"

	// IsTargetedBy links a reagent-targeted gene back to its reagent.
	IsTargetedBy = "GENO:0000634"

	// HasPhenotype links a genetic subject to an observed phenotype term.
	HasPhenotype = "RO:0002200"

	// ModelOf links a gene to a disease it models.
	ModelOf = "RO:0003301"

	// HasEvidence links an association to its evidence code.
	HasEvidence = "RO:0002558"

	// InTaxon links an entity to its species.
	InTaxon = "RO:0002162"

	// CausallyInfluences links a variant to a gene it regulates from
	// outside the gene's own span.
	CausallyInfluences = "RO:0002566"
)

// Evidence ontology (ECO) codes.
const (
	// EvidenceMutantPhenotype backs associations inferred from mutant
	// phenotype (symbol IMP in association exports).
	EvidenceMutantPhenotype = "ECO:0000015"

	// EvidenceRNAiPhenotype backs associations from RNAi screens.
	EvidenceRNAiPhenotype = "ECO:0000019"

	// EvidenceElectronicAnnotation backs associations inferred from
	// electronic annotation (symbol IEA).
	EvidenceElectronicAnnotation = "ECO:0000501"
)

// DiseaseRoot is the root term of the disease ontology. Phenotype-bearing
// subjects are linked to it unconditionally, ahead of any specific term.
const DiseaseRoot = "DOID:4"

// IAO information-artifact classes for literature references.
const (
	// JournalArticle is the class for references resolved to a PubMed
	// identifier.
	JournalArticle = "IAO:0000013"

	// Publication is the generic publication class, for references whose
	// article type is unknown.
	Publication = "IAO:0000311"
)
