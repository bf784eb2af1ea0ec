package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Variant_SharedKeyUnionsGenes(t *testing.T) {
	c := NewCatalog()

	fields := VariantFields{
		Chromosome:      "chr7",
		Build:           "hg19",
		Position:        "117199644",
		ReferenceAllele: "A",
		VariantAllele:   "G",
	}

	first := c.Variant("patient_1", fields, 1)
	first.AddGene("CFTR")

	// Same tuple on a later line resolves to the same variant.
	second := c.Variant("patient_1", fields, 9)
	second.AddGene("SHH")
	second.AddGene("CFTR")

	require.Same(t, first, second)
	assert.Equal(t, "chr7-hg19-117199644-A-G", first.Key)
	assert.Equal(t, []string{"CFTR", "SHH"}, first.Genes())
}

func TestCatalog_Variant_ScopedPerSubject(t *testing.T) {
	c := NewCatalog()

	fields := VariantFields{
		Chromosome:      "chr7",
		Build:           "hg19",
		Position:        "117199644",
		ReferenceAllele: "A",
		VariantAllele:   "G",
	}

	a := c.Variant("patient_1", fields, 1)
	b := c.Variant("patient_2", fields, 2)

	assert.NotSame(t, a, b)
	// Identical tuples still share the synthesized identifier, so the
	// emitted entity merges across subjects.
	assert.Equal(t, a.ID(), b.ID())
}

func TestCatalog_Variant_IncompleteFieldsKeyedByLine(t *testing.T) {
	c := NewCatalog()

	incomplete := VariantFields{
		Chromosome:    "chr7",
		Build:         "hg19",
		Position:      "117199644",
		VariantAllele: "G",
		// reference allele rejected during normalization
	}
	complete := VariantFields{
		Chromosome:      "chr7",
		Build:           "hg19",
		Position:        "117199644",
		ReferenceAllele: "A",
		VariantAllele:   "G",
	}

	a := c.Variant("patient_1", incomplete, 3)
	b := c.Variant("patient_1", complete, 4)

	assert.Equal(t, "3-chr7-hg19-117199644-G", a.Key)
	assert.NotEqual(t, a.Key, b.Key, "incomplete rows must not collapse onto complete ones")

	// The same incomplete shape on a different line is a different variant.
	c2 := c.Variant("patient_1", incomplete, 5)
	assert.NotSame(t, a, c2)
	assert.Equal(t, "5-chr7-hg19-117199644-G", c2.Key)
}

func TestCatalog_Variant_AllFieldsEmpty(t *testing.T) {
	c := NewCatalog()

	v := c.Variant("patient_1", VariantFields{}, 12)
	assert.Equal(t, "12-", v.Key)
	assert.False(t, v.ID().IsZero())
}

func TestCatalog_GVC_PermutationInvariant(t *testing.T) {
	c := NewCatalog()

	id1, created := c.GVC([]string{"WB:WBVar00095133", "WB:WBVar00604230"})
	require.True(t, created)

	id2, created := c.GVC([]string{"WB:WBVar00604230", "WB:WBVar00095133"})
	assert.False(t, created)
	assert.Equal(t, id1, id2)

	assert.Equal(t, Synthesized, id1.Class)
	assert.Equal(t, "WBVar00095133-WBVar00604230", id1.Local)
}

func TestCatalog_GVC_SortsBeforeStripping(t *testing.T) {
	c := NewCatalog()

	// Prefixed entries sort before bare ones; the key reflects the raw
	// order, stripped afterwards.
	id, _ := c.GVC([]string{"WBVar00000002", "WB:WBVar00000010"})
	assert.Equal(t, "WBVar00000010-WBVar00000002", id.Local)
}

func TestCatalog_ReagentTargetedGene_Idempotent(t *testing.T) {
	c := NewCatalog()

	id1, created := c.ReagentTargetedGene("WBGene00001908", "WBRNAi00025129")
	require.True(t, created)
	assert.Equal(t, "WBGene00001908-WBRNAi00025129", id1.Local)
	assert.Equal(t, Synthesized, id1.Class)

	id2, created := c.ReagentTargetedGene("WBGene00001908", "WBRNAi00025129")
	assert.False(t, created)
	assert.Equal(t, id1, id2)

	other, created := c.ReagentTargetedGene("WBGene00001908", "WBRNAi00025631")
	assert.True(t, created)
	assert.NotEqual(t, id1, other)
}

func TestCatalog_Genotype_OnePerSubject(t *testing.T) {
	c := NewCatalog()

	id1, created := c.Genotype("patient_1")
	require.True(t, created)
	assert.Equal(t, Synthesized, id1.Class)
	assert.Equal(t, Digest("patient_1-intrinsic-genotype"), id1.Local)

	id2, created := c.Genotype("patient_1")
	assert.False(t, created)
	assert.Equal(t, id1, id2)

	id3, created := c.Genotype("patient_2")
	assert.True(t, created)
	assert.NotEqual(t, id1, id3)
}

func TestCatalog_Chromosome_BuildScoped(t *testing.T) {
	c := NewCatalog()

	chr, created := c.Chromosome("chr7", "hg19")
	require.True(t, created)
	assert.Equal(t, "CHR:hg19chr7", chr.ID.Local)
	assert.Equal(t, Named, chr.ID.Class)
	assert.Equal(t, "chr7 (hg19)", chr.Label)

	_, created = c.Chromosome("chr7", "hg19")
	assert.False(t, created)

	other, created := c.Chromosome("chr7", "hg38")
	assert.True(t, created)
	assert.NotEqual(t, chr.ID, other.ID)
}

func TestCatalog_Chromosome_BareName(t *testing.T) {
	c := NewCatalog()

	chr, _ := c.Chromosome("I", "WS249")
	assert.Equal(t, "CHR:WS249chrI", chr.ID.Local)
	assert.Equal(t, "chrI (WS249)", chr.Label)
}

func TestCatalog_SubjectVariants_SortedByKey(t *testing.T) {
	c := NewCatalog()

	c.Variant("patient_1", VariantFields{
		Chromosome: "chr9", Build: "hg19", Position: "5", ReferenceAllele: "T", VariantAllele: "C",
	}, 1)
	c.Variant("patient_1", VariantFields{
		Chromosome: "chr2", Build: "hg19", Position: "9", ReferenceAllele: "G", VariantAllele: "A",
	}, 2)

	require.Equal(t, []string{"patient_1"}, c.Subjects())
	variants := c.SubjectVariants("patient_1")
	require.Len(t, variants, 2)
	assert.Equal(t, "chr2-hg19-9-G-A", variants[0].Key)
	assert.Equal(t, "chr9-hg19-5-T-C", variants[1].Key)
}

func TestCatalog_FirstUse(t *testing.T) {
	c := NewCatalog()

	gene := NewNamed("WormBase:WBGene00001908")
	assert.True(t, c.FirstUse(gene))
	assert.False(t, c.FirstUse(gene))

	// Synthesized identifiers track independently of named ones with the
	// same local part.
	assert.True(t, c.FirstUse(NewSynthesized("WormBase:WBGene00001908")))
}
