package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChromosome(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare X gains prefix", "X", "chrX"},
		{"bare lowercase x uppercased", "x", "chrX"},
		{"bare number", "3", "chr3"},
		{"two digit number", "17", "chr17"},
		{"uppercase prefix lowered", "CHR3", "chr3"},
		{"already canonical", "chr7", "chr7"},
		{"alternate assembly contig rejected", "chrGL000229.1", ""},
		{"uppercase contig rejected", "CHRGL000229.1", ""},
		{"empty passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Chromosome(tt.raw))
		})
	}
}

func TestBuild(t *testing.T) {
	assert.Equal(t, "hg19", Build("HG19"))
	assert.Equal(t, "hg19", Build("hg19"))
	assert.Equal(t, "hg38", Build("Hg38"))
	assert.Equal(t, "WS249", Build("WS249"))
}

func TestAllele(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bases uppercased", "acgt", "ACGT"},
		{"already upper", "A", "A"},
		{"flank annotation rejected", "1200 BP AT LEFT FLANK", ""},
		{"transcript accession rejected", "NM_000059.3:c.68-7T>A", ""},
		{"exon note rejected", "deletion of exon 5", ""},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allele(tt.raw))
		})
	}
}

func TestRSID(t *testing.T) {
	assert.Equal(t, "rs1234", RSID("rs1234"))
	assert.Equal(t, "rs1234", RSID("rs1234 (maternal)"))
	assert.Equal(t, "", RSID("RS1234"), "accessions are lowercase in the export")
	assert.Equal(t, "", RSID("novel"))
	assert.Equal(t, "", RSID(""))
}
