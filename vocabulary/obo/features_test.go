package obo_test

import (
	"testing"

	"github.com/c360studio/biograph/vocabulary/obo"
)

func TestFeatureClass(t *testing.T) {
	tests := []struct {
		name        string
		featureType string
		biotype     string
		want        string
	}{
		{"point mutation", "point_mutation", "", "SO:1000008"},
		{"deletion", "deletion", "", "SO:0000159"},
		{"rnai reagent", "RNAi_reagent", "", "SO:0000337"},
		{"complex substitution", "complex_substitution", "", "SO:1000005"},
		{"gene with biotype", "gene", "snoRNA", "SO:0001267"},
		{"gene protein coding", "gene", "protein_coding", "SO:0001217"},
		{"gene antisense uses ncRNA class", "gene", "asRNA", "SO:0001263"},
		{"gene without biotype", "gene", "", ""},
		{"gene unknown biotype", "gene", "mystery", ""},
		{"unknown type", "inversion", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := obo.FeatureClass(tc.featureType, tc.biotype)
			if got != tc.want {
				t.Errorf("FeatureClass(%q, %q) = %q, want %q", tc.featureType, tc.biotype, got, tc.want)
			}
		})
	}
}

func TestEvidenceCode(t *testing.T) {
	if got := obo.EvidenceCode("IMP"); got != obo.EvidenceMutantPhenotype {
		t.Errorf("IMP resolved to %q", got)
	}
	if got := obo.EvidenceCode("IEA"); got != obo.EvidenceElectronicAnnotation {
		t.Errorf("IEA resolved to %q", got)
	}
	if got := obo.EvidenceCode("TAS"); got != "" {
		t.Errorf("unmapped symbol resolved to %q, want empty", got)
	}
	if got := obo.EvidenceCode(""); got != "" {
		t.Errorf("empty symbol resolved to %q, want empty", got)
	}
}

func TestPrefixesCoverPipelineCuries(t *testing.T) {
	// Every prefix the sources emit must expand.
	for _, prefix := range []string{
		"GENO", "SO", "ECO", "RO", "HP", "DOID", "IAO",
		"NCBITaxon", "WBPhenotype", "WormBase", "PMID", "DOI", "CHR",
	} {
		if _, ok := obo.Prefixes[prefix]; !ok {
			t.Errorf("prefix %q missing from Prefixes", prefix)
		}
	}
}
