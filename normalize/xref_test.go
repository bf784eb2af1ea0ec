package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicationXref(t *testing.T) {
	tests := []struct {
		name  string
		token string
		id    string
		class XrefClass
	}{
		{"pubmed with markup", "pmid8805<BR>", "PMID:8805", XrefPubMed},
		{"pubmed with space", "pmid 8805", "PMID:8805", XrefPubMed},
		{"doi with markup", "doi10.1139/z78-244<BR>", "DOI:10.1139/z78-244", XrefDOI},
		{"doi with space is ambiguous", "doi 10.1139/z78-244", "", XrefAmbiguous},
		{"bracketed free text", "[in Russian]", "", XrefAmbiguous},
		{"parenthesized free text", "thesis (1999)", "", XrefAmbiguous},
		{"community forum reference", "cgc12<BR>", "", XrefCommunity},
		{"unrecognized token", "ISBN0123456789", "", XrefUnknown},
		{"empty token", "", "", XrefUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, class := PublicationXref(tt.token)
			assert.Equal(t, tt.id, id)
			assert.Equal(t, tt.class, class)
		})
	}
}
