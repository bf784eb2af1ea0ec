package obo

import "strings"

// OBO is the shared purl namespace for OBO Foundry ontologies.
const OBO = "http://purl.obolibrary.org/obo/"

// Prefixes maps the CURIE prefixes used across the pipeline to IRI
// namespaces. Serializers that need full IRIs expand through this table;
// everything upstream of them works in CURIE form.
var Prefixes = map[string]string{
	"GENO":      OBO + "GENO_",
	"SO":        OBO + "SO_",
	"ECO":       OBO + "ECO_",
	"RO":        OBO + "RO_",
	"HP":        OBO + "HP_",
	"DOID":      OBO + "DOID_",
	"IAO":       OBO + "IAO_",
	"CHR":       OBO + "CHR_",
	"NCBITaxon": OBO + "NCBITaxon_",

	"WBPhenotype": OBO + "WBPhenotype_",
	"WormBase":    "https://www.wormbase.org/get?name=",
	"PMID":        "http://www.ncbi.nlm.nih.gov/pubmed/",
	"DOI":         "http://dx.doi.org/",
	"dbSNP":       "http://www.ncbi.nlm.nih.gov/projects/SNP/snp_ref.cgi?rs=",
	"OMIM":        "http://omim.org/entry/",
	"ENSEMBL":     "http://ensembl.org/id/",

	"oban": "http://purl.org/oban/",
	"foaf": "http://xmlns.com/foaf/0.1/",
	"owl":  "http://www.w3.org/2002/07/owl#",
}

// IRI expands a CURIE through the Prefixes table. Identifiers whose prefix
// is unknown (or that carry no prefix at all) come back unchanged.
func IRI(curie string) string {
	prefix, local, ok := strings.Cut(curie, ":")
	if !ok {
		return curie
	}
	ns, ok := Prefixes[prefix]
	if !ok {
		return curie
	}
	return ns + local
}

