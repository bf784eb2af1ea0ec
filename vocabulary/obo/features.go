package obo

// FeatureTypeClasses maps GFF3 feature-type labels to SO classes. Only
// types in this table (plus "gene", which resolves through the biotype
// table) are of interest to the pipeline.
var FeatureTypeClasses = map[string]string{
	"point_mutation":       "SO:1000008",
	"deletion":             "SO:0000159",
	"RNAi_reagent":         "SO:0000337",
	"duplication":          "SO:1000035",
	"enhancer":             "SO:0000165",
	"binding_site":         "SO:0000409",
	"biological_region":    "SO:0001411",
	"complex_substitution": "SO:1000005",
}

// GeneBiotypeClasses maps gene biotype labels to SO gene classes.
var GeneBiotypeClasses = map[string]string{
	"lincRNA":  "SO:0001641",
	"miRNA":    "SO:0001265",
	"ncRNA":    "SO:0001263",
	"piRNA":    "SO:0001638",
	"rRNA":     "SO:0001637",
	"scRNA":    "SO:0001266",
	"snRNA":    "SO:0001268",
	"snoRNA":   "SO:0001267",
	"tRNA":     "SO:0001272",
	"asRNA":    "SO:0001263", // no dedicated antisense gene class, use ncRNA gene
	"pseudogene":                "SO:0000336",
	"protein_coding":            "SO:0001217",
	"transposon_protein_coding": "SO:0000111",
	"transposon_pseudogene":     "SO:0001897",
}

// FeatureClass resolves the SO class for a feature-location row. Gene rows
// resolve through the biotype table, everything else through the
// feature-type table. The empty string means the label is unmapped; the
// caller decides whether that is worth a warning.
func FeatureClass(featureType, biotype string) string {
	if featureType == "gene" {
		return GeneBiotypeClasses[biotype]
	}
	return FeatureTypeClasses[featureType]
}
