// Package normalize cleans raw source columns into canonical field values.
// Every function returns the empty string for a value it rejects — callers
// treat empty as "field absent" and fall back to line-scoped identity keys
// rather than erroring, so a messy column never aborts a row.
package normalize

import (
	"regexp"
	"strings"
)

var (
	chrPrefix   = regexp.MustCompile(`(?i)^CHR`)
	bareChrom   = regexp.MustCompile(`(?i)^([XY]|[1-9]{1,2})`)
	buildPrefix = regexp.MustCompile(`(?i)^HG`)
	rsAccession = regexp.MustCompile(`^(rs\d+)`)
)

// Chromosome canonicalizes a chromosome column to the lowercase-prefixed
// "chr<NAME>" form. Bare names (X, Y, 1–22) gain the prefix with the name
// uppercased. Alternate-assembly contigs (chrGL accessions) are rejected —
// their coordinates are not comparable across records.
func Chromosome(raw string) string {
	formatted := chrPrefix.ReplaceAllString(raw, "chr")
	if bareChrom.MatchString(raw) {
		formatted = "chr" + strings.ToUpper(raw)
	}
	if strings.Contains(formatted, "chrGL") {
		return ""
	}
	return formatted
}

// Build lowercases the human-genome build prefix (HG19 -> hg19).
func Build(raw string) string {
	return buildPrefix.ReplaceAllString(raw, "hg")
}

// Allele uppercases an allele column. Values carrying annotation text
// instead of bases — flank markers, transcript accessions, exon notes —
// are rejected.
func Allele(raw string) string {
	base := strings.ToUpper(raw)
	if strings.Contains(base, "LEFT FLANK") ||
		strings.Contains(base, "NM_") ||
		strings.Contains(base, "EXON") {
		return ""
	}
	return base
}

// RSID extracts a dbSNP accession from the head of the column, discarding
// trailing annotation. Anything not starting with a lowercase rs accession
// is rejected.
func RSID(raw string) string {
	m := rsAccession.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1]
}
