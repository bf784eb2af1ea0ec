package obo

// EvidenceCodes maps the evidence symbols found in association exports to
// ECO codes. Symbols outside this table are reported as a warning by the
// association builder and the association proceeds without evidence.
var EvidenceCodes = map[string]string{
	"IMP": EvidenceMutantPhenotype,
	"IEA": EvidenceElectronicAnnotation,
}

// EvidenceCode resolves an evidence symbol. The empty string means the
// symbol is not in the table (or was itself empty).
func EvidenceCode(symbol string) string {
	return EvidenceCodes[symbol]
}
