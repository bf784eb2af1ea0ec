package normalize

import (
	"regexp"
	"strings"
)

// XrefClass classifies a publication cross-reference token.
type XrefClass int

const (
	// XrefPubMed tokens normalize to a PMID CURIE citing a journal article.
	XrefPubMed XrefClass = iota
	// XrefDOI tokens normalize to a DOI CURIE.
	XrefDOI
	// XrefAmbiguous tokens contain brackets or whitespace — free text, not
	// a clean identifier. Skipped.
	XrefAmbiguous
	// XrefCommunity tokens reference a community forum with no canonical
	// form. Skipped.
	XrefCommunity
	// XrefUnknown tokens match no recognized identifier pattern. Skipped
	// with a note.
	XrefUnknown
)

var (
	pmidPrefix = regexp.MustCompile(`pmid\s*`)
	freeText   = regexp.MustCompile(`[\(\)\<\>\[\]\s]`)
)

// PublicationXref normalizes one cross-reference token. Embedded markup is
// stripped first; the pmid check runs before the free-text rejection so a
// spaced "pmid 123" still resolves. The returned id is empty for every
// class except XrefPubMed and XrefDOI.
func PublicationXref(token string) (string, XrefClass) {
	token = strings.ReplaceAll(token, "<BR>", "")
	token = strings.TrimSpace(token)
	switch {
	case strings.HasPrefix(token, "pmid"):
		return "PMID:" + pmidPrefix.ReplaceAllString(token, ""), XrefPubMed
	case freeText.MatchString(token):
		return "", XrefAmbiguous
	case strings.HasPrefix(token, "doi"):
		return "DOI:" + strings.ReplaceAll(token, "doi", ""), XrefDOI
	case strings.HasPrefix(token, "cgc"):
		return "", XrefCommunity
	}
	return "", XrefUnknown
}
