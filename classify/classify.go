// Package classify untangles association rows whose evidence columns are
// unreliable: the reference column sometimes holds the variation or reagent
// under study and the with/from column sometimes holds the citation. A
// fixed shape table classifies column values; ResolveEvidenceSlots applies
// the reassignment rules.
package classify

import "regexp"

// Shape tags the identifier pattern a column value matches.
type Shape int

const (
	// ShapeUnknown covers values matching no recognized pattern.
	ShapeUnknown Shape = iota
	// ShapeReagent marks interference-reagent identifiers.
	ShapeReagent
	// ShapeVariation marks variation identifiers.
	ShapeVariation
	// ShapePerson marks curator or communicator identifiers.
	ShapePerson
	// ShapePublication marks citation identifiers.
	ShapePublication
)

// shapeRule pairs an identifier pattern with its classification. Rules are
// evaluated in order; first match wins.
type shapeRule struct {
	pattern *regexp.Regexp
	shape   Shape
}

var shapeRules = []shapeRule{
	{regexp.MustCompile(`WBRNAi`), ShapeReagent},
	{regexp.MustCompile(`WBVar`), ShapeVariation},
	{regexp.MustCompile(`^WBPerson`), ShapePerson},
	{regexp.MustCompile(`^(PMID:|WB_REF:|WB:WBPaper|WBPaper)`), ShapePublication},
}

// Match classifies a column value by the first shape rule it satisfies.
func Match(value string) Shape {
	for _, rule := range shapeRules {
		if rule.pattern.MatchString(value) {
			return rule.shape
		}
	}
	return ShapeUnknown
}

// Resolution holds the evidence slots after untangling. Displaced lists
// original values that were overwritten without relocating, so callers can
// count and report them.
type Resolution struct {
	Reference string
	WithFrom  string
	Displaced []string
}

// ResolveEvidenceSlots reassigns the reference and with/from columns of one
// association row. Both columns are classified against their original
// values, then the moves apply together: a variation- or reagent-shaped
// reference is the true evidence target and takes the with/from slot; a
// person- or publication-shaped with/from value is the true citation and
// takes the reference slot. A slot whose value moves away and receives no
// replacement is left empty — the moved value is never duplicated into
// both slots.
func ResolveEvidenceSlots(reference, withFrom string) Resolution {
	refShape := Match(reference)
	withShape := Match(withFrom)
	refMoves := refShape == ShapeVariation || refShape == ShapeReagent
	withMoves := withShape == ShapePerson || withShape == ShapePublication

	res := Resolution{Reference: reference, WithFrom: withFrom}
	if refMoves {
		res.WithFrom = reference
		res.Reference = ""
		if !withMoves && withFrom != "" {
			res.Displaced = append(res.Displaced, withFrom)
		}
	}
	if withMoves {
		res.Reference = withFrom
		if !refMoves {
			res.WithFrom = ""
			if reference != "" {
				res.Displaced = append(res.Displaced, reference)
			}
		}
	}
	return res
}
