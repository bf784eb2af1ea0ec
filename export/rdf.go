// Package export renders a completed graph as RDF. Named identifiers
// expand to IRIs through the prefix table; synthesized identifiers render
// as blank nodes. Associations export as a direct edge plus, when evidence
// or citations exist, an OBAN association node carrying them.
package export

import (
	"fmt"
	"strings"

	"github.com/c360studio/biograph/graph"
	"github.com/c360studio/biograph/identity"
	"github.com/c360studio/biograph/vocabulary/bio"
	"github.com/c360studio/biograph/vocabulary/obo"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "ntriples"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "jsonld"
)

// obanAssociation is the OBAN class for association reification nodes.
const obanAssociation = "http://purl.org/oban/association"

// assocSeed namespaces exported association node keys.
const assocSeed = "biograph"

// RDFExporter serializes collected entities and associations.
type RDFExporter struct {
	prefixes map[string]string
	entities []graph.Entity
	assocs   []graph.Association
}

// NewRDFExporter creates an exporter with the standard prefix table.
func NewRDFExporter() *RDFExporter {
	return &RDFExporter{prefixes: defaultPrefixes()}
}

// defaultPrefixes returns the namespace prefixes for RDF output: the
// serialization vocabularies, the ontology table, and the data-source
// registries the ontology table does not carry. Clinical subjects have no
// external registry, so their prefix expands under the entity namespace.
func defaultPrefixes() map[string]string {
	p := map[string]string{
		"rdf":      "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":     "http://www.w3.org/2000/01/rdf-schema#",
		"xsd":      "http://www.w3.org/2001/XMLSchema#",
		"dc":       "http://purl.org/dc/elements/1.1/",
		"faldo":    "http://biohackathon.org/resource/faldo#",
		"biograph": bio.Namespace,
		"entity":   bio.EntityNamespace,
		"HGNC":     "http://identifiers.org/hgnc/HGNC:",
		"UDP":      bio.EntityNamespace + "udp/",
	}
	for prefix, ns := range obo.Prefixes {
		p[prefix] = ns
	}
	return p
}

// SetPrefix adds or overrides a namespace prefix.
func (e *RDFExporter) SetPrefix(prefix, iri string) {
	e.prefixes[prefix] = iri
}

// AddGraph collects a memory sink's contents for export.
func (e *RDFExporter) AddGraph(m *graph.Memory) {
	e.entities = append(e.entities, m.Entities()...)
	e.assocs = append(e.assocs, m.Associations()...)
}

// AddEntity collects one entity.
func (e *RDFExporter) AddEntity(entity graph.Entity) {
	e.entities = append(e.entities, entity)
}

// AddAssociation collects one association.
func (e *RDFExporter) AddAssociation(a graph.Association) {
	e.assocs = append(e.assocs, a)
}

// Export serializes everything collected to the specified format.
func (e *RDFExporter) Export(format Format) (string, error) {
	switch format {
	case FormatTurtle:
		return e.toTurtle(), nil
	case FormatNTriples:
		return e.toNTriples(), nil
	case FormatJSONLD:
		return e.toJSONLD(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

type pair struct {
	predicate string
	object    string
}

// toTurtle serializes to Turtle format.
func (e *RDFExporter) toTurtle() string {
	w := NewTurtleWriter(e.prefixes)
	w.WritePrefixes()
	for _, entity := range e.entities {
		e.writeEntityTurtle(w, entity)
	}
	for _, a := range e.assocs {
		e.writeAssociationTurtle(w, a)
	}
	return w.String()
}

func (e *RDFExporter) writeEntityTurtle(w *TurtleWriter, entity graph.Entity) {
	pairs := e.entityPairs(entity)
	class := entity.ClassCURIE()
	if class == "" && len(pairs) == 0 {
		return
	}
	w.WriteSubject(e.nodeRef(entity.ID))
	if class != "" {
		w.WriteType(obo.IRI(class), len(pairs) == 0)
	}
	for i, p := range pairs {
		w.WritePredicate(p.predicate, p.object, i == len(pairs)-1)
	}
	w.WriteBlank()
}

func (e *RDFExporter) writeAssociationTurtle(w *TurtleWriter, a graph.Association) {
	subject := e.nodeRef(a.Subject)
	object := e.nodeRef(a.Object)

	w.WriteSubject(subject)
	w.WritePredicate(predicateIRI(a.Predicate), object, true)
	w.WriteBlank()

	pairs := e.associationPairs(a, subject, object)
	if pairs == nil {
		return
	}
	w.WriteSubject(e.nodeRef(graph.AssociationID(assocSeed, a)))
	w.WriteType(obanAssociation, false)
	for i, p := range pairs {
		w.WritePredicate(p.predicate, p.object, i == len(pairs)-1)
	}
	w.WriteBlank()
}

// toNTriples serializes to N-Triples format.
func (e *RDFExporter) toNTriples() string {
	w := NewNTriplesWriter()
	for _, entity := range e.entities {
		subject := e.nodeRef(entity.ID)
		if class := entity.ClassCURIE(); class != "" {
			w.WriteTypeTriple(subject, obo.IRI(class))
		}
		for _, p := range e.entityPairs(entity) {
			w.WriteTriple(subject, p.predicate, p.object)
		}
	}
	for _, a := range e.assocs {
		subject := e.nodeRef(a.Subject)
		object := e.nodeRef(a.Object)
		w.WriteTriple(subject, predicateIRI(a.Predicate), object)

		pairs := e.associationPairs(a, subject, object)
		if pairs == nil {
			continue
		}
		node := e.nodeRef(graph.AssociationID(assocSeed, a))
		w.WriteTypeTriple(node, obanAssociation)
		for _, p := range pairs {
			w.WriteTriple(node, p.predicate, p.object)
		}
	}
	return w.String()
}

// toJSONLD serializes to JSON-LD format. Each association contributes its
// own graph object; consumers merge objects by @id.
func (e *RDFExporter) toJSONLD() string {
	w := NewJSONLDWriter()
	w.SetContext(e.prefixes)

	for _, entity := range e.entities {
		props := make(map[string]any)
		if entity.Label != "" {
			props[bio.PredicateIRIMap[bio.EntityLabel]] = entity.Label
		}
		for _, attr := range entity.Attributes {
			addProperty(props, predicateIRI(attr.Predicate), attr.Value)
		}
		var types []string
		if class := entity.ClassCURIE(); class != "" {
			types = []string{obo.IRI(class)}
		}
		w.AddNode(e.jsonRef(entity.ID), types, props)
	}

	for _, a := range e.assocs {
		subject := e.jsonRef(a.Subject)
		object := e.jsonRef(a.Object)
		w.AddNode(subject, nil, map[string]any{
			predicateIRI(a.Predicate): nodeObject(object),
		})

		if a.EvidenceCode == "" && len(a.SourceRefs) == 0 {
			continue
		}
		props := map[string]any{
			bio.PredicateIRIMap[bio.AssociationSubject]:   nodeObject(subject),
			bio.PredicateIRIMap[bio.AssociationPredicate]: nodeObject(predicateIRI(a.Predicate)),
			bio.PredicateIRIMap[bio.AssociationObject]:    nodeObject(object),
		}
		if a.EvidenceCode != "" {
			props[bio.PredicateIRIMap[bio.AssociationEvidence]] = nodeObject(obo.IRI(a.EvidenceCode))
		}
		for _, ref := range a.SourceRefs {
			addProperty(props, bio.PredicateIRIMap[bio.AssociationSource], nodeObject(e.expand(ref)))
		}
		w.AddNode(e.jsonRef(graph.AssociationID(assocSeed, a)),
			[]string{obanAssociation}, props)
	}
	return w.String()
}

// entityPairs renders an entity's label and attributes as predicate-object
// pairs, objects pre-formatted for Turtle and N-Triples.
func (e *RDFExporter) entityPairs(entity graph.Entity) []pair {
	var pairs []pair
	if entity.Label != "" {
		pairs = append(pairs, pair{bio.PredicateIRIMap[bio.EntityLabel], literal(entity.Label)})
	}
	for _, attr := range entity.Attributes {
		pairs = append(pairs, pair{predicateIRI(attr.Predicate), literal(attr.Value)})
	}
	return pairs
}

// associationPairs renders the OBAN reification pairs, or nil when the
// association carries nothing beyond its direct edge.
func (e *RDFExporter) associationPairs(a graph.Association, subject, object string) []pair {
	if a.EvidenceCode == "" && len(a.SourceRefs) == 0 {
		return nil
	}
	pairs := []pair{
		{bio.PredicateIRIMap[bio.AssociationSubject], subject},
		{bio.PredicateIRIMap[bio.AssociationPredicate], "<" + predicateIRI(a.Predicate) + ">"},
		{bio.PredicateIRIMap[bio.AssociationObject], object},
	}
	if a.EvidenceCode != "" {
		pairs = append(pairs, pair{
			bio.PredicateIRIMap[bio.AssociationEvidence],
			"<" + obo.IRI(a.EvidenceCode) + ">",
		})
	}
	for _, ref := range a.SourceRefs {
		pairs = append(pairs, pair{
			bio.PredicateIRIMap[bio.AssociationSource],
			"<" + e.expand(ref) + ">",
		})
	}
	return pairs
}

// nodeRef renders an identifier as a Turtle/N-Triples node: blank-node
// label for synthesized identifiers, angle-bracketed IRI otherwise.
func (e *RDFExporter) nodeRef(id identity.Identifier) string {
	if id.Class == identity.Synthesized {
		return id.String()
	}
	return "<" + e.expand(id.Local) + ">"
}

// jsonRef renders an identifier as a JSON-LD @id value.
func (e *RDFExporter) jsonRef(id identity.Identifier) string {
	if id.Class == identity.Synthesized {
		return id.String()
	}
	return e.expand(id.Local)
}

// expand resolves a CURIE to a full IRI. Unprefixed or unknown-prefix
// identifiers fall back under the entity namespace.
func (e *RDFExporter) expand(curie string) string {
	prefix, local, ok := strings.Cut(curie, ":")
	if ok {
		if ns, found := e.prefixes[prefix]; found {
			return ns + local
		}
	}
	return bio.EntityNamespace + curie
}

// predicateIRI resolves a dotted predicate to its IRI.
func predicateIRI(predicate string) string {
	if iri, ok := bio.PredicateIRIMap[predicate]; ok {
		return iri
	}
	return bio.Namespace + predicate
}

// literal formats a string literal for Turtle and N-Triples output.
func literal(v string) string {
	return "\"" + escapeString(v) + "\""
}

// nodeObject wraps an IRI or blank-node label as a JSON-LD node reference.
func nodeObject(ref string) map[string]any {
	return map[string]any{"@id": ref}
}

// addProperty accumulates repeated predicates into arrays.
func addProperty(props map[string]any, key string, value any) {
	existing, ok := props[key]
	if !ok {
		props[key] = value
		return
	}
	if list, ok := existing.([]any); ok {
		props[key] = append(list, value)
		return
	}
	props[key] = []any{existing, value}
}

// escapeString escapes special characters in strings for RDF serialization.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
