// Package bio provides the graph vocabulary for biological entity and
// association records.
//
// This package follows semstreams vocabulary patterns:
//   - Predicates use dotted notation (bio.category.property) so NATS
//     wildcard queries stay cheap
//   - Predicates are registered in init() using vocabulary.Register()
//   - IRI mappings use vocabulary.WithIRI() for RDF export compatibility
//
// Three predicate families exist:
//   - bio.entity.*: attributes every entity record can carry (label,
//     class, definition, synonyms, deprecation)
//   - bio.variant.* / bio.location.*: positional and allelic fields of
//     sequence alterations and located features
//   - bio.relation.*: typed edges between entities; each maps to a GENO or
//     RO object property through PredicateIRIMap
//   - bio.association.*: the reified association record (subject,
//     predicate, object, evidence, sources), aligned with the OBAN
//     association model
//
// Entity kinds map to default ontology classes through ClassMap; rows that
// resolve a more specific class (gene biotypes, feature types) override the
// default per record.
package bio
