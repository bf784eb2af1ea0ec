package bio

// Namespace is the base IRI prefix for biograph ontology terms that have no
// standard-ontology equivalent.
const Namespace = "https://biograph.dev/ontology/"

// EntityNamespace is the base IRI for biograph entity instances that carry
// no stable external identifier (subjects, synthesized entities).
const EntityNamespace = "https://biograph.dev/entity/"

// Classes outside the OBO ontologies.
const (
	// ClassPerson is the class for patient/subject entities.
	ClassPerson = "foaf:Person"
)
