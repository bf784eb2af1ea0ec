// Package graph defines the emission contract between the ingest pipeline
// and its sinks: entities and associations flow through an Emitter, which
// may collect them in memory, write them to an embedded store, or publish
// them to the platform graph stream.
package graph

import (
	"context"

	"github.com/c360studio/biograph/identity"
	"github.com/c360studio/biograph/vocabulary/bio"
)

// Attribute is one literal-valued property of an entity, keyed by a dotted
// predicate from vocabulary/bio.
type Attribute struct {
	Predicate string
	Value     string
}

// Entity is one node of the association graph.
type Entity struct {
	Kind  bio.EntityKind
	ID    identity.Identifier
	Label string

	// Class is the ontology class CURIE. Empty falls back to the kind's
	// default from bio.ClassMap at serialization time.
	Class string

	Attributes []Attribute
}

// ClassCURIE returns the entity's ontology class, falling back to the kind
// default.
func (e Entity) ClassCURIE() string {
	if e.Class != "" {
		return e.Class
	}
	return bio.ClassMap[e.Kind]
}

// Association is one edge of the graph: subject, relation predicate,
// object, plus optional evidence and citations. Associations are
// write-once — the pipeline emits one per qualifying source row and never
// mutates or deduplicates them.
type Association struct {
	Subject      identity.Identifier
	Predicate    string
	Object       identity.Identifier
	EvidenceCode string
	SourceRefs   []string
}

// Emitter receives pipeline output. Implementations must tolerate repeated
// EmitEntity calls for the same id (the pipeline emits each entity once per
// run, but re-runs and multi-file runs may repeat ids); associations are
// accepted in arrival order. I/O failures are returned to the caller — a
// broken sink aborts the run, unlike row-level data anomalies which never
// reach here.
type Emitter interface {
	EmitEntity(ctx context.Context, e Entity) error
	EmitAssociation(ctx context.Context, a Association) error
}
