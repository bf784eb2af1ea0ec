package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/biograph/identity"
	"github.com/c360studio/biograph/vocabulary/bio"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
)

// Subject for graph ingestion.
const GraphIngestSubject = "graph.ingest.entity"

// EntityIngestMessage is the message format for graph ingestion. Matches
// the format used by the platform's graph components.
type EntityIngestMessage struct {
	ID        string           `json:"id"`
	Triples   []message.Triple `json:"triples"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Publisher emits entities and associations to the platform graph ingest
// stream, one payload per emission. The source tag names the emitting
// pipeline and lands on every triple for provenance.
type Publisher struct {
	nc     *natsclient.Client
	source string
}

// NewPublisher returns a stream-backed emitter.
func NewPublisher(nc *natsclient.Client, source string) *Publisher {
	return &Publisher{nc: nc, source: source}
}

// EmitEntity publishes one entity with its triples.
func (p *Publisher) EmitEntity(ctx context.Context, e Entity) error {
	if p.nc == nil {
		return nil // skip publishing if no NATS client (graceful degradation)
	}

	now := time.Now()
	msg := EntityIngestMessage{
		ID:        e.ID.String(),
		Triples:   EntityTriples(e, p.source, now),
		UpdatedAt: now,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal entity %s: %w", e.ID, err)
	}
	if err := p.nc.PublishToStream(ctx, GraphIngestSubject, data); err != nil {
		return fmt.Errorf("publish entity %s: %w", e.ID, err)
	}
	return nil
}

// EmitAssociation publishes the association's direct edge together with
// its reification node. Repeated evidence for one (subject, predicate,
// object) lands on the same reification node, accumulating citations.
func (p *Publisher) EmitAssociation(ctx context.Context, a Association) error {
	if p.nc == nil {
		return nil
	}

	now := time.Now()
	assocID := AssociationID(p.source, a)
	msg := EntityIngestMessage{
		ID:        assocID.String(),
		Triples:   AssociationTriples(a, p.source, now),
		UpdatedAt: now,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal association %s: %w", assocID, err)
	}
	if err := p.nc.PublishToStream(ctx, GraphIngestSubject, data); err != nil {
		return fmt.Errorf("publish association %s: %w", assocID, err)
	}
	return nil
}

// EntityTriples renders an entity as graph triples: label, ontology class,
// then literal attributes in declaration order.
func EntityTriples(e Entity, source string, at time.Time) []message.Triple {
	id := e.ID.String()
	triples := make([]message.Triple, 0, len(e.Attributes)+2)
	if e.Label != "" {
		triples = append(triples, literal(id, bio.EntityLabel, e.Label, source, at))
	}
	if class := e.ClassCURIE(); class != "" {
		triples = append(triples, literal(id, bio.EntityClass, class, source, at))
	}
	for _, attr := range e.Attributes {
		triples = append(triples, literal(id, attr.Predicate, attr.Value, source, at))
	}
	return triples
}

// AssociationTriples renders an association as its direct edge plus the
// reification node carrying evidence and citations.
func AssociationTriples(a Association, source string, at time.Time) []message.Triple {
	assocID := AssociationID(source, a).String()
	sub := a.Subject.String()
	obj := a.Object.String()

	triples := []message.Triple{
		literal(sub, a.Predicate, obj, source, at),
		literal(assocID, bio.AssociationSubject, sub, source, at),
		literal(assocID, bio.AssociationPredicate, a.Predicate, source, at),
		literal(assocID, bio.AssociationObject, obj, source, at),
	}
	if a.EvidenceCode != "" {
		triples = append(triples, literal(assocID, bio.AssociationEvidence, a.EvidenceCode, source, at))
	}
	for _, ref := range a.SourceRefs {
		triples = append(triples, literal(assocID, bio.AssociationSource, ref, source, at))
	}
	return triples
}

// AssociationID derives the deterministic reification node for an
// association. The seed excludes evidence and citations so repeated
// observations of one edge merge their provenance.
func AssociationID(source string, a Association) identity.Identifier {
	seed := strings.Join([]string{
		source,
		a.Subject.String(),
		a.Predicate,
		a.Object.String(),
	}, "|")
	return identity.NewSynthesized(identity.Digest(seed))
}

func literal(subject, predicate string, object any, source string, at time.Time) message.Triple {
	return message.Triple{
		Subject:    subject,
		Predicate:  predicate,
		Object:     object,
		Source:     source,
		Timestamp:  at,
		Confidence: 1.0,
	}
}
