package graph

import (
	"context"

	"github.com/c360studio/biograph/identity"
)

// Memory collects emissions in arrival order. It backs tests, offline
// runs, and the RDF exporter. Repeated emissions of one entity id merge:
// the first writer keeps its position and any populated field, later
// writers fill gaps and contribute new attributes. Associations append
// without deduplication.
type Memory struct {
	entities []Entity
	index    map[string]int
	assocs   []Association
}

// NewMemory returns an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{index: make(map[string]int)}
}

// EmitEntity records the entity, merging into the earlier record when the
// id was already seen.
func (m *Memory) EmitEntity(_ context.Context, e Entity) error {
	key := e.ID.String()
	if i, ok := m.index[key]; ok {
		m.entities[i] = MergeEntity(m.entities[i], e)
		return nil
	}
	m.index[key] = len(m.entities)
	m.entities = append(m.entities, e)
	return nil
}

// MergeEntity combines two emissions of one entity id: the earlier record
// keeps every populated field, the later one fills gaps and contributes
// attributes not already present. Sinks that deduplicate by id share this
// rule so a referencing file and a defining file can land in either order.
func MergeEntity(into, from Entity) Entity {
	if into.Label == "" {
		into.Label = from.Label
	}
	if into.Class == "" {
		into.Class = from.Class
	}
	have := make(map[Attribute]struct{}, len(into.Attributes))
	for _, a := range into.Attributes {
		have[a] = struct{}{}
	}
	for _, a := range from.Attributes {
		if _, ok := have[a]; ok {
			continue
		}
		have[a] = struct{}{}
		into.Attributes = append(into.Attributes, a)
	}
	return into
}

// EmitAssociation appends the association.
func (m *Memory) EmitAssociation(_ context.Context, a Association) error {
	m.assocs = append(m.assocs, a)
	return nil
}

// Entities returns the collected entities in first-emission order.
func (m *Memory) Entities() []Entity {
	return m.entities
}

// Associations returns the collected associations in emission order.
func (m *Memory) Associations() []Association {
	return m.assocs
}

// Entity looks up a collected entity by identifier.
func (m *Memory) Entity(id identity.Identifier) (Entity, bool) {
	i, ok := m.index[id.String()]
	if !ok {
		return Entity{}, false
	}
	return m.entities[i], true
}
