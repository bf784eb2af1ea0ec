package neo4jsink

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/biograph/graph"
	"github.com/c360studio/biograph/identity"
	"github.com/c360studio/biograph/vocabulary/bio"
)

func newBuffered() *Store {
	return &Store{
		entities: make(map[string]graph.Entity),
		dirty:    make(map[string]struct{}),
	}
}

func TestStore_EmitEntity_MergesBuffer(t *testing.T) {
	s := newBuffered()
	gene := identity.NewNamed("WormBase:WBGene00000001")

	require.NoError(t, s.EmitEntity(context.Background(), graph.Entity{
		Kind: bio.KindGene, ID: gene,
		Attributes: []graph.Attribute{{Predicate: bio.EntityDefinition, Value: "Encodes an adapter."}},
	}))
	require.NoError(t, s.EmitEntity(context.Background(), graph.Entity{
		Kind: bio.KindGene, ID: gene, Label: "aap-1",
	}))

	require.Len(t, s.order, 1)
	e := s.entities[gene.String()]
	assert.Equal(t, "aap-1", e.Label, "a later defining record fills the gap")
	assert.Len(t, e.Attributes, 1)
}

func TestStore_EmitAssociation_BuffersEdgeRecord(t *testing.T) {
	s := newBuffered()
	a := graph.Association{
		Subject:      identity.NewNamed("WormBase:WBGene00000898"),
		Predicate:    bio.RelationModelOf,
		Object:       identity.NewNamed("DOID:9352"),
		EvidenceCode: "ECO:0000501",
		SourceRefs:   []string{"WormBase:WBPaper00044287"},
	}
	require.NoError(t, s.EmitAssociation(context.Background(), a))

	require.Len(t, s.assocs, 1)
	rec := s.assocs[0]
	assert.Equal(t, "MODEL_OF", rec.relType)
	assert.Equal(t, "WormBase:WBGene00000898", rec.props["subject"])
	assert.Equal(t, "DOID:9352", rec.props["object"])
	assert.Equal(t, "ECO:0000501", rec.props["evidence"])
	assert.Equal(t, `["WormBase:WBPaper00044287"]`, rec.props["refs"])
	assert.Equal(t, graph.AssociationID("neo4j", a).String(), rec.props["key"],
		"repeated evidence for one edge shares a key")
}

func TestKindLabel(t *testing.T) {
	cases := map[string]string{
		"gene":                  "Gene",
		"variation_complement":  "VariationComplement",
		"reagent_targeted_gene": "ReagentTargetedGene",
		"":                      "Record",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kindLabel(kind), kind)
	}
}

func TestRelType(t *testing.T) {
	assert.Equal(t, "HAS_PHENOTYPE", relType(bio.RelationHasPhenotype))
	assert.Equal(t, "CAUSALLY_INFLUENCES", relType(bio.RelationCausallyInfluences))
	assert.Equal(t, "RELATED_TO", relType(""))
}
