package sqlitesink

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/biograph/graph"
	"github.com/c360studio/biograph/identity"
	"github.com/c360studio/biograph/vocabulary/bio"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "graph.db"))
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	gene := identity.NewNamed("WormBase:WBGene00000001")
	variant := identity.NewSynthesized("b0123456789abcdef0")

	require.NoError(t, store.EmitEntity(ctx, graph.Entity{
		Kind:  bio.KindGene,
		ID:    gene,
		Label: "aap-1",
		Attributes: []graph.Attribute{
			{Predicate: bio.EntitySynonym, Value: "Y110A7A.10"},
		},
	}))
	require.NoError(t, store.EmitEntity(ctx, graph.Entity{
		Kind: bio.KindGene,
		ID:   gene,
		Attributes: []graph.Attribute{
			{Predicate: bio.EntityDefinition, Value: "Encodes an adapter subunit."},
		},
	}))
	require.NoError(t, store.EmitEntity(ctx, graph.Entity{
		Kind: bio.KindVariant,
		ID:   variant,
	}))

	require.NoError(t, store.EmitAssociation(ctx, graph.Association{
		Subject:      gene,
		Predicate:    bio.RelationModelOf,
		Object:       identity.NewNamed("DOID:9352"),
		EvidenceCode: "ECO:0000501",
		SourceRefs:   []string{"WormBase:WBPaper00044287"},
	}))
	require.NoError(t, store.EmitAssociation(ctx, graph.Association{
		Subject:   variant,
		Predicate: bio.RelationHasAffectedLocus,
		Object:    gene,
	}))

	entities, err := store.Entities(ctx)
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, gene, entities[0].ID)
	assert.Equal(t, "aap-1", entities[0].Label)
	assert.Equal(t, []graph.Attribute{
		{Predicate: bio.EntitySynonym, Value: "Y110A7A.10"},
		{Predicate: bio.EntityDefinition, Value: "Encodes an adapter subunit."},
	}, entities[0].Attributes, "the repeat emission merges, not duplicates")
	assert.Equal(t, variant, entities[1].ID, "synthesized ids survive the round trip")
	assert.Equal(t, "SO:0001059", entities[1].ClassCURIE())

	assocs, err := store.Associations(ctx)
	require.NoError(t, err)
	require.Len(t, assocs, 2)
	assert.Equal(t, "ECO:0000501", assocs[0].EvidenceCode)
	assert.Equal(t, []string{"WormBase:WBPaper00044287"}, assocs[0].SourceRefs)
	assert.Empty(t, assocs[1].SourceRefs)
	assert.Equal(t, variant, assocs[1].Subject)
}

func TestStore_ReopenKeepsState(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "graph.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.EmitEntity(ctx, graph.Entity{
		Kind:  bio.KindGene,
		ID:    identity.NewNamed("WormBase:WBGene00000898"),
		Label: "daf-2",
	}))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, store.Close()) }()

	entities, err := store.Entities(ctx)
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "daf-2", entities[0].Label)

	require.NoError(t, store.EmitEntity(ctx, graph.Entity{
		Kind:  bio.KindGene,
		ID:    identity.NewNamed("WormBase:WBGene00000898"),
		Class: "SO:0001217",
	}))
	entities, err = store.Entities(ctx)
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "SO:0001217", entities[0].Class, "merging reaches records from earlier sessions")
}
