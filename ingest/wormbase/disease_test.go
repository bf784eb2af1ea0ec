package wormbase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/biograph/graph"
	"github.com/c360studio/biograph/identity"
	"github.com/c360studio/biograph/ingest"
	"github.com/c360studio/biograph/vocabulary/bio"
)

func TestSource_ParseDiseaseAssociations_GeneModelsDisease(t *testing.T) {
	mem := graph.NewMemory()
	run := ingest.NewRun(SourceName, mem)

	path := writeTable(t, "disease_association.WS249.wb",
		"!gaf-version: 2.0",
		gafLine("WBGene00000898", "daf-2", "", "DOID:9352", "WB_REF:WBPaper00044287", "IEA", ""),
	)
	require.NoError(t, New().Parse(context.Background(), path, run))

	gene, ok := mem.Entity(identity.NewNamed("WormBase:WBGene00000898"))
	require.True(t, ok)
	assert.Equal(t, bio.KindGene, gene.Kind)
	assert.Equal(t, "daf-2", gene.Label)

	assocs := byPredicate(mem.Associations(), bio.RelationModelOf)
	require.Len(t, assocs, 1)
	assert.Equal(t, gene.ID, assocs[0].Subject)
	assert.Equal(t, identity.NewNamed("DOID:9352"), assocs[0].Object)
	assert.Equal(t, "ECO:0000501", assocs[0].EvidenceCode)
	assert.Equal(t, []string{"WormBase:WBPaper00044287"}, assocs[0].SourceRefs)
}

func TestSource_ParseDiseaseAssociations_RowFiltersAndAnomalies(t *testing.T) {
	mem := graph.NewMemory()
	run := ingest.NewRun(SourceName, mem)

	path := writeTable(t, "disease_association.WS249.wb",
		gafLine("WBGene00000898", "daf-2", "NOT", "DOID:9352", "", "IEA", ""),
		gafLine("", "daf-2", "", "DOID:9352", "", "IEA", ""),
		gafLine("WBGene00000898", "daf-2", "", "", "", "IEA", ""),
		gafLine("WBGene00000912", "daf-16", "", "DOID:9352", "", "XYZ", ""),
		"truncated\trow",
	)
	require.NoError(t, New().Parse(context.Background(), path, run))

	assocs := byPredicate(mem.Associations(), bio.RelationModelOf)
	require.Len(t, assocs, 1, "only the daf-16 row survives the filters")
	assert.Empty(t, assocs[0].EvidenceCode, "an unrecognized symbol maps to no code")
	assert.Empty(t, assocs[0].SourceRefs)

	counts := run.Recorder.(*ingest.Counts)
	assert.Equal(t, 5, counts.Rows)
	assert.Equal(t, 3, counts.Skipped, "negated annotations are filtered, not anomalous")
}

func TestSource_ParseDiseaseAssociations_GeneEmittedOnce(t *testing.T) {
	mem := graph.NewMemory()
	run := ingest.NewRun(SourceName, mem)

	path := writeTable(t, "disease_association.WS249.wb",
		gafLine("WBGene00000898", "daf-2", "", "DOID:9352", "", "IEA", ""),
		gafLine("WBGene00000898", "daf-2", "", "DOID:10652", "", "IEA", ""),
	)
	require.NoError(t, New().Parse(context.Background(), path, run))

	assert.Len(t, entitiesOfKind(mem.Entities(), bio.KindGene), 1)
	assert.Len(t, byPredicate(mem.Associations(), bio.RelationModelOf), 2)
}
