package wormbase

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/biograph/graph"
	"github.com/c360studio/biograph/ingest"
	"github.com/c360studio/biograph/vocabulary/bio"
)

func writeTable(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// gafLine renders one 17-column association row with the shared layout of
// the phenotype and disease exports.
func gafLine(geneNum, symbol, qualifier, object, ref, eco, withFrom string) string {
	row := make([]string, associationColumns)
	row[0] = "WB"
	row[1] = geneNum
	row[2] = symbol
	row[3] = qualifier
	row[4] = object
	row[5] = ref
	row[6] = eco
	row[7] = withFrom
	return strings.Join(row, "\t")
}

func byPredicate(assocs []graph.Association, predicate string) []graph.Association {
	var out []graph.Association
	for _, a := range assocs {
		if a.Predicate == predicate {
			out = append(out, a)
		}
	}
	return out
}

func entitiesOfKind(entities []graph.Entity, kind bio.EntityKind) []graph.Entity {
	var out []graph.Entity
	for _, e := range entities {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func TestSource_Accepts(t *testing.T) {
	s := New()

	accepted := []string{
		"c_elegans.PRJNA13758.geneIDs.txt.gz",
		"c_elegans.PRJNA13758.functional_descriptions.txt.gz",
		"phenotype_association.WS249.wb",
		"rnai_phenotypes.wb",
		"pub_xrefs.txt",
		"c_elegans.PRJNA13758.annotations.gff3.gz",
		"disease_association.WS249.wb",
	}
	for _, name := range accepted {
		assert.True(t, s.Accepts(name), name)
	}

	rejected := []string{
		"patient_variants.tsv",
		"c_elegans.PRJNA13758.xrefs.txt.gz",
		"orthologs.txt.gz",
	}
	for _, name := range rejected {
		assert.False(t, s.Accepts(name), name)
	}
}

func TestSource_Parse_UnknownTable(t *testing.T) {
	path := writeTable(t, "orthologs.txt", "a\tb")
	run := ingest.NewRun(SourceName, graph.NewMemory())

	err := New().Parse(context.Background(), path, run)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "matches no table")
}
