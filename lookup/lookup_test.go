package lookup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadGeneMap(t *testing.T) {
	path := writeTable(t, "gene_map.tsv",
		"CFTR\tHGNC:1884\nSHH\tHGNC:10848\nmalformed-row\n")

	m, err := LoadGeneMap(path)
	require.NoError(t, err)

	assert.Equal(t, "HGNC:1884", m["CFTR"])
	assert.Equal(t, "HGNC:10848", m["SHH"])
	assert.Len(t, m, 2, "short rows are dropped")
}

func TestLoadGeneMap_MissingFile(t *testing.T) {
	m, err := LoadGeneMap(filepath.Join(t.TempDir(), "absent.tsv"))
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestLoadCoordinates(t *testing.T) {
	path := writeTable(t, "gene_coords.tsv",
		"HGNC:1884\t117120016\t117308718\t+\thg19\n"+
			"HGNC:10848\tstart\tend\t-\thg19\n")

	m, err := LoadCoordinates(path)
	require.NoError(t, err)
	require.Len(t, m, 1, "non-numeric positions are dropped")

	span := m["HGNC:1884"]
	assert.Equal(t, int64(117120016), span.Start)
	assert.Equal(t, int64(117308718), span.End)
	assert.Equal(t, "+", span.Strand)
	assert.Equal(t, "hg19", span.Build)
}

func TestSpanContains(t *testing.T) {
	span := Span{Start: 100, End: 200}

	assert.True(t, span.Contains(100))
	assert.True(t, span.Contains(150))
	assert.True(t, span.Contains(200))
	assert.False(t, span.Contains(99))
	assert.False(t, span.Contains(201))
}
