package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/biograph/graph"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPipelineRun(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "patient_variants.tsv", "data\n")
	a := writeFile(t, dir, "rnai_phenotypes.tsv", "data\n")

	worm := &stubSource{name: "wormbase", stem: "rnai_phenotypes"}
	udp := &stubSource{name: "udp", stem: "patient_variants"}
	mem := graph.NewMemory()

	p, err := New(Config{
		Registry: NewRegistry(worm, udp),
		Emitter:  mem,
	})
	require.NoError(t, err)

	// Deliberately unsorted input: the run must order it.
	result, err := p.Run(context.Background(), []string{b, a})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, "udp", result.Files[0].Source)
	assert.Equal(t, "wormbase", result.Files[1].Source)
	assert.Len(t, result.Files[0].SHA256, 64)
	assert.Equal(t, 1, result.Files[0].Rows)

	assert.Equal(t, 2, result.RowsRead)
	assert.Equal(t, 2, result.Entities)
	assert.Equal(t, 2, result.Associations)

	// Both stub parses emitted the same gene id; the memory sink holds one.
	assert.Len(t, mem.Entities(), 1)
	assert.Len(t, mem.Associations(), 2)
}

func TestPipelineRun_UnroutableFileFails(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "unrelated.tsv", "data\n")

	p, err := New(Config{
		Registry: NewRegistry(&stubSource{name: "udp", stem: "patient_variants"}),
		Emitter:  graph.NewMemory(),
	})
	require.NoError(t, err)

	_, err = p.Run(context.Background(), []string{path})
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestPipelineNew_RequiresWiring(t *testing.T) {
	_, err := New(Config{Emitter: graph.NewMemory()})
	assert.Error(t, err)

	_, err = New(Config{Registry: NewRegistry()})
	assert.Error(t, err)
}
