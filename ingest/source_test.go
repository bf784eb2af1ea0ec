package ingest

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/biograph/graph"
	"github.com/c360studio/biograph/identity"
	"github.com/c360studio/biograph/vocabulary/bio"
)

type stubSource struct {
	name   string
	stem   string
	parsed []string
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Accepts(filename string) bool {
	return strings.HasPrefix(filename, s.stem)
}

func (s *stubSource) Parse(ctx context.Context, path string, run *Run) error {
	s.parsed = append(s.parsed, filepath.Base(path))
	run.RowRead()
	if err := run.EmitEntity(ctx, graph.Entity{
		Kind: bio.KindGene,
		ID:   identity.NewNamed("WormBase:WBGene00001908"),
	}); err != nil {
		return err
	}
	return run.EmitAssociation(ctx, graph.Association{
		Subject:   identity.NewNamed("WormBase:WBGene00001908"),
		Predicate: bio.RelationModelOf,
		Object:    identity.NewNamed("OMIM:132800"),
	})
}

func TestRegistryRouting(t *testing.T) {
	worm := &stubSource{name: "wormbase", stem: "rnai_phenotypes"}
	udp := &stubSource{name: "udp", stem: "patient_variants"}
	reg := NewRegistry(worm, udp)

	src, ok := reg.ForFile("/data/drop/rnai_phenotypes.WS249.tsv")
	require.True(t, ok)
	assert.Equal(t, "wormbase", src.Name())

	src, ok = reg.Named("udp")
	require.True(t, ok)
	assert.Equal(t, "udp", src.Name())

	_, ok = reg.ForFile("/data/drop/unrelated.tsv")
	assert.False(t, ok)

	assert.Equal(t, []string{"wormbase", "udp"}, reg.Names())
}

func TestRunCounting(t *testing.T) {
	mem := graph.NewMemory()
	run := NewRun("wormbase", mem)
	ctx := context.Background()

	src := &stubSource{name: "wormbase", stem: "x"}
	require.NoError(t, src.Parse(ctx, "/data/x.tsv", run))

	counts := run.Recorder.(*Counts)
	assert.Equal(t, 1, counts.Rows)
	assert.Equal(t, 1, counts.Entities)
	assert.Equal(t, 1, counts.Associations)
	assert.Len(t, mem.Entities(), 1)
}

func TestExtensionlessBase(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"rnai_phenotypes.WS249.tsv.gz", "rnai_phenotypes"},
		{"pub_xrefs.txt", "pub_xrefs"},
		{"c_elegans.PRJNA13758.WS249.annotations.gff3.gz", "c_elegans"},
		{"patient_variants.tsv", "patient_variants"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtensionlessBase(tt.filename))
		})
	}
}
