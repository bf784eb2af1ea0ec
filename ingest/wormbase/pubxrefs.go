package wormbase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/c360studio/biograph/graph"
	"github.com/c360studio/biograph/identity"
	"github.com/c360studio/biograph/ingest"
	"github.com/c360studio/biograph/normalize"
	"github.com/c360studio/biograph/vocabulary/bio"
	"github.com/c360studio/biograph/vocabulary/obo"
)

// parsePubXrefs reads the article cross-reference table: 0 article number,
// 1 raw xref token. Tokens that normalize to a PubMed or DOI identifier
// become a same-as link from the article; everything else is unusable.
func (s *Source) parsePubXrefs(ctx context.Context, path string, run *ingest.Run) error {
	t, err := ingest.OpenTable(path, '\t', 0)
	if err != nil {
		return err
	}
	defer t.Close()

	line := 0
	for {
		row, err := t.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read publication xref row: %w", err)
		}
		line++
		run.RowRead()

		if len(row) < 2 {
			run.Logger.Warn("publication xref row has too few columns",
				"line", line, "columns", len(row))
			run.RowSkipped()
			continue
		}
		articleNum, token := row[0], row[1]
		if articleNum == "" {
			run.Logger.Warn("publication xref row has no article id", "line", line)
			run.RowSkipped()
			continue
		}

		xref, class := normalize.PublicationXref(token)
		var publication graph.Entity
		switch class {
		case normalize.XrefPubMed:
			publication = graph.Entity{
				Kind: bio.KindPublication,
				ID:   identity.NewNamed(xref),
			}
		case normalize.XrefDOI:
			// No article type is known for a bare DOI.
			publication = graph.Entity{
				Kind:  bio.KindPublication,
				ID:    identity.NewNamed(xref),
				Class: obo.Publication,
			}
		case normalize.XrefAmbiguous, normalize.XrefCommunity:
			run.RowSkipped()
			continue
		default:
			run.Logger.Warn("unrecognized publication xref",
				"line", line, "xref", token)
			run.RowSkipped()
			continue
		}

		if run.Catalog.FirstUse(publication.ID) {
			if err := run.EmitEntity(ctx, publication); err != nil {
				return err
			}
		}
		article := wormbaseID(articleNum)
		if run.Catalog.FirstUse(article) {
			err := run.EmitEntity(ctx, graph.Entity{
				Kind:  bio.KindPublication,
				ID:    article,
				Class: obo.Publication,
			})
			if err != nil {
				return err
			}
		}
		err = run.EmitAssociation(ctx, graph.Association{
			Subject:   article,
			Predicate: bio.RelationSameAs,
			Object:    publication.ID,
		})
		if err != nil {
			return err
		}
	}
}
