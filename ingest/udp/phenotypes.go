package udp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/c360studio/biograph/graph"
	"github.com/c360studio/biograph/identity"
	"github.com/c360studio/biograph/ingest"
	"github.com/c360studio/biograph/vocabulary/bio"
	"github.com/c360studio/biograph/vocabulary/obo"
)

// parsePhenotypes reads the 3-column phenotype export: patient id, HPO
// term, and a yes/no presence flag. There is no header line. Every row
// asserts the patient is affected (the disease-root link); the specific
// term is asserted only for confirmed observations.
func (s *Source) parsePhenotypes(ctx context.Context, path string, run *ingest.Run) error {
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
			return fmt.Errorf("read phenotype row: %w", err)
		}
		line++
		run.RowRead()

		if len(row) < 3 {
			run.Logger.Warn("phenotype row has too few columns",
				"line", line, "columns", len(row))
			run.RowSkipped()
			continue
		}
		patient, term, presence := row[0], row[1], row[2]
		if patient == "" {
			run.Logger.Warn("phenotype row has no patient id", "line", line)
			run.RowSkipped()
			continue
		}

		person := personID(patient)
		if run.Catalog.FirstUse(person) {
			err := run.EmitEntity(ctx, graph.Entity{
				Kind:  bio.KindPerson,
				ID:    person,
				Label: patient,
			})
			if err != nil {
				return err
			}
		}
		err = run.EmitAssociation(ctx, graph.Association{
			Subject:   person,
			Predicate: bio.RelationHasPhenotype,
			Object:    identity.NewNamed(obo.DiseaseRoot),
		})
		if err != nil {
			return err
		}

		switch {
		case strings.EqualFold(presence, "yes"):
			if term == "" {
				run.Logger.Warn("phenotype row has no term", "line", line, "patient", patient)
				run.RowSkipped()
				continue
			}
			err = run.EmitAssociation(ctx, graph.Association{
				Subject:   person,
				Predicate: bio.RelationHasPhenotype,
				Object:    identity.NewNamed(term),
			})
			if err != nil {
				return err
			}
		case strings.EqualFold(presence, "no"):
			// Absent observation, nothing to assert.
		default:
			run.Logger.Warn("unrecognized presence flag",
				"line", line, "patient", patient, "presence", presence)
			run.RowSkipped()
		}
	}
}
