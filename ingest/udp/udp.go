// Package udp ingests the clinical exome exports of an undiagnosed-disease
// program: a table of per-patient variant calls and a table of phenotype
// observations. Patients become person entities carrying an intrinsic
// genotype; variant calls become synthesized sequence alterations attached
// to that genotype, with gene links resolved through the static lookup
// tables when they are loaded.
package udp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/c360studio/biograph/identity"
	"github.com/c360studio/biograph/ingest"
)

// SourceName labels this source in logs, metrics, and run manifests.
const SourceName = "udp"

// Accepted table stems.
const (
	variantsTable   = "patient_variants"
	phenotypesTable = "patient_phenotypes"
)

// Source parses the program's export tables.
type Source struct{}

// New returns the udp source.
func New() *Source { return &Source{} }

// Name implements ingest.Source.
func (s *Source) Name() string { return SourceName }

// Accepts implements ingest.Source.
func (s *Source) Accepts(filename string) bool {
	switch ingest.ExtensionlessBase(filename) {
	case variantsTable, phenotypesTable:
		return true
	}
	return false
}

// Parse implements ingest.Source, routing the file to its table reader by
// stem.
func (s *Source) Parse(ctx context.Context, path string, run *ingest.Run) error {
	switch ingest.ExtensionlessBase(path) {
	case variantsTable:
		return s.parseVariants(ctx, path, run)
	case phenotypesTable:
		return s.parsePhenotypes(ctx, path, run)
	}
	return fmt.Errorf("udp: file %q matches no table", filepath.Base(path))
}

// personID is the named identifier of a patient. Patient ids are bare
// program-local strings, so they live under the UDP prefix.
func personID(patient string) identity.Identifier {
	return identity.NewNamed("UDP:" + patient)
}
