package wormbase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/c360studio/biograph/graph"
	"github.com/c360studio/biograph/identity"
	"github.com/c360studio/biograph/ingest"
	"github.com/c360studio/biograph/vocabulary/bio"
	"github.com/c360studio/biograph/vocabulary/obo"
)

// featureBuild is the assembly release the feature export is cut from. The
// export itself does not carry it.
const featureBuild = "WS249"

// gffColumns is the fixed width of GFF3 rows.
const gffColumns = 9

// featureTypes are the GFF3 types of interest; everything else in the
// export (transcripts, matches, operons) passes through unprocessed.
var featureTypes = map[string]bool{
	"gene":                 true,
	"point_mutation":       true,
	"deletion":             true,
	"RNAi_reagent":         true,
	"duplication":          true,
	"enhancer":             true,
	"binding_site":         true,
	"biological_region":    true,
	"complex_substitution": true,
}

var (
	wbFragment = regexp.MustCompile(`WB(Gene|Var|sf)`)
	dbPrefix   = regexp.MustCompile(`^\w+:WB`)
)

// parseFeatureLocations reads the genomic feature export: 9-column GFF3,
// `#` comments, gzip accepted. Each row of an accepted type becomes a
// located feature entity on its chromosome.
func (s *Source) parseFeatureLocations(ctx context.Context, path string, run *ingest.Run) error {
	t, err := ingest.OpenTable(path, '\t', '#')
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
			return fmt.Errorf("read feature row: %w", err)
		}
		line++
		run.RowRead()

		if len(row) < gffColumns {
			run.Logger.Warn("feature row has too few columns",
				"line", line, "columns", len(row))
			run.RowSkipped()
			continue
		}
		if !featureTypes[row[2]] {
			continue
		}
		if err := s.emitFeature(ctx, run, featureRow{
			chromosome:  row[0],
			featureType: row[2],
			start:       row[3],
			end:         row[4],
			strand:      row[6],
			attributes:  parseAttributes(row[8]),
		}); err != nil {
			return err
		}
	}
}

type featureRow struct {
	chromosome  string
	featureType string
	start       string
	end         string
	strand      string
	attributes  map[string]string
}

// emitFeature resolves the row's identifier, label, and class, then emits
// the entity with its chromosome placement. Rows without a usable
// identifier, on genetic-map coordinate systems, or flagged as
// polymorphisms are passed over without counting as anomalies.
func (s *Source) emitFeature(ctx context.Context, run *ingest.Run, r featureRow) error {
	var id, label, desc string

	if v, ok := r.attributes["ID"]; ok {
		switch {
		case wbFragment.MatchString(v):
			id = dbPrefix.ReplaceAllString(v, "WormBase:WB")
		case strings.HasPrefix(v, "gmap"), strings.HasPrefix(v, "landmark"):
			// Genetic-map and landmark coordinates, not sequence features.
			return nil
		default:
			run.Logger.Debug("feature with foreign identifier", "id", v)
		}
	} else if v, ok := r.attributes["variation"]; ok {
		id = "WormBase:" + v
		label = r.attributes["public_name"]
		if sub, ok := r.attributes["substitution"]; ok {
			desc = "substitution=" + sub
		}
		if ins, ok := r.attributes["insertion"]; ok {
			desc = "insertion=" + ins
		}
	}

	name := r.attributes["Name"]
	if id == "" {
		if !strings.HasPrefix(name, "WBsf") {
			return nil
		}
		id = "WormBase:" + name
		name = ""
	}
	if _, ok := r.attributes["polymorphism"]; ok {
		return nil
	}

	var attrs []graph.Attribute
	if name != "" && !strings.Contains(id, name) {
		if label == "" {
			label = name
		} else {
			attrs = append(attrs, graph.Attribute{Predicate: bio.EntitySynonym, Value: name})
		}
	}
	if desc != "" {
		attrs = append(attrs, graph.Attribute{Predicate: bio.EntityDescription, Value: desc})
	}
	for _, syn := range []string{r.attributes["Alias"], r.attributes["other_name"]} {
		if syn != "" {
			attrs = append(attrs, graph.Attribute{Predicate: bio.EntitySynonym, Value: syn})
		}
	}

	class := obo.FeatureClass(r.featureType, r.attributes["biotype"])
	if class == "" {
		run.Logger.Warn("unmapped feature class",
			"type", r.featureType, "biotype", r.attributes["biotype"], "id", id)
	}

	if r.start != "" {
		attrs = append(attrs, graph.Attribute{Predicate: bio.LocationStart, Value: r.start})
	}
	if r.end != "" {
		attrs = append(attrs, graph.Attribute{Predicate: bio.LocationEnd, Value: r.end})
	}
	if r.strand == "+" || r.strand == "-" {
		attrs = append(attrs, graph.Attribute{Predicate: bio.LocationStrand, Value: r.strand})
	}
	attrs = append(attrs, graph.Attribute{Predicate: bio.LocationBuild, Value: featureBuild})
	if note := r.attributes["Note"]; note != "" {
		attrs = append(attrs, graph.Attribute{Predicate: bio.EntityDescription, Value: note})
	}

	feature := identity.NewNamed(id)
	run.Catalog.FirstUse(feature)
	err := run.EmitEntity(ctx, graph.Entity{
		Kind:       bio.KindFeature,
		ID:         feature,
		Label:      label,
		Class:      class,
		Attributes: attrs,
	})
	if err != nil {
		return err
	}

	chr, created := run.Catalog.Chromosome(r.chromosome, featureBuild)
	if created {
		err := run.EmitEntity(ctx, graph.Entity{
			Kind:  bio.KindChromosome,
			ID:    chr.ID,
			Label: chr.Label,
		})
		if err != nil {
			return err
		}
	}
	return run.EmitAssociation(ctx, graph.Association{
		Subject:   feature,
		Predicate: bio.RelationLocatedOn,
		Object:    chr.ID,
	})
}

// parseAttributes splits the GFF3 attribute column into key→value pairs.
// Quotes are stripped wholesale; a fragment without '=' is dropped rather
// than failing the row, and a repeated key keeps its last value.
func parseAttributes(text string) map[string]string {
	attrs := make(map[string]string)
	if text == "" {
		return attrs
	}
	text = strings.ReplaceAll(text, `"`, "")
	for _, item := range strings.Split(text, ";") {
		k, v, ok := strings.Cut(item, "=")
		if !ok {
			continue
		}
		attrs[k] = v
	}
	return attrs
}
