// Package lookup loads the optional static tables that enrich ingestion:
// gene symbol → identifier mappings and gene coordinate spans. Both tables
// are enrichment, not required input — a missing file loads as an empty
// map and lookups simply miss.
package lookup

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
)

// GeneMap resolves gene symbols to stable external identifiers.
type GeneMap map[string]string

// Span is one gene's coordinate range on a genome build.
type Span struct {
	Start  int64
	End    int64
	Strand string
	Build  string
}

// Contains reports whether the position falls inside the span, bounds
// included.
func (s Span) Contains(pos int64) bool {
	return pos >= s.Start && pos <= s.End
}

// CoordinateMap resolves gene identifiers to their genomic spans.
type CoordinateMap map[string]Span

// LoadGeneMap reads a two-column tab-separated symbol → identifier table.
func LoadGeneMap(path string) (GeneMap, error) {
	m := GeneMap{}
	err := readTable(path, func(row []string) {
		if len(row) < 2 {
			return
		}
		m[row[0]] = row[1]
	})
	if err != nil {
		return nil, fmt.Errorf("gene map: %w", err)
	}
	return m, nil
}

// LoadCoordinates reads the five-column coordinate table (identifier,
// start, end, strand, build). Rows with non-numeric positions are dropped.
func LoadCoordinates(path string) (CoordinateMap, error) {
	m := CoordinateMap{}
	err := readTable(path, func(row []string) {
		if len(row) < 5 {
			return
		}
		start, err := strconv.ParseInt(row[1], 10, 64)
		if err != nil {
			return
		}
		end, err := strconv.ParseInt(row[2], 10, 64)
		if err != nil {
			return
		}
		m[row[0]] = Span{Start: start, End: end, Strand: row[3], Build: row[4]}
	})
	if err != nil {
		return nil, fmt.Errorf("gene coordinates: %w", err)
	}
	return m, nil
}

func readTable(path string, each func(row []string)) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		each(row)
	}
}
