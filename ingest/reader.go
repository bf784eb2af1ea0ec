// Package ingest frames delimited source exports into rows and routes them
// through registered sources into a graph emitter. One Pipeline run owns
// one identity catalog, so every file of a run shares entity keys.
package ingest

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// TableReader frames one delimited source file. Gzip compression is
// detected by extension; comment lines are skipped by the underlying
// reader. Field counts are not enforced here — each source validates its
// own row shape and fails only that row.
type TableReader struct {
	file *os.File
	gz   *gzip.Reader
	csv  *csv.Reader
}

// OpenTable opens a source table. comment, when non-zero, skips lines
// beginning with that rune.
func OpenTable(path string, comma, comment rune) (*TableReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}

	t := &TableReader{file: f}
	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip table: %w", err)
		}
		t.gz = gz
		r = gz
	}

	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.Comment = comment
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	t.csv = cr
	return t, nil
}

// Read returns the next row, io.EOF when the file is exhausted.
func (t *TableReader) Read() ([]string, error) {
	return t.csv.Read()
}

// Close releases the file handle.
func (t *TableReader) Close() error {
	if t.gz != nil {
		t.gz.Close()
	}
	return t.file.Close()
}
