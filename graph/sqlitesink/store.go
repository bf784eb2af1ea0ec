// Package sqlitesink writes pipeline output to an embedded SQLite database
// so a run can be inspected with plain SQL, no server required.
package sqlitesink

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/c360studio/biograph/graph"
	"github.com/c360studio/biograph/identity"
	"github.com/c360studio/biograph/vocabulary/bio"
)

const schema = `
CREATE TABLE IF NOT EXISTS entities (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	label      TEXT NOT NULL,
	class      TEXT NOT NULL,
	attributes TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS associations (
	seq       INTEGER PRIMARY KEY AUTOINCREMENT,
	subject   TEXT NOT NULL,
	predicate TEXT NOT NULL,
	object    TEXT NOT NULL,
	evidence  TEXT NOT NULL,
	refs      TEXT NOT NULL
);`

// Store is a file-backed graph sink. Entities upsert by id with the shared
// merge rule; associations append in arrival order under a sequence key.
// The pipeline writes single-threaded, so reads-before-writes need no
// transaction.
type Store struct {
	db *sql.DB
}

var _ graph.Emitter = (*Store)(nil)

// Open creates or opens the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		path = "biograph.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// EmitEntity inserts the entity, or merges it into the stored record when
// the id exists. The class column keeps the raw value so a later defining
// record can still fill it; readers resolve kind defaults themselves.
func (s *Store) EmitEntity(ctx context.Context, e graph.Entity) error {
	id := e.ID.String()
	var label, class, attrText string
	err := s.db.QueryRowContext(ctx,
		`SELECT label, class, attributes FROM entities WHERE id = ?`, id).
		Scan(&label, &class, &attrText)
	if errors.Is(err, sql.ErrNoRows) {
		attrs, err := encodeAttributes(e.Attributes)
		if err != nil {
			return fmt.Errorf("encode attributes for %s: %w", id, err)
		}
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO entities(id, kind, label, class, attributes) VALUES(?,?,?,?,?)`,
			id, string(e.Kind), e.Label, e.Class, attrs)
		if err != nil {
			return fmt.Errorf("insert entity %s: %w", id, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("select entity %s: %w", id, err)
	}

	existing := graph.Entity{Kind: e.Kind, ID: e.ID, Label: label, Class: class}
	if existing.Attributes, err = decodeAttributes(attrText); err != nil {
		return fmt.Errorf("decode attributes for %s: %w", id, err)
	}
	merged := graph.MergeEntity(existing, e)
	attrs, err := encodeAttributes(merged.Attributes)
	if err != nil {
		return fmt.Errorf("encode attributes for %s: %w", id, err)
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE entities SET label = ?, class = ?, attributes = ? WHERE id = ?`,
		merged.Label, merged.Class, attrs, id)
	if err != nil {
		return fmt.Errorf("update entity %s: %w", id, err)
	}
	return nil
}

// EmitAssociation appends the association.
func (s *Store) EmitAssociation(ctx context.Context, a graph.Association) error {
	refs := a.SourceRefs
	if refs == nil {
		refs = []string{}
	}
	refText, err := json.Marshal(refs)
	if err != nil {
		return fmt.Errorf("encode refs: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO associations(subject, predicate, object, evidence, refs) VALUES(?,?,?,?,?)`,
		a.Subject.String(), a.Predicate, a.Object.String(), a.EvidenceCode, string(refText))
	if err != nil {
		return fmt.Errorf("insert association %s %s %s: %w",
			a.Subject, a.Predicate, a.Object, err)
	}
	return nil
}

// Entities returns the stored entities in first-emission order.
func (s *Store) Entities(ctx context.Context) ([]graph.Entity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, label, class, attributes FROM entities ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("select entities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []graph.Entity
	for rows.Next() {
		var id, kind, label, class, attrText string
		if err := rows.Scan(&id, &kind, &label, &class, &attrText); err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		e := graph.Entity{
			Kind:  bio.EntityKind(kind),
			ID:    decodeID(id),
			Label: label,
			Class: class,
		}
		if e.Attributes, err = decodeAttributes(attrText); err != nil {
			return nil, fmt.Errorf("decode attributes for %s: %w", id, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Associations returns the stored associations in emission order.
func (s *Store) Associations(ctx context.Context) ([]graph.Association, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT subject, predicate, object, evidence, refs FROM associations ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("select associations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []graph.Association
	for rows.Next() {
		var subject, predicate, object, evidence, refText string
		if err := rows.Scan(&subject, &predicate, &object, &evidence, &refText); err != nil {
			return nil, fmt.Errorf("scan association: %w", err)
		}
		a := graph.Association{
			Subject:      decodeID(subject),
			Predicate:    predicate,
			Object:       decodeID(object),
			EvidenceCode: evidence,
		}
		var refs []string
		if err := json.Unmarshal([]byte(refText), &refs); err != nil {
			return nil, fmt.Errorf("decode refs: %w", err)
		}
		if len(refs) > 0 {
			a.SourceRefs = refs
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// attribute mirrors graph.Attribute with stable column keys.
type attribute struct {
	Predicate string `json:"predicate"`
	Value     string `json:"value"`
}

func encodeAttributes(attrs []graph.Attribute) (string, error) {
	rows := make([]attribute, len(attrs))
	for i, a := range attrs {
		rows[i] = attribute{Predicate: a.Predicate, Value: a.Value}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeAttributes(text string) ([]graph.Attribute, error) {
	var rows []attribute
	if err := json.Unmarshal([]byte(text), &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	attrs := make([]graph.Attribute, len(rows))
	for i, r := range rows {
		attrs[i] = graph.Attribute{Predicate: r.Predicate, Value: r.Value}
	}
	return attrs, nil
}

func decodeID(text string) identity.Identifier {
	if key, ok := strings.CutPrefix(text, "_:"); ok {
		return identity.NewSynthesized(key)
	}
	return identity.NewNamed(text)
}
