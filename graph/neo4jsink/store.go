// Package neo4jsink writes pipeline output to a Neo4j property graph.
// Every node carries the shared Entity label plus a kind label; edges take
// their type from the association predicate.
package neo4jsink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/c360studio/biograph/graph"
)

// Config carries the connection settings for a property-graph sink.
type Config struct {
	URI      string
	Username string
	Password string
	Database string
}

// flushEvery bounds the association buffer between UNWIND batches.
const flushEvery = 500

// Store buffers emissions and writes them in UNWIND batches. Entities are
// held (and merged) for the whole run so the final upsert carries each
// node's fullest record; associations flush in bounded slices, merging
// stub endpoint nodes that a later entity batch enriches.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *slog.Logger

	order    []string
	entities map[string]graph.Entity
	dirty    map[string]struct{}
	assocs   []assocRecord
}

var _ graph.Emitter = (*Store)(nil)

type assocRecord struct {
	relType string
	props   map[string]any
}

// Open connects, verifies connectivity, and installs the id uniqueness
// constraint (best-effort; restricted users keep going without it).
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("init neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}

	s := &Store{
		driver:   driver,
		database: cfg.Database,
		logger:   logger,
		entities: make(map[string]graph.Entity),
		dirty:    make(map[string]struct{}),
	}
	s.ensureSchema(ctx)
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) {
	session := s.session(ctx)
	defer session.Close(ctx)

	res, err := session.Run(ctx,
		`CREATE CONSTRAINT entity_id_unique IF NOT EXISTS FOR (e:Entity) REQUIRE e.id IS UNIQUE`, nil)
	if err != nil {
		s.logger.Warn("neo4j schema init failed (continuing)", "error", err)
		return
	}
	_, _ = res.Consume(ctx)
}

func (s *Store) session(ctx context.Context) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
}

// EmitEntity merges the entity into the run buffer.
func (s *Store) EmitEntity(_ context.Context, e graph.Entity) error {
	key := e.ID.String()
	if existing, ok := s.entities[key]; ok {
		s.entities[key] = graph.MergeEntity(existing, e)
	} else {
		s.entities[key] = e
		s.order = append(s.order, key)
	}
	s.dirty[key] = struct{}{}
	return nil
}

// EmitAssociation buffers the association, flushing when the batch fills.
// The edge key digests (subject, predicate, object) so repeated evidence
// for one edge merges onto one relationship.
func (s *Store) EmitAssociation(ctx context.Context, a graph.Association) error {
	refs := a.SourceRefs
	if refs == nil {
		refs = []string{}
	}
	refText, err := json.Marshal(refs)
	if err != nil {
		return fmt.Errorf("encode refs: %w", err)
	}
	s.assocs = append(s.assocs, assocRecord{
		relType: relType(a.Predicate),
		props: map[string]any{
			"key":       graph.AssociationID("neo4j", a).String(),
			"subject":   a.Subject.String(),
			"predicate": a.Predicate,
			"object":    a.Object.String(),
			"evidence":  a.EvidenceCode,
			"refs":      string(refText),
		},
	})
	if len(s.assocs) >= flushEvery {
		return s.flushAssociations(ctx)
	}
	return nil
}

// Flush writes every buffered change: entity upserts grouped by kind, then
// the pending associations.
func (s *Store) Flush(ctx context.Context) error {
	if err := s.flushEntities(ctx); err != nil {
		return err
	}
	return s.flushAssociations(ctx)
}

// Close flushes and releases the driver.
func (s *Store) Close(ctx context.Context) error {
	flushErr := s.Flush(ctx)
	if err := s.driver.Close(ctx); err != nil {
		return fmt.Errorf("close neo4j driver: %w", err)
	}
	return flushErr
}

func (s *Store) flushEntities(ctx context.Context) error {
	// Group dirty nodes by kind: Cypher cannot parameterize labels, so
	// each kind runs its own UNWIND.
	byKind := make(map[string][]map[string]any)
	var kinds []string
	for _, key := range s.order {
		if _, ok := s.dirty[key]; !ok {
			continue
		}
		e := s.entities[key]
		attrText, err := json.Marshal(attributePairs(e.Attributes))
		if err != nil {
			return fmt.Errorf("encode attributes for %s: %w", key, err)
		}
		label := kindLabel(string(e.Kind))
		if _, ok := byKind[label]; !ok {
			kinds = append(kinds, label)
		}
		byKind[label] = append(byKind[label], map[string]any{
			"id":              key,
			"kind":            string(e.Kind),
			"label":           e.Label,
			"class":           e.ClassCURIE(),
			"attributes_json": string(attrText),
		})
	}
	if len(kinds) == 0 {
		return nil
	}

	session := s.session(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, label := range kinds {
			query := fmt.Sprintf(`
UNWIND $nodes AS n
MERGE (e:Entity {id: n.id})
SET e:%s
SET e.kind = n.kind,
    e.label = n.label,
    e.class = n.class,
    e.attributes_json = n.attributes_json
`, label)
			res, err := tx.Run(ctx, query, map[string]any{"nodes": byKind[label]})
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("upsert entities: %w", err)
	}
	s.dirty = make(map[string]struct{})
	return nil
}

func (s *Store) flushAssociations(ctx context.Context) error {
	if len(s.assocs) == 0 {
		return nil
	}
	byType := make(map[string][]map[string]any)
	var types []string
	for _, rec := range s.assocs {
		if _, ok := byType[rec.relType]; !ok {
			types = append(types, rec.relType)
		}
		byType[rec.relType] = append(byType[rec.relType], rec.props)
	}

	session := s.session(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, relType := range types {
			query := fmt.Sprintf(`
UNWIND $rels AS r
MERGE (a:Entity {id: r.subject})
MERGE (b:Entity {id: r.object})
MERGE (a)-[e:%s {key: r.key}]->(b)
SET e.predicate = r.predicate,
    e.evidence = r.evidence,
    e.refs = r.refs
`, relType)
			res, err := tx.Run(ctx, query, map[string]any{"rels": byType[relType]})
			if err != nil {
				return nil, err
			}
			if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("merge associations: %w", err)
	}
	s.assocs = s.assocs[:0]
	return nil
}

type attributePair struct {
	Predicate string `json:"predicate"`
	Value     string `json:"value"`
}

func attributePairs(attrs []graph.Attribute) []attributePair {
	pairs := make([]attributePair, len(attrs))
	for i, a := range attrs {
		pairs[i] = attributePair{Predicate: a.Predicate, Value: a.Value}
	}
	return pairs
}

// kindLabel renames an entity kind as a node label: "reagent_targeted_gene"
// becomes "ReagentTargetedGene".
func kindLabel(kind string) string {
	if kind == "" {
		return "Record"
	}
	parts := strings.Split(kind, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}

// relType renames a dotted relation predicate as a relationship type:
// "bio.relation.has_phenotype" becomes "HAS_PHENOTYPE".
func relType(predicate string) string {
	if i := strings.LastIndex(predicate, "."); i >= 0 {
		predicate = predicate[i+1:]
	}
	if predicate == "" {
		return "RELATED_TO"
	}
	return strings.ToUpper(predicate)
}
