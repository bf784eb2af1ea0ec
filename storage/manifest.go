// Package storage keeps run manifests for biograph using NATS KV. A
// manifest records what one pipeline run consumed and produced, so the
// streaming processor can recognize byte-identical re-exports and skip
// them.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
)

// BucketRuns is the KV bucket holding run manifests.
const BucketRuns = "biograph-runs"

// FileDigest records one consumed input file.
type FileDigest struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
	Rows   int    `json:"rows"`
}

// Counts aggregates one run's row and emission totals.
type Counts struct {
	RowsRead     int `json:"rows_read"`
	RowsSkipped  int `json:"rows_skipped"`
	Entities     int `json:"entities"`
	Associations int `json:"associations"`
}

// RunManifest is the durable record of one completed pipeline run.
type RunManifest struct {
	ID       string       `json:"id"`
	Source   string       `json:"source"`
	Files    []FileDigest `json:"files"`
	Counts   Counts       `json:"counts"`
	Started  time.Time    `json:"started"`
	Finished time.Time    `json:"finished"`
}

// SameInputs reports whether the manifest consumed exactly the given file
// digests, order-sensitively — the pipeline sorts its inputs, so two runs
// over the same files compare equal.
func (m *RunManifest) SameInputs(files []FileDigest) bool {
	if len(m.Files) != len(files) {
		return false
	}
	for i, f := range files {
		if m.Files[i].Path != f.Path || m.Files[i].SHA256 != f.SHA256 {
			return false
		}
	}
	return true
}

// Store provides run-manifest storage backed by NATS KV.
type Store struct {
	runs jetstream.KeyValue
}

// NewStore creates a new Store with the given JetStream context. It
// creates the runs bucket if it doesn't exist.
func NewStore(ctx context.Context, js jetstream.JetStream) (*Store, error) {
	runs, err := getOrCreateBucket(ctx, js, BucketRuns)
	if err != nil {
		return nil, fmt.Errorf("create runs bucket: %w", err)
	}
	return &Store{runs: runs}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: "biograph run manifests",
		History:     5,
	})
}

// Create stores a new manifest, assigning its id and timestamps from the
// run boundaries.
func (s *Store) Create(ctx context.Context, m *RunManifest) (string, error) {
	m.ID = uuid.New().String()
	if m.Finished.IsZero() {
		m.Finished = time.Now()
	}

	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}

	if _, err := s.runs.Create(ctx, m.ID, data); err != nil {
		return "", fmt.Errorf("store manifest: %w", err)
	}

	return m.ID, nil
}

// Get retrieves a manifest by id.
func (s *Store) Get(ctx context.Context, id string) (*RunManifest, error) {
	entry, err := s.runs.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get manifest: %w", err)
	}

	var m RunManifest
	if err := json.Unmarshal(entry.Value(), &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// List returns all stored manifests. Entries that fail to load are
// skipped.
func (s *Store) List(ctx context.Context) ([]*RunManifest, error) {
	keys, err := s.runs.Keys(ctx)
	if err != nil {
		if err == jetstream.ErrNoKeysFound {
			return nil, nil
		}
		return nil, fmt.Errorf("list manifest keys: %w", err)
	}

	manifests := make([]*RunManifest, 0, len(keys))
	for _, key := range keys {
		entry, err := s.runs.Get(ctx, key)
		if err != nil {
			continue
		}
		var m RunManifest
		if err := json.Unmarshal(entry.Value(), &m); err != nil {
			continue
		}
		manifests = append(manifests, &m)
	}

	return manifests, nil
}

// Latest returns the most recently finished manifest for a source, or
// ErrNotFound when the source has never completed a run.
func (s *Store) Latest(ctx context.Context, source string) (*RunManifest, error) {
	manifests, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	latest := latestOf(manifests, source)
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest, nil
}

func latestOf(manifests []*RunManifest, source string) *RunManifest {
	var latest *RunManifest
	for _, m := range manifests {
		if m.Source != source {
			continue
		}
		if latest == nil || m.Finished.After(latest.Finished) {
			latest = m
		}
	}
	return latest
}

// isNotFound checks if an error indicates a key was not found.
func isNotFound(err error) bool {
	return errors.Is(err, jetstream.ErrKeyNotFound)
}
