package memory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/mikey/news-credibility/internal/adapters/index"
	"github.com/mikey/news-credibility/internal/core"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Entry is one embedded reference document of a snapshot
type Entry struct {
	ID     string    `yaml:"id"`
	Text   string    `yaml:"text"`
	Label  string    `yaml:"label,omitempty"`
	Source string    `yaml:"source,omitempty"`
	Vector []float32 `yaml:"vector"`
}

// Snapshot is the on-disk layout of a pre-built index
type Snapshot struct {
	Model     string  `yaml:"model,omitempty"`
	Dimension int     `yaml:"dimension"`
	Entries   []Entry `yaml:"entries"`
}

// Store is an in-memory vector store searched by brute-force cosine similarity
type Store struct {
	mu        sync.RWMutex
	dimension int
	entries   []Entry
}

// NewStore creates a store from snapshot entries. All vectors must share one
// dimension.
func NewStore(snapshot Snapshot) (*Store, error) {
	dim := snapshot.Dimension
	for i, e := range snapshot.Entries {
		if len(e.Vector) == 0 {
			return nil, fmt.Errorf("entry %d (%s) has no vector", i, e.ID)
		}
		if dim == 0 {
			dim = len(e.Vector)
		}
		if len(e.Vector) != dim {
			return nil, fmt.Errorf("entry %d (%s): vector dimension mismatch: got %d, want %d", i, e.ID, len(e.Vector), dim)
		}
	}
	entries := make([]Entry, len(snapshot.Entries))
	copy(entries, snapshot.Entries)
	return &Store{dimension: dim, entries: entries}, nil
}

// LoadSnapshot reads a YAML snapshot file and builds a store from it
func LoadSnapshot(path string, logger *zap.Logger) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index snapshot: %w", err)
	}
	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse index snapshot %s: %w", path, err)
	}
	store, err := NewStore(snapshot)
	if err != nil {
		return nil, fmt.Errorf("invalid index snapshot %s: %w", path, err)
	}
	if logger != nil {
		logger.Info("Loaded index snapshot",
			zap.String("path", path),
			zap.Int("entries", store.Len()),
			zap.Int("dimension", store.dimension))
	}
	return store, nil
}

// Len returns the number of stored documents
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Query returns up to k documents nearest to vector
func (s *Store) Query(ctx context.Context, vector []float32, k int) ([]core.RetrievedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) == 0 {
		return []core.RetrievedDocument{}, nil
	}
	if len(vector) != s.dimension {
		return nil, errors.New("query vector dimension mismatch")
	}

	docs := make([]core.RetrievedDocument, 0, len(s.entries))
	for _, e := range s.entries {
		docs = append(docs, core.RetrievedDocument{
			ID:       e.ID,
			Text:     e.Text,
			Score:    index.Cosine(vector, e.Vector),
			Metadata: metadata(e),
		})
	}
	return index.TopK(docs, k), nil
}

func metadata(e Entry) map[string]string {
	md := map[string]string{}
	if e.Label != "" {
		md["label"] = e.Label
	}
	if e.Source != "" {
		md["source"] = e.Source
	}
	if len(md) == 0 {
		return nil
	}
	return md
}
