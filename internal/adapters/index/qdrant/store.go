package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mikey/news-credibility/internal/config"
	"github.com/mikey/news-credibility/internal/core"
)

// Store is a minimal REST client searching an existing Qdrant collection.
// Points carry the document text under the "text" payload key.
type Store struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

// NewStore creates a new Qdrant store
func NewStore(cfg config.QdrantConfig) (*Store, error) {
	if cfg.URL == "" {
		return nil, errors.New("index.qdrant.url is not set")
	}
	if cfg.Collection == "" {
		return nil, errors.New("index.qdrant.collection is not set")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:        strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}, nil
}

type searchResponse struct {
	Result []struct {
		ID      json.RawMessage `json:"id"`
		Score   float64         `json:"score"`
		Payload map[string]any  `json:"payload"`
	} `json:"result"`
}

// Query returns up to k documents nearest to vector
func (s *Store) Query(ctx context.Context, vector []float32, k int) ([]core.RetrievedDocument, error) {
	req := map[string]any{
		"vector":       vector,
		"limit":        k,
		"with_payload": true,
	}
	var resp searchResponse
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}

	docs := make([]core.RetrievedDocument, 0, len(resp.Result))
	for _, r := range resp.Result {
		doc := core.RetrievedDocument{ID: pointID(r.ID), Score: r.Score}
		for key, v := range r.Payload {
			str, ok := v.(string)
			if !ok {
				continue
			}
			if key == "text" {
				doc.Text = str
				continue
			}
			if doc.Metadata == nil {
				doc.Metadata = map[string]string{}
			}
			doc.Metadata[key] = str
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// pointID renders numeric and UUID point ids alike
func pointID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func (s *Store) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode qdrant request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create qdrant request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant POST %s failed: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode qdrant response: %w", err)
		}
	}
	return nil
}
