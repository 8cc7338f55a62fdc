package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultEmbeddingModel is the Titan text embedding model
const DefaultEmbeddingModel = "amazon.titan-embed-text-v2:0"

// Embedder produces embeddings with an Amazon Titan embedding model
type Embedder struct {
	client  invoker
	modelID string
}

// NewEmbedder creates a new Titan embedder
func NewEmbedder(client invoker, modelID string) *Embedder {
	if modelID == "" {
		modelID = DefaultEmbeddingModel
	}
	return &Embedder{client: client, modelID: modelID}
}

// Name returns the model identifier
func (e *Embedder) Name() string {
	return e.modelID
}

// Embed returns the embedding vector of text
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	payload, err := json.Marshal(map[string]interface{}{"inputText": text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}
	body, err := invokeJSON(ctx, e.client, e.modelID, payload)
	if err != nil {
		return nil, err
	}

	var out struct {
		Embedding []float32 `json:"embedding"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Titan embedding response: %w", err)
	}
	if len(out.Embedding) == 0 {
		return nil, errors.New("no embedding returned")
	}
	return out.Embedding, nil
}
