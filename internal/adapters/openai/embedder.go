package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// Embedder produces embeddings with the OpenAI embeddings endpoint
type Embedder struct {
	client *openai.Client
	model  string
}

// NewEmbedder creates a new embedder; an empty model uses text-embedding-3-small
func NewEmbedder(client *openai.Client, model string) *Embedder {
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	return &Embedder{client: client, model: model}
}

// Name returns the model identifier
func (e *Embedder) Name() string {
	return e.model
}

// Embed returns the embedding vector of text
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings with OpenAI: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errors.New("no embedding returned")
	}
	return resp.Data[0].Embedding, nil
}
