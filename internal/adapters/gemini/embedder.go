package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

// DefaultEmbeddingModel is used when no embedder model is configured
const DefaultEmbeddingModel = "text-embedding-004"

type contentEmbedder interface {
	EmbedContent(ctx context.Context, parts ...genai.Part) (*genai.EmbedContentResponse, error)
}

// Embedder produces embeddings with a Gemini embedding model
type Embedder struct {
	model     contentEmbedder
	modelName string
}

// NewEmbedder creates a new Gemini embedder
func NewEmbedder(client *genai.Client, modelName string) *Embedder {
	if modelName == "" {
		modelName = DefaultEmbeddingModel
	}
	return &Embedder{model: client.EmbeddingModel(modelName), modelName: modelName}
}

// Name returns the model identifier
func (e *Embedder) Name() string {
	return e.modelName
}

// Embed returns the embedding vector of text
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content with Gemini: %w", err)
	}
	if resp == nil || resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, errors.New("no embedding returned")
	}
	return resp.Embedding.Values, nil
}
