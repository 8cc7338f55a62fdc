package voyage

import (
	"context"
	"errors"
	"fmt"

	"github.com/austinfhunter/voyageai"
	"github.com/mikey/news-credibility/internal/config"
)

// DefaultModel is used when no embedder model is configured
const DefaultModel = "voyage-3.5-lite"

// inputTypeQuery marks the text as a search query rather than a stored document
const inputTypeQuery = "query"

type embedClient interface {
	Embed(texts []string, model string, opts *voyageai.EmbeddingRequestOpts) (*voyageai.EmbeddingResponse, error)
}

// Embedder produces embeddings with the Voyage AI API
type Embedder struct {
	client     embedClient
	model      string
	dimensions int
}

// NewEmbedder creates a new Voyage embedder
func NewEmbedder(cfg config.VoyageConfig, model string) (*Embedder, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("voyage.api_key is not set")
	}
	client := voyageai.NewClient(&voyageai.VoyageClientOpts{Key: cfg.APIKey})
	return newEmbedder(client, model, cfg.Dimensions), nil
}

func newEmbedder(client embedClient, model string, dimensions int) *Embedder {
	if model == "" {
		model = DefaultModel
	}
	return &Embedder{client: client, model: model, dimensions: dimensions}
}

// Name returns the model identifier
func (e *Embedder) Name() string {
	return e.model
}

// Embed returns the query embedding of text
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inputType := inputTypeQuery
	opts := &voyageai.EmbeddingRequestOpts{InputType: &inputType}
	if e.dimensions > 0 {
		dimensions := e.dimensions
		opts.OutputDimension = &dimensions
	}

	resp, err := e.client.Embed([]string{text}, e.model, opts)
	if err != nil {
		return nil, fmt.Errorf("could not get embedding: %w", err)
	}
	if resp == nil || len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errors.New("no embedding returned")
	}
	return resp.Data[0].Embedding, nil
}
