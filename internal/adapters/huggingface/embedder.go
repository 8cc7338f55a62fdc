package huggingface

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Embedder runs a feature-extraction model on the Inference API
type Embedder struct {
	client *Client
	model  string
}

// NewEmbedder creates a new feature-extraction embedder
func NewEmbedder(client *Client, model string) *Embedder {
	return &Embedder{client: client, model: model}
}

// Name returns the model identifier
func (e *Embedder) Name() string {
	return e.model
}

// Embed returns a sentence vector for text. Token level output is mean-pooled.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	var raw json.RawMessage
	if err := e.client.infer(ctx, e.model, text, &raw); err != nil {
		return nil, err
	}
	v, err := decodeVector(raw)
	if err != nil {
		return nil, fmt.Errorf("unexpected feature-extraction output from %s: %w", e.model, err)
	}
	return v, nil
}

func decodeVector(raw json.RawMessage) ([]float32, error) {
	var pooled []float32
	if err := json.Unmarshal(raw, &pooled); err == nil {
		if len(pooled) == 0 {
			return nil, errors.New("empty embedding")
		}
		return pooled, nil
	}

	var tokens [][]float32
	if err := json.Unmarshal(raw, &tokens); err == nil {
		return meanPool(tokens)
	}

	var batched [][][]float32
	if err := json.Unmarshal(raw, &batched); err != nil {
		return nil, err
	}
	if len(batched) == 0 {
		return nil, errors.New("empty embedding")
	}
	return meanPool(batched[0])
}

func meanPool(tokens [][]float32) ([]float32, error) {
	if len(tokens) == 0 || len(tokens[0]) == 0 {
		return nil, errors.New("empty embedding")
	}
	dim := len(tokens[0])
	out := make([]float32, dim)
	for _, tok := range tokens {
		if len(tok) != dim {
			return nil, errors.New("token embeddings have mixed dimensions")
		}
		for i, x := range tok {
			out[i] += x
		}
	}
	n := float32(len(tokens))
	for i := range out {
		out[i] /= n
	}
	return out, nil
}
