package core

import (
	"context"
)

// Classifier maps text to a score per class the underlying model knows
type Classifier interface {
	// Name identifies the model behind the classifier
	Name() string

	// Classify scores text against every class of the model
	Classify(ctx context.Context, text string) (*ClassificationResult, error)
}

// SimilarityIndex finds reference documents similar to a text
type SimilarityIndex interface {
	// Search returns up to k documents ranked by similarity, most similar first
	Search(ctx context.Context, text string, k int) ([]RetrievedDocument, error)
}

// Embedder turns text into a fixed size vector
type Embedder interface {
	Name() string
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorStore is a pre-built, read-only collection of embedded documents
type VectorStore interface {
	// Query returns up to k documents nearest to vector
	Query(ctx context.Context, vector []float32, k int) ([]RetrievedDocument, error)
}

// ClassificationCache stores classifier results between requests
type ClassificationCache interface {
	Get(ctx context.Context, key string) (*ClassificationResult, bool, error)
	Set(ctx context.Context, key string, result *ClassificationResult) error
}
