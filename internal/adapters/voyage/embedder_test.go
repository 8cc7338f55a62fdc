package voyage

import (
	"context"
	"errors"
	"testing"

	"github.com/austinfhunter/voyageai"
	"github.com/mikey/news-credibility/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	embedFunc func(texts []string, model string, opts *voyageai.EmbeddingRequestOpts) (*voyageai.EmbeddingResponse, error)
}

func (m *mockClient) Embed(texts []string, model string, opts *voyageai.EmbeddingRequestOpts) (*voyageai.EmbeddingResponse, error) {
	return m.embedFunc(texts, model, opts)
}

func TestNewEmbedder_RequiresKey(t *testing.T) {
	_, err := NewEmbedder(config.VoyageConfig{}, "")
	assert.Error(t, err)
}

func TestEmbed(t *testing.T) {
	client := &mockClient{embedFunc: func(texts []string, model string, opts *voyageai.EmbeddingRequestOpts) (*voyageai.EmbeddingResponse, error) {
		assert.Equal(t, []string{"claim text"}, texts)
		assert.Equal(t, DefaultModel, model)
		require.NotNil(t, opts.InputType)
		assert.Equal(t, "query", *opts.InputType)
		require.NotNil(t, opts.OutputDimension)
		assert.Equal(t, 512, *opts.OutputDimension)
		return &voyageai.EmbeddingResponse{Data: []voyageai.EmbeddingObject{{Embedding: []float32{0.1, 0.9}}}}, nil
	}}

	e := newEmbedder(client, "", 512)
	v, err := e.Embed(context.Background(), "claim text")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.9}, v)
}

func TestEmbed_Errors(t *testing.T) {
	failing := newEmbedder(&mockClient{embedFunc: func([]string, string, *voyageai.EmbeddingRequestOpts) (*voyageai.EmbeddingResponse, error) {
		return nil, errors.New("rate limited")
	}}, "", 0)
	_, err := failing.Embed(context.Background(), "text")
	assert.ErrorContains(t, err, "rate limited")

	empty := newEmbedder(&mockClient{embedFunc: func([]string, string, *voyageai.EmbeddingRequestOpts) (*voyageai.EmbeddingResponse, error) {
		return &voyageai.EmbeddingResponse{}, nil
	}}, "", 0)
	_, err = empty.Embed(context.Background(), "text")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = empty.Embed(ctx, "text")
	assert.ErrorIs(t, err, context.Canceled)
}
