package pinecone

import (
	"context"
	"errors"
	"testing"

	"github.com/mikey/news-credibility/internal/config"
	"github.com/pinecone-io/go-pinecone/pinecone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

type mockIndex struct {
	queryFunc func(ctx context.Context, in *pinecone.QueryByVectorValuesRequest) (*pinecone.QueryVectorsResponse, error)
}

func (m *mockIndex) QueryByVectorValues(ctx context.Context, in *pinecone.QueryByVectorValuesRequest) (*pinecone.QueryVectorsResponse, error) {
	return m.queryFunc(ctx, in)
}

func TestNewStore_Validation(t *testing.T) {
	_, err := NewStore(config.PineconeConfig{Host: "idx.svc.pinecone.io"})
	assert.Error(t, err)
	_, err = NewStore(config.PineconeConfig{APIKey: "pc-key"})
	assert.Error(t, err)
}

func TestQuery(t *testing.T) {
	md, err := structpb.NewStruct(map[string]any{"text": "Miracle cure discovered", "label": "fake", "year": 2020})
	require.NoError(t, err)

	store := &Store{index: &mockIndex{queryFunc: func(ctx context.Context, in *pinecone.QueryByVectorValuesRequest) (*pinecone.QueryVectorsResponse, error) {
		assert.Equal(t, uint32(3), in.TopK)
		assert.True(t, in.IncludeMetadata)
		assert.Equal(t, []float32{0.5, 0.5}, in.Vector)
		return &pinecone.QueryVectorsResponse{Matches: []*pinecone.ScoredVector{
			{Vector: &pinecone.Vector{Id: "fake-1", Metadata: md}, Score: 0.9},
			{Vector: &pinecone.Vector{Id: "bare"}, Score: 0.4},
			nil,
		}}, nil
	}}}

	docs, err := store.Query(context.Background(), []float32{0.5, 0.5}, 3)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "fake-1", docs[0].ID)
	assert.Equal(t, "Miracle cure discovered", docs[0].Text)
	assert.Equal(t, map[string]string{"label": "fake"}, docs[0].Metadata)
	assert.InDelta(t, 0.9, docs[0].Score, 1e-6)
	assert.Empty(t, docs[1].Text)
}

func TestQuery_Error(t *testing.T) {
	store := &Store{index: &mockIndex{queryFunc: func(context.Context, *pinecone.QueryByVectorValuesRequest) (*pinecone.QueryVectorsResponse, error) {
		return nil, errors.New("unavailable")
	}}}
	_, err := store.Query(context.Background(), []float32{1}, 3)
	assert.ErrorContains(t, err, "unavailable")

	docs, err := store.Query(context.Background(), []float32{1}, 0)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
