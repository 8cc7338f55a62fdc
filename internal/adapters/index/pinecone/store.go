package pinecone

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikey/news-credibility/internal/config"
	"github.com/mikey/news-credibility/internal/core"
	"github.com/pinecone-io/go-pinecone/pinecone"
	"google.golang.org/protobuf/types/known/structpb"
)

// TextField is the metadata key holding the document text
const TextField = "text"

type vectorQuerier interface {
	QueryByVectorValues(ctx context.Context, in *pinecone.QueryByVectorValuesRequest) (*pinecone.QueryVectorsResponse, error)
}

// Store searches an existing Pinecone index
type Store struct {
	index vectorQuerier
}

// NewStore connects to the index host with the official SDK
func NewStore(cfg config.PineconeConfig) (*Store, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("index.pinecone.api_key is not set")
	}
	if cfg.Host == "" {
		return nil, errors.New("index.pinecone.host is not set")
	}

	client, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Pinecone client: %w", err)
	}
	conn, err := client.Index(pinecone.NewIndexConnParams{
		Host:      cfg.Host,
		Namespace: cfg.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Pinecone index: %w", err)
	}
	return &Store{index: conn}, nil
}

// Query returns up to k documents nearest to vector
func (s *Store) Query(ctx context.Context, vector []float32, k int) ([]core.RetrievedDocument, error) {
	if k <= 0 {
		return []core.RetrievedDocument{}, nil
	}
	resp, err := s.index.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          vector,
		TopK:            uint32(k),
		IncludeValues:   false,
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("pinecone query failed: %w", err)
	}

	docs := make([]core.RetrievedDocument, 0, len(resp.Matches))
	for _, match := range resp.Matches {
		if match == nil || match.Vector == nil {
			continue
		}
		doc := core.RetrievedDocument{
			ID:    match.Vector.Id,
			Score: float64(match.Score),
		}
		doc.Text, doc.Metadata = splitMetadata(match.Vector.Metadata)
		docs = append(docs, doc)
	}
	return docs, nil
}

// splitMetadata pulls the text field out of the metadata and keeps the other
// string fields
func splitMetadata(md *structpb.Struct) (string, map[string]string) {
	if md == nil {
		return "", nil
	}
	var text string
	var rest map[string]string
	for key, v := range md.GetFields() {
		str, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			continue
		}
		if key == TextField {
			text = str.StringValue
			continue
		}
		if rest == nil {
			rest = map[string]string{}
		}
		rest[key] = str.StringValue
	}
	return text, rest
}
