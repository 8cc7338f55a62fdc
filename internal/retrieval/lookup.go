package retrieval

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mikey/news-credibility/internal/adapters/index"
	"github.com/mikey/news-credibility/internal/core"
	"go.uber.org/zap"
)

// Lookup finds similar reference documents by embedding the text and
// querying a vector store
type Lookup struct {
	embedder core.Embedder
	store    core.VectorStore
	logger   *zap.Logger
}

// NewLookup creates a new similarity lookup
func NewLookup(embedder core.Embedder, store core.VectorStore, logger *zap.Logger) *Lookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lookup{embedder: embedder, store: store, logger: logger}
}

// Close releases the embedder and the store when they hold resources
func (l *Lookup) Close() error {
	var errs []error
	for _, v := range []any{l.embedder, l.store} {
		if c, ok := v.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}

// Search returns up to k documents, most similar first
func (l *Lookup) Search(ctx context.Context, text string, k int) ([]core.RetrievedDocument, error) {
	if k <= 0 {
		return []core.RetrievedDocument{}, nil
	}

	vector, err := l.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed text with %s: %w", l.embedder.Name(), err)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("embedder %s returned an empty vector", l.embedder.Name())
	}

	docs, err := l.store.Query(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("vector store query failed: %w", err)
	}
	if docs == nil {
		docs = []core.RetrievedDocument{}
	}

	docs = index.TopK(docs, k)
	l.logger.Debug("Similar documents retrieved",
		zap.String("embedder", l.embedder.Name()),
		zap.Int("matches", len(docs)))
	return docs, nil
}

// ErrDisabled is returned by Disabled for every search
var ErrDisabled = errors.New("similarity lookup is not available")

// Disabled is a similarity index that is never available. The engine
// reports 0 matches for it.
type Disabled struct {
	Reason error
}

// Search always fails with a *core.RetrievalError
func (d Disabled) Search(ctx context.Context, text string, k int) ([]core.RetrievedDocument, error) {
	if d.Reason != nil {
		return nil, &core.RetrievalError{Err: fmt.Errorf("%w: %v", ErrDisabled, d.Reason)}
	}
	return nil, &core.RetrievalError{Err: ErrDisabled}
}
