package factory

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mikey/news-credibility/internal/adapters/index/memory"
	"github.com/mikey/news-credibility/internal/adapters/index/pinecone"
	"github.com/mikey/news-credibility/internal/adapters/index/qdrant"
	"github.com/mikey/news-credibility/internal/adapters/index/sqlstore"
	"github.com/mikey/news-credibility/internal/config"
	"github.com/mikey/news-credibility/internal/core"
	"github.com/mikey/news-credibility/internal/retrieval"
	"go.uber.org/zap"
)

// ErrRetrievalDisabled is the reason reported when retrieval is switched off
var ErrRetrievalDisabled = errors.New("retrieval is disabled in configuration")

// IndexFactory creates the similarity index
type IndexFactory struct {
	cfg      *config.Config
	logger   *zap.Logger
	embedder *EmbedderFactory
}

// NewIndexFactory creates a new index factory
func NewIndexFactory(cfg *config.Config, logger *zap.Logger, embedder *EmbedderFactory) *IndexFactory {
	return &IndexFactory{
		cfg:      cfg,
		logger:   logger,
		embedder: embedder,
	}
}

// CreateSimilarityIndex creates the similarity index. It never fails: an
// index that cannot be initialized is replaced by retrieval.Disabled.
func (f *IndexFactory) CreateSimilarityIndex(ctx context.Context) core.SimilarityIndex {
	if !f.cfg.GetRetrieval().Enabled {
		f.logger.Info("Similarity lookup disabled")
		return retrieval.Disabled{Reason: ErrRetrievalDisabled}
	}

	store, err := f.CreateVectorStore(ctx)
	if err != nil {
		f.logger.Warn("Vector index unavailable, similarity lookup disabled", zap.Error(err))
		return retrieval.Disabled{Reason: err}
	}
	embedder, err := f.embedder.CreateEmbedder(ctx)
	if err != nil {
		f.logger.Warn("Embedder unavailable, similarity lookup disabled", zap.Error(err))
		return retrieval.Disabled{Reason: err}
	}

	f.logger.Info("Similarity lookup ready",
		zap.String("index", f.cfg.GetIndex().Type),
		zap.String("embedder", embedder.Name()))
	return retrieval.NewLookup(embedder, store, f.logger.Named("retrieval"))
}

// CreateVectorStore opens the configured vector store
func (f *IndexFactory) CreateVectorStore(ctx context.Context) (core.VectorStore, error) {
	indexCfg := f.cfg.GetIndex()

	switch indexCfg.Type {
	case "memory":
		return memory.LoadSnapshot(indexCfg.SnapshotPath, f.logger)
	case "sqlite":
		if _, err := os.Stat(indexCfg.SQLitePath); err != nil {
			return nil, fmt.Errorf("sqlite index not found: %w", err)
		}
		return sqlstore.Open(sqlstore.DriverSQLite, indexCfg.SQLitePath, indexCfg.Table, f.logger)
	case "mysql":
		return sqlstore.Open(sqlstore.DriverMySQL, indexCfg.MySQLDSN, indexCfg.Table, f.logger)
	case "qdrant":
		return qdrant.NewStore(indexCfg.Qdrant)
	case "pinecone":
		return pinecone.NewStore(indexCfg.Pinecone)
	default:
		return nil, fmt.Errorf("unsupported index type: %s", indexCfg.Type)
	}
}
