package factory

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mikey/news-credibility/internal/adapters/bedrock"
	"github.com/mikey/news-credibility/internal/adapters/gemini"
	"github.com/mikey/news-credibility/internal/adapters/huggingface"
	"github.com/mikey/news-credibility/internal/adapters/openai"
	"github.com/mikey/news-credibility/internal/adapters/voyage"
	"github.com/mikey/news-credibility/internal/config"
	"github.com/mikey/news-credibility/internal/core"
	"go.uber.org/zap"
)

// EmbedderFactory creates the embedder used by the similarity lookup
type EmbedderFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewEmbedderFactory creates a new embedder factory
func NewEmbedderFactory(cfg *config.Config, logger *zap.Logger) *EmbedderFactory {
	return &EmbedderFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateEmbedder creates an embedder based on the configuration. Every call is
// bounded by embedder.timeout.
func (f *EmbedderFactory) CreateEmbedder(ctx context.Context) (core.Embedder, error) {
	embedderCfg := f.cfg.GetEmbedder()
	embedder, err := f.buildEmbedder(ctx, embedderCfg)
	if err != nil {
		return nil, err
	}
	if embedderCfg.Timeout > 0 {
		embedder = &timeoutEmbedder{Embedder: embedder, timeout: embedderCfg.Timeout}
	}
	return embedder, nil
}

func (f *EmbedderFactory) buildEmbedder(ctx context.Context, embedderCfg config.EmbedderConfig) (core.Embedder, error) {
	switch embedderCfg.Provider {
	case "huggingface":
		hfCfg := f.cfg.GetHuggingFace()
		hfCfg.Timeout = embedderCfg.Timeout
		return huggingface.NewEmbedder(huggingface.NewClient(hfCfg), embedderCfg.Model), nil
	case "openai":
		client, err := openai.NewAPIClient(f.cfg.GetOpenAI())
		if err != nil {
			return nil, err
		}
		return openai.NewEmbedder(client, embedderCfg.Model), nil
	case "gemini":
		client, err := gemini.NewAPIClient(ctx, f.cfg.GetGemini())
		if err != nil {
			return nil, err
		}
		return gemini.NewEmbedder(client, embedderCfg.Model), nil
	case "bedrock":
		client, err := bedrock.NewRuntimeClient(ctx, f.cfg.GetBedrock())
		if err != nil {
			return nil, err
		}
		return bedrock.NewEmbedder(client, embedderCfg.Model), nil
	case "voyage":
		return voyage.NewEmbedder(f.cfg.GetVoyage(), embedderCfg.Model)
	default:
		return nil, fmt.Errorf("unsupported embedder provider: %s", embedderCfg.Provider)
	}
}

// timeoutEmbedder bounds every call of the wrapped embedder
type timeoutEmbedder struct {
	core.Embedder
	timeout time.Duration
}

func (t *timeoutEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Embedder.Embed(ctx, text)
}

func (t *timeoutEmbedder) Close() error {
	if c, ok := t.Embedder.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
