package factory

import (
	"context"
	"fmt"

	"github.com/mikey/news-credibility/internal/adapters/cache"
	"github.com/mikey/news-credibility/internal/config"
	"github.com/mikey/news-credibility/internal/core"
	"go.uber.org/zap"
)

// CacheFactory creates the classification cache based on configuration
type CacheFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCacheFactory creates a new cache factory
func NewCacheFactory(cfg *config.Config, logger *zap.Logger) *CacheFactory {
	return &CacheFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateCache creates the classification cache, or nil when caching is disabled
func (f *CacheFactory) CreateCache(ctx context.Context) (core.ClassificationCache, error) {
	cacheCfg, err := f.cfg.GetCache()
	if err != nil {
		return nil, err
	}
	if !cacheCfg.Enabled {
		return nil, nil
	}

	switch cacheCfg.Type {
	case "memory":
		return cache.NewMemoryCache(cacheCfg.TTL, cacheCfg.CleanupFrequency), nil
	case "redis":
		rc := cache.NewRedisCache(cacheCfg.Redis, cacheCfg.TTL)
		if err := rc.Ping(ctx); err != nil {
			rc.Close()
			return nil, err
		}
		return rc, nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cacheCfg.Type)
	}
}

// WrapClassifier decorates classifier with the configured cache. A cache that
// cannot be created is logged and skipped.
func (f *CacheFactory) WrapClassifier(ctx context.Context, classifier core.Classifier) core.Classifier {
	c, err := f.CreateCache(ctx)
	if err != nil {
		f.logger.Warn("Classification cache unavailable, continuing without it", zap.Error(err))
		return classifier
	}
	if c == nil {
		return classifier
	}
	f.logger.Info("Classification cache enabled", zap.String("type", f.cfg.GetString("cache.type")))
	return cache.NewCachingClassifier(classifier, c, f.logger.Named("cache"))
}
