package cache

import (
	"context"
	"errors"
	"io"

	"github.com/mikey/news-credibility/internal/core"
	"go.uber.org/zap"
)

// CachingClassifier serves repeated classifications from a cache. Cache
// failures are logged and the wrapped classifier is called instead.
type CachingClassifier struct {
	next   core.Classifier
	cache  core.ClassificationCache
	logger *zap.Logger
}

// NewCachingClassifier wraps next with cache
func NewCachingClassifier(next core.Classifier, cache core.ClassificationCache, logger *zap.Logger) *CachingClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachingClassifier{next: next, cache: cache, logger: logger}
}

// Name returns the name of the wrapped classifier
func (c *CachingClassifier) Name() string {
	return c.next.Name()
}

// Close releases the cache and the wrapped classifier when they hold
// resources
func (c *CachingClassifier) Close() error {
	var errs []error
	for _, v := range []any{c.cache, c.next} {
		if closer, ok := v.(io.Closer); ok {
			errs = append(errs, closer.Close())
		}
	}
	return errors.Join(errs...)
}

// Classify returns the cached result for text or classifies and stores it
func (c *CachingClassifier) Classify(ctx context.Context, text string) (*core.ClassificationResult, error) {
	key := Key(c.next.Name(), text)

	cached, found, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Classification cache read failed", zap.Error(err))
	} else if found && cached.Validate() == nil {
		c.logger.Debug("Classification cache hit", zap.String("model", c.next.Name()))
		return cached, nil
	}

	result, err := c.next.Classify(ctx, text)
	if err != nil {
		return nil, err
	}

	if result.Validate() == nil {
		if err := c.cache.Set(ctx, key, result); err != nil {
			c.logger.Warn("Classification cache write failed", zap.Error(err))
		}
	}
	return result, nil
}
