package di

import (
	"context"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/news-credibility/internal/config"
	"github.com/mikey/news-credibility/internal/core"
	"github.com/mikey/news-credibility/internal/factory"
	"github.com/mikey/news-credibility/internal/logging"
	"github.com/mikey/news-credibility/internal/ports"
	"github.com/mikey/news-credibility/internal/utils"
)

// Options controls how the container is assembled
type Options struct {
	ConfigFile string
	// Console selects the console logger driven by Verbose and JSONLog
	// instead of the configured one
	Console bool
	Verbose bool
	JSONLog bool
	// Overrides are applied on top of the loaded configuration
	Overrides map[string]interface{}
}

// BuildContainer creates and configures a dependency injection container.
// ctx bounds the startup work done by providers, such as classifier probes.
func BuildContainer(ctx context.Context, opts Options) (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(func() (*config.Config, error) {
		cfg, err := config.New(opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		for key, value := range opts.Overrides {
			cfg.GetViper().Set(key, value)
		}
		return cfg, nil
	}); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(cfg *config.Config) (*zap.Logger, error) {
		if opts.Console {
			return logging.InitConsoleLogger(opts.Verbose, opts.JSONLog)
		}
		return logging.InitLogger(cfg)
	}); err != nil {
		return nil, err
	}

	// Register factories
	for _, ctor := range []interface{}{
		factory.NewClassifierFactory,
		factory.NewEmbedderFactory,
		factory.NewIndexFactory,
		factory.NewCacheFactory,
		factory.NewTextProcessorFactory,
		factory.NewFrontendFactory,
	} {
		if err := container.Provide(ctor); err != nil {
			return nil, err
		}
	}

	// Register the selected classifier
	if err := container.Provide(func(f *factory.ClassifierFactory) (*factory.SelectedClassifier, error) {
		return f.CreateClassifier(ctx)
	}); err != nil {
		return nil, err
	}

	// Register classifier, behind the result cache when enabled
	if err := container.Provide(func(sel *factory.SelectedClassifier, f *factory.CacheFactory) core.Classifier {
		return f.WrapClassifier(ctx, sel.Classifier)
	}); err != nil {
		return nil, err
	}

	// Register similarity index
	if err := container.Provide(func(f *factory.IndexFactory) core.SimilarityIndex {
		return f.CreateSimilarityIndex(ctx)
	}); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register analysis service
	if err := container.Provide(func(
		cfg *config.Config,
		classifier core.Classifier,
		index core.SimilarityIndex,
		sel *factory.SelectedClassifier,
		textProcessor *utils.TextProcessor,
		logger *zap.Logger,
	) *core.AnalysisService {
		analysis := cfg.GetAnalysis()
		return core.NewAnalysisService(classifier, index, sel.Labels, textProcessor, logger.Named("analysis"), core.AnalysisOptions{
			MinLength:          analysis.MinLength,
			MaxClassifierChars: analysis.MaxClassifierChars,
			TopK:               analysis.TopK,
		})
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(s *core.AnalysisService) ports.Analyzer { return s }); err != nil {
		return nil, err
	}

	// Register HTTP frontend
	if err := container.Provide(func(f *factory.FrontendFactory) ports.Frontend {
		return f.CreateHTTPFrontend()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
