package factory

import (
	"context"

	"github.com/mikey/news-credibility/internal/adapters/gemini"
	"github.com/mikey/news-credibility/internal/config"
	"github.com/mikey/news-credibility/internal/core"
)

// geminiClassifier creates a Gemini classifier
func (f *ClassifierFactory) geminiClassifier(ctx context.Context, candidate config.ClassifierCandidate, labels core.LabelMap) (core.Classifier, error) {
	geminiCfg := f.cfg.GetGemini()
	client, err := gemini.NewAPIClient(ctx, geminiCfg)
	if err != nil {
		return nil, err
	}
	return gemini.NewClassifier(
		client,
		candidate.Model,
		labels.Labels(),
		geminiCfg.MaxTokens,
		geminiCfg.Temperature,
		f.logger.Named("gemini"),
	), nil
}
