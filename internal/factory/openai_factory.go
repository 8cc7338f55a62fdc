package factory

import (
	"context"

	"github.com/mikey/news-credibility/internal/adapters/openai"
	"github.com/mikey/news-credibility/internal/config"
	"github.com/mikey/news-credibility/internal/core"
)

// openAIClassifier creates a chat-completion classifier
func (f *ClassifierFactory) openAIClassifier(ctx context.Context, candidate config.ClassifierCandidate, labels core.LabelMap) (core.Classifier, error) {
	openaiCfg := f.cfg.GetOpenAI()
	client, err := openai.NewAPIClient(openaiCfg)
	if err != nil {
		return nil, err
	}
	return openai.NewClassifier(
		client,
		candidate.Model,
		labels.Labels(),
		openaiCfg.MaxTokens,
		openaiCfg.Temperature,
		f.logger.Named("openai"),
	), nil
}
