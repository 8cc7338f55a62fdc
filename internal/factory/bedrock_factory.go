package factory

import (
	"context"

	"github.com/mikey/news-credibility/internal/adapters/bedrock"
	"github.com/mikey/news-credibility/internal/config"
	"github.com/mikey/news-credibility/internal/core"
)

// bedrockClassifier creates a Bedrock classifier
func (f *ClassifierFactory) bedrockClassifier(ctx context.Context, candidate config.ClassifierCandidate, labels core.LabelMap) (core.Classifier, error) {
	bedrockCfg := f.cfg.GetBedrock()
	client, err := bedrock.NewRuntimeClient(ctx, bedrockCfg)
	if err != nil {
		return nil, err
	}
	return bedrock.NewClassifier(
		client,
		candidate.Model,
		labels.Labels(),
		bedrockCfg.MaxTokens,
		bedrockCfg.Temperature,
		f.logger.Named("bedrock"),
	), nil
}
