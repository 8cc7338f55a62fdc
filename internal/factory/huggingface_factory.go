package factory

import (
	"context"

	"github.com/mikey/news-credibility/internal/adapters/huggingface"
	"github.com/mikey/news-credibility/internal/config"
	"github.com/mikey/news-credibility/internal/core"
)

// huggingFaceClassifier creates a hosted text-classification classifier; its
// vocabulary is fixed by the model, so labels are only checked by the probe
func (f *ClassifierFactory) huggingFaceClassifier(ctx context.Context, candidate config.ClassifierCandidate, labels core.LabelMap) (core.Classifier, error) {
	client := huggingface.NewClient(f.cfg.GetHuggingFace())
	return huggingface.NewClassifier(client, candidate.Model, f.logger.Named("huggingface")), nil
}
