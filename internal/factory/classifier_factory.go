package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mikey/news-credibility/internal/config"
	"github.com/mikey/news-credibility/internal/core"
	"go.uber.org/zap"
)

const defaultProbeTimeout = 60 * time.Second

// ClassifierBuilder constructs the classifier of one candidate
type ClassifierBuilder func(ctx context.Context, candidate config.ClassifierCandidate, labels core.LabelMap) (core.Classifier, error)

// SelectedClassifier is the candidate that won startup selection
type SelectedClassifier struct {
	Classifier core.Classifier
	Labels     core.LabelMap
	Candidate  config.ClassifierCandidate
}

// ClassifierFactory picks the first usable classifier candidate
type ClassifierFactory struct {
	cfg      *config.Config
	logger   *zap.Logger
	builders map[string]ClassifierBuilder
}

// NewClassifierFactory creates a new classifier factory with every built-in
// provider registered
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger) *ClassifierFactory {
	f := &ClassifierFactory{
		cfg:      cfg,
		logger:   logger,
		builders: map[string]ClassifierBuilder{},
	}
	f.RegisterProvider("huggingface", f.huggingFaceClassifier)
	f.RegisterProvider("openai", f.openAIClassifier)
	f.RegisterProvider("gemini", f.geminiClassifier)
	f.RegisterProvider("bedrock", f.bedrockClassifier)
	return f
}

// RegisterProvider installs or replaces the builder of a provider
func (f *ClassifierFactory) RegisterProvider(name string, builder ClassifierBuilder) {
	f.builders[strings.ToLower(name)] = builder
}

// CreateClassifier tries the configured candidates in order and returns the
// first one that constructs and passes its probe
func (f *ClassifierFactory) CreateClassifier(ctx context.Context) (*SelectedClassifier, error) {
	candidates, err := f.cfg.GetClassifierCandidates()
	if err != nil {
		return nil, err
	}

	var errs []error
	for i, candidate := range candidates {
		logger := f.logger.With(
			zap.Int("candidate", i),
			zap.String("name", candidate.Name),
			zap.String("provider", candidate.Provider),
			zap.String("model", candidate.Model))

		selected, err := f.tryCandidate(ctx, candidate)
		if err != nil {
			logger.Warn("Classifier candidate unavailable", zap.Error(err))
			errs = append(errs, fmt.Errorf("candidate %s: %w", candidate.Name, err))
			continue
		}

		logger.Info("Classifier selected", zap.Strings("labels", selected.Labels.Labels()))
		return selected, nil
	}
	return nil, fmt.Errorf("no classifier candidate is usable: %w", errors.Join(errs...))
}

func (f *ClassifierFactory) tryCandidate(ctx context.Context, candidate config.ClassifierCandidate) (*SelectedClassifier, error) {
	labels, err := ResolveLabels(candidate)
	if err != nil {
		return nil, err
	}

	builder, ok := f.builders[strings.ToLower(candidate.Provider)]
	if !ok {
		return nil, fmt.Errorf("unsupported classifier provider: %s", candidate.Provider)
	}
	if candidate.Model == "" {
		return nil, errors.New("model is not set")
	}

	classifier, err := builder(ctx, candidate, labels)
	if err != nil {
		return nil, err
	}
	timeout := candidate.Timeout
	if timeout <= 0 {
		timeout = f.providerTimeout(candidate.Provider)
	}
	if timeout > 0 {
		classifier = withTimeout(classifier, timeout)
	}

	if candidate.Probe {
		if err := f.probe(ctx, classifier, labels, timeout); err != nil {
			closeQuietly(classifier)
			return nil, fmt.Errorf("probe failed: %w", err)
		}
	}

	return &SelectedClassifier{Classifier: classifier, Labels: labels, Candidate: candidate}, nil
}

// probe classifies a fixed text once and checks every emitted label is mapped
func (f *ClassifierFactory) probe(ctx context.Context, classifier core.Classifier, labels core.LabelMap, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text := f.cfg.GetString("classifier.probe_text")
	if text == "" {
		text = "Scientists publish peer reviewed study on climate trends."
	}

	result, err := classifier.Classify(ctx, text)
	if err != nil {
		return err
	}
	if err := result.Validate(); err != nil {
		return err
	}
	return labels.Covers(result.Labels())
}

// ResolveLabels builds the label map of a candidate from its explicit rules,
// its preset, or the provider default
func ResolveLabels(candidate config.ClassifierCandidate) (core.LabelMap, error) {
	if table := candidate.LabelTable(); table != nil {
		return core.NewLabelMap(table)
	}

	preset := candidate.LabelsPreset
	if preset == "" {
		preset = defaultPreset(candidate.Provider)
	}
	table, ok := core.PresetLabels(preset)
	if !ok {
		return core.LabelMap{}, fmt.Errorf("unknown labels preset: %s", preset)
	}
	return core.NewLabelMap(table)
}

// providerTimeout is the per-call timeout of the provider section, used when
// the candidate sets none
func (f *ClassifierFactory) providerTimeout(provider string) time.Duration {
	switch strings.ToLower(provider) {
	case "huggingface":
		return f.cfg.GetHuggingFace().Timeout
	case "openai":
		return f.cfg.GetOpenAI().Timeout
	case "gemini":
		return f.cfg.GetGemini().Timeout
	case "bedrock":
		return f.cfg.GetBedrock().Timeout
	default:
		return 0
	}
}

func defaultPreset(provider string) string {
	if strings.EqualFold(provider, "huggingface") {
		return "fake-news"
	}
	return "credibility"
}

func closeQuietly(v any) {
	if c, ok := v.(io.Closer); ok {
		_ = c.Close()
	}
}

// timeoutClassifier bounds every call of the wrapped classifier
type timeoutClassifier struct {
	core.Classifier
	timeout time.Duration
}

func withTimeout(c core.Classifier, timeout time.Duration) core.Classifier {
	return &timeoutClassifier{Classifier: c, timeout: timeout}
}

func (t *timeoutClassifier) Classify(ctx context.Context, text string) (*core.ClassificationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Classifier.Classify(ctx, text)
}

func (t *timeoutClassifier) Close() error {
	if c, ok := t.Classifier.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
