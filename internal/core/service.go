package core

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mikey/news-credibility/internal/utils"
)

const (
	// DefaultMaxClassifierChars is the input limit of the default models
	DefaultMaxClassifierChars = 512
	// DefaultTopK is the number of similar documents looked up per request
	DefaultTopK = 3
)

// AnalysisOptions tunes the analysis engine
type AnalysisOptions struct {
	MinLength          int
	MaxClassifierChars int
	TopK               int
}

// DefaultAnalysisOptions returns the limits the default models expect
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		MinLength:          DefaultMinLength,
		MaxClassifierChars: DefaultMaxClassifierChars,
		TopK:               DefaultTopK,
	}
}

// AnalysisService is the core credibility analysis engine
type AnalysisService struct {
	classifier    Classifier
	index         SimilarityIndex
	labels        LabelMap
	textProcessor *utils.TextProcessor
	logger        *zap.Logger
	opts          AnalysisOptions
}

// NewAnalysisService creates a new analysis service. The classifier and index
// are shared by all requests and must be safe for concurrent use.
func NewAnalysisService(
	classifier Classifier,
	index SimilarityIndex,
	labels LabelMap,
	textProcessor *utils.TextProcessor,
	logger *zap.Logger,
	opts AnalysisOptions,
) *AnalysisService {
	defaults := DefaultAnalysisOptions()
	if opts.MinLength <= 0 {
		opts.MinLength = defaults.MinLength
	}
	if opts.MaxClassifierChars <= 0 {
		opts.MaxClassifierChars = defaults.MaxClassifierChars
	}
	if opts.TopK <= 0 {
		opts.TopK = defaults.TopK
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if textProcessor == nil {
		textProcessor = utils.NewTextProcessor(logger)
	}

	return &AnalysisService{
		classifier:    classifier,
		index:         index,
		labels:        labels,
		textProcessor: textProcessor,
		logger:        logger,
		opts:          opts,
	}
}

// ClassifierName returns the name of the active classifier
func (s *AnalysisService) ClassifierName() string {
	return s.classifier.Name()
}

// Analyze runs the full pipeline on raw user text. The returned error is a
// *ValidationError or a *ClassificationError, retrieval failures are absorbed.
func (s *AnalysisService) Analyze(ctx context.Context, raw string) (*AnalysisReport, error) {
	text, err := ValidateInput(raw, s.opts.MinLength)
	if err != nil {
		return nil, err
	}

	req := AnalysisRequest{ID: uuid.NewString(), Text: text}
	logger := s.logger.With(zap.String("request_id", req.ID))
	startTime := time.Now()

	var (
		result *ClassificationResult
		docs   []RetrievedDocument
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result, err = s.classify(gctx, req.Text)
		return err
	})
	g.Go(func() error {
		docs = s.lookup(gctx, logger, req.Text)
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("Classification failed", zap.Error(err))
		return nil, err
	}

	sel, err := Normalize(result, s.labels)
	if err != nil {
		logger.Error("Failed to normalize classification",
			zap.Error(err),
			zap.Strings("labels", result.Labels()))
		return nil, &ClassificationError{Model: result.Model, Err: err}
	}

	verdict := NewVerdict(sel, len(docs))
	duration := time.Since(startTime)

	logger.Info("Analysis complete",
		zap.String("category", string(verdict.Category)),
		zap.String("label", verdict.Label),
		zap.Float64("confidence", verdict.Confidence),
		zap.Int("matches", verdict.MatchCount),
		zap.String("model", result.Model),
		zap.Duration("duration", duration))

	return &AnalysisReport{
		RequestID: req.ID,
		Verdict:   verdict,
		Documents: docs,
		Model:     result.Model,
		Text:      RenderReport(verdict),
		Duration:  duration,
	}, nil
}

// AnalyzeText returns the report text, or the error message that replaces it
func (s *AnalysisService) AnalyzeText(ctx context.Context, raw string) string {
	report, err := s.Analyze(ctx, raw)
	if err != nil {
		return RenderError(err)
	}
	return report.Text
}

// classify truncates the text to the classifier input limit and calls the
// classifier once
func (s *AnalysisService) classify(ctx context.Context, text string) (*ClassificationResult, error) {
	input := s.textProcessor.ProcessText(text, s.opts.MaxClassifierChars)

	result, err := s.classifier.Classify(ctx, input)
	if err != nil {
		var cerr *ClassificationError
		if errors.As(err, &cerr) {
			return nil, cerr
		}
		return nil, &ClassificationError{Model: s.classifier.Name(), Err: err}
	}
	if result == nil {
		return nil, &ClassificationError{Model: s.classifier.Name(), Err: errors.New("classifier returned no result")}
	}
	if result.Model == "" {
		named := *result
		named.Model = s.classifier.Name()
		return &named, nil
	}
	return result, nil
}

// lookup queries the similarity index, any failure counts as zero matches
func (s *AnalysisService) lookup(ctx context.Context, logger *zap.Logger, text string) []RetrievedDocument {
	if s.index == nil {
		return nil
	}

	docs, err := s.index.Search(ctx, text, s.opts.TopK)
	if err != nil {
		var rerr *RetrievalError
		if !errors.As(err, &rerr) {
			rerr = &RetrievalError{Err: err}
		}
		logger.Warn("Similarity lookup failed, continuing without matches", zap.Error(rerr))
		return nil
	}
	if len(docs) > s.opts.TopK {
		docs = docs[:s.opts.TopK]
	}
	return docs
}
