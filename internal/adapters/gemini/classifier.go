package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/mikey/news-credibility/internal/core"
	"github.com/mikey/news-credibility/internal/prompt"
	"go.uber.org/zap"
)

// contentGenerator is the part of *genai.GenerativeModel the classifier uses
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Classifier scores news text by prompting a Gemini model
type Classifier struct {
	client    *genai.Client
	model     contentGenerator
	modelName string
	labels    []string
	logger    *zap.Logger
}

// NewClassifier creates a new Gemini classifier for the given labels
func NewClassifier(
	client *genai.Client,
	modelName string,
	labels []string,
	maxTokens int,
	temperature float32,
	logger *zap.Logger,
) *Classifier {
	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetMaxOutputTokens(int32(maxTokens))
	model.ResponseMIMEType = "application/json"

	c := newClassifier(model, modelName, labels, logger)
	c.client = client
	return c
}

func newClassifier(model contentGenerator, modelName string, labels []string, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		model:     model,
		modelName: modelName,
		labels:    labels,
		logger:    logger,
	}
}

// Close closes the Gemini client
func (c *Classifier) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Name returns the model identifier
func (c *Classifier) Name() string {
	return c.modelName
}

// Classify scores text against the configured labels
func (c *Classifier) Classify(ctx context.Context, text string) (*core.ClassificationResult, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt.Build(text, c.labels)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	reply := responseText(resp)
	if reply == "" {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	result, err := prompt.Result(reply, c.modelName)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Text classified", zap.String("model", c.modelName))
	return result, nil
}

// responseText joins the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return strings.TrimSpace(sb.String())
}
