package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mikey/news-credibility/internal/config"
	"github.com/mikey/news-credibility/internal/core"
	"github.com/mikey/news-credibility/internal/prompt"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// NewAPIClient creates a go-openai client, honouring a custom base URL for
// OpenAI-compatible endpoints
func NewAPIClient(cfg config.OpenAIConfig) (*openai.Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai.api_key is not set")
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return openai.NewClientWithConfig(clientCfg), nil
}

// Classifier scores news text by prompting an OpenAI chat model
type Classifier struct {
	client      *openai.Client
	modelName   string
	labels      []string
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

// NewClassifier creates a new chat-completion classifier for the given labels
func NewClassifier(
	client *openai.Client,
	modelName string,
	labels []string,
	maxTokens int,
	temperature float32,
	logger *zap.Logger,
) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		client:      client,
		modelName:   modelName,
		labels:      labels,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// Name returns the model identifier
func (c *Classifier) Name() string {
	return c.modelName
}

// Classify scores text against the configured labels
func (c *Classifier) Classify(ctx context.Context, text string) (*core.ClassificationResult, error) {
	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: prompt.SystemMessage,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt.Build(text, c.labels),
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	result, err := prompt.Result(resp.Choices[0].Message.Content, c.modelName)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Text classified",
		zap.String("model", c.modelName),
		zap.String("completion_id", resp.ID))
	return result, nil
}
