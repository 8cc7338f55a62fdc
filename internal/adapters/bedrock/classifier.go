package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mikey/news-credibility/internal/core"
	"github.com/mikey/news-credibility/internal/prompt"
	"go.uber.org/zap"
)

// Classifier scores news text by prompting a Bedrock hosted model
type Classifier struct {
	client      invoker
	modelID     string
	labels      []string
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

// NewClassifier creates a new Bedrock classifier for the given labels
func NewClassifier(
	client invoker,
	modelID string,
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
		modelID:     modelID,
		labels:      labels,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// Name returns the model identifier
func (c *Classifier) Name() string {
	return c.modelID
}

// Classify scores text against the configured labels
func (c *Classifier) Classify(ctx context.Context, text string) (*core.ClassificationResult, error) {
	payload, err := c.requestBody(prompt.Build(text, c.labels))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	body, err := invokeJSON(ctx, c.client, c.modelID, payload)
	if err != nil {
		return nil, err
	}

	reply, err := c.responseText(body)
	if err != nil {
		return nil, err
	}

	result, err := prompt.Result(reply, c.modelID)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("Text classified", zap.String("model", c.modelID))
	return result, nil
}

func (c *Classifier) requestBody(text string) ([]byte, error) {
	switch {
	case c.isAnthropicModel():
		return json.Marshal(map[string]interface{}{
			"anthropic_version": "bedrock-2023-05-31",
			"max_tokens":        c.maxTokens,
			"temperature":       c.temperature,
			"system":            prompt.SystemMessage,
			"messages": []map[string]interface{}{
				{"role": "user", "content": text},
			},
		})
	case c.isAmazonTitanModel():
		return json.Marshal(map[string]interface{}{
			"inputText": text,
			"textGenerationConfig": map[string]interface{}{
				"maxTokenCount": c.maxTokens,
				"temperature":   c.temperature,
			},
		})
	default:
		return json.Marshal(map[string]interface{}{
			"prompt":      text,
			"max_tokens":  c.maxTokens,
			"temperature": c.temperature,
		})
	}
}

func (c *Classifier) responseText(body []byte) (string, error) {
	switch {
	case c.isAnthropicModel():
		var claudeResp struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		}
		if err := json.Unmarshal(body, &claudeResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Claude response: %w", err)
		}
		var sb strings.Builder
		for _, block := range claudeResp.Content {
			if block.Type == "text" {
				sb.WriteString(block.Text)
			}
		}
		if sb.Len() == 0 {
			return "", fmt.Errorf("empty response from Claude model")
		}
		return sb.String(), nil
	case c.isAmazonTitanModel():
		var titanResp struct {
			Results []struct {
				OutputText string `json:"outputText"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &titanResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Titan response: %w", err)
		}
		if len(titanResp.Results) == 0 {
			return "", fmt.Errorf("empty response from Titan model")
		}
		return titanResp.Results[0].OutputText, nil
	default:
		var genericResp struct {
			Output     string `json:"output"`
			Text       string `json:"text"`
			Response   string `json:"response"`
			Generation string `json:"generation"`
		}
		if err := json.Unmarshal(body, &genericResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal generic response: %w", err)
		}
		for _, s := range []string{genericResp.Output, genericResp.Text, genericResp.Response, genericResp.Generation} {
			if s != "" {
				return s, nil
			}
		}
		return string(body), nil
	}
}

// isAnthropicModel checks if the model is an Anthropic Claude model
func (c *Classifier) isAnthropicModel() bool {
	return strings.HasPrefix(c.modelID, "anthropic.claude") || strings.Contains(c.modelID, ".anthropic.claude")
}

// isAmazonTitanModel checks if the model is an Amazon Titan model
func (c *Classifier) isAmazonTitanModel() bool {
	return strings.HasPrefix(c.modelID, "amazon.titan")
}
