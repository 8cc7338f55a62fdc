package huggingface

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mikey/news-credibility/internal/core"
	"go.uber.org/zap"
)

// Classifier runs a text-classification model on the Inference API
type Classifier struct {
	client *Client
	model  string
	logger *zap.Logger
}

// NewClassifier creates a new text-classification classifier
func NewClassifier(client *Client, model string, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{client: client, model: model, logger: logger}
}

// Name returns the model identifier
func (c *Classifier) Name() string {
	return c.model
}

// Classify scores text with the model
func (c *Classifier) Classify(ctx context.Context, text string) (*core.ClassificationResult, error) {
	var raw json.RawMessage
	if err := c.client.infer(ctx, c.model, text, &raw); err != nil {
		return nil, err
	}

	scores, err := decodeScores(raw)
	if err != nil {
		return nil, fmt.Errorf("unexpected classification output from %s: %w", c.model, err)
	}

	result := &core.ClassificationResult{Scores: scores, Model: c.model}
	if err := result.Validate(); err != nil {
		return nil, err
	}

	c.logger.Debug("Text classified",
		zap.String("model", c.model),
		zap.Int("labels", len(scores)))
	return result, nil
}

// decodeScores accepts both the batched [[{label,score}]] and the flat
// [{label,score}] shapes the pipeline returns
func decodeScores(raw json.RawMessage) ([]core.LabelScore, error) {
	var batched [][]core.LabelScore
	if err := json.Unmarshal(raw, &batched); err == nil {
		if len(batched) == 0 {
			return nil, errors.New("empty result")
		}
		return batched[0], nil
	}

	var flat []core.LabelScore
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	return flat, nil
}
