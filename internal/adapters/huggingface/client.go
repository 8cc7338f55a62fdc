package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mikey/news-credibility/internal/config"
)

// DefaultBaseURL is the hosted Inference API model endpoint
const DefaultBaseURL = "https://api-inference.huggingface.co/models"

// Client is a minimal REST client for the Hugging Face Inference API
type Client struct {
	baseURL      string
	apiKey       string
	waitForModel bool
	client       *http.Client
}

type inferenceRequest struct {
	Inputs  string            `json:"inputs"`
	Options *inferenceOptions `json:"options,omitempty"`
}

type inferenceOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// NewClient creates a new Inference API client
func NewClient(cfg config.HuggingFaceConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       cfg.APIKey,
		waitForModel: cfg.WaitForModel,
		client:       &http.Client{Timeout: timeout},
	}
}

// infer posts text to the model endpoint and decodes the JSON reply into out
func (c *Client) infer(ctx context.Context, model, text string, out any) error {
	body := inferenceRequest{Inputs: text}
	if c.waitForModel {
		body.Options = &inferenceOptions{WaitForModel: true}
	}
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode inference request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("inference request to %s failed: %w", model, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read inference response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("inference for %s failed: %s: %s", model, resp.Status, apiError(raw))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode inference response: %w", err)
	}
	return nil
}

// apiError extracts the error field the API returns, falling back to the raw body
func apiError(raw []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
