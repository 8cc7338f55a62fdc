// Package prompt builds the label-scoring prompt shared by the LLM classifiers
// and parses their replies.
package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mikey/news-credibility/internal/core"
)

// SystemMessage is sent as the system role where the provider supports one
const SystemMessage = "You are a news credibility classifier. Respond only with JSON."

const format = `You are a news credibility classifier. Score the following news text against each of these labels: %s.
Respond with a JSON object containing:
- scores: array of objects, one per label, each with
  - label: string (one of the labels above, spelled exactly)
  - score: number between 0 and 1 (the scores should sum to 1)

News text:
%s

Respond only with the JSON object and nothing else.`

// Reply is the structured response expected from the model
type Reply struct {
	Scores []struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	} `json:"scores"`
}

// Build formats the scoring prompt for text and the allowed labels
func Build(text string, labels []string) string {
	return fmt.Sprintf(format, strings.Join(labels, ", "), text)
}

// ParseScores extracts label scores from a model reply. Replies wrapped in
// prose or code fences are accepted as long as they contain one JSON object.
func ParseScores(reply string) ([]core.LabelScore, error) {
	var parsed Reply
	if err := json.Unmarshal([]byte(reply), &parsed); err != nil {
		jsonStart := strings.IndexByte(reply, '{')
		jsonEnd := strings.LastIndexByte(reply, '}')
		if jsonStart < 0 || jsonEnd < jsonStart {
			return nil, fmt.Errorf("failed to extract JSON from LLM response: %w", err)
		}
		if err := json.Unmarshal([]byte(reply[jsonStart:jsonEnd+1]), &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
		}
	}

	if len(parsed.Scores) == 0 {
		return nil, errors.New("LLM response contains no scores")
	}

	scores := make([]core.LabelScore, 0, len(parsed.Scores))
	for _, s := range parsed.Scores {
		scores = append(scores, core.LabelScore{Label: strings.TrimSpace(s.Label), Score: s.Score})
	}
	return scores, nil
}

// Result builds a validated classification result from a model reply
func Result(reply, model string) (*core.ClassificationResult, error) {
	scores, err := ParseScores(reply)
	if err != nil {
		return nil, err
	}
	result := &core.ClassificationResult{Scores: scores, Model: model}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}
