package core

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// AnalysisRequest is a validated submission. It lives for one analysis only.
type AnalysisRequest struct {
	ID   string
	Text string
}

// LabelScore is a single (label, score) pair reported by a classifier
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassificationResult holds every class score a model reported for one text,
// in the order the model returned them
type ClassificationResult struct {
	Scores []LabelScore `json:"scores"`
	Model  string       `json:"model"`
}

// Validate checks that the result has the expected shape
func (r *ClassificationResult) Validate() error {
	if r == nil || len(r.Scores) == 0 {
		return errors.New("classification result has no scores")
	}
	for i, s := range r.Scores {
		if s.Label == "" {
			return fmt.Errorf("score %d has an empty label", i)
		}
		if math.IsNaN(s.Score) || s.Score < 0 || s.Score > 1 {
			return fmt.Errorf("score for label %q is out of range: %v", s.Label, s.Score)
		}
	}
	return nil
}

// Labels returns the labels in result order
func (r *ClassificationResult) Labels() []string {
	labels := make([]string, len(r.Scores))
	for i, s := range r.Scores {
		labels[i] = s.Label
	}
	return labels
}

// RetrievedDocument is a reference example returned by the similarity index
type RetrievedDocument struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Verdict is the binary credibility decision for one request
type Verdict struct {
	Category   Category
	Label      string
	Confidence float64
	MatchCount int
}

// NewVerdict builds a verdict from the normalizer's selection and the number
// of similar documents found
func NewVerdict(sel Selection, matchCount int) Verdict {
	if matchCount < 0 {
		matchCount = 0
	}
	return Verdict{
		Category:   sel.Category,
		Label:      sel.Label,
		Confidence: sel.Score,
		MatchCount: matchCount,
	}
}

// AnalysisReport is the terminal output of a successful analysis
type AnalysisReport struct {
	RequestID string
	Verdict   Verdict
	Documents []RetrievedDocument
	Model     string
	Text      string
	Duration  time.Duration
}
