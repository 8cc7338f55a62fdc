package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	prompt string
	resp   *genai.GenerateContentResponse
	err    error
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	if len(parts) > 0 {
		if t, ok := parts[0].(genai.Text); ok {
			f.prompt = string(t)
		}
	}
	return f.resp, f.err
}

func textResponse(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func TestClassifier_Classify(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse(
		genai.Text(`{"scores":[{"label":"CREDIBLE","score":0.9},`),
		genai.Text(`{"label":"MISLEADING","score":0.1}]}`),
	)}
	c := newClassifier(gen, "gemini-1.5-flash", []string{"CREDIBLE", "MISLEADING"}, nil)

	res, err := c.Classify(context.Background(), "Government announces new rural roads budget")
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-flash", res.Model)
	assert.Len(t, res.Scores, 2)
	assert.Contains(t, gen.prompt, "rural roads budget")
	assert.Contains(t, gen.prompt, "CREDIBLE, MISLEADING")
}

func TestClassifier_Errors(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"api error", &fakeGenerator{err: errors.New("quota exceeded")}},
		{"no candidates", &fakeGenerator{resp: &genai.GenerateContentResponse{}}},
		{"nil content", &fakeGenerator{resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}}},
		{"not json", &fakeGenerator{resp: textResponse(genai.Text("credible, probably"))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newClassifier(tt.gen, "gemini-1.5-flash", []string{"CREDIBLE"}, nil).Classify(context.Background(), "text")
			assert.Error(t, err)
		})
	}
}

type fakeEmbedder struct {
	resp *genai.EmbedContentResponse
	err  error
}

func (f *fakeEmbedder) EmbedContent(ctx context.Context, parts ...genai.Part) (*genai.EmbedContentResponse, error) {
	return f.resp, f.err
}

func TestEmbedder_Embed(t *testing.T) {
	e := &Embedder{model: &fakeEmbedder{resp: &genai.EmbedContentResponse{
		Embedding: &genai.ContentEmbedding{Values: []float32{0.3, 0.4}},
	}}, modelName: DefaultEmbeddingModel}

	v, err := e.Embed(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.3, 0.4}, v)

	e.model = &fakeEmbedder{resp: &genai.EmbedContentResponse{}}
	_, err = e.Embed(context.Background(), "text")
	assert.Error(t, err)
}
