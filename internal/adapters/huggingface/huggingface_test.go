package huggingface

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mikey/news-credibility/internal/config"
	"github.com/mikey/news-credibility/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const fakeNewsModel = "mrm8488/distilbert-base-uncased-finetuned-fake-news"

func newServer(t *testing.T, status int, body string, check func(r *http.Request, req inferenceRequest)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req inferenceRequest
		require.NoError(t, json.Unmarshal(raw, &req))
		if check != nil {
			check(r, req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(url string) *Client {
	return NewClient(config.HuggingFaceConfig{BaseURL: url, APIKey: "hf_test", WaitForModel: true})
}

func TestClassifier_BatchedOutput(t *testing.T) {
	srv := newServer(t, http.StatusOK, `[[{"label":"LABEL_1","score":0.92},{"label":"LABEL_0","score":0.08}]]`,
		func(r *http.Request, req inferenceRequest) {
			assert.Equal(t, "/"+fakeNewsModel, r.URL.Path)
			assert.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))
			assert.Equal(t, "Government announces budget", req.Inputs)
			require.NotNil(t, req.Options)
			assert.True(t, req.Options.WaitForModel)
		})

	c := NewClassifier(newTestClient(srv.URL), fakeNewsModel, zap.NewNop())
	res, err := c.Classify(context.Background(), "Government announces budget")
	require.NoError(t, err)
	assert.Equal(t, fakeNewsModel, res.Model)
	assert.Equal(t, []core.LabelScore{{Label: "LABEL_1", Score: 0.92}, {Label: "LABEL_0", Score: 0.08}}, res.Scores)
}

func TestClassifier_FlatOutput(t *testing.T) {
	srv := newServer(t, http.StatusOK, `[{"label":"NEGATIVE","score":0.7},{"label":"POSITIVE","score":0.3}]`, nil)

	res, err := NewClassifier(newTestClient(srv.URL), "sst2", nil).Classify(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "NEGATIVE", res.Scores[0].Label)
}

func TestClassifier_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"model loading", http.StatusServiceUnavailable, `{"error":"Model is currently loading"}`, "Model is currently loading"},
		{"unexpected shape", http.StatusOK, `{"generated_text":"hi"}`, "unexpected classification output"},
		{"empty batch", http.StatusOK, `[]`, "empty result"},
		{"empty scores", http.StatusOK, `[[]]`, "no scores"},
		{"score out of range", http.StatusOK, `[[{"label":"FAKE","score":3}]]`, "out of range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, tt.status, tt.body, nil)
			_, err := NewClassifier(newTestClient(srv.URL), "m", nil).Classify(context.Background(), "text")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEmbedder_Shapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []float32
	}{
		{"pooled", `[0.1, 0.2, 0.3]`, []float32{0.1, 0.2, 0.3}},
		{"token level", `[[1, 2], [3, 4]]`, []float32{2, 3}},
		{"batched token level", `[[[1, 0], [0, 1]]]`, []float32{0.5, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, http.StatusOK, tt.body, nil)
			e := NewEmbedder(newTestClient(srv.URL), "sentence-transformers/all-MiniLM-L6-v2")
			v, err := e.Embed(context.Background(), "text")
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, v, 1e-6)
		})
	}
}

func TestEmbedder_Errors(t *testing.T) {
	for _, body := range []string{`[]`, `[[1, 2], [3]]`, `"nope"`} {
		srv := newServer(t, http.StatusOK, body, nil)
		_, err := NewEmbedder(newTestClient(srv.URL), "m").Embed(context.Background(), "text")
		assert.Error(t, err, body)
	}
}

func TestClient_NoAuthHeaderWithoutKey(t *testing.T) {
	srv := newServer(t, http.StatusOK, `[0.5]`, func(r *http.Request, req inferenceRequest) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Nil(t, req.Options)
	})
	client := NewClient(config.HuggingFaceConfig{BaseURL: srv.URL + "/"})
	_, err := NewEmbedder(client, "m").Embed(context.Background(), "text")
	require.NoError(t, err)
}
