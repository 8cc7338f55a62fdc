package qdrant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mikey/news-credibility/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_Validation(t *testing.T) {
	_, err := NewStore(config.QdrantConfig{Collection: "c"})
	assert.Error(t, err)
	_, err = NewStore(config.QdrantConfig{URL: "http://localhost:6333"})
	assert.Error(t, err)
}

func TestQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/collections/fake_news/points/search", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("api-key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(3), body["limit"])
		assert.Equal(t, true, body["with_payload"])

		_, _ = w.Write([]byte(`{"status":"ok","result":[
			{"id":42,"score":0.93,"payload":{"text":"Miracle cure discovered","label":"fake","year":2020}},
			{"id":"6f1c2a4e-0000-4000-8000-000000000001","score":0.71,"payload":{"text":"Rates unchanged"}}
		]}`))
	}))
	defer srv.Close()

	store, err := NewStore(config.QdrantConfig{URL: srv.URL + "/", APIKey: "secret", Collection: "fake_news"})
	require.NoError(t, err)

	docs, err := store.Query(context.Background(), []float32{0.1, 0.2}, 3)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "42", docs[0].ID)
	assert.Equal(t, "Miracle cure discovered", docs[0].Text)
	assert.Equal(t, map[string]string{"label": "fake"}, docs[0].Metadata)
	assert.Equal(t, "6f1c2a4e-0000-4000-8000-000000000001", docs[1].ID)
	assert.Nil(t, docs[1].Metadata)
}

func TestQuery_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	store, err := NewStore(config.QdrantConfig{URL: srv.URL, Collection: "missing"})
	require.NoError(t, err)
	_, err = store.Query(context.Background(), []float32{1}, 3)
	assert.ErrorContains(t, err, "404")
}
