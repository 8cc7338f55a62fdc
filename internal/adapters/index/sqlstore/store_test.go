package sqlstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.db")
	db, err := sql.Open(DriverSQLite, path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE news_embeddings (
		id TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		label TEXT,
		embedding BLOB NOT NULL
	)`)
	require.NoError(t, err)

	rows := []struct {
		id, content string
		label       any
		vector      []byte
	}{
		{"fake-1", "Miracle cure discovered", "fake", EncodeVector([]float32{1, 0})},
		{"real-1", "Central bank holds rates", "real", EncodeVector([]float32{0, 1})},
		{"fake-2", "Vaccine contains microchips", nil, EncodeVector([]float32{0.8, 0.2})},
		{"broken", "Truncated blob", "fake", []byte{1, 2, 3}},
		{"wide", "Wrong dimension", "real", EncodeVector([]float32{1, 0, 0})},
	}
	for _, r := range rows {
		_, err := db.Exec(`INSERT INTO news_embeddings (id, content, label, embedding) VALUES (?, ?, ?, ?)`,
			r.id, r.content, r.label, r.vector)
		require.NoError(t, err)
	}
	return path
}

func TestQuery(t *testing.T) {
	store, err := Open(DriverSQLite, seed(t), "news_embeddings", zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	docs, err := store.Query(context.Background(), []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "fake-1", docs[0].ID)
	assert.Equal(t, "Miracle cure discovered", docs[0].Text)
	assert.Equal(t, "fake", docs[0].Metadata["label"])
	assert.Equal(t, "fake-2", docs[1].ID)
	assert.Nil(t, docs[1].Metadata)

	all, err := store.Query(context.Background(), []float32{0, 1}, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3, "rows with unusable embeddings are skipped")
	assert.Equal(t, "real-1", all[0].ID)
}

func TestQuery_EmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open(DriverSQLite, path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE docs (id TEXT, content TEXT, label TEXT, embedding BLOB)`)
	require.NoError(t, err)

	store, err := New(db, "docs", nil)
	require.NoError(t, err)
	defer store.Close()

	docs, err := store.Query(context.Background(), []float32{1}, 3)
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestQuery_MissingTable(t *testing.T) {
	store, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "none.db"), "news_embeddings", nil)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Query(context.Background(), []float32{1}, 3)
	assert.Error(t, err)
}

func TestInvalidTableName(t *testing.T) {
	_, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "x.db"), "docs; DROP TABLE x", nil)
	assert.Error(t, err)
}

func TestVectorCodec(t *testing.T) {
	v := []float32{0.25, -1.5, 3}
	got, err := DecodeVector(EncodeVector(v))
	require.NoError(t, err)
	assert.Equal(t, v, got)

	_, err = DecodeVector(nil)
	assert.Error(t, err)
	_, err = DecodeVector([]byte{0, 0, 0})
	assert.Error(t, err)
}
