package sqlstore

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"regexp"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mikey/news-credibility/internal/adapters/index"
	"github.com/mikey/news-credibility/internal/core"
	"go.uber.org/zap"
)

const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store searches a pre-built table of embedded documents:
//
//	id TEXT, content TEXT, label TEXT, embedding BLOB
//
// Embeddings are little-endian float32 blobs. The table is only read.
type Store struct {
	db     *sql.DB
	table  string
	logger *zap.Logger
}

// Open connects to the database holding the embeddings table
func Open(driver, dsn, table string, logger *zap.Logger) (*Store, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	return New(db, table, logger)
}

// New wraps an open database handle
func New(db *sql.DB, table string, logger *zap.Logger) (*Store, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, table: table, logger: logger}, nil
}

// Query returns up to k documents nearest to vector
func (s *Store) Query(ctx context.Context, vector []float32, k int) ([]core.RetrievedDocument, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT id, content, label, embedding FROM %s", s.table))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.table, err)
	}
	defer rows.Close()

	docs := []core.RetrievedDocument{}
	skipped := 0
	for rows.Next() {
		var (
			id, content string
			label       sql.NullString
			blob        []byte
		)
		if err := rows.Scan(&id, &content, &label, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", s.table, err)
		}
		embedding, err := DecodeVector(blob)
		if err != nil || len(embedding) != len(vector) {
			skipped++
			continue
		}
		doc := core.RetrievedDocument{
			ID:    id,
			Text:  content,
			Score: index.Cosine(vector, embedding),
		}
		if label.Valid && label.String != "" {
			doc.Metadata = map[string]string{"label": label.String}
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.table, err)
	}

	if skipped > 0 {
		s.logger.Warn("Skipped rows with unusable embeddings",
			zap.String("table", s.table),
			zap.Int("skipped", skipped))
	}
	return index.TopK(docs, k), nil
}

// Close closes the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// EncodeVector serializes a vector as little-endian float32s
func EncodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(x))
	}
	return buf
}

// DecodeVector parses a little-endian float32 blob
func DecodeVector(blob []byte) ([]float32, error) {
	if len(blob) == 0 || len(blob)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding blob length %d", len(blob))
	}
	v := make([]float32, len(blob)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[4*i:]))
	}
	return v, nil
}
