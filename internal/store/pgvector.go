// Package store persists chunks and their embedding vectors in Postgres
// with the pgvector extension.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/dgallion1/prochunk/internal/chunker"
)

// Config for the chunk store.
type Config struct {
	ConnString string
	TableName  string
	VectorDim  int
}

// Store writes chunks and serves similarity queries.
type Store struct {
	pool  *pgxpool.Pool
	table string
	dim   int
}

// SearchResult is one similarity hit.
type SearchResult struct {
	ID             string  `json:"id"`
	DocumentNumber string  `json:"document_number"`
	DocumentTitle  string  `json:"document_title"`
	SectionTitle   string  `json:"section_title,omitempty"`
	Text           string  `json:"text"`
	ChunkIndex     int     `json:"chunk_index"`
	Distance       float64 `json:"distance"`
}

// New connects and ensures the schema exists.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.TableName == "" {
		cfg.TableName = "procedure_chunks"
	}
	if cfg.VectorDim <= 0 {
		cfg.VectorDim = 768
	}

	pool, err := pgxpool.New(ctx, cfg.ConnString)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	s := &Store{pool: pool, table: cfg.TableName, dim: cfg.VectorDim}
	if err := s.initialize(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("create vector extension: %w", err)
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			document_number TEXT NOT NULL DEFAULT '',
			document_title TEXT NOT NULL DEFAULT '',
			revision TEXT NOT NULL DEFAULT '',
			effective_date TEXT NOT NULL DEFAULT '',
			section_title TEXT NOT NULL DEFAULT '',
			heading_type TEXT NOT NULL DEFAULT '',
			heading_marker TEXT NOT NULL DEFAULT '',
			chunk_index INTEGER NOT NULL,
			word_count INTEGER NOT NULL,
			content_type TEXT NOT NULL,
			content TEXT NOT NULL,
			embedding vector(%d),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, s.table, s.dim)
	if _, err := s.pool.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	createIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS %s_embedding_idx
		ON %s
		USING ivfflat (embedding vector_cosine_ops)
		WITH (lists = 100)`, s.table, s.table)
	if _, err := s.pool.Exec(ctx, createIndex); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// InsertChunks upserts chunks with their vectors in one transaction.
// embeddings must be parallel to chunks.
func (s *Store) InsertChunks(ctx context.Context, chunks []chunker.Chunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunk/embedding count mismatch: %d vs %d", len(chunks), len(embeddings))
	}
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	stmt := fmt.Sprintf(`
		INSERT INTO %s (id, document_number, document_title, revision, effective_date,
			section_title, heading_type, heading_marker, chunk_index, word_count,
			content_type, content, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			word_count = EXCLUDED.word_count,
			embedding = EXCLUDED.embedding,
			revision = EXCLUDED.revision,
			effective_date = EXCLUDED.effective_date`, s.table)

	for i, c := range chunks {
		_, err := tx.Exec(ctx, stmt,
			c.ID, c.DocumentNumber, c.DocumentTitle, c.Revision, c.EffectiveDate,
			c.SectionTitle, c.HeadingType, c.HeadingMarker, c.ChunkIndex, c.WordCount,
			string(c.ContentType), c.Text, pgvector.NewVector(embeddings[i]), c.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert chunk %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Search returns the closest chunks by cosine distance.
func (s *Store) Search(ctx context.Context, embedding []float32, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}
	query := fmt.Sprintf(`
		SELECT id, document_number, document_title, section_title, content, chunk_index,
			embedding <=> $1 AS distance
		FROM %s
		ORDER BY distance
		LIMIT $2`, s.table)

	rows, err := s.pool.Query(ctx, query, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.DocumentNumber, &r.DocumentTitle, &r.SectionTitle,
			&r.Text, &r.ChunkIndex, &r.Distance); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// DeleteDocument removes every chunk of one document.
func (s *Store) DeleteDocument(ctx context.Context, documentNumber string) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE document_number = $1", s.table), documentNumber)
	if err != nil {
		return 0, fmt.Errorf("delete document %s: %w", documentNumber, err)
	}
	return tag.RowsAffected(), nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
