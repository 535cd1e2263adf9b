// Package pgvector provides a vector index backed by PostgreSQL with the
// pgvector extension. Namespacing is a column predicate on every statement,
// and per-file replacement runs in one transaction so concurrent readers
// never observe a partial chunk set.
package pgvector

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgv "github.com/pgvector/pgvector-go"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorIndex = (*Store)(nil)

// DefaultDimensions matches OpenAI's text-embedding-3-small.
const DefaultDimensions = 1536

// Config holds configuration for the pgvector store.
type Config struct {
	// ConnString is the PostgreSQL connection string (required).
	ConnString string

	// Dimensions is the embedding vector size (default: 1536).
	// Must match the embedding service configuration.
	Dimensions int
}

// Store is a pgvector-backed tenant vector index.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL, ensures the pgvector extension and the chunks
// table exist, and returns the store.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.ConnString == "" {
		return nil, fmt.Errorf("pgvector: connection string is required")
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = DefaultDimensions
	}

	pool, err := pgxpool.New(ctx, cfg.ConnString)
	if err != nil {
		return nil, fmt.Errorf("pgvector: connect: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.initialize(ctx, cfg.Dimensions); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize(ctx context.Context, dimensions int) error {
	if _, err := s.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("pgvector: create extension: %w", err)
	}

	createTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS chunks (
			id TEXT PRIMARY KEY,
			namespace TEXT NOT NULL,
			file_id TEXT NOT NULL,
			collection_id TEXT NOT NULL,
			source_name TEXT NOT NULL,
			content TEXT NOT NULL,
			start_offset INTEGER NOT NULL,
			end_offset INTEGER NOT NULL,
			embedding_model TEXT NOT NULL,
			embedding vector(%d) NOT NULL
		)`, dimensions)
	if _, err := s.pool.Exec(ctx, createTable); err != nil {
		return fmt.Errorf("pgvector: create table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS chunks_namespace_file_idx ON chunks (namespace, file_id)`,
		`CREATE INDEX IF NOT EXISTS chunks_embedding_idx ON chunks
			USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100)`,
	}
	for _, stmt := range indexes {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("pgvector: create index: %w", err)
		}
	}
	return nil
}

// Upsert replaces the chunk sets of the files present in chunks, inside one
// transaction.
func (s *Store) Upsert(ctx context.Context, namespace string, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pgvector: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	// Replace semantics per file.
	seen := make(map[string]bool)
	for _, c := range chunks {
		if seen[c.FileID] {
			continue
		}
		seen[c.FileID] = true
		if _, err := tx.Exec(ctx,
			`DELETE FROM chunks WHERE namespace = $1 AND file_id = $2`,
			namespace, c.FileID); err != nil {
			return fmt.Errorf("pgvector: clear file %s: %w", c.FileID, err)
		}
	}

	batch := &pgx.Batch{}
	for _, c := range chunks {
		batch.Queue(`
			INSERT INTO chunks
				(id, namespace, file_id, collection_id, source_name, content,
				 start_offset, end_offset, embedding_model, embedding)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			c.ID, namespace, c.FileID, c.CollectionID, c.SourceName, c.Text,
			c.StartOffset, c.EndOffset, c.EmbeddingModelID, pgv.NewVector(c.Embedding))
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("pgvector: insert chunks: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("pgvector: commit: %w", err)
	}
	return nil
}

// DeleteFile removes all chunks belonging to the file.
func (s *Store) DeleteFile(ctx context.Context, namespace, fileID string) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM chunks WHERE namespace = $1 AND file_id = $2`,
		namespace, fileID); err != nil {
		return fmt.Errorf("pgvector: delete file %s: %w", fileID, err)
	}
	return nil
}

// Search returns the k nearest chunks within the namespace by cosine
// distance. The secondary ORDER BY on id keeps equal-distance results
// deterministic.
func (s *Store) Search(ctx context.Context, namespace string, query []float32, k int) ([]domain.RetrievedChunk, error) {
	if k <= 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, file_id, collection_id, source_name, content,
		       start_offset, end_offset, embedding_model,
		       1 - (embedding <=> $2) AS similarity
		FROM chunks
		WHERE namespace = $1
		ORDER BY embedding <=> $2, id
		LIMIT $3`,
		namespace, pgv.NewVector(query), k)
	if err != nil {
		return nil, fmt.Errorf("pgvector: search namespace %s: %w", namespace, err)
	}
	defer rows.Close()

	var results []domain.RetrievedChunk
	for rows.Next() {
		var rc domain.RetrievedChunk
		if err := rows.Scan(
			&rc.Chunk.ID, &rc.Chunk.FileID, &rc.Chunk.CollectionID,
			&rc.Chunk.SourceName, &rc.Chunk.Text,
			&rc.Chunk.StartOffset, &rc.Chunk.EndOffset,
			&rc.Chunk.EmbeddingModelID, &rc.Similarity); err != nil {
			return nil, fmt.Errorf("pgvector: scan row: %w", err)
		}
		results = append(results, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgvector: iterate rows: %w", err)
	}
	return results, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
