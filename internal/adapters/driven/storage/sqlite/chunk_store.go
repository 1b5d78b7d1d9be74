package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
	"github.com/lawgic-labs/lawgic/internal/core/ports/driven"
)

// chunkStore implements driven.ChunkStore.
type chunkStore struct {
	store *Store
}

var _ driven.ChunkStore = (*chunkStore)(nil)

// ReplaceAll wipes the sidecar and writes the given documents and
// chunks in one transaction, mirroring the wholesale replacement of
// the vector index.
func (s *chunkStore) ReplaceAll(ctx context.Context, docs []domain.Document, chunks []domain.Chunk) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}

	for i := range docs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO documents (id, filename, pages, ingested_at)
			VALUES (?, ?, ?, ?)
		`, docs[i].ID, docs[i].Filename, docs[i].Pages, docs[i].IngestedAt.UTC())
		if err != nil {
			return fmt.Errorf("inserting document %s: %w", docs[i].ID, err)
		}
	}

	for i := range chunks {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO chunks (id, document_id, content, position)
			VALUES (?, ?, ?, ?)
		`, chunks[i].ID, chunks[i].DocumentID, chunks[i].Content, chunks[i].Position)
		if err != nil {
			return fmt.Errorf("inserting chunk %s: %w", chunks[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing sidecar replacement: %w", err)
	}
	return nil
}

// GetChunks resolves chunk IDs to chunks, preserving the input order.
func (s *chunkStore) GetChunks(ctx context.Context, ids []string) ([]domain.Chunk, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids)-1) + "?"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	//nolint:gosec // placeholders are "?" repetitions, values are bound
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, content, position
		FROM chunks WHERE id IN (`+placeholders+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]domain.Chunk, len(ids))
	for rows.Next() {
		var c domain.Chunk
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.Content, &c.Position); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	chunks := make([]domain.Chunk, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			// Index and sidecar out of step: treat as a corrupt index.
			return nil, fmt.Errorf("%w: chunk %s missing from sidecar",
				domain.ErrIndexUnavailable, id)
		}
		chunks = append(chunks, c)
	}
	return chunks, nil
}

// CountChunks returns the number of stored chunks.
func (s *chunkStore) CountChunks(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// ListDocuments returns all stored documents without content, ordered
// by filename.
func (s *chunkStore) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, filename, pages, ingested_at
		FROM documents ORDER BY filename
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.Filename, &d.Pages, &d.IngestedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}
