package driven

import (
	"context"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
)

// ChunkStore persists chunk text and metadata as the sidecar to the
// vector index. The index holds only chunk IDs and vectors; the store
// resolves IDs back to text for prompt assembly.
type ChunkStore interface {
	// ReplaceAll wipes the store and writes the given documents and
	// chunks in one transaction. Called once per build run; mirrors
	// the wholesale replacement of the vector index.
	ReplaceAll(ctx context.Context, docs []domain.Document, chunks []domain.Chunk) error

	// GetChunks resolves chunk IDs to chunks, preserving the input
	// order. A missing ID is an error: it means the index and sidecar
	// are out of step.
	GetChunks(ctx context.Context, ids []string) ([]domain.Chunk, error)

	// CountChunks returns the number of stored chunks.
	CountChunks(ctx context.Context) (int, error)

	// ListDocuments returns all stored documents without content,
	// ordered by filename.
	ListDocuments(ctx context.Context) ([]domain.Document, error)
}
