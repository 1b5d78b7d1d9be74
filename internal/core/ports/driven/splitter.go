package driven

import (
	"github.com/lawgic-labs/lawgic/internal/core/domain"
)

// Splitter turns a document into retrieval chunks.
//
// Splitting must be deterministic: identical document content and
// identical splitter configuration always produce identical chunk
// sequences and boundaries.
type Splitter interface {
	// Split returns the chunks of the document in position order.
	Split(doc *domain.Document) ([]domain.Chunk, error)
}
