// Package chunker provides the deterministic sliding-window splitter
// used by the index build.
package chunker

import (
	"fmt"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
	"github.com/lawgic-labs/lawgic/internal/core/ports/driven"
)

// Ensure Splitter implements the interface.
var _ driven.Splitter = (*Splitter)(nil)

// DefaultWindowSize is the default number of characters per chunk.
const DefaultWindowSize = 1000

// DefaultOverlap is the default number of characters shared between
// adjacent chunks of the same document.
const DefaultOverlap = 50

// Splitter splits document content into fixed-size overlapping chunks.
//
// Chunk IDs are derived from the document ID and chunk position rather
// than random UUIDs so that two builds over identical input produce
// byte-identical chunk sequences.
type Splitter struct {
	windowSize int
	overlap    int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithWindowSize sets the chunk size in characters.
func WithWindowSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.windowSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a new splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		windowSize: DefaultWindowSize,
		overlap:    DefaultOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Overlap must leave a positive step.
	if s.overlap >= s.windowSize {
		s.overlap = s.windowSize / 4
	}

	return s
}

// WindowSize returns the configured chunk size.
func (s *Splitter) WindowSize() int {
	return s.windowSize
}

// Overlap returns the configured overlap.
func (s *Splitter) Overlap() int {
	return s.overlap
}

// Split returns the chunks of the document in position order.
// Every chunk after the first shares exactly the configured overlap
// with its predecessor, except possibly the final chunk, which may be
// shorter than the window. Windows are measured in runes, so a
// multibyte character never straddles a chunk boundary.
func (s *Splitter) Split(doc *domain.Document) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, domain.ErrInvalidInput
	}
	if doc.Content == "" {
		return nil, nil
	}

	content := []rune(doc.Content)
	contentLen := len(content)
	step := s.windowSize - s.overlap

	chunks := make([]domain.Chunk, 0, contentLen/step+1)
	position := 0

	for start := 0; start < contentLen; start += step {
		end := start + s.windowSize
		if end > contentLen {
			end = contentLen
		}

		chunks = append(chunks, domain.Chunk{
			ID:         chunkID(doc.ID, position),
			DocumentID: doc.ID,
			Content:    string(content[start:end]),
			Position:   position,
		})
		position++

		if end == contentLen {
			break
		}
	}

	return chunks, nil
}

// chunkID builds the deterministic chunk identifier.
func chunkID(docID string, position int) string {
	return fmt.Sprintf("%s#%04d", docID, position)
}
