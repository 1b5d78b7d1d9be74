package domain

import "time"

// Document represents a single corpus file after text extraction.
// It is the canonical representation produced by ingestion and is
// immutable once indexed.
type Document struct {
	// ID is the unique identifier for the document, derived from the
	// source filename so that repeated ingestion runs are stable.
	ID string

	// Filename is the source file name within the corpus directory.
	Filename string

	// Content is the full extracted text before chunking.
	Content string

	// Pages is the number of pages in the source file, when known.
	Pages int

	// IngestedAt is when the document was read during the build.
	IngestedAt time.Time
}

// Chunk is a contiguous slice of a Document and the unit of retrieval.
// Chunks are created once during the index build and never mutated.
type Chunk struct {
	// ID is the unique identifier for the chunk. It is deterministic
	// for a given document and splitter configuration.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document. It doubles
	// as the tie-breaker for equal similarity scores: lower position
	// (earlier ingestion order) ranks first.
	Position int
}
