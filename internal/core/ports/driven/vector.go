package driven

import "context"

// VectorIndex provides similarity search over chunk embeddings.
//
// The index is built once per build run and replaced wholesale; there
// is no incremental update. At query time it is read-only and safe to
// share across concurrent requests.
type VectorIndex interface {
	// Add appends a vector for the given chunk ID. Insertion order is
	// the tie-break order for equal-similarity search results.
	Add(chunkID string, embedding []float32) error

	// Search finds the k most similar entries to the query vector,
	// ordered by descending similarity with stable ties. It returns
	// exactly min(k, Len()) hits.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of stored vectors.
	Len() int

	// Dimensions returns the vector size the index was created with.
	Dimensions() int

	// ModelName returns the embedding model the index was built with.
	ModelName() string

	// Save persists the index to the given path, replacing any prior
	// index file.
	Save(path string) error
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Similarity is the cosine similarity score.
	Similarity float64
}
