// Package flat provides an exact nearest-neighbour vector index backed
// by a single binary file.
//
// The corpus is small and the index is rebuilt wholesale, so a flat
// cosine scan is used instead of an approximate structure. Entries are
// scored against the query one by one and ties keep insertion order,
// which is ingestion order.
package flat

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
	"github.com/lawgic-labs/lawgic/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// IndexFilename is the on-disk name of the serialized index.
const IndexFilename = "index.bin"

// File format constants.
const (
	magic         = "LWVX"
	formatVersion = uint32(1)
)

// Index is a flat in-memory vector index with binary persistence.
type Index struct {
	dimension int
	model     string
	ids       []string
	vectors   [][]float32
}

// New creates an empty index for vectors of the given dimension,
// tagged with the embedding model that produces them.
func New(dimension int, model string) (*Index, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("flat: dimension must be positive, got %d", dimension)
	}
	return &Index{
		dimension: dimension,
		model:     model,
	}, nil
}

// Add appends a vector for the given chunk ID.
func (idx *Index) Add(chunkID string, embedding []float32) error {
	if chunkID == "" {
		return fmt.Errorf("flat: chunk ID is empty: %w", domain.ErrInvalidInput)
	}
	if len(embedding) != idx.dimension {
		return fmt.Errorf("flat: vector has %d dimensions, index expects %d",
			len(embedding), idx.dimension)
	}
	idx.ids = append(idx.ids, chunkID)
	idx.vectors = append(idx.vectors, embedding)
	return nil
}

// Search finds the k most similar entries to the query vector.
// Results are ordered by descending cosine similarity; equal scores
// keep insertion order. Exactly min(k, Len()) hits are returned.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("flat: query has %d dimensions, index expects %d",
			len(query), idx.dimension)
	}
	if k <= 0 {
		return nil, fmt.Errorf("flat: k must be positive, got %d", k)
	}

	type scored struct {
		pos int
		hit driven.VectorHit
	}
	results := make([]scored, len(idx.ids))
	for i := range idx.ids {
		results[i] = scored{
			pos: i,
			hit: driven.VectorHit{
				ChunkID:    idx.ids[i],
				Similarity: cosineSimilarity(query, idx.vectors[i]),
			},
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].hit.Similarity != results[j].hit.Similarity {
			return results[i].hit.Similarity > results[j].hit.Similarity
		}
		return results[i].pos < results[j].pos
	})

	if k > len(results) {
		k = len(results)
	}
	hits := make([]driven.VectorHit, k)
	for i := range hits {
		hits[i] = results[i].hit
	}
	return hits, nil
}

// Len returns the number of stored vectors.
func (idx *Index) Len() int {
	return len(idx.ids)
}

// Dimensions returns the vector size the index was created with.
func (idx *Index) Dimensions() int {
	return idx.dimension
}

// ModelName returns the embedding model the index was built with.
func (idx *Index) ModelName() string {
	return idx.model
}

// Save persists the index to path, replacing any prior file.
// The file is written to a temporary name and renamed into place so a
// crashed build never leaves a truncated index behind.
func (idx *Index) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".index-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp index file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := idx.write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("writing index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing index file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing index file: %w", err)
	}
	return nil
}

// Load reads a persisted index from path.
// A missing or corrupt file returns an error wrapping
// domain.ErrIndexUnavailable so callers can direct the user to the
// build step instead of answering from an empty context.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrIndexUnavailable, path, err)
	}
	defer f.Close()

	idx, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrIndexUnavailable, path, err)
	}
	return idx, nil
}

func (idx *Index) write(f *os.File) error {
	if _, err := f.Write([]byte(magic)); err != nil {
		return err
	}
	header := []any{
		formatVersion,
		uint32(idx.dimension),
		uint32(len(idx.ids)),
	}
	for _, v := range header {
		if err := binary.Write(f, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	if err := writeString(f, idx.model); err != nil {
		return err
	}
	for i, id := range idx.ids {
		if err := writeString(f, id); err != nil {
			return err
		}
		if err := binary.Write(f, binary.LittleEndian, idx.vectors[i]); err != nil {
			return err
		}
	}
	return nil
}

func read(f *os.File) (*Index, error) {
	head := make([]byte, len(magic))
	if _, err := f.Read(head); err != nil {
		return nil, fmt.Errorf("reading magic: %v", err)
	}
	if string(head) != magic {
		return nil, fmt.Errorf("bad magic %q", head)
	}

	var version, dimension, count uint32
	for _, v := range []*uint32{&version, &dimension, &count} {
		if err := binary.Read(f, binary.LittleEndian, v); err != nil {
			return nil, fmt.Errorf("reading header: %v", err)
		}
	}
	if version != formatVersion {
		return nil, fmt.Errorf("unsupported index version %d", version)
	}
	if dimension == 0 {
		return nil, fmt.Errorf("index has zero dimension")
	}

	model, err := readString(f)
	if err != nil {
		return nil, fmt.Errorf("reading model name: %v", err)
	}

	idx := &Index{
		dimension: int(dimension),
		model:     model,
		ids:       make([]string, 0, count),
		vectors:   make([][]float32, 0, count),
	}
	for i := uint32(0); i < count; i++ {
		id, err := readString(f)
		if err != nil {
			return nil, fmt.Errorf("reading entry %d: %v", i, err)
		}
		vec := make([]float32, dimension)
		if err := binary.Read(f, binary.LittleEndian, vec); err != nil {
			return nil, fmt.Errorf("reading vector %d: %v", i, err)
		}
		idx.ids = append(idx.ids, id)
		idx.vectors = append(idx.vectors, vec)
	}
	return idx, nil
}

func writeString(f *os.File, s string) error {
	if err := binary.Write(f, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := f.Write([]byte(s))
	return err
}

func readString(f *os.File) (string, error) {
	var n uint32
	if err := binary.Read(f, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	const maxStringLen = 1 << 20
	if n > maxStringLen {
		return "", fmt.Errorf("string length %d exceeds limit", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(f, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// cosineSimilarity computes the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
