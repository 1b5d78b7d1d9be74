package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
	"github.com/lawgic-labs/lawgic/internal/core/ports/driven"
	"github.com/lawgic-labs/lawgic/internal/core/ports/driving"
	"github.com/lawgic-labs/lawgic/internal/logger"
)

// Ensure BuildService implements the interface.
var _ driving.IndexBuilder = (*BuildService)(nil)

// Embedding batch defaults. Hosted embedding endpoints throttle
// aggressively; batches are paced rather than fired back to back.
const (
	defaultEmbedBatchSize     = 64
	defaultEmbedBatchesPerSec = 2
	defaultEmbedBurst         = 1
)

// IndexWriter is the subset of driven.VectorIndex the build needs,
// plus construction. It lets tests substitute an in-memory index.
type IndexWriter interface {
	Add(chunkID string, embedding []float32) error
	Save(path string) error
	Len() int
}

// NewIndexFunc constructs an empty index for the given dimension and
// model name.
type NewIndexFunc func(dimension int, model string) (IndexWriter, error)

// BuildService implements driving.IndexBuilder.
type BuildService struct {
	corpusDir  string
	indexPath  string
	normaliser driven.Normaliser
	splitter   driven.Splitter
	embedder   driven.EmbeddingService
	chunks     driven.ChunkStore
	newIndex   NewIndexFunc

	batchSize int
	limiter   *rate.Limiter
}

// BuildOption configures a BuildService.
type BuildOption func(*BuildService)

// WithEmbedBatchSize sets how many chunks are embedded per request.
func WithEmbedBatchSize(n int) BuildOption {
	return func(s *BuildService) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithEmbedRateLimit caps embedding batches per second.
func WithEmbedRateLimit(batchesPerSec float64) BuildOption {
	return func(s *BuildService) {
		if batchesPerSec > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(batchesPerSec), defaultEmbedBurst)
		}
	}
}

// NewBuildService creates the offline index builder.
// indexPath is the full path the built index is saved to.
func NewBuildService(
	corpusDir string,
	indexPath string,
	normaliser driven.Normaliser,
	splitter driven.Splitter,
	embedder driven.EmbeddingService,
	chunks driven.ChunkStore,
	newIndex NewIndexFunc,
	opts ...BuildOption,
) *BuildService {
	s := &BuildService{
		corpusDir:  corpusDir,
		indexPath:  indexPath,
		normaliser: normaliser,
		splitter:   splitter,
		embedder:   embedder,
		chunks:     chunks,
		newIndex:   newIndex,
		batchSize:  defaultEmbedBatchSize,
		limiter:    rate.NewLimiter(rate.Limit(defaultEmbedBatchesPerSec), defaultEmbedBurst),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build ingests the corpus, embeds every chunk and replaces the
// persisted index and chunk sidecar wholesale. Any embedding failure
// fails the whole build; a partial index would silently narrow every
// future answer.
func (s *BuildService) Build(ctx context.Context) (*driving.BuildReport, error) {
	files, err := s.discover()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", s.corpusDir, domain.ErrEmptyCorpus)
	}

	logger.Section("Ingesting corpus")

	var (
		docs      []domain.Document
		allChunks []domain.Chunk
	)
	for _, filename := range files {
		path := filepath.Join(s.corpusDir, filename)
		text, pages, err := s.normaliser.Extract(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("ingesting %s: %w", filename, err)
		}

		doc := domain.Document{
			// Filename doubles as the document ID: it is unique within
			// the corpus directory and keeps chunk IDs stable across
			// rebuilds of identical content.
			ID:         filename,
			Filename:   filename,
			Content:    text,
			Pages:      pages,
			IngestedAt: time.Now().UTC(),
		}

		chunks, err := s.splitter.Split(&doc)
		if err != nil {
			return nil, fmt.Errorf("splitting %s: %w", filename, err)
		}

		logger.Debug("ingested %s: %d pages, %d chunks", filename, pages, len(chunks))
		docs = append(docs, doc)
		allChunks = append(allChunks, chunks...)
	}

	logger.Section("Embedding chunks")

	index, err := s.newIndex(s.embedder.Dimensions(), s.embedder.ModelName())
	if err != nil {
		return nil, fmt.Errorf("creating index: %w", err)
	}

	for start := 0; start < len(allChunks); start += s.batchSize {
		end := start + s.batchSize
		if end > len(allChunks) {
			end = len(allChunks)
		}
		batch := allChunks[start:end]

		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Content
		}
		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embedding chunks %d-%d: %w", start, end-1, err)
		}

		for i, c := range batch {
			if err := index.Add(c.ID, vectors[i]); err != nil {
				return nil, fmt.Errorf("indexing chunk %s: %w", c.ID, err)
			}
		}
		logger.Debug("embedded %d/%d chunks", end, len(allChunks))
	}

	logger.Section("Persisting index")

	// Sidecar first, then the index. The index file is what readers
	// probe for, so it only appears once its chunk texts are in place.
	if err := s.chunks.ReplaceAll(ctx, docs, allChunks); err != nil {
		return nil, fmt.Errorf("replacing chunk sidecar: %w", err)
	}
	if err := index.Save(s.indexPath); err != nil {
		return nil, fmt.Errorf("saving index: %w", err)
	}

	logger.Info("built index: %d documents, %d chunks", len(docs), len(allChunks))

	return &driving.BuildReport{
		Documents: len(docs),
		Chunks:    len(allChunks),
		IndexPath: s.indexPath,
	}, nil
}

// discover lists corpus filenames with a supported extension, sorted
// for a deterministic ingestion order. A missing corpus directory is
// reported as an empty corpus, not an I/O error.
func (s *BuildService) discover() ([]string, error) {
	entries, err := os.ReadDir(s.corpusDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", s.corpusDir, domain.ErrEmptyCorpus)
		}
		return nil, fmt.Errorf("reading corpus directory: %w", err)
	}

	supported := make(map[string]bool)
	for _, ext := range s.normaliser.Extensions() {
		supported[ext] = true
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if supported[ext] {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
