package flat

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
)

func TestNew_RejectsNonPositiveDimension(t *testing.T) {
	_, err := New(0, "model")
	assert.Error(t, err)
	_, err = New(-3, "model")
	assert.Error(t, err)
}

func TestAdd_RejectsDimensionMismatch(t *testing.T) {
	idx, err := New(3, "model")
	require.NoError(t, err)

	assert.Error(t, idx.Add("c1", []float32{1, 2}))
	assert.NoError(t, idx.Add("c1", []float32{1, 2, 3}))
	assert.Equal(t, 1, idx.Len())
}

func TestSearch_RanksByDescendingSimilarity(t *testing.T) {
	idx, err := New(2, "model")
	require.NoError(t, err)

	require.NoError(t, idx.Add("east", []float32{1, 0}))
	require.NoError(t, idx.Add("north", []float32{0, 1}))
	require.NoError(t, idx.Add("northeast", []float32{1, 1}))

	hits, err := idx.Search(context.Background(), []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, "east", hits[0].ChunkID)
	assert.Equal(t, "northeast", hits[1].ChunkID)
	assert.Equal(t, "north", hits[2].ChunkID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
}

func TestSearch_ReturnsMinKAndIndexSize(t *testing.T) {
	idx, err := New(2, "model")
	require.NoError(t, err)
	require.NoError(t, idx.Add("only", []float32{1, 1}))

	hits, err := idx.Search(context.Background(), []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestSearch_TiesKeepInsertionOrder(t *testing.T) {
	idx, err := New(2, "model")
	require.NoError(t, err)

	// Identical vectors produce identical scores; insertion order
	// (ingestion order) must win.
	require.NoError(t, idx.Add("first", []float32{1, 0}))
	require.NoError(t, idx.Add("second", []float32{1, 0}))
	require.NoError(t, idx.Add("third", []float32{1, 0}))

	hits, err := idx.Search(context.Background(), []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{hits[0].ChunkID, hits[1].ChunkID, hits[2].ChunkID})
}

func TestSearch_RejectsBadInput(t *testing.T) {
	idx, err := New(2, "model")
	require.NoError(t, err)

	_, err = idx.Search(context.Background(), []float32{1}, 3)
	assert.Error(t, err)
	_, err = idx.Search(context.Background(), []float32{1, 0}, 0)
	assert.Error(t, err)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	idx, err := New(3, "all-minilm")
	require.NoError(t, err)
	require.NoError(t, idx.Add("c1", []float32{0.1, 0.2, 0.3}))
	require.NoError(t, idx.Add("c2", []float32{0.4, 0.5, 0.6}))

	path := filepath.Join(t.TempDir(), IndexFilename)
	require.NoError(t, idx.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
	assert.Equal(t, 3, loaded.Dimensions())
	assert.Equal(t, "all-minilm", loaded.ModelName())

	hits, err := loaded.Search(context.Background(), []float32{0.1, 0.2, 0.3}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "c1", hits[0].ChunkID)
}

func TestSave_ReplacesPriorIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, IndexFilename)

	first, err := New(2, "model")
	require.NoError(t, err)
	require.NoError(t, first.Add("old", []float32{1, 0}))
	require.NoError(t, first.Save(path))

	second, err := New(2, "model")
	require.NoError(t, err)
	require.NoError(t, second.Add("new-a", []float32{1, 0}))
	require.NoError(t, second.Add("new-b", []float32{0, 1}))
	require.NoError(t, second.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())

	hits, err := loaded.Search(context.Background(), []float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, "new-a", hits[0].ChunkID)
}

func TestLoad_MissingFileIsIndexUnavailable(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), IndexFilename))
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}

func TestLoad_CorruptFileIsIndexUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), IndexFilename)
	require.NoError(t, os.WriteFile(path, []byte("not an index"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}
