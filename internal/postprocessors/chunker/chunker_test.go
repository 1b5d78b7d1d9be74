package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
)

func TestNew_Defaults(t *testing.T) {
	s := New()
	assert.Equal(t, DefaultWindowSize, s.WindowSize())
	assert.Equal(t, DefaultOverlap, s.Overlap())
}

func TestNew_OverlapClampedBelowWindow(t *testing.T) {
	s := New(WithWindowSize(100), WithOverlap(100))
	assert.Equal(t, 25, s.Overlap())
}

func TestSplit_NilDocument(t *testing.T) {
	s := New()
	_, err := s.Split(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSplit_EmptyContent(t *testing.T) {
	s := New()
	chunks, err := s.Split(&domain.Document{ID: "doc"})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSplit_SingleChunkWhenContentFitsWindow(t *testing.T) {
	s := New(WithWindowSize(100), WithOverlap(10))
	doc := &domain.Document{ID: "doc", Content: strings.Repeat("x", 80)}

	chunks, err := s.Split(doc)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, doc.Content, chunks[0].Content)
	assert.Equal(t, 0, chunks[0].Position)
	assert.Equal(t, "doc#0000", chunks[0].ID)
}

func TestSplit_OverlapIsExact(t *testing.T) {
	// 26 letters, window 10, overlap 3: windows start at 0, 7, 14, 21.
	s := New(WithWindowSize(10), WithOverlap(3))
	doc := &domain.Document{ID: "doc", Content: "abcdefghijklmnopqrstuvwxyz"}

	chunks, err := s.Split(doc)
	require.NoError(t, err)
	require.Len(t, chunks, 4)

	assert.Equal(t, "abcdefghij", chunks[0].Content)
	assert.Equal(t, "hijklmnopq", chunks[1].Content)
	assert.Equal(t, "opqrstuvwx", chunks[2].Content)
	assert.Equal(t, "vwxyz", chunks[3].Content)

	// Every chunk after the first shares exactly the overlap with its
	// predecessor, including the short final chunk.
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1].Content
		tail := prev[len(prev)-s.Overlap():]
		assert.Equal(t, tail, chunks[i].Content[:s.Overlap()], "chunk %d", i)
	}
}

func TestSplit_ChunkLengthNeverExceedsWindow(t *testing.T) {
	s := New(WithWindowSize(50), WithOverlap(5))
	doc := &domain.Document{ID: "doc", Content: strings.Repeat("abc ", 500)}

	chunks, err := s.Split(doc)
	require.NoError(t, err)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c.Content), 50)
	}
}

func TestSplit_Deterministic(t *testing.T) {
	s1 := New(WithWindowSize(120), WithOverlap(20))
	s2 := New(WithWindowSize(120), WithOverlap(20))
	doc := &domain.Document{ID: "ipc", Content: strings.Repeat("Section 420 IPC covers cheating. ", 40)}

	first, err := s1.Split(doc)
	require.NoError(t, err)
	second, err := s2.Split(doc)
	require.NoError(t, err)

	// Identical input and configuration produce identical sequences,
	// IDs included.
	assert.Equal(t, first, second)
}

func TestSplit_MultibyteBoundaries(t *testing.T) {
	// Devanagari runes are three bytes each; byte-based windows would
	// cut them apart at chunk edges.
	s := New(WithWindowSize(5), WithOverlap(1))
	doc := &domain.Document{ID: "ipc-hi", Content: strings.Repeat("धारा ", 4)}

	chunks, err := s.Split(doc)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for i, c := range chunks {
		assert.True(t, utf8.ValidString(c.Content), "chunk %d is not valid UTF-8", i)
		assert.LessOrEqual(t, utf8.RuneCountInString(c.Content), 5, "chunk %d", i)
	}

	// Stripping the overlap and rejoining reproduces the document.
	var b strings.Builder
	b.WriteString(chunks[0].Content)
	for _, c := range chunks[1:] {
		b.WriteString(string([]rune(c.Content)[s.Overlap():]))
	}
	assert.Equal(t, doc.Content, b.String())
}

func TestSplit_PositionsAreSequential(t *testing.T) {
	s := New(WithWindowSize(10), WithOverlap(2))
	doc := &domain.Document{ID: "doc", Content: strings.Repeat("y", 100)}

	chunks, err := s.Split(doc)
	require.NoError(t, err)
	for i, c := range chunks {
		assert.Equal(t, i, c.Position)
		assert.Equal(t, "doc", c.DocumentID)
	}
}
