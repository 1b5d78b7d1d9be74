package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
	"github.com/lawgic-labs/lawgic/internal/core/ports/driven"
)

// stubEmbedder returns a fixed vector for every text.
type stubEmbedder struct {
	dims      int
	err       error
	embedded  []string
	batchSize []int
}

func (e *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.embedded = append(e.embedded, text)
	vec := make([]float32, e.dims)
	vec[0] = 1
	return vec, nil
}

func (e *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.batchSize = append(e.batchSize, len(texts))
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (e *stubEmbedder) Dimensions() int            { return e.dims }
func (e *stubEmbedder) ModelName() string          { return "stub-embedder" }
func (e *stubEmbedder) Ping(context.Context) error { return nil }
func (e *stubEmbedder) Close() error               { return nil }

// stubIndex returns preset hits and records the requested k.
type stubIndex struct {
	hits   []driven.VectorHit
	askedK int
}

func (i *stubIndex) Add(string, []float32) error { return nil }

func (i *stubIndex) Search(_ context.Context, _ []float32, k int) ([]driven.VectorHit, error) {
	i.askedK = k
	if k > len(i.hits) {
		k = len(i.hits)
	}
	return i.hits[:k], nil
}

func (i *stubIndex) Len() int          { return len(i.hits) }
func (i *stubIndex) Dimensions() int   { return 2 }
func (i *stubIndex) ModelName() string { return "stub-embedder" }
func (i *stubIndex) Save(string) error { return nil }

// memChunkStore resolves chunk IDs from an in-memory map and records
// ReplaceAll calls.
type memChunkStore struct {
	chunks   map[string]string
	replaced struct {
		docs   []domain.Document
		chunks []domain.Chunk
		calls  int
	}
}

func newMemChunkStore() *memChunkStore {
	return &memChunkStore{chunks: make(map[string]string)}
}

func (s *memChunkStore) ReplaceAll(_ context.Context, docs []domain.Document, chunks []domain.Chunk) error {
	s.replaced.docs = docs
	s.replaced.chunks = chunks
	s.replaced.calls++
	s.chunks = make(map[string]string, len(chunks))
	for _, c := range chunks {
		s.chunks[c.ID] = c.Content
	}
	return nil
}

func (s *memChunkStore) GetChunks(_ context.Context, ids []string) ([]domain.Chunk, error) {
	out := make([]domain.Chunk, 0, len(ids))
	for _, id := range ids {
		content, ok := s.chunks[id]
		if !ok {
			return nil, fmt.Errorf("chunk %s: %w", id, domain.ErrIndexUnavailable)
		}
		out = append(out, domain.Chunk{ID: id, Content: content})
	}
	return out, nil
}

func (s *memChunkStore) CountChunks(context.Context) (int, error) {
	return len(s.chunks), nil
}

func (s *memChunkStore) ListDocuments(context.Context) ([]domain.Document, error) {
	return nil, nil
}

// spyLLM records the prompts it was given.
type spyLLM struct {
	completion string
	err        error
	prompts    []string
	opts       []driven.GenerateOptions
}

func (l *spyLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	l.prompts = append(l.prompts, prompt)
	l.opts = append(l.opts, opts)
	if l.err != nil {
		return "", l.err
	}
	return l.completion, nil
}

func (l *spyLLM) ModelName() string          { return "spy-llm" }
func (l *spyLLM) Ping(context.Context) error { return nil }
func (l *spyLLM) Close() error               { return nil }

// funcTranslator adapts a function to driven.Translator.
type funcTranslator func(text, source, target string) string

func (f funcTranslator) Translate(_ context.Context, text, source, target string) string {
	return f(text, source, target)
}

// memHistoryStore keeps records in memory.
type memHistoryStore struct {
	mu      sync.Mutex
	records []domain.HistoryRecord
	err     error
}

func (s *memHistoryStore) Record(_ context.Context, rec domain.HistoryRecord) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *memHistoryStore) List(_ context.Context, userID string, limit int) ([]domain.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.HistoryRecord
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		if s.records[i].UserID == userID {
			out = append(out, s.records[i])
		}
	}
	return out, nil
}

// memUserStore keeps users in memory.
type memUserStore struct {
	byName map[string]domain.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byName: make(map[string]domain.User)}
}

func (s *memUserStore) Create(_ context.Context, user domain.User) error {
	if _, exists := s.byName[user.Username]; exists {
		return fmt.Errorf("user %q: %w", user.Username, domain.ErrAlreadyExists)
	}
	s.byName[user.Username] = user
	return nil
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := s.byName[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (s *memUserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range s.byName {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// memSessionStore keeps sessions in memory.
type memSessionStore struct {
	byID map[string]domain.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{byID: make(map[string]domain.Session)}
}

func (s *memSessionStore) Create(_ context.Context, session domain.Session) error {
	s.byID[session.ID] = session
	return nil
}

func (s *memSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sess, nil
}

func (s *memSessionStore) Delete(_ context.Context, id string) error {
	delete(s.byID, id)
	return nil
}
