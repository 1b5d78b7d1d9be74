package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
	"github.com/lawgic-labs/lawgic/internal/core/ports/driven"
	"github.com/lawgic-labs/lawgic/internal/core/ports/driving"
	"github.com/lawgic-labs/lawgic/internal/logger"
	"github.com/lawgic-labs/lawgic/internal/prompt"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// Fixed replies the pipeline produces itself, before any model call.
const (
	// EmptyMessageReply answers a blank or whitespace-only message.
	EmptyMessageReply = "Please enter a question."

	// MissingIndexReply answers every question while no index is
	// loaded. The model is never called in this state.
	MissingIndexReply = "The document index is not available. Please run 'lawgic build' to index the corpus, then try again."
)

// ChatService implements driving.ChatService: the full
// validate-translate-retrieve-generate-translate-record pipeline.
type ChatService struct {
	embedder   driven.EmbeddingService
	llm        driven.LLMService
	translator driven.Translator // may be nil
	template   *prompt.Template
	chunks     driven.ChunkStore
	history    driven.HistoryStore // may be nil in the standalone variant

	// index is swapped wholesale on rebuild; the lock makes a swap
	// atomic with respect to in-flight questions.
	mu    sync.RWMutex
	index driven.VectorIndex // nil while unavailable

	topK int
	opts driven.GenerateOptions
}

// ChatOption configures a ChatService.
type ChatOption func(*ChatService)

// WithTopK sets the number of chunks retrieved per question.
func WithTopK(k int) ChatOption {
	return func(s *ChatService) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithGenerateOptions sets the decoding parameters passed to the model.
func WithGenerateOptions(opts driven.GenerateOptions) ChatOption {
	return func(s *ChatService) {
		s.opts = opts
	}
}

// WithTranslator sets the optional translation backend.
func WithTranslator(tr driven.Translator) ChatOption {
	return func(s *ChatService) {
		s.translator = tr
	}
}

// WithHistory sets the optional history store. Without it, exchanges
// are not recorded.
func WithHistory(h driven.HistoryStore) ChatOption {
	return func(s *ChatService) {
		s.history = h
	}
}

// NewChatService creates the question answering pipeline.
// index may be nil; the service then answers with MissingIndexReply
// until SwapIndex provides one.
func NewChatService(
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	template *prompt.Template,
	chunks driven.ChunkStore,
	index driven.VectorIndex,
	opts ...ChatOption,
) *ChatService {
	s := &ChatService{
		embedder: embedder,
		llm:      llm,
		template: template,
		chunks:   chunks,
		index:    index,
		topK:     domain.DefaultTopK,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SwapIndex atomically replaces the live index. Passing nil puts the
// service back into the missing-index state.
func (s *ChatService) SwapIndex(index driven.VectorIndex) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = index
}

// currentIndex returns the live index, or nil.
func (s *ChatService) currentIndex() driven.VectorIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Ready reports whether the pipeline can answer questions.
func (s *ChatService) Ready() (bool, string) {
	if s.llm == nil {
		return false, "no language model configured"
	}
	if s.currentIndex() == nil {
		return false, MissingIndexReply
	}
	return true, ""
}

// Ask answers a single question.
//
// Validation and index checks short-circuit with fixed replies before
// any external call. Hindi questions are translated to English for
// retrieval and generation, and the answer is translated back;
// translation failures are soft and surface as a tagged marker in the
// text. Generation failures are hard errors wrapping
// domain.ErrGenerationFailed.
func (s *ChatService) Ask(ctx context.Context, userID string, query domain.Query) (*domain.Answer, error) {
	text := strings.TrimSpace(query.Text)
	if text == "" {
		return &domain.Answer{Text: EmptyMessageReply}, nil
	}

	index := s.currentIndex()
	if index == nil {
		return &domain.Answer{Text: MissingIndexReply}, nil
	}

	question := s.translateIn(ctx, text, query.Language)

	chunkIDs, chunkTexts, err := s.retrieve(ctx, index, question)
	if err != nil {
		return nil, err
	}

	rendered, includedIDs := s.template.Render(chunkIDs, chunkTexts, question)

	logger.Debug("generating answer: %d context chunks, model %s",
		len(includedIDs), s.llm.ModelName())

	completion, err := s.llm.Generate(ctx, rendered, s.opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	answer := s.translateOut(ctx, strings.TrimSpace(completion), query.Language)

	s.record(ctx, userID, query.Text, answer)

	return &domain.Answer{
		Text:       answer,
		ContextIDs: includedIDs,
	}, nil
}

// retrieve embeds the question and resolves the top-K chunks.
func (s *ChatService) retrieve(ctx context.Context, index driven.VectorIndex, question string) (ids, texts []string, err error) {
	vector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, nil, fmt.Errorf("embedding question: %w", err)
	}

	hits, err := index.Search(ctx, vector, s.topK)
	if err != nil {
		return nil, nil, fmt.Errorf("searching index: %w", err)
	}

	ids = make([]string, len(hits))
	for i, hit := range hits {
		ids[i] = hit.ChunkID
	}

	chunks, err := s.chunks.GetChunks(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving chunks: %w", err)
	}

	texts = make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	return ids, texts, nil
}

// translateIn converts a Hindi question to English for the pipeline.
func (s *ChatService) translateIn(ctx context.Context, text string, lang domain.Language) string {
	if lang != domain.LanguageHindi {
		return text
	}
	if s.translator == nil {
		return fmt.Sprintf("%s translation not configured", driven.TranslationErrorMarker)
	}
	return s.translator.Translate(ctx, text, domain.LanguageHindi.Code(), domain.LanguageEnglish.Code())
}

// translateOut converts the English answer back to the query language.
func (s *ChatService) translateOut(ctx context.Context, text string, lang domain.Language) string {
	if lang != domain.LanguageHindi {
		return text
	}
	if s.translator == nil {
		return fmt.Sprintf("%s translation not configured", driven.TranslationErrorMarker)
	}
	return s.translator.Translate(ctx, text, domain.LanguageEnglish.Code(), domain.LanguageHindi.Code())
}

// record appends the exchange to history, best effort. A history write
// failure must not fail an answer that was already generated.
func (s *ChatService) record(ctx context.Context, userID, question, answer string) {
	if s.history == nil || userID == "" {
		return
	}
	rec := domain.HistoryRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.history.Record(ctx, rec); err != nil {
		logger.Warn("recording history for user %s: %v", userID, err)
	}
}
