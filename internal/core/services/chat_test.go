package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
	"github.com/lawgic-labs/lawgic/internal/core/ports/driven"
	"github.com/lawgic-labs/lawgic/internal/prompt"
)

// newChatFixture wires a ChatService over in-memory fakes with two
// indexed chunks.
func newChatFixture(t *testing.T, opts ...ChatOption) (*ChatService, *spyLLM, *memHistoryStore) {
	t.Helper()

	chunks := newMemChunkStore()
	chunks.chunks = map[string]string{
		"act.pdf#0000": "Section 420 of the Indian Penal Code covers cheating.",
		"act.pdf#0001": "Punishment may extend to seven years of imprisonment.",
	}

	index := &stubIndex{hits: []driven.VectorHit{
		{ChunkID: "act.pdf#0000", Similarity: 0.9},
		{ChunkID: "act.pdf#0001", Similarity: 0.8},
	}}

	llm := &spyLLM{completion: "Section 420 penalises cheating."}
	history := &memHistoryStore{}

	opts = append([]ChatOption{WithHistory(history)}, opts...)
	svc := NewChatService(&stubEmbedder{dims: 2}, llm, prompt.Default(), chunks, index, opts...)
	return svc, llm, history
}

func TestAsk_EmptyMessage(t *testing.T) {
	svc, llm, _ := newChatFixture(t)

	answer, err := svc.Ask(context.Background(), "u1", domain.Query{Text: "   \n\t "})
	require.NoError(t, err)

	assert.Equal(t, EmptyMessageReply, answer.Text)
	assert.Empty(t, llm.prompts, "empty message must not reach the model")
}

func TestAsk_MissingIndex(t *testing.T) {
	svc, llm, _ := newChatFixture(t)
	svc.SwapIndex(nil)

	answer, err := svc.Ask(context.Background(), "u1", domain.Query{Text: "What is Section 420?"})
	require.NoError(t, err)

	assert.Equal(t, MissingIndexReply, answer.Text)
	assert.Empty(t, llm.prompts, "missing index must not reach the model")
}

func TestAsk_AnswersFromRetrievedContext(t *testing.T) {
	svc, llm, _ := newChatFixture(t)

	answer, err := svc.Ask(context.Background(), "u1", domain.Query{Text: "What is Section 420?"})
	require.NoError(t, err)

	assert.Equal(t, "Section 420 penalises cheating.", answer.Text)
	assert.Equal(t, []string{"act.pdf#0000", "act.pdf#0001"}, answer.ContextIDs)

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Section 420 of the Indian Penal Code covers cheating.")
	assert.Contains(t, llm.prompts[0], "What is Section 420?")
	assert.NotContains(t, llm.prompts[0], prompt.ContextSlot)
	assert.NotContains(t, llm.prompts[0], prompt.QuestionSlot)
}

func TestAsk_PassesGenerateOptions(t *testing.T) {
	want := driven.GenerateOptions{MaxTokens: 1024, Temperature: 0.2, TopP: 0.7}
	svc, llm, _ := newChatFixture(t, WithGenerateOptions(want))

	_, err := svc.Ask(context.Background(), "u1", domain.Query{Text: "question"})
	require.NoError(t, err)

	require.Len(t, llm.opts, 1)
	assert.Equal(t, want, llm.opts[0])
}

func TestAsk_GenerationFailureIsExplicit(t *testing.T) {
	svc, llm, history := newChatFixture(t)
	llm.err = errors.New("upstream 500")

	_, err := svc.Ask(context.Background(), "u1", domain.Query{Text: "question"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.Empty(t, history.records, "failed generation must not be recorded")
}

func TestAsk_RecordsHistory(t *testing.T) {
	svc, _, history := newChatFixture(t)

	_, err := svc.Ask(context.Background(), "u1", domain.Query{Text: "What is Section 420?"})
	require.NoError(t, err)

	require.Len(t, history.records, 1)
	rec := history.records[0]
	assert.Equal(t, "u1", rec.UserID)
	assert.Equal(t, "What is Section 420?", rec.Question)
	assert.Equal(t, "Section 420 penalises cheating.", rec.Answer)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestAsk_AnonymousUserSkipsHistory(t *testing.T) {
	svc, _, history := newChatFixture(t)

	_, err := svc.Ask(context.Background(), "", domain.Query{Text: "question"})
	require.NoError(t, err)
	assert.Empty(t, history.records)
}

func TestAsk_HistoryFailureDoesNotFailAnswer(t *testing.T) {
	svc, _, history := newChatFixture(t)
	history.err = errors.New("disk full")

	answer, err := svc.Ask(context.Background(), "u1", domain.Query{Text: "question"})
	require.NoError(t, err)
	assert.Equal(t, "Section 420 penalises cheating.", answer.Text)
}

func TestAsk_HindiRoundtrip(t *testing.T) {
	translated := map[string]string{}
	tr := funcTranslator(func(text, source, target string) string {
		translated[source+"->"+target] = text
		if target == "en-IN" {
			return "english question"
		}
		return "हिंदी उत्तर"
	})
	svc, llm, _ := newChatFixture(t, WithTranslator(tr))

	answer, err := svc.Ask(context.Background(), "u1", domain.Query{
		Text:     "हिंदी प्रश्न",
		Language: domain.LanguageHindi,
	})
	require.NoError(t, err)

	// The model sees the English form, the caller sees Hindi.
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "english question")
	assert.Equal(t, "हिंदी उत्तर", answer.Text)

	assert.Equal(t, "हिंदी प्रश्न", translated["hi-IN->en-IN"])
	assert.Equal(t, "Section 420 penalises cheating.", translated["en-IN->hi-IN"])
}

func TestAsk_EnglishNeverTranslates(t *testing.T) {
	tr := funcTranslator(func(text, source, target string) string {
		t.Fatal("English conversations must not call the translator")
		return text
	})
	svc, _, _ := newChatFixture(t, WithTranslator(tr))

	_, err := svc.Ask(context.Background(), "u1", domain.Query{
		Text:     "question",
		Language: domain.LanguageEnglish,
	})
	require.NoError(t, err)
}

func TestAsk_HindiWithoutTranslatorFailsSoft(t *testing.T) {
	svc, _, _ := newChatFixture(t)

	answer, err := svc.Ask(context.Background(), "u1", domain.Query{
		Text:     "हिंदी प्रश्न",
		Language: domain.LanguageHindi,
	})
	require.NoError(t, err)
	assert.Contains(t, answer.Text, driven.TranslationErrorMarker)
}

func TestAsk_TopKIsConfigurable(t *testing.T) {
	svc, _, _ := newChatFixture(t, WithTopK(1))

	answer, err := svc.Ask(context.Background(), "u1", domain.Query{Text: "question"})
	require.NoError(t, err)
	assert.Equal(t, []string{"act.pdf#0000"}, answer.ContextIDs)
}

func TestReady(t *testing.T) {
	svc, _, _ := newChatFixture(t)

	ready, reason := svc.Ready()
	assert.True(t, ready)
	assert.Empty(t, reason)

	svc.SwapIndex(nil)
	ready, reason = svc.Ready()
	assert.False(t, ready)
	assert.Equal(t, MissingIndexReply, reason)
}
