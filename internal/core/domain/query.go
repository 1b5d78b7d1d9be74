package domain

// Query is a user-submitted question together with its display language.
// The pipeline always works in English internally; Hindi queries are
// translated on the way in and answers translated on the way out.
type Query struct {
	// Text is the question as the user typed it.
	Text string

	// Language is the language the user selected for the conversation.
	Language Language
}

// RetrievedChunk is a chunk returned by similarity search.
type RetrievedChunk struct {
	// Chunk is the matched corpus chunk.
	Chunk Chunk

	// Score is the cosine similarity to the query embedding.
	Score float64
}

// Answer is the generated reply delivered to the caller.
type Answer struct {
	// Text is the model output, translated back to the query language
	// when that language is not English.
	Text string

	// ContextIDs lists the chunk IDs that were included in the prompt,
	// in retrieval rank order. Provenance only; not shown to end users.
	ContextIDs []string
}

// Default retrieval and generation parameters.
const (
	// DefaultTopK is the number of chunks retrieved per question.
	DefaultTopK = 5

	// DefaultContextBudget bounds the joined context passed to the
	// model, in characters. Lowest-ranked chunks are dropped whole
	// when the budget is exceeded.
	DefaultContextBudget = 8000
)
