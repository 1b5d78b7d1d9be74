package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyCorpus indicates the corpus directory is missing or holds
	// no supported documents. The build must stop rather than write an
	// empty index.
	ErrEmptyCorpus = errors.New("corpus is empty")

	// ErrIndexUnavailable indicates the persisted vector index is
	// missing or corrupt. Callers present the rebuild instruction
	// instead of generating from an empty context.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrGenerationFailed indicates the external LLM call failed.
	// The failure is surfaced to the caller; it is never replaced with
	// a default answer and never retried.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured or
	// unreachable.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// Authentication errors.

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthenticated indicates the request carries no valid session.
	ErrUnauthenticated = errors.New("authentication required")
)
