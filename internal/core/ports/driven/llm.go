package driven

import "context"

// LLMService produces answers from assembled prompts.
//
// Implementations may include:
//   - OpenAI-compatible hosted endpoints (OpenAI, NVIDIA NIM, OpenRouter)
//   - Ollama (local models)
type LLMService interface {
	// Generate sends a single-turn completion request and returns the
	// raw completion text. Transport errors, non-success statuses and
	// malformed bodies are returned as errors; there is no default
	// answer and no retry.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request. Used at startup before committing to an answer mode.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// TopP is the nucleus sampling cutoff (0 disables the parameter).
	TopP float64
}
