package domain

// AIProvider identifies an external AI service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOpenAI is any OpenAI-compatible hosted endpoint
	// (OpenAI itself, NVIDIA NIM, OpenRouter and similar).
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderOllama is a local Ollama server.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if the provider needs a bearer token.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint. Optional for OpenAI, required
	// conventionally for Ollama.
	BaseURL string

	// APIKey is the bearer token for hosted providers.
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint.
	BaseURL string

	// APIKey is the bearer token for hosted providers.
	APIKey string

	// Temperature controls decoding randomness. Zero means the
	// application default.
	Temperature float64

	// TopP is the nucleus sampling cutoff. Zero means the application
	// default.
	TopP float64

	// MaxTokens bounds the completion length. Zero means the
	// application default.
	MaxTokens int
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// TranslationSettings holds translation backend configuration.
// Translation is optional; when unconfigured, Hindi conversations fail
// soft with the tagged marker string.
type TranslationSettings struct {
	// BaseURL is the translation API endpoint.
	BaseURL string

	// APIKey is the API market key sent with each request.
	APIKey string
}

// IsConfigured returns true if the translation backend is set up.
func (t TranslationSettings) IsConfigured() bool {
	return t.APIKey != ""
}
