// Package config loads the application configuration from a TOML file
// and overlays secrets from the environment.
//
// The TOML file holds everything that is safe to commit: provider
// choices, model names, directories, server address. API keys are never
// read from the file; they come from the environment, optionally seeded
// from a .env file in the working directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
)

// DefaultFilename is the config file looked up when no --config flag is
// given.
const DefaultFilename = "lawgic.toml"

// Environment variables carrying secrets.
const (
	EnvEmbeddingAPIKey = "LAWGIC_EMBEDDING_API_KEY"
	EnvLLMAPIKey       = "LAWGIC_LLM_API_KEY"
	EnvTranslateAPIKey = "LAWGIC_TRANSLATE_API_KEY"

	// Fallbacks honoured for convenience with common deployments.
	EnvNvidiaAPIKey = "NVIDIA_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
)

// Config is the full application configuration.
type Config struct {
	// DataDir holds the PDF corpus.
	DataDir string `toml:"data_dir"`

	// VectorstoreDir holds the built index and its chunk database.
	VectorstoreDir string `toml:"vectorstore_dir"`

	Embedding   EmbeddingConfig   `toml:"embedding"`
	LLM         LLMConfig         `toml:"llm"`
	Translation TranslationConfig `toml:"translation"`
	Retrieval   RetrievalConfig   `toml:"retrieval"`
	Chunking    ChunkingConfig    `toml:"chunking"`
	Server      ServerConfig      `toml:"server"`
	History     HistoryConfig     `toml:"history"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`

	// APIKey is populated from the environment, never from TOML.
	APIKey string `toml:"-"`
}

// LLMConfig selects and configures the completion provider.
type LLMConfig struct {
	Provider    string  `toml:"provider"`
	Model       string  `toml:"model"`
	BaseURL     string  `toml:"base_url"`
	Temperature float64 `toml:"temperature"`
	TopP        float64 `toml:"top_p"`
	MaxTokens   int     `toml:"max_tokens"`

	APIKey string `toml:"-"`
}

// TranslationConfig configures the optional translation backend.
type TranslationConfig struct {
	BaseURL string `toml:"base_url"`

	APIKey string `toml:"-"`
}

// RetrievalConfig tunes the retrieval step.
type RetrievalConfig struct {
	TopK int `toml:"top_k"`

	// ContextBudget bounds the joined context passed to the model, in
	// characters. Zero disables the bound.
	ContextBudget int `toml:"context_budget"`
}

// ChunkingConfig tunes the corpus splitter.
type ChunkingConfig struct {
	WindowSize int `toml:"window_size"`
	Overlap    int `toml:"overlap"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string `toml:"addr"`
	SessionTTLHours int    `toml:"session_ttl_hours"`
}

// HistoryConfig tunes conversation history retention.
type HistoryConfig struct {
	Limit int `toml:"limit"`
}

// Default returns a configuration with all defaults filled in.
func Default() *Config {
	return &Config{
		DataDir:        "data",
		VectorstoreDir: "vectorstore",
		Embedding: EmbeddingConfig{
			Provider: string(domain.AIProviderOpenAI),
			Model:    "sentence-transformers/all-minilm-l6-v2",
		},
		LLM: LLMConfig{
			Provider:    string(domain.AIProviderOpenAI),
			Model:       "mistralai/mistral-7b-instruct-v0.3",
			BaseURL:     "https://integrate.api.nvidia.com/v1",
			Temperature: 0.2,
			TopP:        0.7,
			MaxTokens:   1024,
		},
		Retrieval: RetrievalConfig{
			TopK:          domain.DefaultTopK,
			ContextBudget: domain.DefaultContextBudget,
		},
		Chunking: ChunkingConfig{
			WindowSize: 1000,
			Overlap:    50,
		},
		Server: ServerConfig{
			Addr:            ":8000",
			SessionTTLHours: 24,
		},
		History: HistoryConfig{
			Limit: domain.DefaultHistoryLimit,
		},
	}
}

// Load reads the configuration file at path and overlays environment
// secrets. A missing file is not an error; defaults apply. Empty path
// looks for DefaultFilename in the working directory.
func Load(path string) (*Config, error) {
	// Best-effort .env load so local setups can keep secrets out of
	// the shell profile. Absence is fine.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = DefaultFilename
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays secrets from the environment.
func (c *Config) applyEnv() {
	c.Embedding.APIKey = firstEnv(EnvEmbeddingAPIKey, EnvNvidiaAPIKey, EnvOpenAIAPIKey)
	c.LLM.APIKey = firstEnv(EnvLLMAPIKey, EnvNvidiaAPIKey, EnvOpenAIAPIKey)
	c.Translation.APIKey = os.Getenv(EnvTranslateAPIKey)
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// validate rejects configurations the pipeline cannot run with.
func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("config: data_dir must not be empty")
	}
	if c.VectorstoreDir == "" {
		return fmt.Errorf("config: vectorstore_dir must not be empty")
	}
	if !domain.AIProvider(c.Embedding.Provider).IsValid() {
		return fmt.Errorf("config: unknown embedding provider %q", c.Embedding.Provider)
	}
	if !domain.AIProvider(c.LLM.Provider).IsValid() {
		return fmt.Errorf("config: unknown llm provider %q", c.LLM.Provider)
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("config: retrieval.top_k must be positive")
	}
	if c.Chunking.WindowSize <= 0 {
		return fmt.Errorf("config: chunking.window_size must be positive")
	}
	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.WindowSize {
		return fmt.Errorf("config: chunking.overlap must be in [0, window_size)")
	}
	if c.History.Limit <= 0 {
		return fmt.Errorf("config: history.limit must be positive")
	}
	return nil
}

// EmbeddingSettings converts the section to domain settings.
func (c *Config) EmbeddingSettings() domain.EmbeddingSettings {
	return domain.EmbeddingSettings{
		Provider: domain.AIProvider(c.Embedding.Provider),
		Model:    c.Embedding.Model,
		BaseURL:  c.Embedding.BaseURL,
		APIKey:   c.Embedding.APIKey,
	}
}

// LLMSettings converts the section to domain settings.
func (c *Config) LLMSettings() domain.LLMSettings {
	return domain.LLMSettings{
		Provider:    domain.AIProvider(c.LLM.Provider),
		Model:       c.LLM.Model,
		BaseURL:     c.LLM.BaseURL,
		APIKey:      c.LLM.APIKey,
		Temperature: c.LLM.Temperature,
		TopP:        c.LLM.TopP,
		MaxTokens:   c.LLM.MaxTokens,
	}
}

// TranslationSettings converts the section to domain settings.
func (c *Config) TranslationSettings() domain.TranslationSettings {
	return domain.TranslationSettings{
		BaseURL: c.Translation.BaseURL,
		APIKey:  c.Translation.APIKey,
	}
}

// SessionTTL returns the configured session lifetime.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Server.SessionTTLHours) * time.Hour
}

// IndexDir returns the vectorstore directory as an absolute-friendly
// join off base when VectorstoreDir is relative.
func (c *Config) IndexDir(base string) string {
	if filepath.IsAbs(c.VectorstoreDir) || base == "" {
		return c.VectorstoreDir
	}
	return filepath.Join(base, c.VectorstoreDir)
}

// CorpusDir returns the data directory, joined off base when relative.
func (c *Config) CorpusDir(base string) string {
	if filepath.IsAbs(c.DataDir) || base == "" {
		return c.DataDir
	}
	return filepath.Join(base, c.DataDir)
}
