// Package ai provides factory functions for creating AI service
// adapters from configuration settings.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/lawgic-labs/lawgic/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/lawgic-labs/lawgic/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/lawgic-labs/lawgic/internal/adapters/driven/llm/ollama"
	openaillm "github.com/lawgic-labs/lawgic/internal/adapters/driven/llm/openai"
	"github.com/lawgic-labs/lawgic/internal/adapters/driven/translate/sarvam"
	"github.com/lawgic-labs/lawgic/internal/core/domain"
	"github.com/lawgic-labs/lawgic/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity
// validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the appropriate embedding service
// based on settings. Returns an error if the provider is not
// configured; every pipeline mode needs embeddings.
func CreateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: embedding provider not configured",
			domain.ErrEmbeddingUnavailable)
	}

	switch settings.Provider {
	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q",
			domain.ErrEmbeddingUnavailable, settings.Provider)
	}
}

// CreateLLMService creates the appropriate LLM service based on
// settings.
func CreateLLMService(settings domain.LLMSettings) (driven.LLMService, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: LLM provider not configured", domain.ErrLLMUnavailable)
	}

	switch settings.Provider {
	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil
	default:
		return nil, fmt.Errorf("%w: unknown LLM provider %q",
			domain.ErrLLMUnavailable, settings.Provider)
	}
}

// CreateAndValidateEmbeddingService creates an embedding service and
// validates connectivity before committing to it.
func CreateAndValidateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%v)",
			domain.ErrEmbeddingUnavailable, err)
	}
	return svc, nil
}

// CreateAndValidateLLMService creates an LLM service and validates
// connectivity before committing to it.
func CreateAndValidateLLMService(settings domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%v)", domain.ErrLLMUnavailable, err)
	}
	return svc, nil
}

// CreateTranslator creates the translator when configured.
// Returns nil without error when translation is not set up; Hindi
// conversations then fail soft at the service layer.
func CreateTranslator(settings domain.TranslationSettings) (driven.Translator, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}
	return sarvam.New(sarvam.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
	})
}
