package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIProviderIsValid(t *testing.T) {
	assert.True(t, AIProviderOpenAI.IsValid())
	assert.True(t, AIProviderOllama.IsValid())
	assert.False(t, AIProvider("bedrock").IsValid())
	assert.False(t, AIProvider("").IsValid())
}

func TestEmbeddingSettingsIsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings EmbeddingSettings
		want     bool
	}{
		{"unset", EmbeddingSettings{}, false},
		{"openai without key", EmbeddingSettings{Provider: AIProviderOpenAI}, false},
		{"openai with key", EmbeddingSettings{Provider: AIProviderOpenAI, APIKey: "sk-x"}, true},
		{"ollama needs no key", EmbeddingSettings{Provider: AIProviderOllama}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.IsConfigured())
		})
	}
}

func TestLLMSettingsIsConfigured(t *testing.T) {
	assert.False(t, LLMSettings{}.IsConfigured())
	assert.False(t, LLMSettings{Provider: AIProviderOpenAI}.IsConfigured())
	assert.True(t, LLMSettings{Provider: AIProviderOpenAI, APIKey: "k"}.IsConfigured())
	assert.True(t, LLMSettings{Provider: AIProviderOllama}.IsConfigured())
}

func TestTranslationSettingsIsConfigured(t *testing.T) {
	assert.False(t, TranslationSettings{}.IsConfigured())
	assert.True(t, TranslationSettings{APIKey: "k"}.IsConfigured())
}
