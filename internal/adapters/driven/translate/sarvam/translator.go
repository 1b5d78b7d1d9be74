// Package sarvam provides a Translator adapter for the Sarvam
// translation API behind the API market gateway.
//
// Translation failures are soft by contract: instead of an error, the
// adapter returns a string tagged with driven.TranslationErrorMarker so
// the conversation continues and the user can see what went wrong.
package sarvam

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lawgic-labs/lawgic/internal/core/ports/driven"
)

// Ensure Translator implements the interface.
var _ driven.Translator = (*Translator)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.magicapi.dev/api/v1/sarvam/ai-models"
	DefaultTimeout = 30 * time.Second
)

// Config holds configuration for the Sarvam translator.
type Config struct {
	// APIKey is the API market key (required).
	APIKey string

	// BaseURL is the API base URL.
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Translator translates text via the Sarvam API.
type Translator struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// translateRequest is the Sarvam API request format.
type translateRequest struct {
	Input               string `json:"input"`
	SourceLanguageCode  string `json:"source_language_code"`
	TargetLanguageCode  string `json:"target_language_code"`
	SpeakerGender       string `json:"speaker_gender"`
	Mode                string `json:"mode"`
	Model               string `json:"model"`
	EnablePreprocessing bool   `json:"enable_preprocessing"`
}

// translateResponse is the Sarvam API response format.
type translateResponse struct {
	Result string `json:"result"`
}

// New creates a new Sarvam translator.
func New(cfg Config) (*Translator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("sarvam: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Translator{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}, nil
}

// Translate returns text converted from sourceCode to targetCode.
// Identical codes short-circuit without a network call. Any backend
// failure returns the tagged error string in place of the translation.
func (t *Translator) Translate(ctx context.Context, text, sourceCode, targetCode string) string {
	if text == "" || sourceCode == targetCode {
		return text
	}

	translated, err := t.call(ctx, text, sourceCode, targetCode)
	if err != nil {
		return fmt.Sprintf("%s %v", driven.TranslationErrorMarker, err)
	}
	return translated
}

func (t *Translator) call(ctx context.Context, text, sourceCode, targetCode string) (string, error) {
	reqBody := translateRequest{
		Input:               text,
		SourceLanguageCode:  sourceCode,
		TargetLanguageCode:  targetCode,
		SpeakerGender:       "Male",
		Mode:                "formal",
		Model:               "mayura:v1",
		EnablePreprocessing: true,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		t.baseURL+"/translate",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-magicapi-key", t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sarvam error (status %d): %s", resp.StatusCode, string(body))
	}

	var transResp translateResponse
	if err := json.Unmarshal(body, &transResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if transResp.Result == "" {
		return "", fmt.Errorf("sarvam: empty result returned")
	}

	return transResp.Result, nil
}
