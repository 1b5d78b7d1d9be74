package sarvam

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawgic-labs/lawgic/internal/core/ports/driven"
)

func newTestTranslator(t *testing.T, handler http.HandlerFunc) *Translator {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tr, err := New(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)
	return tr
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestTranslate_IdentityFastPath(t *testing.T) {
	// The handler fails the test if it is ever reached.
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("identity translation must not call the backend")
	})

	assert.Equal(t, "hello", tr.Translate(context.Background(), "hello", "en-IN", "en-IN"))
	assert.Equal(t, "", tr.Translate(context.Background(), "", "en-IN", "hi-IN"))
}

func TestTranslate_Success(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-magicapi-key"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req["input"])
		assert.Equal(t, "en-IN", req["source_language_code"])
		assert.Equal(t, "hi-IN", req["target_language_code"])

		json.NewEncoder(w).Encode(map[string]string{"result": "नमस्ते"})
	})

	got := tr.Translate(context.Background(), "hello", "en-IN", "hi-IN")
	assert.Equal(t, "नमस्ते", got)
}

func TestTranslate_BackendErrorFailsSoft(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	got := tr.Translate(context.Background(), "hello", "en-IN", "hi-IN")
	assert.Contains(t, got, driven.TranslationErrorMarker)
	assert.NotContains(t, got, "नमस्ते")
}

func TestTranslate_EmptyResultFailsSoft(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"result": ""})
	})

	got := tr.Translate(context.Background(), "hello", "en-IN", "hi-IN")
	assert.Contains(t, got, driven.TranslationErrorMarker)
}

func TestTranslate_UnreachableBackendFailsSoft(t *testing.T) {
	tr, err := New(Config{APIKey: "k", BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	got := tr.Translate(context.Background(), "hello", "en-IN", "hi-IN")
	assert.Contains(t, got, driven.TranslationErrorMarker)
}
