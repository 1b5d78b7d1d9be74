package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ValidatesSlots(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr string
	}{
		{"both slots", "ctx: {context} q: {question}", ""},
		{"missing context", "q: {question}", "{context}"},
		{"missing question", "ctx: {context}", "{question}"},
		{"no slots", "hello", "{context}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := New(tt.text)
			if tt.wantErr == "" {
				require.NoError(t, err)
				require.NotNil(t, tmpl)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefault_CarriesBothSlots(t *testing.T) {
	tmpl := Default()
	rendered, _ := tmpl.Render(nil, []string{"some context"}, "some question")
	assert.Contains(t, rendered, "some context")
	assert.Contains(t, rendered, "some question")
	assert.NotContains(t, rendered, ContextSlot)
	assert.NotContains(t, rendered, QuestionSlot)
}

func TestRender_LosslessSubstitution(t *testing.T) {
	tmpl, err := New("Context: {context}\nQuestion: {question}")
	require.NoError(t, err)

	ids := []string{"c1", "c2", "c3"}
	texts := []string{"first chunk", "second chunk", "third chunk"}
	rendered, included := tmpl.Render(ids, texts, "What is Section 420?")

	assert.Equal(t, "Context: first chunk\nsecond chunk\nthird chunk\nQuestion: What is Section 420?", rendered)
	assert.Equal(t, ids, included)
}

func TestRender_ContextBudgetDropsLowestRankedFirst(t *testing.T) {
	tmpl, err := New("{context}|{question}", WithContextBudget(25))
	require.NoError(t, err)

	ids := []string{"c1", "c2", "c3"}
	texts := []string{
		strings.Repeat("a", 10),
		strings.Repeat("b", 10),
		strings.Repeat("c", 10),
	}
	rendered, included := tmpl.Render(ids, texts, "q")

	// 10 + 1 + 10 = 21 fits; adding the third chunk would exceed 25.
	assert.Equal(t, []string{"c1", "c2"}, included)
	assert.Equal(t, strings.Repeat("a", 10)+"\n"+strings.Repeat("b", 10)+"|q", rendered)
}

func TestRender_BudgetNeverDropsTopChunk(t *testing.T) {
	tmpl, err := New("{context}|{question}", WithContextBudget(3))
	require.NoError(t, err)

	rendered, included := tmpl.Render([]string{"c1"}, []string{"long chunk text"}, "q")
	assert.Equal(t, []string{"c1"}, included)
	assert.Contains(t, rendered, "long chunk text")
}

func TestRender_EmptyContext(t *testing.T) {
	tmpl, err := New("[{context}] {question}")
	require.NoError(t, err)

	rendered, included := tmpl.Render(nil, nil, "q")
	assert.Equal(t, "[] q", rendered)
	assert.Nil(t, included)
}
