// Package prompt renders the fixed instruction template sent to the
// language model. The template has exactly two named slots, {context}
// and {question}; rendering is faithful, lossless substitution and
// nothing else. The behavioural policy in the template text (refusals,
// greetings, consult-a-professional fallback) is an instruction to the
// model, not something this package enforces.
package prompt

import (
	"fmt"
	"strings"
)

// Slot markers that must both be present in a template.
const (
	ContextSlot  = "{context}"
	QuestionSlot = "{question}"
)

// Template is a validated two-slot prompt template.
type Template struct {
	text          string
	contextBudget int
}

// Option configures a Template.
type Option func(*Template)

// WithContextBudget bounds the joined context in characters. When the
// retrieved chunks exceed the budget, lowest-ranked chunks are dropped
// whole before substitution. Zero or negative disables the bound.
func WithContextBudget(chars int) Option {
	return func(t *Template) {
		t.contextBudget = chars
	}
}

// New validates the template text and returns a Template.
// It fails fast if either slot marker is missing so that a broken
// template is caught at startup, not on the first question.
func New(text string, opts ...Option) (*Template, error) {
	if !strings.Contains(text, ContextSlot) {
		return nil, fmt.Errorf("prompt template missing %s slot", ContextSlot)
	}
	if !strings.Contains(text, QuestionSlot) {
		return nil, fmt.Errorf("prompt template missing %s slot", QuestionSlot)
	}
	t := &Template{text: text}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Default returns the standard Lawgic template.
func Default(opts ...Option) *Template {
	t, err := New(lawgicTemplate, opts...)
	if err != nil {
		// The built-in template always carries both slots.
		panic(err)
	}
	return t
}

// Render substitutes the chunk texts and question into the template.
// Chunks are newline-joined in the order given (retrieval rank order).
// It returns the rendered prompt and the IDs of the chunks that were
// actually included after applying the context budget.
func (t *Template) Render(chunkIDs, chunkTexts []string, question string) (string, []string) {
	included := len(chunkTexts)
	if t.contextBudget > 0 {
		total := 0
		for i, text := range chunkTexts {
			if i > 0 {
				total++ // joining newline
			}
			total += len(text)
			if total > t.contextBudget {
				included = i
				break
			}
		}
		// Never drop everything; the top-ranked chunk always goes in.
		if included == 0 && len(chunkTexts) > 0 {
			included = 1
		}
	}

	context := strings.Join(chunkTexts[:included], "\n")
	rendered := strings.ReplaceAll(t.text, ContextSlot, context)
	rendered = strings.ReplaceAll(rendered, QuestionSlot, question)

	if chunkIDs == nil {
		return rendered, nil
	}
	return rendered, chunkIDs[:included]
}

// Fixed replies the template instructs the model to use. Exposed for
// end-to-end assertions; the assembler never injects these itself.
const (
	// GreetingReply is the small-talk branch.
	GreetingReply = "Hello! I can assist you with Indian legal matters from the project's context. Please ask your legal question."

	// OutOfScopeReply is the non-legal question branch.
	OutOfScopeReply = "I can only assist with questions related to Indian legal matters as covered in this project."

	// NotFoundReply is the no-answer-in-context branch.
	NotFoundReply = "I could not find a specific answer in the project's Indian legal context. Please consult a qualified legal professional for further assistance."
)

// lawgicTemplate is the fixed instruction prompt. The two slot markers
// are substituted at render time; everything else is sent verbatim.
const lawgicTemplate = `You are LawgicAI, a professional assistant specializing in Indian law, answering strictly based on the project's provided legal documents and context. Your responses must always:

- Be strictly based on the provided legal context (Indian laws, acts, case studies, government documents, etc.) from this project.
- Be clear, concise, and professional:
    - Use bullet points for lists, steps, or key facts.
    - Use short paragraphs for explanations or context.
    - Combine both formats for clarity and readability.
- Use simple, direct language suitable for the general public.
- Avoid repetition, filler, speculation, or generic disclaimers unless absolutely necessary.
- Remain neutral, objective, and free from personal opinions.
- Reference relevant laws, sections, or context from the project when possible.
- Never make up information, speculate, or answer irrelevant/personal questions.
- Never engage in small talk or provide answers outside the project's legal scope.
- Do NOT repeat fallback or disclaimer messages unless the user's question is clearly out of scope.
- Always prioritize actionable, relevant, and project-specific information.

**Instructions:**
1. If the user's message is a greeting or small talk, reply only with:
    - "` + GreetingReply + `"
    - Do not engage in further small talk or provide generic disclaimers.
2. If the user's message is not clearly about Indian law, legal rights, legal procedures, or legal topics relevant to the project, reply only with:
    - "` + OutOfScopeReply + `"
    - Do not provide any other information or generic disclaimers.
3. If the answer is not found in the provided context, reply only with:
    - "I could not find a specific answer in the project's Indian legal context."
    - "Please consult a qualified legal professional for further assistance."
4. For valid legal questions:
    - Start with a brief summary (1-2 sentences) if appropriate.
    - Follow with clear, well-organized bullet points for steps, requirements, or key facts.
    - Reference the context or law section from the project if possible.
    - Use simple, direct language.
    - Avoid unnecessary repetition, filler, or generic statements.
5. Never make up information, speculate, or answer irrelevant/personal questions.
6. Never provide answers that are not directly relevant to the project's legal data.
7. Never Give coding or technical advice unless it is strictly related to the legal context provided in this project.

---
Context: {context}
Question: {question}`
