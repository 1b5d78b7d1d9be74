package driven

import "context"

// Translator converts text between two language codes.
//
// Translation failures are deliberately soft: implementations return a
// string tagged with TranslationErrorMarker in place of the translation
// so the conversation continues instead of crashing the request.
type Translator interface {
	// Translate returns text converted from sourceCode to targetCode.
	// When sourceCode equals targetCode the input is returned unchanged
	// without any backend call.
	Translate(ctx context.Context, text, sourceCode, targetCode string) string
}

// TranslationErrorMarker prefixes the string substituted for a failed
// translation. Callers and tests can detect a soft failure by this
// fixed prefix.
const TranslationErrorMarker = "[Translation Error]"
