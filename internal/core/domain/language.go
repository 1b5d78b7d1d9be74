package domain

// Language is a user-facing conversation language.
type Language string

// Supported conversation languages.
const (
	LanguageEnglish Language = "English"
	LanguageHindi   Language = "Hindi"
)

// IsValid returns true if the language is recognised.
func (l Language) IsValid() bool {
	switch l {
	case LanguageEnglish, LanguageHindi:
		return true
	default:
		return false
	}
}

// Code returns the translation API language code.
func (l Language) Code() string {
	switch l {
	case LanguageHindi:
		return "hi-IN"
	default:
		return "en-IN"
	}
}

// ParseLanguage maps request input to a Language, defaulting to English
// for empty or unrecognised values.
func ParseLanguage(s string) Language {
	if Language(s) == LanguageHindi {
		return LanguageHindi
	}
	return LanguageEnglish
}
