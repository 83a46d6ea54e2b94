package config

const (
	LangEN = "en"
	LangES = "es"
)

// SupportedLanguage reports whether a bundled catalog exists for lang.
func SupportedLanguage(lang string) bool {
	switch lang {
	case LangEN, LangES:
		return true
	default:
		return false
	}
}

// GetLocaleConfig maps lang onto a supported locale, falling back to English.
func GetLocaleConfig(lang string) string {
	if SupportedLanguage(lang) {
		return lang
	}
	return LangEN
}
