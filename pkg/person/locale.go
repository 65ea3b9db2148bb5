package person

import (
	"fmt"
	"strings"
)

// Locale identifies the language used for localized renderings such as polite
// address forms. Values follow BCP 47 shape ("de", "en-US"); only the primary
// language subtag is significant for lookups.
type Locale string

// Locales with localization data.
const (
	LocaleEnglish Locale = "en"
	LocaleGerman  Locale = "de"
)

// supportedLanguages is the single source of truth for localized languages.
var supportedLanguages = map[string]bool{
	"en": true,
	"de": true,
}

// ParseLocale constructs a Locale from external input. Region subtags are
// tolerated ("de-DE" matches German). An empty string selects English, the
// fallback language. Unsupported languages fail with ErrUnsupportedLocale.
func ParseLocale(s string) (Locale, error) {
	if s == "" {
		return LocaleEnglish, nil
	}
	l := Locale(s)
	if !supportedLanguages[l.Language()] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, s)
	}
	return l, nil
}

// Language returns the lowercase primary language subtag ("de" for "de-DE").
func (l Locale) Language() string {
	lang, _, _ := strings.Cut(string(l), "-")
	return strings.ToLower(lang)
}

// String returns the string representation of the locale.
func (l Locale) String() string {
	return string(l)
}
