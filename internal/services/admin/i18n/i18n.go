package i18n

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/decorimic/admin/internal/platform/i18n/catalog"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the operator's language preference.
	LangCookieName = "imic_lang"
)

// Language is a supported interface language code.
type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
)

var supportedTags = []language.Tag{language.English, language.Arabic}

var tagMatcher = language.NewMatcher(supportedTags)

// Supported returns the selectable languages in switcher order.
func Supported() []Language {
	return []Language{English, Arabic}
}

// Default returns the language used when nothing else applies.
func Default() Language {
	return English
}

// Tag returns the BCP 47 tag of l.
func (l Language) Tag() language.Tag {
	if l == Arabic {
		return language.Arabic
	}
	return language.English
}

// IsRTL reports whether l is written right to left.
func (l Language) IsRTL() bool {
	return l == Arabic
}

// Dir returns the value of the HTML dir attribute for l.
func (l Language) Dir() string {
	if l.IsRTL() {
		return "rtl"
	}
	return "ltr"
}

// Parse maps a tag such as "ar-EG" onto a supported language.
func Parse(value string) (Language, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return English, true
	case "ar":
		return Arabic, true
	}
	return "", false
}

// ResolveLanguage picks the request language from the lang query parameter,
// then the preference cookie, then Accept-Language. The bool reports whether
// the query parameter chose it and should be persisted.
func ResolveLanguage(r *http.Request) (Language, bool) {
	if r == nil {
		return Default(), false
	}
	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if lang, ok := Parse(value); ok {
			return lang, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if lang, ok := Parse(cookie.Value); ok {
			return lang, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, index, confidence := tagMatcher.Match(tags...)
			if confidence != language.No {
				if index == 1 {
					return Arabic, false
				}
				return English, false
			}
		}
	}
	return Default(), false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, lang Language, secure bool) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    string(lang),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Translator renders catalog text for one language.
type Translator struct {
	lang    Language
	bundle  *catalog.Bundle
	printer *message.Printer
}

// NewTranslator returns a translator backed by the embedded catalogs.
func NewTranslator(lang Language) *Translator {
	if lang != Arabic {
		lang = English
	}
	return &Translator{
		lang:    lang,
		bundle:  catalog.Default(),
		printer: message.NewPrinter(lang.Tag()),
	}
}

// Language returns the translator's language.
func (t *Translator) Language() Language {
	return t.lang
}

// T returns the translated text for key. Unknown keys fall back to English
// and then to the key itself.
func (t *Translator) T(key string) string {
	return t.bundle.Lookup(string(t.lang), key)
}

// Sprintf formats a catalog entry containing printf verbs.
func (t *Translator) Sprintf(key message.Reference, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// IsRTL reports whether the translator's language is right to left.
func (t *Translator) IsRTL() bool {
	return t.lang.IsRTL()
}

// Dir returns the HTML dir attribute value.
func (t *Translator) Dir() string {
	return t.lang.Dir()
}

// Fold returns s case-folded for caseless substring matching.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsFold reports whether needle occurs in haystack ignoring case.
func ContainsFold(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}

type languageKey struct{}

// WithLanguage stores the resolved request language in ctx.
func WithLanguage(ctx context.Context, lang Language) context.Context {
	return context.WithValue(ctx, languageKey{}, lang)
}

// LanguageFromContext returns the language stored by WithLanguage, or the
// default language.
func LanguageFromContext(ctx context.Context) Language {
	if ctx == nil {
		return Default()
	}
	if lang, ok := ctx.Value(languageKey{}).(Language); ok && lang != "" {
		return lang
	}
	return Default()
}
