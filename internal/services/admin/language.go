package admin

import (
	"net/http"

	"github.com/decorimic/admin/internal/services/admin/i18n"
)

// withLanguage resolves the request language and persists an explicit
// choice made through the lang query parameter.
func withLanguage(cookieSecure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang, persist := i18n.ResolveLanguage(r)
			if persist {
				i18n.SetLanguageCookie(w, lang, cookieSecure)
			}
			next.ServeHTTP(w, r.WithContext(i18n.WithLanguage(r.Context(), lang)))
		})
	}
}
