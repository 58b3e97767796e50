package middleware

import (
	"net/http"

	"vostra.ai/vostracode-web/internal/i18n"
)

// Locale resolves the UI language from Accept-Language and exposes it via Lang.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := bundle.Resolve(r.Header.Get("Accept-Language"))
			w.Header().Add("Vary", "Accept-Language")
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
		})
	}
}
