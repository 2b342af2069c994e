package middleware

import (
	"context"
	"net/http"

	"github.com/diewo77/gestion-pro/internal/i18n"
)

type ctxKey string

const ctxLang ctxKey = "pref_lang"

// Prefs résout la langue (cookie > query > en-tête Accept-Language) et la
// place dans le contexte. Une langue passée en query est persistée ~30 jours.
func Prefs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := ""
		if c, err := r.Cookie("lang"); err == nil && c.Value != "" {
			lang = c.Value
		}
		if ql := r.URL.Query().Get("lang"); ql != "" {
			lang = ql
			http.SetCookie(w, &http.Cookie{Name: "lang", Value: lang, Path: "/", MaxAge: 86400 * 30})
		}
		if lang != "fr" && lang != "en" {
			lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		}
		ctx := context.WithValue(r.Context(), ctxLang, lang)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// LangFrom returns language preference from context or fallback.
func LangFrom(r *http.Request) string {
	if v, ok := r.Context().Value(ctxLang).(string); ok && v != "" {
		return v
	}
	return "fr"
}
