package middleware

import (
	"crypto/sha256"
	"net/http"

	"contactApp/internal/core"

	"github.com/gorilla/csrf"
)

// CSRF — gorilla/csrf при CSRF_ENABLED=true, иначе пропускает запрос как есть.
// Токен принимается из заголовка X-CSRF-Token.
func CSRF(cfg core.Config) func(http.Handler) http.Handler {
	if !cfg.CSRFEnabled {
		return func(next http.Handler) http.Handler { return next }
	}

	protect := csrf.Protect(
		derive32(cfg.CSRFKey),
		csrf.Secure(cfg.Secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.RequestHeader("X-CSRF-Token"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			core.LogError("CSRF проверка не пройдена", map[string]interface{}{
				"path":   r.URL.Path,
				"reason": csrf.FailureReason(r),
			})
			core.Fail(w, r, core.Forbidden("Invalid CSRF token."))
		})),
	)

	return func(next http.Handler) http.Handler {
		h := protect(next)
		if cfg.Secure {
			return h
		}
		// без TLS gorilla/csrf иначе требует Referer по схеме https
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}

// derive32 — 32-байтовый ключ CSRF из секрета (OWASP A02)
func derive32(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}
